package taxonomy

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/katalvlaran/fracturedpane/pathcode"
)

// ReadHTML parses nested <ul>/<ol> lists. An <li>'s concept is its own
// text, excluding nested lists; h1–h6 headings are outer levels.
func ReadHTML(r io.Reader) ([]pathcode.Relation, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: html: %w", ErrMalformedInput, err)
	}

	var (
		rels []pathcode.Relation
		out  outline
	)
	var walk func(*html.Node) error
	walk = func(n *html.Node) error {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				name := collapse(textContent(n))
				if name == "" {
					return fmt.Errorf("%w: html: empty <%s>", ErrMalformedInput, n.Data)
				}
				rels = append(rels, out.heading(level, name))
				return nil
			}
			switch n.Data {
			case "script", "style", "head":
				return nil
			case "ul", "ol":
				return htmlList(n, out.current(), &rels)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err = walk(doc); err != nil {
		return nil, err
	}
	return rels, nil
}

// htmlList appends the items of list under parent, recursing into lists
// nested in each item.
func htmlList(list *html.Node, parent string, rels *[]pathcode.Relation) error {
	for li := list.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		name := collapse(ownText(li))
		nested := nestedLists(li)
		if name == "" {
			if len(nested) > 0 {
				return fmt.Errorf("%w: html: nested list under an empty <li>", ErrMalformedInput)
			}
			continue
		}
		*rels = append(*rels, pathcode.Relation{Parent: parent, Concept: name})
		for _, sub := range nested {
			if err := htmlList(sub, name, rels); err != nil {
				return err
			}
		}
	}
	return nil
}

func isList(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.Data == "ul" || n.Data == "ol")
}

// ownText is the text of n outside any nested list.
func ownText(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if isList(n) {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extract(c)
	}
	return buf.String()
}

// nestedLists finds the lists directly owned by item, looking through
// wrapper elements but not into other items.
func nestedLists(item *html.Node) []*html.Node {
	var lists []*html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case isList(c):
				lists = append(lists, c)
			case c.Type == html.ElementNode && c.Data != "li":
				find(c)
			}
		}
	}
	find(item)
	return lists
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}
