package taxonomy

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/katalvlaran/fracturedpane/pathcode"
)

// ReadMarkdown parses a Markdown outline using goldmark. Each list item is
// a concept whose parent is the enclosing item, or the nearest heading for
// top-level items. Headings are concepts themselves, nested by level.
func ReadMarkdown(r io.Reader) ([]pathcode.Relation, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var (
		rels []pathcode.Relation
		out  outline
	)
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			name := inlineText(node, src)
			if name == "" {
				return nil, fmt.Errorf("%w: markdown: empty heading", ErrMalformedInput)
			}
			rels = append(rels, out.heading(node.Level, name))
		case *ast.List:
			if rels, err = markdownList(node, out.current(), src, rels); err != nil {
				return nil, err
			}
		}
	}
	return rels, nil
}

// markdownList appends the items of list, and of the lists nested in them,
// to rels.
func markdownList(list *ast.List, parent string, src []byte, rels []pathcode.Relation) ([]pathcode.Relation, error) {
	var err error
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		li, ok := item.(*ast.ListItem)
		if !ok {
			continue
		}
		name := ""
		for c := li.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				if name == "" {
					return nil, fmt.Errorf("%w: markdown: nested list under an empty item", ErrMalformedInput)
				}
				if rels, err = markdownList(sub, name, src, rels); err != nil {
					return nil, err
				}
				continue
			}
			if name == "" {
				if name = inlineText(c, src); name != "" {
					rels = append(rels, pathcode.Relation{Parent: parent, Concept: name})
				}
			}
		}
	}
	return rels, nil
}

// inlineText concatenates the text segments below n.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		if t, ok := n.(*ast.Text); ok {
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
			return
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c)
		}
	}
	walk(n)
	return collapse(buf.String())
}
