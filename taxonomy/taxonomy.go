package taxonomy

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/fracturedpane/pathcode"
)

var (
	// ErrUnsupportedFormat is returned for file extensions no reader handles.
	ErrUnsupportedFormat = errors.New("taxonomy: unsupported format")

	// ErrMalformedInput wraps every parse failure.
	ErrMalformedInput = errors.New("taxonomy: malformed input")
)

// Reader parses relations from r.
type Reader func(r io.Reader) ([]pathcode.Relation, error)

// SupportedExtensions lists the file extensions ForFile accepts.
var SupportedExtensions = map[string]bool{
	".csv":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".json":     true,
}

// ForFile returns the reader for filename's extension.
func ForFile(filename string) (Reader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return ReadCSV, nil
	case ".md", ".markdown":
		return ReadMarkdown, nil
	case ".html", ".htm":
		return ReadHTML, nil
	case ".json":
		return ReadJSON, nil
	default:
		return nil, fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
	}
}

// ReadFile opens path and parses it with the reader for its extension.
func ReadFile(path string) ([]pathcode.Relation, error) {
	read, err := ForFile(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: open %s: %w", path, err)
	}
	defer f.Close()

	rels, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return rels, nil
}

// Shuffle returns a reordered copy of rels. Encoding keeps the first
// occurrence of a duplicated concept and numbers siblings in input order,
// so shuffling first makes both choices random but reproducible per rng.
// A nil rng returns an unshuffled copy.
func Shuffle(rels []pathcode.Relation, rng *rand.Rand) []pathcode.Relation {
	out := append([]pathcode.Relation(nil), rels...)
	if rng == nil {
		return out
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Sample returns the Science/Art taxonomy used by the CLI when no input is
// given.
func Sample() []pathcode.Relation {
	return []pathcode.Relation{
		{Parent: "Science", Concept: "Physics"},
		{Parent: "Physics", Concept: "Quantum Mechanics"},
		{Parent: "Physics", Concept: "Relativity"},
		{Parent: "Relativity", Concept: "General Relativity"},
		{Parent: "Art", Concept: "Watercolor"},
		{Parent: "Art", Concept: "Ceramics"},
		{Parent: "Watercolor", Concept: "Wet-On-Dry"},
		{Parent: "Watercolor", Concept: "Dry-On-Dry"},
	}
}

// collapse trims s and folds internal whitespace runs to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// outline tracks the heading levels enclosing the current position.
type outline struct {
	names  []string
	levels []int
}

// heading records a heading at level and returns the relation placing it
// under the nearest shallower heading.
func (o *outline) heading(level int, name string) pathcode.Relation {
	for len(o.levels) > 0 && o.levels[len(o.levels)-1] >= level {
		o.names = o.names[:len(o.names)-1]
		o.levels = o.levels[:len(o.levels)-1]
	}
	rel := pathcode.Relation{Parent: o.current(), Concept: name}
	o.names = append(o.names, name)
	o.levels = append(o.levels, level)
	return rel
}

// current names the innermost open heading, or "" at top level.
func (o *outline) current() string {
	if len(o.names) == 0 {
		return ""
	}
	return o.names[len(o.names)-1]
}
