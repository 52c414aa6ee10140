package pathcode

import "fmt"

// Table is the read-only result of Build: rows in encoding order plus
// lookups by concept, by path and by path suffix.
type Table struct {
	rows      []Row
	byConcept map[string]int
	byPath    map[string]int
	suffixes  map[string]bool // every strict suffix of every path, "" included
}

// newTable indexes rows and checks that paths are unique.
func newTable(rows []Row) (*Table, error) {
	t := &Table{
		rows:      rows,
		byConcept: make(map[string]int, len(rows)),
		byPath:    make(map[string]int, len(rows)),
		suffixes:  make(map[string]bool),
	}
	for i, r := range rows {
		t.byConcept[r.Concept] = i
		if j, dup := t.byPath[r.Path]; dup {
			return nil, fmt.Errorf("%w: %q for %q and %q", ErrPathCollision, r.Path, rows[j].Concept, r.Concept)
		}
		t.byPath[r.Path] = i
		for k := 1; k <= len(r.Path); k++ {
			t.suffixes[r.Path[k:]] = true
		}
	}
	if len(t.byPath) != len(rows) {
		return nil, fmt.Errorf("%w: %d distinct paths for %d rows", ErrPathCollision, len(t.byPath), len(rows))
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Rows returns a copy of the rows in encoding order.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Row returns the row for concept.
func (t *Table) Row(concept string) (Row, bool) {
	i, ok := t.byConcept[concept]
	if !ok {
		return Row{}, false
	}
	return t.rows[i], true
}

// ConceptAt returns the concept whose path is exactly path.
func (t *Table) ConceptAt(path string) (string, bool) {
	i, ok := t.byPath[path]
	if !ok {
		return "", false
	}
	return t.rows[i].Concept, true
}

// HasPath reports whether some row has exactly this path.
func (t *Table) HasPath(path string) bool {
	_, ok := t.byPath[path]
	return ok
}

// HasDescendants reports whether some row's path ends with path and is
// longer than it.
func (t *Table) HasDescendants(path string) bool {
	return t.suffixes[path]
}

// Roots returns the root rows in token order.
func (t *Table) Roots() []Row {
	return t.Children("")
}

// Children returns the rows whose parent is concept, in token order.
// Children("") returns the roots.
func (t *Table) Children(concept string) []Row {
	var out []Row
	for _, r := range t.rows {
		if r.Parent == concept {
			out = append(out, r)
		}
	}
	return out
}
