package pathcode

import (
	"fmt"
	"sort"
	"strings"
)

// Build encodes relations into a Table.
//
// Duplicate concepts keep their first occurrence; shuffle beforehand for a
// random (seeded) choice. Synthesized roots come first, in order of first
// appearance as a parent, followed by the relations in input order; this
// row order fixes sibling positions.
//
// Returns ErrEmptyConcept, ErrCycleOrUnknownParent, ErrPathCollision or
// ErrOptionViolation.
func Build(relations []Relation, opts ...Option) (*Table, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	rows, err := collectRows(relations)
	if err != nil {
		return nil, err
	}
	assignTokens(rows)

	maxPasses := o.MaxPasses
	if maxPasses == 0 {
		maxPasses = len(rows)
	}
	if err = resolve(rows, maxPasses); err != nil {
		return nil, err
	}

	return newTable(rows)
}

// collectRows validates and dedupes relations and prepends synthesized roots.
func collectRows(relations []Relation) ([]Row, error) {
	kept := make([]Relation, 0, len(relations))
	isConcept := make(map[string]bool, len(relations))
	for i, rel := range relations {
		if rel.Concept == "" {
			return nil, fmt.Errorf("%w: relation %d (parent %q)", ErrEmptyConcept, i, rel.Parent)
		}
		if isConcept[rel.Concept] {
			continue
		}
		isConcept[rel.Concept] = true
		kept = append(kept, rel)
	}

	var roots []Row
	synthesized := make(map[string]bool)
	for _, rel := range kept {
		p := rel.Parent
		if p == "" || isConcept[p] || synthesized[p] {
			continue
		}
		synthesized[p] = true
		roots = append(roots, Row{Concept: p})
	}

	rows := make([]Row, 0, len(roots)+len(kept))
	rows = append(rows, roots...)
	for _, rel := range kept {
		rows = append(rows, Row{Parent: rel.Parent, Concept: rel.Concept})
	}
	return rows, nil
}

// assignTokens numbers the rows of each parent group in row order.
func assignTokens(rows []Row) {
	next := make(map[string]int)
	for i := range rows {
		p := rows[i].Parent
		rows[i].Token = NewToken(next[p])
		next[p]++
	}
}

// resolve fills Path for every row, one pass at a time: a row is resolved
// once its parent's path is known. Roots resolve to their own token.
func resolve(rows []Row, maxPasses int) error {
	index := make(map[string]int, len(rows))
	for i, r := range rows {
		index[r.Concept] = i
	}

	pending := 0
	for i := range rows {
		if rows[i].IsRoot() {
			rows[i].Path = rows[i].Token.Text
		} else {
			pending++
		}
	}

	for pass := 0; pending > 0; pass++ {
		if pass >= maxPasses {
			return fmt.Errorf("%w: %d row(s) unresolved after %d pass(es)", ErrCycleOrUnknownParent, pending, maxPasses)
		}
		progressed := 0
		for i := range rows {
			if rows[i].Path != "" {
				continue
			}
			pi, ok := index[rows[i].Parent]
			if !ok || rows[pi].Path == "" {
				continue
			}
			rows[i].Path = rows[i].Token.Text + rows[pi].Path
			progressed++
		}
		if progressed == 0 {
			return stalled(rows, index)
		}
		pending -= progressed
	}
	return nil
}

// stalled classifies the unresolved rows with three-colour marking over
// parent links: rows on a parent cycle, rows whose ancestry leaves the
// table, and rows that merely wait on one of those.
func stalled(rows []Row, index map[string]int) error {
	const (
		white = iota
		gray
		black
	)
	state := make(map[string]int)
	var cycle, unknown, waiting []string

	for _, r := range rows {
		if r.Path != "" || state[r.Concept] != white {
			continue
		}
		var chain []string
		cur := r.Concept
		for {
			state[cur] = gray
			chain = append(chain, cur)
			parent := rows[index[cur]].Parent
			pi, ok := index[parent]
			if !ok {
				unknown = append(unknown, parent)
				waiting = append(waiting, chain...)
				break
			}
			if state[parent] == gray {
				// Back edge: the chain from parent onwards is the cycle.
				at := 0
				for chain[at] != parent {
					at++
				}
				cycle = append(cycle, chain[at:]...)
				waiting = append(waiting, chain[:at]...)
				break
			}
			if state[parent] == black || rows[pi].Path != "" {
				waiting = append(waiting, chain...)
				break
			}
			cur = parent
		}
		for _, c := range chain {
			state[c] = black
		}
	}

	sort.Strings(cycle)
	sort.Strings(unknown)
	sort.Strings(waiting)
	var parts []string
	if len(cycle) > 0 {
		parts = append(parts, "cycle through ["+strings.Join(cycle, ", ")+"]")
	}
	if len(unknown) > 0 {
		parts = append(parts, "unknown parent ["+strings.Join(unknown, ", ")+"]")
	}
	if len(waiting) > 0 {
		parts = append(parts, "blocked ["+strings.Join(waiting, ", ")+"]")
	}
	return fmt.Errorf("%w: %s", ErrCycleOrUnknownParent, strings.Join(parts, "; "))
}
