package pathcode

import (
	"errors"
	"fmt"
)

// Sentinel errors for path encoding.
var (
	// ErrEmptyConcept indicates a relation whose Concept is the empty string.
	ErrEmptyConcept = errors.New("pathcode: empty concept name")

	// ErrCycleOrUnknownParent indicates resolution stalled with rows left
	// unresolved: a parent cycle, or a parent that is not a known concept.
	ErrCycleOrUnknownParent = errors.New("pathcode: cycle or unknown parent")

	// ErrPathCollision indicates two rows share a path.
	ErrPathCollision = errors.New("pathcode: duplicate path")

	// ErrInvalidToken indicates text that is not "1" followed by zeros.
	ErrInvalidToken = errors.New("pathcode: invalid token")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("pathcode: invalid option supplied")
)

// Relation states that Concept is a child of Parent. An empty Parent makes
// Concept an explicit root.
type Relation struct {
	Parent  string `json:"parent"`
	Concept string `json:"concept"`
}

// Row is one encoded concept.
type Row struct {
	// Parent is the parent concept, or "" for a root.
	Parent string `json:"parent"`

	// Concept is the concept name, unique within a Table.
	Concept string `json:"concept"`

	// Token marks the concept's position among its siblings.
	Token Token `json:"token"`

	// Path is Token.Text prepended to the parent's Path.
	Path string `json:"path"`
}

// IsRoot reports whether r has no parent.
func (r Row) IsRoot() bool { return r.Parent == "" }

// Option configures Build.
type Option func(*Options)

// Options holds Build parameters.
type Options struct {
	// MaxPasses bounds the resolution passes. Zero means one pass per row,
	// which always suffices for an acyclic input.
	MaxPasses int

	err error
}

// DefaultOptions returns Options with no explicit pass bound.
func DefaultOptions() Options {
	return Options{MaxPasses: 0}
}

// WithMaxPasses caps the number of resolution passes.
//
//	n > 0: at most n passes
//	n == 0: one pass per row
//	n < 0: invalid → ErrOptionViolation
func WithMaxPasses(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxPasses cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxPasses = n
	}
}
