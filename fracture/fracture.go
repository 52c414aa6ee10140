package fracture

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/fracturedpane/pathcode"
	"github.com/katalvlaran/fracturedpane/slicer"
)

// walker encapsulates mutable traversal state.
type walker struct {
	table   *pathcode.Table
	opts    Options
	ctx     context.Context
	queue   []string
	regions map[string]int // path → index in out
	out     []Region
}

// Fracture slices the bounding region once per concept of table and
// returns every region produced, in emission order.
// Returns ErrTableNil, ErrOptionViolation, ErrEncodingLookup,
// ErrUnknownAngle, wrapped slicer errors, or any OnVisit error.
func Fracture(table *pathcode.Table, opts ...Option) ([]Region, error) {
	if table == nil {
		return nil, ErrTableNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if math.IsNaN(o.SeedAngle) {
		o.SeedAngle = o.Angles[0]
	}

	n := 2*table.Len() + 1
	w := &walker{
		table:   table,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]string, 0, n),
		regions: make(map[string]int, n),
		out:     make([]Region, 0, n),
	}
	if err := w.seed(); err != nil {
		return nil, err
	}
	if err := w.loop(); err != nil {
		return nil, err
	}
	return w.out, nil
}

// seed emits the bounding region and performs the first cut.
func (w *walker) seed() error {
	if !w.table.HasPath("1") {
		return fmt.Errorf("%w: no concept at path %q", ErrEncodingLookup, "1")
	}
	root := Region{Path: "", Boundary: slicer.Closed(w.opts.Bounds), Cut: w.opts.SeedCut}
	if err := w.emit(root); err != nil {
		return err
	}
	return w.split(root, w.opts.SeedAngle)
}

// loop drains the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		path := w.dequeue()
		i, ok := w.regions[path]
		if !ok {
			return fmt.Errorf("%w: no region for path %q", ErrEncodingLookup, path)
		}
		region := w.out[i]
		angle, err := NextAngle(w.opts.Angles, region.Cut)
		if err != nil {
			return fmt.Errorf("fracture: region %q: %w", path, err)
		}
		if err = w.split(region, angle); err != nil {
			return err
		}
	}
	return nil
}

// split cuts parent at angle, emits "0"+path and "1"+path and queues
// whichever of them still has a concept to place.
func (w *walker) split(parent Region, angle float64) error {
	one, zero := "1"+parent.Path, "0"+parent.Path
	concept, ok := w.table.ConceptAt(one)
	if !ok {
		return fmt.Errorf("%w: no concept at path %q", ErrEncodingLookup, one)
	}

	offset := sampleOffset(w.opts.Sampler, w.opts.OffsetMin, w.opts.OffsetMax)
	res, err := slicer.Slice(parent.Boundary, parent.Cut, angle, offset)
	if err != nil {
		return fmt.Errorf("fracture: region %q at %v° offset %.4f: %w", parent.Path, angle, offset, err)
	}

	if err = w.emit(Region{Path: zero, Boundary: res.A, Cut: res.Cut}); err != nil {
		return err
	}
	if err = w.emit(Region{Path: one, Concept: concept, Boundary: res.B, Cut: res.Cut}); err != nil {
		return err
	}
	w.enqueue(one)
	w.enqueue(zero)
	return nil
}

// emit records r and calls OnVisit.
func (w *walker) emit(r Region) error {
	w.regions[r.Path] = len(w.out)
	w.out = append(w.out, r)
	if err := w.opts.OnVisit(r); err != nil {
		return fmt.Errorf("fracture: OnVisit error at %q: %w", r.Path, err)
	}
	return nil
}

// enqueue queues path if the table still has a concept to place in it.
func (w *walker) enqueue(path string) {
	if !w.table.HasPath("1" + path) {
		return
	}
	w.opts.OnEnqueue(path)
	w.queue = append(w.queue, path)
}

// dequeue pops the first pending path.
func (w *walker) dequeue() string {
	path := w.queue[0]
	w.queue = w.queue[1:]
	return path
}
