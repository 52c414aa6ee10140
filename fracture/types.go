package fracture

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jbeda/geom"

	"github.com/katalvlaran/fracturedpane/slicer"
)

// Sentinel errors for fracturing.
var (
	// ErrTableNil is returned if a nil table pointer is passed.
	ErrTableNil = errors.New("fracture: table is nil")

	// ErrEncodingLookup indicates a path that should exist is missing.
	ErrEncodingLookup = errors.New("fracture: encoding lookup failed")

	// ErrUnknownAngle indicates an inherited cut whose angle is not in the
	// angle sequence.
	ErrUnknownAngle = errors.New("fracture: unknown cut angle")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("fracture: invalid option supplied")
)

// DefaultSize is the side of the default square bounding region.
const DefaultSize = 10.0

// DefaultAngles is the default cut rotation, in degrees.
var DefaultAngles = []float64{90, 0, 45, 135}

// Region is one polygon produced by the traversal.
type Region struct {
	// Path identifies the region: "" for the bounding region, otherwise
	// a string of '0'/'1' with the newest branch first.
	Path string `json:"path"`

	// Concept is the taxonomy concept bound to the region, or "".
	Concept string `json:"concept"`

	// Boundary is the closed, counter-clockwise region outline.
	Boundary slicer.Ring `json:"boundary"`

	// Cut is the most recent cut on the boundary, inherited by the
	// region's children as their reference segment.
	Cut slicer.Segment `json:"cut"`
}

// Named reports whether a concept is bound to r.
func (r Region) Named() bool { return r.Concept != "" }

// Sampler yields pseudo-random numbers in [0,1). *rand.Rand satisfies it.
type Sampler interface {
	Float64() float64
}

// Option configures Fracture via functional arguments. Invalid options are
// recorded and surfaced as ErrOptionViolation when Fracture is invoked.
type Option func(*Options)

// Options holds the parameters and hooks of a traversal.
type Options struct {
	// Ctx allows cancellation; checked once per dequeued path.
	Ctx context.Context

	// Bounds is the bounding region and SeedCut its initial reference segment.
	Bounds  slicer.Ring
	SeedCut slicer.Segment

	// Angles is the cut rotation, whole degrees in [0,180).
	Angles []float64

	// SeedAngle cuts the bounding region. NaN means Angles[0].
	SeedAngle float64

	// OffsetMin and OffsetMax bound the sampled offset along the inherited cut.
	OffsetMin, OffsetMax float64

	// Sampler is the only source of randomness.
	Sampler Sampler

	// OnEnqueue is called when a path is queued for slicing.
	OnEnqueue func(path string)

	// OnVisit is called for every emitted region, in output order. An error
	// aborts the traversal.
	OnVisit func(r Region) error

	err error
}

// DefaultOptions returns Options with:
//   - Context.Background()
//   - the 10×10 square with its bottom edge as seed cut
//   - DefaultAngles, seed angle 90
//   - offset band [0.2, 0.8]
//   - a deterministic Sampler (seed 0 policy, see WithSeed)
//   - no-op hooks
func DefaultOptions() Options {
	bounds, seed := Square(DefaultSize)
	return Options{
		Ctx:       context.Background(),
		Bounds:    bounds,
		SeedCut:   seed,
		Angles:    append([]float64(nil), DefaultAngles...),
		SeedAngle: math.NaN(),
		OffsetMin: 0.2,
		OffsetMax: 0.8,
		Sampler:   rngFromSeed(0),
		OnEnqueue: func(string) {},
		OnVisit:   func(Region) error { return nil },
	}
}

// Square returns the size×size square anchored at the origin and its
// bottom edge.
func Square(size float64) (slicer.Ring, slicer.Segment) {
	ring := slicer.Ring{{X: 0, Y: 0}, {X: size, Y: 0}, {X: size, Y: size}, {X: 0, Y: size}, {X: 0, Y: 0}}
	return ring, slicer.Segment{A: geom.Coord{X: 0, Y: 0}, B: geom.Coord{X: size, Y: 0}}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithSize replaces the bounding region with a size×size square.
func WithSize(size float64) Option {
	return func(o *Options) {
		if !(size > 0) {
			o.err = fmt.Errorf("%w: size must be positive (%v)", ErrOptionViolation, size)
			return
		}
		o.Bounds, o.SeedCut = Square(size)
	}
}

// WithBounds sets an arbitrary convex bounding region and its seed cut.
func WithBounds(bounds slicer.Ring, seed slicer.Segment) Option {
	return func(o *Options) {
		if len(slicer.Vertices(bounds)) < 3 {
			o.err = fmt.Errorf("%w: bounds need at least three vertices", ErrOptionViolation)
			return
		}
		if seed.Length() <= slicer.Epsilon {
			o.err = fmt.Errorf("%w: seed cut has zero length", ErrOptionViolation)
			return
		}
		o.Bounds, o.SeedCut = bounds, seed
	}
}

// WithAngleSequence sets the cut rotation. Entries must be distinct whole
// degrees in [0,180), at least two of them.
func WithAngleSequence(angles []float64) Option {
	return func(o *Options) {
		if len(angles) < 2 {
			o.err = fmt.Errorf("%w: angle sequence needs at least two entries", ErrOptionViolation)
			return
		}
		seen := make(map[float64]bool, len(angles))
		for _, a := range angles {
			if a < 0 || a >= 180 || a != math.Trunc(a) {
				o.err = fmt.Errorf("%w: angle %v is not a whole degree in [0,180)", ErrOptionViolation, a)
				return
			}
			if seen[a] {
				o.err = fmt.Errorf("%w: angle %v repeated", ErrOptionViolation, a)
				return
			}
			seen[a] = true
		}
		o.Angles = append([]float64(nil), angles...)
	}
}

// WithSeedAngle sets the angle of the first cut of the bounding region.
func WithSeedAngle(deg float64) Option {
	return func(o *Options) {
		if math.IsNaN(deg) || math.IsInf(deg, 0) {
			o.err = fmt.Errorf("%w: seed angle %v", ErrOptionViolation, deg)
			return
		}
		o.SeedAngle = deg
	}
}

// WithOffsetBand sets the band offsets are drawn from: 0 ≤ lo < hi ≤ 1.
func WithOffsetBand(lo, hi float64) Option {
	return func(o *Options) {
		if !(lo >= 0 && lo < hi && hi <= 1) {
			o.err = fmt.Errorf("%w: offset band [%v, %v]", ErrOptionViolation, lo, hi)
			return
		}
		o.OffsetMin, o.OffsetMax = lo, hi
	}
}

// WithSampler injects the source of randomness.
func WithSampler(s Sampler) Option {
	return func(o *Options) {
		if s != nil {
			o.Sampler = s
		}
	}
}

// WithSeed uses a deterministic *rand.Rand seeded with seed
// (0 selects the package default seed).
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Sampler = rngFromSeed(seed)
	}
}

// WithOnEnqueue registers a callback to run when a path is queued.
func WithOnEnqueue(fn func(path string)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnVisit registers a callback to run on every emitted region;
// returning an error from it stops the traversal.
func WithOnVisit(fn func(r Region) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}
