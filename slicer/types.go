package slicer

import (
	"errors"
	"math"

	"github.com/golang/geo/s1"
	"github.com/jbeda/geom"
)

// Sentinel errors for slicing.
var (
	// ErrInvalidPolygon indicates a ring with fewer than three distinct
	// vertices or with no enclosed area.
	ErrInvalidPolygon = errors.New("slicer: invalid polygon")

	// ErrDegenerateSegment indicates a reference segment whose endpoints coincide.
	ErrDegenerateSegment = errors.New("slicer: degenerate reference segment")

	// ErrDegenerateSlice indicates the cut did not yield exactly two faces.
	ErrDegenerateSlice = errors.New("slicer: degenerate slice")
)

const (
	// Epsilon is the coincidence tolerance relative to the size of the
	// polygon being sliced: two of its points are the same point when they
	// are closer than Epsilon times its bounding-box diagonal.
	// AlmostEqualCoord applies it as an absolute distance.
	Epsilon = 1e-9

	// roundoff bounds the relative error of a coordinate after a few
	// float64 operations; tolerances never drop below it.
	roundoff = 1e-13

	// LineScale multiplies the polygon's bounding-box diagonal to get the
	// half-length of the construction line on each side of the anchor.
	LineScale = 10.0
)

// Segment is a directed straight segment from A to B.
type Segment struct {
	A, B geom.Coord
}

// Vector returns B - A.
func (s Segment) Vector() geom.Coord { return s.B.Minus(s.A) }

// Length returns the Euclidean length of s.
func (s Segment) Length() float64 { return s.A.DistanceFrom(s.B) }

// At interpolates linearly from A (t=0) to B (t=1). Values of t outside
// [0,1] extrapolate along the supporting line.
func (s Segment) At(t float64) geom.Coord {
	return s.A.Plus(s.Vector().Times(t))
}

// Reversed returns the segment from B to A.
func (s Segment) Reversed() Segment { return Segment{A: s.B, B: s.A} }

// Angle returns the direction of s measured counter-clockwise from +x,
// in [0, 2π).
func (s Segment) Angle() s1.Angle {
	d := s.Vector()
	a := math.Atan2(d.Y, d.X)
	if a < 0 {
		a += 2 * math.Pi
	}
	return s1.Angle(a)
}

// AlmostEqual reports whether s and o join the same two points, in either order.
func (s Segment) AlmostEqual(o Segment) bool {
	return (AlmostEqualCoord(s.A, o.A) && AlmostEqualCoord(s.B, o.B)) ||
		(AlmostEqualCoord(s.A, o.B) && AlmostEqualCoord(s.B, o.A))
}

// Ring is a polygon boundary given as a sequence of vertices. A ring is
// closed when its last vertex repeats the first.
type Ring []geom.Coord

// Result holds the outcome of one Slice.
type Result struct {
	// A is the face on the left of the cut direction (Cut.A towards Cut.B).
	A Ring

	// B is the face on the right of the cut direction.
	B Ring

	// Cut is the trace of the cutting line inside the polygon, ordered from
	// the line's +direction end towards its −direction end.
	Cut Segment
}

// AlmostEqualCoord reports whether a and b are within Epsilon on both axes.
func AlmostEqualCoord(a, b geom.Coord) bool {
	return near(a, b, Epsilon)
}

func near(a, b geom.Coord, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

func cross(a, b geom.Coord) float64 { return a.X*b.Y - a.Y*b.X }

func dot(a, b geom.Coord) float64 { return a.X*b.X + a.Y*b.Y }
