package slicer

import (
	"fmt"
	"math"

	"github.com/jbeda/geom"
)

// Area returns the signed shoelace area of r: positive for
// counter-clockwise rings, negative for clockwise ones. Closed and open
// rings give the same result.
func Area(r Ring) float64 {
	n := len(r)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += cross(r[i], r[(i+1)%n])
	}
	return sum / 2
}

// Bounds returns the axis-aligned bounding box of r.
func Bounds(r Ring) geom.Rect {
	if len(r) == 0 {
		return geom.Rect{}
	}
	b := geom.Rect{Min: r[0], Max: r[0]}
	for _, p := range r[1:] {
		b.ExpandToContainCoord(p)
	}
	return b
}

// Closed returns a copy of r whose last vertex repeats the first.
func Closed(r Ring) Ring {
	out := open(r, tolerance(r))
	if len(out) == 0 {
		return out
	}
	return append(out, out[0])
}

// Vertices returns the distinct vertices of r, without the closing repeat.
func Vertices(r Ring) []geom.Coord {
	return open(r, tolerance(r))
}

// OnBoundary reports whether p lies on an edge of r, within the ring's
// tolerance.
func OnBoundary(r Ring, p geom.Coord) bool {
	return onBoundary(r, p, tolerance(r))
}

func onBoundary(r Ring, p geom.Coord, eps float64) bool {
	v := open(r, eps)
	for i := range v {
		if distToSegment(p, v[i], v[(i+1)%len(v)]) <= eps {
			return true
		}
	}
	return false
}

// Contains reports whether p is inside r or on its boundary.
func Contains(r Ring, p geom.Coord) bool {
	return OnBoundary(r, p) || strictlyInside(r, p)
}

// strictlyInside is the even-odd crossing test; boundary points are
// resolved by OnBoundary beforehand.
func strictlyInside(r Ring, p geom.Coord) bool {
	v := open(r, tolerance(r))
	in := false
	for i, j := 0, len(v)-1; i < len(v); j, i = i, i+1 {
		a, b := v[i], v[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				in = !in
			}
		}
	}
	return in
}

// tolerance returns the distance below which two points of r count as the
// same point: Epsilon times the bounding-box diagonal, floored at the
// rounding noise of r's coordinates.
func tolerance(r Ring) float64 {
	b := Bounds(r)
	mag := math.Max(
		math.Max(math.Abs(b.Min.X), math.Abs(b.Max.X)),
		math.Max(math.Abs(b.Min.Y), math.Abs(b.Max.Y)),
	)
	return math.Max(Epsilon*diagonal(b), roundoff*mag)
}

func diagonal(b geom.Rect) float64 { return math.Hypot(b.Width(), b.Height()) }

// normalize drops the closing repeat and consecutive duplicates, checks
// the ring encloses area, and orients it counter-clockwise. It also
// returns the ring's tolerance.
func normalize(r Ring) (Ring, float64, error) {
	eps := tolerance(r)
	v := open(r, eps)
	if len(v) < 3 {
		return nil, 0, fmt.Errorf("%w: %d distinct vertices", ErrInvalidPolygon, len(v))
	}
	// A ring thinner than eps everywhere encloses no usable area.
	a := Area(v)
	if math.Abs(a) <= eps*diagonal(Bounds(v)) {
		return nil, 0, fmt.Errorf("%w: zero area", ErrInvalidPolygon)
	}
	if a < 0 {
		for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
			v[i], v[j] = v[j], v[i]
		}
	}
	return v, eps, nil
}

// open copies r without consecutive duplicates or the closing repeat.
func open(r Ring, eps float64) Ring {
	out := make(Ring, 0, len(r))
	for _, p := range r {
		if len(out) > 0 && near(out[len(out)-1], p, eps) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && near(out[0], out[len(out)-1], eps) {
		out = out[:len(out)-1]
	}
	return out
}

// dropCollinear removes vertices lying on the straight line through their
// neighbours.
func dropCollinear(v Ring, eps float64) Ring {
	out := make(Ring, 0, len(v))
	n := len(v)
	for i := 0; i < n; i++ {
		prev, cur, next := v[(i+n-1)%n], v[i], v[(i+1)%n]
		if distToSegment(cur, prev, next) <= eps {
			continue
		}
		out = append(out, cur)
	}
	return out
}

func distToSegment(p, a, b geom.Coord) float64 {
	ab := b.Minus(a)
	l2 := dot(ab, ab)
	if l2 == 0 {
		return p.DistanceFrom(a)
	}
	t := dot(p.Minus(a), ab) / l2
	switch {
	case t < 0:
		t = 0
	case t > 1:
		t = 1
	}
	return p.DistanceFrom(a.Plus(ab.Times(t)))
}
