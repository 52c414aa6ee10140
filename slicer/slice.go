package slicer

import (
	"fmt"
	"math"
	"sort"

	"github.com/golang/geo/s1"
	"github.com/jbeda/geom"
)

// hit is one crossing of the construction line with the polygon boundary.
type hit struct {
	at geom.Coord
	t  float64 // parameter along the construction line, 0 at its +direction end
}

// Slice cuts poly with the line through ref.At(offset) at angleDeg degrees.
//
// The offset is not clamped: values outside [0,1] extrapolate along ref.
// Callers that want to avoid sliver faces draw it from an inner band.
// Returns ErrInvalidPolygon, ErrDegenerateSegment or ErrDegenerateSlice.
//
// Complexity: O(n log n), n = number of polygon vertices.
func Slice(poly Ring, ref Segment, angleDeg, offset float64) (Result, error) {
	ring, eps, err := normalize(poly)
	if err != nil {
		return Result{}, err
	}
	if ref.Length() <= eps {
		return Result{}, ErrDegenerateSegment
	}

	line := constructionLine(ring, ref.At(offset), s1.Angle(angleDeg)*s1.Degree)
	hits := traceHits(ring, line, eps)
	if len(hits) < 2 {
		return Result{}, fmt.Errorf("%w: cut at %.3f° meets the boundary %d time(s)", ErrDegenerateSlice, angleDeg, len(hits))
	}
	cut := Segment{A: hits[0].at, B: hits[len(hits)-1].at}

	g := newArrangement(eps)
	for i := range ring {
		p, q := ring[i], ring[(i+1)%len(ring)]
		chain := append([]geom.Coord{p}, onEdge(hits, p, q, eps)...)
		chain = append(chain, q)
		for k := 0; k+1 < len(chain); k++ {
			g.addEdge(chain[k], chain[k+1])
		}
	}
	for k := 0; k+1 < len(hits); k++ {
		a, b := hits[k].at, hits[k+1].at
		mid := a.Plus(b).Times(0.5)
		// Pieces along an edge or outside a reflex notch add no new face.
		if onBoundary(ring, mid, eps) || !strictlyInside(ring, mid) {
			continue
		}
		g.addEdge(a, b)
	}

	var kept []Ring
	for _, face := range g.boundedFaces() {
		if Contains(ring, interiorPoint(face, eps)) {
			kept = append(kept, face)
		}
	}
	if len(kept) != 2 {
		return Result{}, fmt.Errorf("%w: cut at %.3f° produced %d face(s)", ErrDegenerateSlice, angleDeg, len(kept))
	}

	res := Result{A: kept[0], B: kept[1], Cut: cut}
	if cross(cut.Vector(), interiorPoint(res.A, eps).Minus(cut.A)) < 0 {
		res.A, res.B = res.B, res.A
	}
	res.A = Closed(dropCollinear(res.A, eps))
	res.B = Closed(dropCollinear(res.B, eps))
	return res, nil
}

// constructionLine returns a segment through anchor at angle whose ends lie
// well outside ring, running from the +direction end to the −direction end.
func constructionLine(ring Ring, anchor geom.Coord, angle s1.Angle) Segment {
	b := Bounds(ring)
	diag := diagonal(b)
	center := b.Min.Plus(b.Max).Times(0.5)
	reach := diag*LineScale + anchor.DistanceFrom(center)

	rad := angle.Radians()
	dir := geom.Coord{X: math.Cos(rad), Y: math.Sin(rad)}
	return Segment{
		A: anchor.Plus(dir.Times(reach)),
		B: anchor.Minus(dir.Times(reach)),
	}
}

// traceHits intersects line with every edge of ring and returns the
// distinct crossing points ordered along the line. Points closer than eps
// are merged.
func traceHits(ring Ring, line Segment, eps float64) []hit {
	d := line.Vector()
	dl := math.Sqrt(dot(d, d))
	var hits []hit
	param := func(p geom.Coord) float64 { return dot(p.Minus(line.A), d) / (dl * dl) }

	for i := range ring {
		p, q := ring[i], ring[(i+1)%len(ring)]
		e := q.Minus(p)
		el := math.Sqrt(dot(e, e))
		denom := cross(d, e)

		if math.Abs(denom) <= Epsilon*dl*el {
			// Parallel: only a collinear edge touches the line.
			if math.Abs(cross(d, p.Minus(line.A)))/dl <= eps {
				hits = append(hits, hit{at: p, t: param(p)}, hit{at: q, t: param(q)})
			}
			continue
		}
		w := p.Minus(line.A)
		u := cross(w, d) / denom // along the edge, 0 at p
		if u*el < -eps || u*el > el+eps {
			continue
		}
		var at geom.Coord
		switch {
		case u*el <= eps:
			at = p
		case u*el >= el-eps:
			at = q
		default:
			at = p.Plus(e.Times(u))
		}
		hits = append(hits, hit{at: at, t: param(at)})
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].t < hits[j].t })
	out := hits[:0]
	for _, h := range hits {
		if len(out) > 0 && near(out[len(out)-1].at, h.at, eps) {
			continue
		}
		out = append(out, h)
	}
	return out
}

// onEdge returns the hits lying strictly inside edge p-q, ordered from p.
func onEdge(hits []hit, p, q geom.Coord, eps float64) []geom.Coord {
	e := q.Minus(p)
	l2 := dot(e, e)
	type onE struct {
		at geom.Coord
		s  float64
	}
	var found []onE
	for _, h := range hits {
		if near(h.at, p, eps) || near(h.at, q, eps) {
			continue
		}
		if distToSegment(h.at, p, q) > eps {
			continue
		}
		found = append(found, onE{at: h.at, s: dot(h.at.Minus(p), e) / l2})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].s < found[j].s })
	out := make([]geom.Coord, len(found))
	for i, f := range found {
		out[i] = f.at
	}
	return out
}
