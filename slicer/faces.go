package slicer

import (
	"math"
	"sort"

	"github.com/jbeda/geom"
)

// arrangement is a planar straight-line graph stored as half-edges,
// just large enough to enumerate the faces of a sliced polygon.
type arrangement struct {
	vertices  []geom.Coord
	halfEdges []*halfEdge
	outgoing  [][]*halfEdge // per vertex, sorted counter-clockwise
	edgeSet   map[[2]int]bool
	eps       float64 // coincidence tolerance of the polygon being sliced
}

type halfEdge struct {
	origin int
	twin   *halfEdge
	next   *halfEdge
	angle  float64
	seen   bool
}

func newArrangement(eps float64) *arrangement {
	return &arrangement{edgeSet: make(map[[2]int]bool), eps: eps}
}

// vertex returns the index of p, merging it into an existing vertex
// within eps.
func (g *arrangement) vertex(p geom.Coord) int {
	for i, v := range g.vertices {
		if near(v, p, g.eps) {
			return i
		}
	}
	g.vertices = append(g.vertices, p)
	g.outgoing = append(g.outgoing, nil)
	return len(g.vertices) - 1
}

// addEdge inserts the undirected edge p-q once; zero-length and repeated
// edges are ignored.
func (g *arrangement) addEdge(p, q geom.Coord) {
	u, v := g.vertex(p), g.vertex(q)
	if u == v {
		return
	}
	key := [2]int{u, v}
	if u > v {
		key = [2]int{v, u}
	}
	if g.edgeSet[key] {
		return
	}
	g.edgeSet[key] = true

	fwd := &halfEdge{origin: u}
	rev := &halfEdge{origin: v, twin: fwd}
	fwd.twin = rev
	d := g.vertices[v].Minus(g.vertices[u])
	fwd.angle = math.Atan2(d.Y, d.X)
	rev.angle = math.Atan2(-d.Y, -d.X)

	g.halfEdges = append(g.halfEdges, fwd, rev)
	g.outgoing[u] = append(g.outgoing[u], fwd)
	g.outgoing[v] = append(g.outgoing[v], rev)
}

// link sorts every vertex fan and sets next pointers so that each walk
// keeps its face on the left.
func (g *arrangement) link() {
	pos := make(map[*halfEdge]int, len(g.halfEdges))
	for _, fan := range g.outgoing {
		sort.Slice(fan, func(i, j int) bool { return fan[i].angle < fan[j].angle })
		for i, e := range fan {
			pos[e] = i
		}
	}
	for _, e := range g.halfEdges {
		// At the destination, turn to the edge just clockwise of the way back.
		fan := g.outgoing[e.twin.origin]
		i := pos[e.twin]
		e.next = fan[(i-1+len(fan))%len(fan)]
	}
}

// boundedFaces walks every face and returns the counter-clockwise ones,
// i.e. all faces except the unbounded outer face of each component.
func (g *arrangement) boundedFaces() []Ring {
	g.link()
	var faces []Ring
	for _, start := range g.halfEdges {
		if start.seen {
			continue
		}
		var face Ring
		e := start
		for steps := 0; !e.seen && steps <= len(g.halfEdges); steps++ {
			e.seen = true
			face = append(face, g.vertices[e.origin])
			e = e.next
		}
		if len(face) < 3 || Area(face) <= g.eps*diagonal(Bounds(face)) {
			continue
		}
		faces = append(faces, face)
	}
	return faces
}

// interiorPoint returns a point strictly inside a counter-clockwise face.
// The vertex average serves for convex faces; otherwise a point just left
// of some edge midpoint is used.
func interiorPoint(face Ring, eps float64) geom.Coord {
	var c geom.Coord
	for _, p := range face {
		c = c.Plus(p)
	}
	c = c.Times(1 / float64(len(face)))
	if strictlyInside(face, c) && !onBoundary(face, c, eps) {
		return c
	}

	nudge := diagonal(Bounds(face)) * 1e-6
	for i := range face {
		p, q := face[i], face[(i+1)%len(face)]
		e := q.Minus(p)
		l := math.Hypot(e.X, e.Y)
		if l <= eps {
			continue
		}
		left := geom.Coord{X: -e.Y / l, Y: e.X / l}
		cand := p.Plus(q).Times(0.5).Plus(left.Times(nudge))
		if strictlyInside(face, cand) {
			return cand
		}
	}
	return c
}
