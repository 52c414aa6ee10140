package slicer_test

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/jbeda/geom"
	sfgeom "github.com/peterstace/simplefeatures/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fracturedpane/slicer"
)

const tol = 1e-7

func square() slicer.Ring {
	return slicer.Ring{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0}}
}

func bottom() slicer.Segment {
	return slicer.Segment{A: geom.Coord{X: 0, Y: 0}, B: geom.Coord{X: 10, Y: 0}}
}

// wkt renders a ring as a WKT polygon so simplefeatures can act as an
// independent area and overlap oracle.
func wkt(r slicer.Ring) string {
	parts := make([]string, 0, len(r))
	for _, p := range slicer.Closed(r) {
		parts = append(parts, fmt.Sprintf("%.12f %.12f", p.X, p.Y))
	}
	return "POLYGON((" + strings.Join(parts, ",") + "))"
}

func sf(t *testing.T, r slicer.Ring) sfgeom.Geometry {
	t.Helper()
	g, err := sfgeom.UnmarshalWKT(wkt(r))
	require.NoError(t, err)
	return g
}

// requirePartition checks that a and b tile parent: areas add up and the
// interiors do not overlap.
func requirePartition(t *testing.T, parent, a, b slicer.Ring) {
	t.Helper()
	pa, aa, ba := math.Abs(slicer.Area(parent)), slicer.Area(a), slicer.Area(b)
	require.Greater(t, aa, 0.0, "face A must be counter-clockwise with positive area")
	require.Greater(t, ba, 0.0, "face B must be counter-clockwise with positive area")
	require.InDelta(t, pa, aa+ba, tol)

	require.InDelta(t, aa, sf(t, a).Area(), tol)
	require.InDelta(t, ba, sf(t, b).Area(), tol)
	overlap, err := sfgeom.Intersection(sf(t, a), sf(t, b))
	require.NoError(t, err)
	require.InDelta(t, 0.0, overlap.Area(), tol)
	union, err := sfgeom.Union(sf(t, a), sf(t, b))
	require.NoError(t, err)
	require.InDelta(t, pa, union.Area(), tol)
}

// TestSlice_VerticalCut reproduces the 10×10 square cut vertically at 65%
// of its bottom edge.
func TestSlice_VerticalCut(t *testing.T) {
	res, err := slicer.Slice(square(), bottom(), 90, 0.65)
	require.NoError(t, err)
	requirePartition(t, square(), res.A, res.B)

	// The trace runs from the top (+90° end) down to the anchor.
	assert.InDelta(t, 6.5, res.Cut.A.X, tol)
	assert.InDelta(t, 10.0, res.Cut.A.Y, tol)
	assert.InDelta(t, 6.5, res.Cut.B.X, tol)
	assert.InDelta(t, 0.0, res.Cut.B.Y, tol)

	// Walking down the cut, the left face is the eastern strip.
	assert.InDelta(t, 35.0, slicer.Area(res.A), tol)
	assert.InDelta(t, 65.0, slicer.Area(res.B), tol)
	for _, p := range slicer.Vertices(res.A) {
		assert.GreaterOrEqual(t, p.X, 6.5-tol)
	}
	for _, p := range slicer.Vertices(res.B) {
		assert.LessOrEqual(t, p.X, 6.5+tol)
	}
}

// TestSlice_ReturnedRingsAreClosed checks the ring conventions of Result.
func TestSlice_ReturnedRingsAreClosed(t *testing.T) {
	res, err := slicer.Slice(square(), bottom(), 45, 0.3)
	require.NoError(t, err)
	for _, r := range []slicer.Ring{res.A, res.B} {
		require.GreaterOrEqual(t, len(r), 4)
		assert.True(t, slicer.AlmostEqualCoord(r[0], r[len(r)-1]))
	}
}

// TestSlice_AreaConservationAndInheritance sweeps angles and offsets and
// checks that every slice tiles its parent and that the new cut lies on
// the boundary of both faces.
func TestSlice_AreaConservationAndInheritance(t *testing.T) {
	for _, angle := range []float64{0, 45, 90, 135} {
		for _, offset := range []float64{0.2, 0.35, 0.5, 0.65, 0.8} {
			ref := bottom()
			if angle == 0 {
				// A horizontal cut needs a non-horizontal reference edge.
				ref = slicer.Segment{A: geom.Coord{X: 10, Y: 0}, B: geom.Coord{X: 10, Y: 10}}
			}
			t.Run(fmt.Sprintf("%v_%v", angle, offset), func(t *testing.T) {
				res, err := slicer.Slice(square(), ref, angle, offset)
				require.NoError(t, err)
				requirePartition(t, square(), res.A, res.B)
				for _, face := range []slicer.Ring{res.A, res.B} {
					assert.True(t, slicer.OnBoundary(face, res.Cut.A))
					assert.True(t, slicer.OnBoundary(face, res.Cut.B))
					assert.True(t, slicer.OnBoundary(face, res.Cut.At(0.5)))
				}
				d := math.Mod(math.Abs(res.Cut.Angle().Degrees()-angle), 180)
				if d > 90 {
					d = 180 - d
				}
				assert.Less(t, d, 1e-6, "undirected cut angle")
			})
		}
	}
}

// TestSlice_RecursiveChain follows three successive slices, each taking the
// previous trace as its reference segment.
func TestSlice_RecursiveChain(t *testing.T) {
	poly, ref := square(), bottom()
	for _, step := range []struct{ angle, offset float64 }{
		{90, 0.65}, {45, 0.5}, {135, 0.25}, {90, 0.4},
	} {
		res, err := slicer.Slice(poly, ref, step.angle, step.offset)
		require.NoError(t, err, "angle %v", step.angle)
		requirePartition(t, poly, res.A, res.B)
		poly, ref = res.A, res.Cut
	}
}

// TestSlice_OffsetAtSegmentEnds fixes the boundary behaviour: an anchor on
// a corner sends the cut along an edge, which yields a single face.
func TestSlice_OffsetAtSegmentEnds(t *testing.T) {
	for _, offset := range []float64{0, 1} {
		_, err := slicer.Slice(square(), bottom(), 90, offset)
		require.ErrorIs(t, err, slicer.ErrDegenerateSlice, "offset %v", offset)
	}
}

// TestSlice_Extrapolation shows offsets outside [0,1] are not clamped.
func TestSlice_Extrapolation(t *testing.T) {
	// 45° through (-2,0) still crosses the square.
	res, err := slicer.Slice(square(), bottom(), 45, -0.2)
	require.NoError(t, err)
	requirePartition(t, square(), res.A, res.B)

	// A vertical line through (50,0) misses it entirely.
	_, err = slicer.Slice(square(), bottom(), 90, 5)
	require.ErrorIs(t, err, slicer.ErrDegenerateSlice)
}

// TestSlice_Diagonal cuts exactly through two opposite corners.
func TestSlice_Diagonal(t *testing.T) {
	res, err := slicer.Slice(square(), bottom(), 45, 0)
	require.NoError(t, err)
	requirePartition(t, square(), res.A, res.B)
	assert.Len(t, slicer.Vertices(res.A), 3)
	assert.Len(t, slicer.Vertices(res.B), 3)
}

// TestSlice_ClockwiseInput accepts either winding.
func TestSlice_ClockwiseInput(t *testing.T) {
	cw := slicer.Ring{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}}
	res, err := slicer.Slice(cw, bottom(), 90, 0.5)
	require.NoError(t, err)
	requirePartition(t, cw, res.A, res.B)
}

// TestSlice_InvalidInput covers the validation sentinels.
func TestSlice_InvalidInput(t *testing.T) {
	_, err := slicer.Slice(slicer.Ring{{X: 0, Y: 0}, {X: 1, Y: 1}}, bottom(), 90, 0.5)
	require.ErrorIs(t, err, slicer.ErrInvalidPolygon)

	flat := slicer.Ring{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}}
	_, err = slicer.Slice(flat, bottom(), 90, 0.5)
	require.ErrorIs(t, err, slicer.ErrInvalidPolygon)

	pt := slicer.Segment{A: geom.Coord{X: 3, Y: 0}, B: geom.Coord{X: 3, Y: 0}}
	_, err = slicer.Slice(square(), pt, 90, 0.5)
	require.ErrorIs(t, err, slicer.ErrDegenerateSegment)
}

// TestSlice_ConcaveNotchRejected documents that a cut crossing a reflex
// notch produces three faces and is refused.
func TestSlice_ConcaveNotchRejected(t *testing.T) {
	u := slicer.Ring{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 7, Y: 10},
		{X: 7, Y: 3}, {X: 3, Y: 3}, {X: 3, Y: 10}, {X: 0, Y: 10},
	}
	ref := slicer.Segment{A: geom.Coord{X: 0, Y: 0}, B: geom.Coord{X: 0, Y: 10}}
	_, err := slicer.Slice(u, ref, 0, 0.6)
	require.ErrorIs(t, err, slicer.ErrDegenerateSlice)
}

// TestSlice_ScaleInvariant slices the same square at sizes from 10 down to
// a millionth, away from the origin, and expects identical proportions.
func TestSlice_ScaleInvariant(t *testing.T) {
	for _, side := range []float64{10, 1, 1e-3, 1e-4, 3e-5, 1e-6} {
		x0, y0 := 5.0, 5.0
		poly := slicer.Ring{{X: x0, Y: y0}, {X: x0 + side, Y: y0}, {X: x0 + side, Y: y0 + side}, {X: x0, Y: y0 + side}}
		base := slicer.Segment{A: poly[0], B: poly[1]}
		right := slicer.Segment{A: poly[1], B: poly[2]}
		whole := side * side

		for _, angle := range []float64{0, 45, 90, 135} {
			ref := base
			if angle == 0 {
				ref = right
			}
			for _, offset := range []float64{0.2, 0.7} {
				name := fmt.Sprintf("side=%g angle=%v offset=%v", side, angle, offset)
				res, err := slicer.Slice(poly, ref, angle, offset)
				require.NoError(t, err, name)

				aa, ba := slicer.Area(res.A), slicer.Area(res.B)
				require.Greater(t, aa, 0.0, name)
				require.Greater(t, ba, 0.0, name)
				assert.InEpsilon(t, whole, aa+ba, 1e-6, name)
				if angle == 90 {
					// The western strip lies right of a downward cut.
					assert.InEpsilon(t, offset*whole, ba, 1e-6, name)
				}
			}
		}
	}
}

// TestSlice_TinyRegionsKeepSlicing follows a chain of cuts into a triangle
// about 1e-4 across, the size deep taxonomy branches reach, and keeps
// cutting well below that.
func TestSlice_TinyRegionsKeepSlicing(t *testing.T) {
	poly := slicer.Ring{{X: 3.2, Y: 7.1}, {X: 3.2001, Y: 7.1}, {X: 3.2, Y: 7.10017}}
	ref := slicer.Segment{A: poly[0], B: poly[1]}
	angles := []float64{90, 0, 45, 135}
	for i := 0; i < 16; i++ {
		angle := angles[i%len(angles)]
		parent := slicer.Area(poly)
		res, err := slicer.Slice(poly, ref, angle, 0.3+0.1*float64(i%4))
		require.NoError(t, err, "cut %d at %v°", i, angle)
		assert.InEpsilon(t, parent, slicer.Area(res.A)+slicer.Area(res.B), 1e-6, "cut %d", i)
		assert.Less(t, slicer.Area(res.B), parent, "cut %d", i)

		// Follow the named side like a sibling chain does.
		poly, ref = res.B, res.Cut
	}
}
