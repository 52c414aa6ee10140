package fracture_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	sfgeom "github.com/peterstace/simplefeatures/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/fracturedpane/fracture"
	"github.com/katalvlaran/fracturedpane/pathcode"
	"github.com/katalvlaran/fracturedpane/slicer"
)

const tol = 1e-6

// constSampler always returns the same draw.
type constSampler float64

func (c constSampler) Float64() float64 { return float64(c) }

func sampleTable(t *testing.T) *pathcode.Table {
	t.Helper()
	tbl, err := pathcode.Build([]pathcode.Relation{
		{Parent: "Science", Concept: "Physics"},
		{Parent: "Physics", Concept: "Quantum Mechanics"},
		{Parent: "Physics", Concept: "Relativity"},
		{Parent: "Relativity", Concept: "General Relativity"},
		{Parent: "Art", Concept: "Watercolor"},
		{Parent: "Art", Concept: "Ceramics"},
		{Parent: "Watercolor", Concept: "Wet-On-Dry"},
		{Parent: "Watercolor", Concept: "Dry-On-Dry"},
	})
	require.NoError(t, err)
	return tbl
}

func siblingTable(t *testing.T) *pathcode.Table {
	t.Helper()
	tbl, err := pathcode.Build([]pathcode.Relation{
		{Parent: "P", Concept: "a"},
		{Parent: "P", Concept: "b"},
		{Parent: "P", Concept: "c"},
	})
	require.NoError(t, err)
	return tbl
}

func byPath(regions []fracture.Region) map[string]fracture.Region {
	m := make(map[string]fracture.Region, len(regions))
	for _, r := range regions {
		m[r.Path] = r
	}
	return m
}

func toWKT(r slicer.Ring) string {
	parts := make([]string, 0, len(r))
	for _, p := range slicer.Closed(r) {
		parts = append(parts, fmt.Sprintf("%.12f %.12f", p.X, p.Y))
	}
	return "POLYGON((" + strings.Join(parts, ",") + "))"
}

// FractureSuite runs the traversal over the Science/Art taxonomy.
type FractureSuite struct {
	suite.Suite
	table   *pathcode.Table
	regions []fracture.Region
}

func TestFractureSuite(t *testing.T) {
	suite.Run(t, new(FractureSuite))
}

func (s *FractureSuite) SetupTest() {
	s.table = sampleTable(s.T())
	var err error
	s.regions, err = fracture.Fracture(s.table, fracture.WithSeed(42))
	s.Require().NoError(err)
}

// TestOneSplitPerConcept: the seed region plus two regions per concept.
func (s *FractureSuite) TestOneSplitPerConcept() {
	s.Require().Len(s.regions, 1+2*s.table.Len())
	s.Equal("", s.regions[0].Path)
	s.Equal("0", s.regions[1].Path)
	s.Equal("1", s.regions[2].Path)

	seen := make(map[string]bool)
	for _, r := range s.regions {
		s.False(seen[r.Path], "duplicate region path %q", r.Path)
		seen[r.Path] = true
	}
}

// TestConceptsLandOnTheirPaths: every concept is bound exactly once, to the
// region whose path equals its encoding.
func (s *FractureSuite) TestConceptsLandOnTheirPaths() {
	bound := make(map[string]string)
	for _, r := range s.regions {
		if !r.Named() {
			continue
		}
		_, dup := bound[r.Concept]
		s.False(dup, "concept %q bound twice", r.Concept)
		bound[r.Concept] = r.Path
	}
	s.Require().Len(bound, s.table.Len())
	for _, row := range s.table.Rows() {
		s.Equal(row.Path, bound[row.Concept], row.Concept)
	}
}

// TestChildrenTileParent: each split conserves area and the new cut lies on
// both children.
func (s *FractureSuite) TestChildrenTileParent() {
	m := byPath(s.regions)
	splits := 0
	for _, r := range s.regions {
		zero, okZ := m["0"+r.Path]
		one, okO := m["1"+r.Path]
		if !okZ || !okO {
			continue
		}
		splits++
		s.InDelta(slicer.Area(r.Boundary), slicer.Area(zero.Boundary)+slicer.Area(one.Boundary), tol, "region %q", r.Path)
		s.True(zero.Cut.AlmostEqual(one.Cut))
		for _, child := range []fracture.Region{zero, one} {
			s.True(slicer.OnBoundary(child.Boundary, child.Cut.A))
			s.True(slicer.OnBoundary(child.Boundary, child.Cut.B))
			for _, p := range slicer.Vertices(child.Boundary) {
				s.True(slicer.Contains(r.Boundary, p), "child %q escapes parent", child.Path)
			}
		}
	}
	s.Equal(s.table.Len(), splits)
}

// TestLeavesTileTheSquare: the regions that were never split cover the
// bounding square exactly once.
func (s *FractureSuite) TestLeavesTileTheSquare() {
	m := byPath(s.regions)
	var union sfgeom.Geometry
	var sum float64
	for _, r := range s.regions {
		if _, split := m["0"+r.Path]; split {
			continue
		}
		sum += slicer.Area(r.Boundary)
		g, err := sfgeom.UnmarshalWKT(toWKT(r.Boundary))
		s.Require().NoError(err)
		if union.IsEmpty() {
			union = g
			continue
		}
		union, err = sfgeom.Union(union, g)
		s.Require().NoError(err)
	}
	s.InDelta(100.0, sum, tol)
	s.InDelta(100.0, union.Area(), tol)
}

// TestCutAnglesStayInSequence: every inherited cut is one of the four angles.
func (s *FractureSuite) TestCutAnglesStayInSequence() {
	for _, r := range s.regions[1:] {
		a := fracture.NormalizeAngle(r.Cut.Angle())
		s.Contains([]int{0, 45, 90, 135}, a, "region %q", r.Path)
	}
}

// TestDeterministicPerSeed: same seed, same regions; new seed, new regions.
func (s *FractureSuite) TestDeterministicPerSeed() {
	again, err := fracture.Fracture(s.table, fracture.WithSeed(42))
	s.Require().NoError(err)
	s.Equal(s.regions, again)

	other, err := fracture.Fracture(s.table, fracture.WithSeed(43))
	s.Require().NoError(err)
	s.NotEqual(s.regions[1].Boundary, other[1].Boundary)
}

// TestFracture_FirstCut drives the first cut with a fixed draw of 0.75,
// i.e. offset 0.65 in the default band.
func TestFracture_FirstCut(t *testing.T) {
	regions, err := fracture.Fracture(siblingTable(t), fracture.WithSampler(constSampler(0.75)))
	require.NoError(t, err)
	m := byPath(regions)

	one, zero := m["1"], m["0"]
	assert.Equal(t, "P", one.Concept)
	assert.Equal(t, "", zero.Concept)
	assert.InDelta(t, 65.0, slicer.Area(one.Boundary), tol)
	assert.InDelta(t, 35.0, slicer.Area(zero.Boundary), tol)
	assert.InDelta(t, 6.5, one.Cut.A.X, tol)
	assert.InDelta(t, 6.5, one.Cut.B.X, tol)
	assert.Equal(t, 90, fracture.NormalizeAngle(one.Cut.Angle()))
}

// TestFracture_SiblingChain: three siblings are cut one after another out
// of the parent's "0" remainders.
func TestFracture_SiblingChain(t *testing.T) {
	var queued []string
	regions, err := fracture.Fracture(siblingTable(t),
		fracture.WithSeed(3),
		fracture.WithOnEnqueue(func(p string) { queued = append(queued, p) }),
	)
	require.NoError(t, err)

	var paths []string
	for _, r := range regions {
		paths = append(paths, r.Path)
	}
	assert.Equal(t, []string{"", "0", "1", "01", "11", "001", "101", "0001", "1001"}, paths)
	assert.Equal(t, []string{"1", "01", "001"}, queued)

	m := byPath(regions)
	assert.Equal(t, "a", m["11"].Concept)
	assert.Equal(t, "b", m["101"].Concept)
	assert.Equal(t, "c", m["1001"].Concept)
	for _, p := range []string{"11", "101", "1001", "0001"} {
		for _, v := range slicer.Vertices(m[p].Boundary) {
			assert.True(t, slicer.Contains(m["1"].Boundary, v), "%q inside P", p)
		}
	}
	assert.InDelta(t, slicer.Area(m["1"].Boundary),
		slicer.Area(m["11"].Boundary)+slicer.Area(m["101"].Boundary)+
			slicer.Area(m["1001"].Boundary)+slicer.Area(m["0001"].Boundary), tol)
}

// TestFracture_SecondRoot: a second root is cut out of the "0" region.
func TestFracture_SecondRoot(t *testing.T) {
	tbl, err := pathcode.Build([]pathcode.Relation{
		{Parent: "", Concept: "Alpha"},
		{Parent: "", Concept: "Beta"},
	})
	require.NoError(t, err)
	regions, err := fracture.Fracture(tbl)
	require.NoError(t, err)
	m := byPath(regions)
	assert.Len(t, regions, 5)
	assert.Equal(t, "Alpha", m["1"].Concept)
	assert.Equal(t, "Beta", m["10"].Concept)
	assert.Equal(t, 0, fracture.NormalizeAngle(m["10"].Cut.Angle()))
}

func TestFracture_Errors(t *testing.T) {
	_, err := fracture.Fracture(nil)
	require.ErrorIs(t, err, fracture.ErrTableNil)

	empty, err := pathcode.Build(nil)
	require.NoError(t, err)
	_, err = fracture.Fracture(empty)
	require.ErrorIs(t, err, fracture.ErrEncodingLookup)

	tbl := sampleTable(t)
	for name, opt := range map[string]fracture.Option{
		"band reversed":   fracture.WithOffsetBand(0.8, 0.2),
		"band too wide":   fracture.WithOffsetBand(-0.1, 0.5),
		"short sequence":  fracture.WithAngleSequence([]float64{90}),
		"fractional":      fracture.WithAngleSequence([]float64{90, 30.5}),
		"repeated":        fracture.WithAngleSequence([]float64{90, 0, 90}),
		"out of range":    fracture.WithAngleSequence([]float64{90, 180}),
		"zero size":       fracture.WithSize(0),
		"nan seed angle":  fracture.WithSeedAngle(math.NaN()),
		"too few corners": fracture.WithBounds(slicer.Ring{{X: 0, Y: 0}, {X: 1, Y: 0}}, slicer.Segment{}),
	} {
		_, err = fracture.Fracture(tbl, opt)
		assert.ErrorIs(t, err, fracture.ErrOptionViolation, name)
	}
}

// TestFracture_UnknownAngle: a seed cut outside the rotation cannot be
// continued.
func TestFracture_UnknownAngle(t *testing.T) {
	_, err := fracture.Fracture(sampleTable(t), fracture.WithSeedAngle(30))
	require.ErrorIs(t, err, fracture.ErrUnknownAngle)
}

// TestFracture_DegenerateSlicePropagates: an offset of exactly 0 puts the
// first cut on the square's left edge.
func TestFracture_DegenerateSlicePropagates(t *testing.T) {
	_, err := fracture.Fracture(sampleTable(t),
		fracture.WithOffsetBand(0, 1),
		fracture.WithSampler(constSampler(0)),
	)
	require.ErrorIs(t, err, slicer.ErrDegenerateSlice)
}

func TestFracture_HooksAndCancellation(t *testing.T) {
	stop := errors.New("stop")
	visits := 0
	_, err := fracture.Fracture(sampleTable(t), fracture.WithOnVisit(func(r fracture.Region) error {
		visits++
		if r.Concept == "Physics" {
			return stop
		}
		return nil
	}))
	require.ErrorIs(t, err, stop)
	assert.Greater(t, visits, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = fracture.Fracture(sampleTable(t), fracture.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}

// TestFracture_CustomBounds slices a larger square and a rectangle.
func TestFracture_CustomBounds(t *testing.T) {
	regions, err := fracture.Fracture(sampleTable(t), fracture.WithSize(100))
	require.NoError(t, err)
	assert.InDelta(t, 10000.0, slicer.Area(regions[0].Boundary), tol)

	rect, seed := fracture.Square(1)
	for i := range rect {
		rect[i].X *= 3
	}
	seed.B.X *= 3
	regions, err = fracture.Fracture(sampleTable(t), fracture.WithBounds(rect, seed))
	require.NoError(t, err)
	assert.InDelta(t, 3.0, slicer.Area(regions[0].Boundary), tol)
}
