package render

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jbeda/geom"

	"github.com/katalvlaran/fracturedpane/fracture"
	"github.com/katalvlaran/fracturedpane/slicer"
)

var (
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("render: invalid option supplied")

	// ErrNoRegions is returned when nothing is left to draw.
	ErrNoRegions = errors.New("render: no regions to draw")
)

// Option configures SVG.
type Option func(*Options)

// Options controls SVG output.
type Options struct {
	// ShowUnnamed draws regions without a concept. The bounding region is
	// always drawn.
	ShowUnnamed bool

	// StrokeWidth of region outlines, in plane units.
	StrokeWidth float64

	// Margin around the union of region bounds, in plane units.
	Margin float64

	err error
}

// DefaultOptions draws every region with a hairline stroke and no margin.
func DefaultOptions() Options {
	return Options{ShowUnnamed: true, StrokeWidth: 0.02}
}

// WithShowUnnamed toggles drawing of regions without a concept.
func WithShowUnnamed(show bool) Option {
	return func(o *Options) { o.ShowUnnamed = show }
}

// WithStrokeWidth sets the outline width; it must be positive.
func WithStrokeWidth(w float64) Option {
	return func(o *Options) {
		if !(w > 0) {
			o.err = fmt.Errorf("%w: stroke width must be positive (%v)", ErrOptionViolation, w)
			return
		}
		o.StrokeWidth = w
	}
}

// WithMargin pads the view box; it must not be negative.
func WithMargin(m float64) Option {
	return func(o *Options) {
		if !(m >= 0) {
			o.err = fmt.Errorf("%w: margin must not be negative (%v)", ErrOptionViolation, m)
			return
		}
		o.Margin = m
	}
}

// SVG writes regions to w as an SVG document.
func SVG(w io.Writer, regions []fracture.Region, opts ...Option) error {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return o.err
	}

	drawn := make([]fracture.Region, 0, len(regions))
	for _, r := range regions {
		if !o.ShowUnnamed && !r.Named() && r.Path != "" {
			continue
		}
		if len(slicer.Vertices(r.Boundary)) < 3 {
			continue
		}
		drawn = append(drawn, r)
	}
	if len(drawn) == 0 {
		return ErrNoRegions
	}

	box := slicer.Bounds(drawn[0].Boundary)
	for _, r := range drawn[1:] {
		box.ExpandToContainRect(slicer.Bounds(r.Boundary))
	}
	box.Min = box.Min.Minus(geom.Coord{X: o.Margin, Y: o.Margin})
	box.Max = box.Max.Plus(geom.Coord{X: o.Margin, Y: o.Margin})

	svg := newWriter(w)
	svg.start(box)
	for _, r := range drawn {
		svg.region(r, o.StrokeWidth)
	}
	svg.end()
	return svg.err
}

// writer serialises SVG elements and keeps the first write error.
type writer struct {
	w   io.Writer
	err error
}

func newWriter(w io.Writer) *writer {
	return &writer{w: w}
}

func (s *writer) printf(format string, a ...interface{}) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, a...)
}

func (s *writer) escape(text string) {
	if s.err != nil {
		return
	}
	s.err = xml.EscapeText(s.w, []byte(text))
}

// start opens the document. The group flips y so the plane's y axis points
// up; the view box is flipped to match.
func (s *writer) start(box geom.Rect) {
	s.printf(`<?xml version="1.0"?>
<svg version="1.1"
     viewBox="%f %f %f %f"
     xmlns="http://www.w3.org/2000/svg">
<g transform="scale(1,-1)">
`, box.Min.X, -box.Max.Y, box.Width(), box.Height())
}

func (s *writer) end() {
	s.printf("</g>\n</svg>\n")
}

func (s *writer) region(r fracture.Region, stroke float64) {
	verts := slicer.Vertices(r.Boundary)
	var d strings.Builder
	fmt.Fprintf(&d, "M%f,%f", verts[0].X, verts[0].Y)
	for _, p := range verts[1:] {
		fmt.Fprintf(&d, " L%f,%f", p.X, p.Y)
	}
	d.WriteString(" Z")

	c := Color(r.Path).String()
	s.printf("<path d='%s' fill='%s' stroke='%s' stroke-width='%f' data-path='%s'>\n  <title>", d.String(), c, c, stroke, r.Path)
	s.escape(HoverText(r))
	s.printf("</title>\n</path>\n")
}
