// Package slicer cuts a convex polygon in two along a straight line.
//
// What:
//
//   - Slice anchors a cut on a reference segment (the "fresh cut" inherited
//     from the previous slice), at a fractional offset along it.
//   - The cut line runs through the anchor at a given angle (0° = +x,
//     counter-clockwise) and is long enough to cross the whole polygon.
//   - The polygon boundary and the in-polygon pieces of the line are merged
//     into a half-edge structure, every bounded face is walked, and faces
//     whose interior lies inside the input polygon are kept.
//   - Exactly two faces must survive; they are returned together with the
//     trace of the line inside the polygon, which becomes the reference
//     segment for the next slice of either face.
//
// Conventions:
//
//   - Coordinates are github.com/jbeda/geom Coords, x to the right, y up.
//   - Rings returned by this package are closed (first == last) and
//     counter-clockwise. Input rings may be open or closed, either winding.
//   - Coincidence tests scale with the polygon: points closer than Epsilon
//     times its bounding-box diagonal are the same point, and a face whose
//     area is below that tolerance times the diagonal has no area. A pane
//     a ten-thousandth across slices exactly like a 10×10 one.
//
// Complexity:
//
//   - Slice: O(n log n) for n polygon vertices (angular sort per vertex).
//
// Errors:
//
//   - ErrInvalidPolygon: fewer than three distinct vertices or zero area.
//   - ErrDegenerateSegment: reference segment of (near) zero length.
//   - ErrDegenerateSlice: the cut does not produce exactly two faces, e.g.
//     the line only grazes a vertex or runs along an edge (offset 0 or 1).
package slicer
