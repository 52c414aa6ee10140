// Package render draws fractured regions.
//
// Color derives a fill from a region's path: starting at rgb(100,150,200)
// and reading the path from its last character to its first, every '1'
// adds 20 to red and every '0' takes 30 from green, both modulo 255. Nested
// regions therefore drift in colour as they get deeper, and siblings (which
// differ in their leading tokens) differ most in the last steps applied.
//
// SVG writes a standalone document with one <path> per region, in the order
// given, so later (deeper) regions paint over their ancestors. Each path
// carries a <title> with HoverText for viewer tooltips. The plane's y axis
// points up, so the drawing is flipped into SVG's y-down space.
package render
