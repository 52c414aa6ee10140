package render

import (
	"fmt"

	"github.com/katalvlaran/fracturedpane/fracture"
)

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B int
}

// Base is the colour of the bounding region.
var Base = RGB{R: 100, G: 150, B: 200}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// Color maps a region path to its fill colour.
func Color(path string) RGB {
	c := Base
	for i := len(path) - 1; i >= 0; i-- {
		switch path[i] {
		case '1':
			c.R = mod255(c.R + 20)
		case '0':
			c.G = mod255(c.G - 30)
		}
	}
	return c
}

func mod255(v int) int {
	v %= 255
	if v < 0 {
		v += 255
	}
	return v
}

// HoverText is the tooltip shown for r.
func HoverText(r fracture.Region) string {
	return fmt.Sprintf("Concept: %s\nEncoding: %s", r.Concept, r.Path)
}
