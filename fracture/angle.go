package fracture

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"

	"github.com/katalvlaran/fracturedpane/slicer"
)

// NormalizeAngle folds a direction into the undirected range [0,180) and
// rounds it to the nearest whole degree; 179.6° rounds over to 0.
func NormalizeAngle(a s1.Angle) int {
	d := math.Mod(a.Degrees(), 180)
	if d < 0 {
		d += 180
	}
	return int(math.Round(d)) % 180
}

// NextAngle returns the entry of seq following the undirected angle of cut,
// wrapping at the end. ErrUnknownAngle if that angle is not in seq.
func NextAngle(seq []float64, cut slicer.Segment) (float64, error) {
	cur := NormalizeAngle(cut.Angle())
	for i, a := range seq {
		if int(math.Round(a)) == cur {
			return seq[(i+1)%len(seq)], nil
		}
	}
	return 0, fmt.Errorf("%w: %d° not in %v", ErrUnknownAngle, cur, seq)
}
