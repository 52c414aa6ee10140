package fracture_test

import (
	"fmt"

	"github.com/katalvlaran/fracturedpane/fracture"
	"github.com/katalvlaran/fracturedpane/pathcode"
	"github.com/katalvlaran/fracturedpane/slicer"
)

type fixed float64

func (f fixed) Float64() float64 { return float64(f) }

// ExampleFracture places two roots and one child. Every draw of 0.5 cuts
// at the middle of the inherited segment.
func ExampleFracture() {
	tbl, _ := pathcode.Build([]pathcode.Relation{
		{Parent: "Science", Concept: "Physics"},
		{Parent: "", Concept: "Art"},
	})
	regions, err := fracture.Fracture(tbl, fracture.WithSampler(fixed(0.5)))
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, r := range regions {
		if r.Named() {
			fmt.Printf("%-3s %-8s area=%.2f\n", r.Path, r.Concept, slicer.Area(r.Boundary))
		}
	}
	// Output:
	// 1   Science  area=50.00
	// 11  Physics  area=25.00
	// 10  Art      area=25.00
}
