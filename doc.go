// Package fracturedpane draws a taxonomy as a fractured pane of glass: every
// concept gets its own region of a bounded plane, carved out of its parent's
// region by one straight cut.
//
// What is fracturedpane?
//
//	A small, deterministic pipeline:
//		• pathcode: (parent, concept) relations → unique path identifiers
//		• slicer:   one convex polygon + reference segment → two polygons
//		• fracture: walks the encoded tree, slicing once per concept
//		• taxonomy: relations from CSV, Markdown, HTML or JSON
//		• render:   regions → SVG with path-derived colours and hover text
//
// How the pieces fit:
//
//	relations ──pathcode.Build──► Table ──fracture.Fracture──► []Region ──render.SVG──► SVG
//	                                          │
//	                                     slicer.Slice
//
// Paths are written newest branch first: child number k (counting from 0) of
// a concept at path p sits at "1"+"0"×k+p, and the region for a path is
// found by following the same digits through the cuts. Cut angles rotate
// 90°, 0°, 45°, 135°, so a child's cut is never parallel to the cut it
// starts from, and cut offsets come from a seeded sampler so a seed always
// reproduces the same pane.
//
// Quick ASCII example (Science with one child, Physics):
//
//	┌────────┬────┐
//	│Physics │    │
//	├────────┤ 0  │
//	│   01   │    │
//	└────────┴────┘
//	  Science = 1
//
//	go install github.com/katalvlaran/fracturedpane/cmd/fracturedpane@latest
package fracturedpane
