// Package icegeom splits the floating margin of a gridded ice sheet into the
// regions a sub-shelf melt parameterization (PICO) works on.
//
// 🚀 What is icegeom?
//
//	An SPMD toolkit where every rank owns a strip of grid rows and all
//	steps are collective:
//		• comm/       in-process rank groups: barrier, broadcast, reductions, gather/scatter
//		• grid/       row-strip decomposition, ghost halos, distributed fields
//		• gridgraph/  connected-component labeling of a 2D cell buffer
//		• labeling/   global component labeling of distributed fields
//		• accum/      per-component accumulators reduced across ranks
//		• geometry/   ice rises, continental shelf, shelves, ocean, lakes,
//		              distances and box masks
//		• scenario/   input rasters from YAML, plus built-in scenes
//		• render/     text, color and YAML output of the masks
//
// ✨ Guarantees
//
//   - Deterministic: identical masks for any number of ranks
//   - Collective errors: a failure on one rank fails every rank
//   - Pure Go: ranks are goroutines, no cgo and no MPI runtime
//
// Quick ASCII example (G grounded, F floating, O ocean):
//
//	GGGGG        ice shelf      distance_gl    box_mask (2 boxes)
//	FFFFF   →    1 1 1 1 1      1 1 1 1 1      1 1 1 1 1
//	FFFFF        1 1 1 1 1      2 2 2 2 2      2 2 2 2 2
//	OOOOO
//
// The icegeom command runs scenarios and checks rank-count independence:
//
//	go install github.com/katalvlaran/icegeom/cmd/icegeom@latest
//	icegeom run --builtin bay --ranks 3 --format color
//	icegeom verify --ranks 1,2,3,4
package icegeom
