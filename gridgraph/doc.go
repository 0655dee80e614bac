// Package gridgraph treats a contiguous 2D buffer of cells as a graph and
// labels its connected components in place.
//
// What:
//
//   - GridGraph wraps a row-major []int buffer of Width×Height cells.
//   - Cells with value ≥ Threshold are "eligible"; all others are background.
//   - ConnectedComponents finds maximal groups of eligible cells under
//     Conn4 (N, E, S, W) or Conn8 connectivity.
//   - Label overwrites every eligible cell with its component id (1, 2, ...)
//     and every background cell with 0.
//   - IdentifyIcebergs overwrites cells of components that contain no
//     Anchor-valued cell with 1, and everything else with 0.
//
// Determinism:
//
//	Components are discovered by a row-major scan; ids increase with the
//	position of each component's first cell, so the same buffer always yields
//	the same labels.
//
// Complexity:
//
//   - ConnectedComponents, Label, IdentifyIcebergs: O(W×H×d) time, O(W×H) memory
//     (d = 4 or 8 neighbours).
//
// Errors:
//
//   - ErrEmptyGrid: zero width or height.
//   - ErrBufferSize: buffer length differs from Width×Height.
//   - ErrNonRectangular: rows of differing lengths passed to From2D.
package gridgraph
