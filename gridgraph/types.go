// Package gridgraph defines core types, options, and sentinel errors
// for the gridgraph labeler.
package gridgraph

import (
	"errors"
)

// Sentinel errors for gridgraph operations.
var (
	// ErrEmptyGrid indicates a grid with no rows or no columns.
	ErrEmptyGrid = errors.New("gridgraph: grid must have at least one row and one column")
	// ErrBufferSize indicates a buffer whose length is not Width×Height.
	ErrBufferSize = errors.New("gridgraph: buffer length does not match dimensions")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
)

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

// GridOptions contains tunable parameters for labeling.
type GridOptions struct {
	// Threshold is the minimum cell value that takes part in a component.
	Threshold int
	// Conn chooses 4- or 8-directional connectivity.
	Conn Connectivity
}

// DefaultGridOptions returns a GridOptions with default settings:
// Threshold=1 (positive values are eligible), Conn=Conn4.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		Threshold: 1,
		Conn:      Conn4,
	}
}

// GridGraph views a row-major buffer as a grid graph. It does not copy the
// buffer: Label and IdentifyIcebergs write their results into Cells.
// Cell (x, y) lives at Cells[y*Width+x].
type GridGraph struct {
	Width, Height   int
	Cells           []int
	Conn            Connectivity
	Threshold       int
	neighborOffsets [][2]int
}
