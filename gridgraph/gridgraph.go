package gridgraph

import "fmt"

// NewGridGraph wraps a row-major buffer of width×height cells.
// The buffer is shared, not copied.
// Returns ErrEmptyGrid if either dimension is not positive and
// ErrBufferSize if len(cells) != width*height.
// Complexity: O(1).
func NewGridGraph(cells []int, width, height int, opts GridOptions) (*GridGraph, error) {
	if width < 1 || height < 1 {
		return nil, ErrEmptyGrid
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrBufferSize, len(cells), width, height)
	}
	// Precompute neighbor offsets based on connectivity
	var offsets [][2]int
	if opts.Conn == Conn8 {
		offsets = [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
	} else {
		offsets = [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	}

	return &GridGraph{
		Width:           width,
		Height:          height,
		Cells:           cells,
		Conn:            opts.Conn,
		Threshold:       opts.Threshold,
		neighborOffsets: offsets,
	}, nil
}

// From2D flattens a non-empty rectangular [][]int (rows indexed by y) into a
// new buffer and wraps it with default options and the given connectivity.
// Complexity: O(W×H).
func From2D(values [][]int, conn Connectivity) (*GridGraph, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	cells := make([]int, 0, w*h)
	for _, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
		cells = append(cells, row...)
	}
	opts := DefaultGridOptions()
	opts.Conn = conn

	return NewGridGraph(cells, w, h, opts)
}

// InBounds reports whether (x,y) lies within the grid boundaries.
// Complexity: O(1).
func (gg *GridGraph) InBounds(x, y int) bool {
	return x >= 0 && x < gg.Width && y >= 0 && y < gg.Height
}

// NeighborOffsets returns the precomputed neighbor offsets slice.
// Complexity: O(1).
func (gg *GridGraph) NeighborOffsets() [][2]int {
	return gg.neighborOffsets
}

// eligible reports whether the cell at row-major index idx takes part in a component.
func (gg *GridGraph) eligible(idx int) bool {
	return gg.Cells[idx] >= gg.Threshold
}

// index maps (x,y) to a row‑major index: y*Width + x.
// Complexity: O(1).
func (gg *GridGraph) index(x, y int) int {
	return y*gg.Width + x
}

// Coordinate converts a row‑major index back to (x,y).
// Complexity: O(1).
func (gg *GridGraph) Coordinate(idx int) (x, y int) {
	return idx % gg.Width, idx / gg.Width
}

// Rows returns a copy of the buffer as rows indexed by y.
func (gg *GridGraph) Rows() [][]int {
	out := make([][]int, gg.Height)
	for y := range out {
		out[y] = append([]int(nil), gg.Cells[y*gg.Width:(y+1)*gg.Width]...)
	}
	return out
}
