package grid

import (
	"fmt"

	"github.com/katalvlaran/icegeom/comm"
)

// Field is a scalar field over a Grid with a one-row ghost halo.
// Local storage holds rows Ys-1 through Ys+Ym, Mx values each.
type Field[T comm.Number] struct {
	grid *Grid
	name string
	data []T
}

// IntField is the integer field used for masks and distance fields.
type IntField = Field[int]

// NewField allocates a zero-filled field on g.
func NewField[T comm.Number](g *Grid, name string) *Field[T] {
	return &Field[T]{
		grid: g,
		name: name,
		data: make([]T, (g.Ym+2)*g.Mx),
	}
}

// NewIntField allocates a zero-filled integer field on g.
func NewIntField(g *Grid, name string) *IntField {
	return NewField[int](g, name)
}

// Name returns the field's name.
func (f *Field[T]) Name() string { return f.name }

// Grid returns the grid the field is defined on.
func (f *Field[T]) Grid() *Grid { return f.grid }

// index maps (i, j) to local storage. It panics when row j is neither owned
// nor a ghost row of this rank.
func (f *Field[T]) index(i, j int) int {
	g := f.grid
	if j < g.Ys-1 || j > g.Ys+g.Ym {
		panic(fmt.Sprintf("grid: %s: row %d outside local rows [%d, %d] of rank %d",
			f.name, j, g.Ys-1, g.Ys+g.Ym, g.Rank()))
	}
	return (j-g.Ys+1)*g.Mx + i
}

// At returns the value at (i, j). Owned and ghost rows are readable; cells
// outside the global domain read as zero. Any other row panics.
// Complexity: O(1).
func (f *Field[T]) At(i, j int) T {
	if !f.grid.InBounds(i, j) {
		return 0
	}
	return f.data[f.index(i, j)]
}

// Set stores v at the owned cell (i, j).
func (f *Field[T]) Set(i, j int, v T) {
	f.data[f.index(i, j)] = v
}

// Star holds a cell value and its four orthogonal neighbours.
// N is (i, j+1), E is (i+1, j), S is (i, j-1), W is (i-1, j).
type Star[T comm.Number] struct {
	IJ, N, E, S, W T
}

// Star returns the 4-neighbourhood of (i, j).
// Complexity: O(1).
func (f *Field[T]) Star(i, j int) Star[T] {
	return Star[T]{
		IJ: f.At(i, j),
		N:  f.At(i, j+1),
		E:  f.At(i+1, j),
		S:  f.At(i, j-1),
		W:  f.At(i-1, j),
	}
}

// boxOffsets lists the 8 neighbours clockwise starting at N.
var boxOffsets = [8][2]int{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}

// Box returns the 8 neighbours of (i, j), clockwise starting at N.
// Complexity: O(1).
func (f *Field[T]) Box(i, j int) [8]T {
	var out [8]T
	for k, d := range boxOffsets {
		out[k] = f.At(i+d[0], j+d[1])
	}
	return out
}

// SetAll sets every local value, ghosts included, to v.
func (f *Field[T]) SetAll(v T) {
	for k := range f.data {
		f.data[k] = v
	}
}

// CopyFrom copies owned and ghost values of src into f.
// Complexity: O(Mx×Ym).
func (f *Field[T]) CopyFrom(src *Field[T]) error {
	if src.grid != f.grid {
		return fmt.Errorf("%w: %s <- %s", ErrGridMismatch, f.name, src.name)
	}
	copy(f.data, src.data)
	return nil
}

// LoadGlobal fills owned and ghost rows from a row-major My×Mx buffer that
// every rank holds. No communication takes place.
// Complexity: O(Mx×Ym).
func (f *Field[T]) LoadGlobal(values []T) error {
	g := f.grid
	if len(values) != g.Cells() {
		return fmt.Errorf("%w: %s needs %d values, got %d", ErrBufferSize, f.name, g.Cells(), len(values))
	}
	for j := g.Ys - 1; j <= g.Ys+g.Ym; j++ {
		if j < 0 || j >= g.My {
			continue
		}
		copy(f.data[f.index(0, j):f.index(0, j)+g.Mx], values[j*g.Mx:(j+1)*g.Mx])
	}
	return nil
}

// owned returns the slice of owned rows.
func (f *Field[T]) owned() []T {
	g := f.grid
	return f.data[g.Mx : (g.Ym+1)*g.Mx]
}
