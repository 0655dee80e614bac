package grid

import (
	"errors"
	"fmt"
	"iter"

	"github.com/katalvlaran/icegeom/comm"
)

// Sentinel errors for grid and field operations.
var (
	// ErrInvalidGrid indicates non-positive dimensions or more ranks than rows.
	ErrInvalidGrid = errors.New("grid: invalid grid dimensions")

	// ErrGridMismatch indicates fields that live on different grids.
	ErrGridMismatch = errors.New("grid: fields are defined on different grids")

	// ErrBufferSize indicates a global buffer whose length is not Mx×My.
	ErrBufferSize = errors.New("grid: buffer size does not match the grid")
)

// Grid is one rank's view of a Mx×My grid. Rows [Ys, Ys+Ym) are owned locally.
type Grid struct {
	Mx, My int
	Ys, Ym int

	comm *comm.Comm
}

// New builds the rank-local grid for c. Rows are split as evenly as possible;
// the first My%Size ranks own one extra row.
// Complexity: O(1).
func New(c *comm.Comm, mx, my int) (*Grid, error) {
	if mx < 1 || my < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, mx, my)
	}
	if c.Size() > my {
		return nil, fmt.Errorf("%w: %d ranks cannot share %d rows", ErrInvalidGrid, c.Size(), my)
	}
	ys, ym := Partition(my, c.Size(), c.Rank())

	return &Grid{Mx: mx, My: my, Ys: ys, Ym: ym, comm: c}, nil
}

// Partition returns the first row and the row count owned by rank when my rows
// are split across size ranks.
// Complexity: O(1).
func Partition(my, size, rank int) (ys, ym int) {
	base, extra := my/size, my%size
	ym = base
	if rank < extra {
		ym++
	}
	ys = rank*base + min(rank, extra)

	return ys, ym
}

// Comm returns the communicator the grid is partitioned over.
func (g *Grid) Comm() *comm.Comm { return g.comm }

// Rank is a shorthand for g.Comm().Rank().
func (g *Grid) Rank() int { return g.comm.Rank() }

// Cells returns the global number of cells.
func (g *Grid) Cells() int { return g.Mx * g.My }

// InBounds reports whether (i, j) lies inside the global domain.
func (g *Grid) InBounds(i, j int) bool {
	return i >= 0 && i < g.Mx && j >= 0 && j < g.My
}

// Points iterates over the owned cells in row-major order.
// Complexity: O(Mx×Ym).
func (g *Grid) Points() iter.Seq2[int, int] {
	return func(yield func(i, j int) bool) {
		for j := g.Ys; j < g.Ys+g.Ym; j++ {
			for i := 0; i < g.Mx; i++ {
				if !yield(i, j) {
					return
				}
			}
		}
	}
}
