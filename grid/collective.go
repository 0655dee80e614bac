package grid

import (
	"context"
	"fmt"

	"github.com/katalvlaran/icegeom/comm"
)

// UpdateGhosts refreshes the ghost rows from the neighbouring ranks.
// Complexity: O(Mx) per rank, one neighbour exchange.
func (f *Field[T]) UpdateGhosts(ctx context.Context) error {
	g := f.grid
	first := f.data[g.Mx : 2*g.Mx]
	last := f.data[g.Ym*g.Mx : (g.Ym+1)*g.Mx]

	below, above, err := comm.ExchangeHalo(ctx, g.comm, first, last)
	if err != nil {
		return fmt.Errorf("grid: update ghosts of %s: %w", f.name, err)
	}
	if below != nil {
		copy(f.data[:g.Mx], below)
	}
	if above != nil {
		copy(f.data[(g.Ym+1)*g.Mx:], above)
	}

	return nil
}

// Range returns the global minimum and maximum over owned cells.
// Complexity: O(Mx×Ym) local work, two reductions.
func (f *Field[T]) Range(ctx context.Context) (lo, hi T, err error) {
	own := f.owned()
	lo, hi = own[0], own[0]
	for _, v := range own[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	lo, err = comm.AllreduceScalar(ctx, f.grid.comm, comm.OpMin, lo)
	if err != nil {
		return lo, hi, fmt.Errorf("grid: range of %s: %w", f.name, err)
	}
	hi, err = comm.AllreduceScalar(ctx, f.grid.comm, comm.OpMax, hi)
	if err != nil {
		return lo, hi, fmt.Errorf("grid: range of %s: %w", f.name, err)
	}

	return lo, hi, nil
}

// Sum returns the global sum over owned cells.
// Complexity: O(Mx×Ym) local work, one reduction.
func (f *Field[T]) Sum(ctx context.Context) (T, error) {
	var s T
	for _, v := range f.owned() {
		s += v
	}
	s, err := comm.AllreduceScalar(ctx, f.grid.comm, comm.OpSum, s)
	if err != nil {
		return s, fmt.Errorf("grid: sum of %s: %w", f.name, err)
	}
	return s, nil
}

// PutOnRoot gathers the field into a row-major My×Mx buffer on comm.Root.
// Other ranks receive nil.
// Complexity: O(Mx×My) on the root, O(Mx×Ym) elsewhere.
func (f *Field[T]) PutOnRoot(ctx context.Context) ([]T, error) {
	g := f.grid
	parts, err := comm.Gather(ctx, g.comm, comm.Root, f.owned())
	if err != nil {
		return nil, fmt.Errorf("grid: gather %s: %w", f.name, err)
	}
	if parts == nil {
		return nil, nil
	}

	buf := make([]T, 0, g.Cells())
	for _, p := range parts {
		buf = append(buf, p...)
	}

	return buf, nil
}

// GetFromRoot scatters a row-major My×Mx buffer held by comm.Root back into
// the owned strips and refreshes ghosts. Only the root's buf is read.
// Complexity: O(Mx×My) on the root, O(Mx×Ym) elsewhere.
func (f *Field[T]) GetFromRoot(ctx context.Context, buf []T) error {
	g := f.grid
	var parts [][]T
	if g.comm.IsRoot() {
		if len(buf) != g.Cells() {
			err := fmt.Errorf("%w: %s needs %d values, got %d", ErrBufferSize, f.name, g.Cells(), len(buf))
			// Release the other ranks with the same failure.
			return g.comm.BcastError(ctx, comm.Root, err)
		}
		parts = make([][]T, g.comm.Size())
		for r := range parts {
			ys, ym := Partition(g.My, g.comm.Size(), r)
			parts[r] = buf[ys*g.Mx : (ys+ym)*g.Mx]
		}
	}
	if err := g.comm.BcastError(ctx, comm.Root, nil); err != nil {
		return fmt.Errorf("grid: scatter %s: %w", f.name, err)
	}

	own, err := comm.Scatter(ctx, g.comm, comm.Root, parts)
	if err != nil {
		return fmt.Errorf("grid: scatter %s: %w", f.name, err)
	}
	copy(f.owned(), own)

	return f.UpdateGhosts(ctx)
}
