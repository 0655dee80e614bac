package geometry

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/icegeom/accum"
	"github.com/katalvlaran/icegeom/grid"
)

// BoxOptions controls how many boxes each shelf gets.
type BoxOptions struct {
	// NMax is the box count of the shelf with the longest grounding-line distance.
	NMax int `yaml:"n_max"`
	// NMin is the smallest box count a shelf can get.
	NMin int `yaml:"n_min"`
	// Zeta compresses the spread of box counts toward NMax when below 1.
	Zeta float64 `yaml:"zeta"`
}

// DefaultBoxOptions returns options with up to nMax boxes per shelf.
func DefaultBoxOptions(nMax int) BoxOptions {
	return BoxOptions{NMax: nMax, NMin: 1, Zeta: 0.5}
}

// Validate checks 1 <= NMin <= NMax and Zeta > 0.
func (o BoxOptions) Validate() error {
	switch {
	case o.NMax < 1:
		return fmt.Errorf("%w: n_max %d < 1", ErrInvalidOptions, o.NMax)
	case o.NMin < 1:
		return fmt.Errorf("%w: n_min %d < 1", ErrInvalidOptions, o.NMin)
	case o.NMin > o.NMax:
		return fmt.Errorf("%w: n_min %d > n_max %d", ErrInvalidOptions, o.NMin, o.NMax)
	case !(o.Zeta > 0):
		return fmt.Errorf("%w: zeta %v <= 0", ErrInvalidOptions, o.Zeta)
	}
	return nil
}

// NumberOfBoxes returns the box count of a shelf whose largest grounding-line
// distance is maxGL, given the largest such distance ref over all shelves.
// Complexity: O(1).
func NumberOfBoxes(maxGL, ref int, o BoxOptions) int {
	if ref <= 0 || maxGL <= 0 {
		return o.NMin
	}
	x := math.Pow(float64(maxGL)/float64(ref), o.Zeta)
	n := o.NMin + int(math.Round(x*float64(o.NMax-o.NMin)))
	return min(max(n, o.NMin), o.NMax)
}

// BoxIndex returns the box of a cell with relative position c = (1-r)^2 on a
// shelf with n boxes. Band k covers [(n-k-1)/n, (n-k)/n]; a value on a
// boundary belongs to the lower k. The result never exceeds dGL. Returns
// BoxNone when c is outside [0, 1].
// Complexity: O(n).
func BoxIndex(c float64, n, dGL int) int {
	nf := float64(n)
	for k := 0; k < n; k++ {
		if float64(n-k-1)/nf <= c && c <= float64(n-k)/nf {
			return min(dGL, k+1)
		}
	}
	return BoxNone
}

// ComputeBoxMask assigns a box number to every shelf cell reached by both
// distance fields. Shelf cells left without a box become BoxUnresolved,
// except cells of isolated lakes (lakes == Detached), which stay BoxNone.
//
// Returns the statistics of shelves 1..K, identical on every rank.
//
// Time: O(Mx×Ym×n + K) per rank, n = NMax, K = shelves. Memory: O(K).
func ComputeBoxMask(ctx context.Context, dGL, dCF, shelves, lakes *grid.IntField, o BoxOptions, out *grid.IntField) ([]accum.ShelfStats, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	g := out.Grid()

	_, nShelves, err := shelves.Range(ctx)
	if err != nil {
		return nil, err
	}

	acc := accum.NewShelves(nShelves)
	var bad error
	for i, j := range g.Points() {
		if err := acc.Add(shelves.At(i, j), dGL.At(i, j), dCF.At(i, j)); err != nil {
			bad = fmt.Errorf("geometry: box mask at (%d, %d): %w", i, j, err)
			break
		}
	}
	if err := g.Comm().Check(ctx, bad); err != nil {
		return nil, err
	}
	if err := acc.Reduce(ctx, g.Comm()); err != nil {
		return nil, err
	}

	ref := acc.ReferenceGL()
	stats := make([]accum.ShelfStats, 0, max(nShelves, 0))
	boxes := make([]int, acc.Len())
	for k := 1; k < acc.Len(); k++ {
		boxes[k] = NumberOfBoxes(acc.MaxGL(k), ref, o)
		stats = append(stats, accum.ShelfStats{
			ID:    k,
			MaxGL: acc.MaxGL(k),
			MaxCF: acc.MaxCF(k),
			Boxes: boxes[k],
		})
	}

	out.SetAll(BoxNone)
	for i, j := range g.Points() {
		id := shelves.At(i, j)
		if id <= 0 {
			continue
		}
		gl, cf := dGL.At(i, j), dCF.At(i, j)
		if gl > 0 && cf > 0 {
			// relative position on the shelf, increasing towards the calving front
			r := float64(gl) / float64(gl+cf)
			out.Set(i, j, BoxIndex((1-r)*(1-r), boxes[id], gl))
		}
		if out.At(i, j) == BoxNone && lakes.At(i, j) != Detached {
			out.Set(i, j, BoxUnresolved)
		}
	}

	return stats, out.UpdateGhosts(ctx)
}
