// Package accum provides accumulators for per-label statistics over a
// distributed field. Each accumulator is fed locally, cell by cell, and then
// reduced across ranks in a single collective step.
package accum

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/icegeom/comm"
)

// ErrInvalidComponent indicates a label outside [0, max] for the accumulator.
var ErrInvalidComponent = errors.New("accum: invalid component index")

// Areas counts cells per component label 0..max. Label 0 is background and
// is never counted.
type Areas struct {
	counts  []int
	reduced bool
}

// NewAreas returns an accumulator for labels 0..maxIndex.
func NewAreas(maxIndex int) *Areas {
	return &Areas{counts: make([]int, max(maxIndex, 0)+1)}
}

// Add counts one cell with the given label.
func (a *Areas) Add(label int) error {
	if label < 0 || label >= len(a.counts) {
		return fmt.Errorf("%w: %d (max %d)", ErrInvalidComponent, label, len(a.counts)-1)
	}
	if label > 0 {
		a.counts[label]++
	}
	return nil
}

// Reduce sums the counts over all ranks.
func (a *Areas) Reduce(ctx context.Context, c *comm.Comm) error {
	total, err := comm.Allreduce(ctx, c, comm.OpSum, a.counts)
	if err != nil {
		return fmt.Errorf("accum: reduce areas: %w", err)
	}
	a.counts = total
	a.reduced = true
	return nil
}

// Count returns the number of cells with label.
func (a *Areas) Count(label int) int {
	if label < 0 || label >= len(a.counts) {
		return 0
	}
	return a.counts[label]
}

// Total returns the number of labeled (non-background) cells.
func (a *Areas) Total() int {
	s := 0
	for _, n := range a.counts {
		s += n
	}
	return s
}

// Largest returns the label with the biggest area. Ties go to the lowest
// label; 0 means no labeled cells.
func (a *Areas) Largest() int {
	best := 0
	for k := 1; k < len(a.counts); k++ {
		if a.counts[k] > a.counts[best] {
			best = k
		}
	}
	return best
}

// Reduced reports whether Reduce has completed.
func (a *Areas) Reduced() bool { return a.reduced }
