package geometry

import (
	"context"
	"fmt"

	"github.com/katalvlaran/icegeom/comm"
	"github.com/katalvlaran/icegeom/grid"
)

// SolverOption configures the wavefront solver.
type SolverOption func(*solverOptions)

type solverOptions struct {
	maxRounds int
}

// WithMaxRounds stops the wavefront after n rounds with ErrNotConverged.
// n <= 0 means no limit.
func WithMaxRounds(n int) SolverOption {
	return func(o *solverOptions) {
		o.maxRounds = max(n, 0)
	}
}

// inShelfDomain reports whether a cell takes part in distance computations:
// floating ice, holes in a shelf, and ice rises when they are treated as shelf.
func inShelfDomain(iceRises, ocean *grid.IntField, excludeRises bool, i, j int) bool {
	m := iceRises.At(i, j)
	return m == Floating || ocean.At(i, j) == OceanIsolated || (excludeRises && m == Rise)
}

// DistanceToGroundingLine fills out with the grid-step distance of every shelf
// cell from the grounding line. Shelf cells touching continental ice, diagonal
// contact included, get 1. Returns the number of wavefront rounds.
//
// iceRises and ocean must have current ghosts.
//
// Time: O(Mx×Ym×R), R = rounds.
func DistanceToGroundingLine(ctx context.Context, ocean, iceRises *grid.IntField, excludeRises bool, out *grid.IntField, opts ...SolverOption) (int, error) {
	g := out.Grid()
	out.SetAll(DistanceOutside)

	for i, j := range g.Points() {
		if !inShelfDomain(iceRises, ocean, excludeRises, i, j) {
			continue
		}
		d := DistanceInterior
		for _, m := range iceRises.Box(i, j) {
			if m == Continental {
				d = 1
				break
			}
		}
		out.Set(i, j, d)
	}

	if err := out.UpdateGhosts(ctx); err != nil {
		return 0, err
	}
	rounds, err := Eikonal(ctx, out, opts...)
	if err != nil {
		return rounds, fmt.Errorf("geometry: distance to grounding line: %w", err)
	}
	return rounds, nil
}

// DistanceToCalvingFront fills out with the grid-step distance of every shelf
// cell from the calving front. Shelf cells with an open-ocean 4-neighbour get 1.
// Returns the number of wavefront rounds.
//
// iceRises and ocean must have current ghosts.
func DistanceToCalvingFront(ctx context.Context, ocean, iceRises *grid.IntField, excludeRises bool, out *grid.IntField, opts ...SolverOption) (int, error) {
	g := out.Grid()
	out.SetAll(DistanceOutside)

	for i, j := range g.Points() {
		if !inShelfDomain(iceRises, ocean, excludeRises, i, j) {
			continue
		}
		d := DistanceInterior
		if s := ocean.Star(i, j); s.N == OceanOpen || s.E == OceanOpen || s.S == OceanOpen || s.W == OceanOpen {
			d = 1
		}
		out.Set(i, j, d)
	}

	if err := out.UpdateGhosts(ctx); err != nil {
		return 0, err
	}
	rounds, err := Eikonal(ctx, out, opts...)
	if err != nil {
		return rounds, fmt.Errorf("geometry: distance to calving front: %w", err)
	}
	return rounds, nil
}

// Eikonal propagates a wavefront through a prepared field:
//
//   - DistanceOutside (or any negative value) outside the domain
//   - DistanceInterior inside the domain
//   - 1 at the wavefront
//
// In round k every interior cell with a 4-neighbour equal to k gets k+1, then
// ghosts are exchanged and the ranks agree on whether anything changed. A
// cell's value is its 4-connected step distance from the seed set plus one.
// Interior cells that were never reached become DistanceUnreachable.
//
// Returns the number of rounds run, the last one being the round that changed
// nothing. With at least one seed this equals the largest value in the field.
//
// Time: O(Mx×Ym×R) per rank, R = rounds; each round costs one ghost
// exchange and one reduction. Memory: O(1) beyond the field.
func Eikonal(ctx context.Context, mask *grid.IntField, opts ...SolverOption) (int, error) {
	var o solverOptions
	for _, opt := range opts {
		opt(&o)
	}
	g := mask.Grid()

	label, rounds := 1, 0
	for {
		changed := 0
		for i, j := range g.Points() {
			if mask.At(i, j) != DistanceInterior {
				continue
			}
			if s := mask.Star(i, j); s.N == label || s.E == label || s.S == label || s.W == label {
				mask.Set(i, j, label+1)
				changed = 1
			}
		}

		label++
		rounds++
		if err := mask.UpdateGhosts(ctx); err != nil {
			return rounds, err
		}
		active, err := comm.AllreduceScalar(ctx, g.Comm(), comm.OpLOR, changed)
		if err != nil {
			return rounds, err
		}
		if active == 0 {
			break
		}
		if o.maxRounds > 0 && rounds >= o.maxRounds {
			return rounds, fmt.Errorf("%w: %d rounds", ErrNotConverged, rounds)
		}
	}

	for i, j := range g.Points() {
		if mask.At(i, j) == DistanceInterior {
			mask.Set(i, j, DistanceUnreachable)
		}
	}

	return rounds, mask.UpdateGhosts(ctx)
}
