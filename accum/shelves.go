package accum

import (
	"context"
	"fmt"

	"github.com/katalvlaran/icegeom/comm"
)

// ShelfStats summarizes one ice shelf.
type ShelfStats struct {
	ID    int `yaml:"id" json:"id"`
	MaxGL int `yaml:"max_distance_gl" json:"max_distance_gl"`
	MaxCF int `yaml:"max_distance_cf" json:"max_distance_cf"`
	Boxes int `yaml:"boxes" json:"boxes"`
}

// Shelves tracks the largest grounding-line and calving-front distance per
// shelf id 1..maxID. Distances below zero never raise a maximum.
type Shelves struct {
	gl, cf []int
}

// NewShelves returns an accumulator for shelf ids 0..maxID.
func NewShelves(maxID int) *Shelves {
	n := max(maxID, 0) + 1
	return &Shelves{gl: make([]int, n), cf: make([]int, n)}
}

// Len returns the number of tracked ids, background included.
func (s *Shelves) Len() int { return len(s.gl) }

// Add records the distances of one cell of shelf id. Id 0 is ignored.
func (s *Shelves) Add(id, dGL, dCF int) error {
	if id < 0 || id >= len(s.gl) {
		return fmt.Errorf("%w: shelf %d (max %d)", ErrInvalidComponent, id, len(s.gl)-1)
	}
	if id == 0 {
		return nil
	}
	s.gl[id] = max(s.gl[id], dGL)
	s.cf[id] = max(s.cf[id], dCF)
	return nil
}

// Reduce takes the maximum over all ranks in one collective call.
func (s *Shelves) Reduce(ctx context.Context, c *comm.Comm) error {
	n := len(s.gl)
	both := make([]int, 0, 2*n)
	both = append(both, s.gl...)
	both = append(both, s.cf...)

	out, err := comm.Allreduce(ctx, c, comm.OpMax, both)
	if err != nil {
		return fmt.Errorf("accum: reduce shelves: %w", err)
	}
	copy(s.gl, out[:n])
	copy(s.cf, out[n:])
	return nil
}

// MaxGL returns the largest grounding-line distance on shelf id.
func (s *Shelves) MaxGL(id int) int { return s.gl[id] }

// MaxCF returns the largest calving-front distance on shelf id.
func (s *Shelves) MaxCF(id int) int { return s.cf[id] }

// ReferenceGL returns the largest grounding-line distance over all shelves.
func (s *Shelves) ReferenceGL() int {
	ref := 0
	for _, d := range s.gl {
		ref = max(ref, d)
	}
	return ref
}
