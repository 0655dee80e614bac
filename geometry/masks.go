package geometry

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/icegeom/accum"
	"github.com/katalvlaran/icegeom/grid"
	"github.com/katalvlaran/icegeom/labeling"
)

// Builder computes the classification masks. It owns one scratch field and
// is not safe for concurrent use.
type Builder struct {
	grid    *grid.Grid
	labeler labeling.Service
	tmp     *grid.IntField
	log     *zap.Logger
}

// NewBuilder returns a mask builder on g. A nil labeler selects the
// centralized one; a nil logger disables logging.
func NewBuilder(g *grid.Grid, labeler labeling.Service, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	if labeler == nil {
		labeler = labeling.NewCentralized(labeling.WithLogger(log))
	}
	return &Builder{
		grid:    g,
		labeler: labeler,
		tmp:     grid.NewIntField(g, "temporary_storage"),
		log:     log,
	}
}

// RelabelBySize collapses a labeled mask: the component with the largest
// global area becomes Principal, every other component Detached, background
// stays Background. Ties go to the lowest label. A mask without components is
// reset to Background. Returns the number of components found.
//
// A label outside [0, max label] fails with accum.ErrInvalidComponent.
//
// Time: O(Mx×Ym + K) per rank, K = largest label. Memory: O(K).
func RelabelBySize(ctx context.Context, mask *grid.IntField) (int, error) {
	g := mask.Grid()

	_, maxIndex, err := mask.Range(ctx)
	if err != nil {
		return 0, err
	}
	if maxIndex < 1 {
		mask.SetAll(Background)
		return 0, nil
	}

	areas := accum.NewAreas(maxIndex)
	var bad error
	for i, j := range g.Points() {
		if err := areas.Add(mask.At(i, j)); err != nil {
			bad = fmt.Errorf("geometry: relabel %s at (%d, %d): %w", mask.Name(), i, j, err)
			break
		}
	}
	if err := g.Comm().Check(ctx, bad); err != nil {
		return 0, err
	}
	if err := areas.Reduce(ctx, g.Comm()); err != nil {
		return 0, err
	}

	principal := areas.Largest()
	components := 0
	for k := 1; k <= maxIndex; k++ {
		if areas.Count(k) > 0 {
			components++
		}
	}

	for i, j := range g.Points() {
		switch label := mask.At(i, j); {
		case label == principal:
			mask.Set(i, j, Principal)
		case label > 0:
			mask.Set(i, j, Detached)
		default:
			mask.Set(i, j, Background)
		}
	}

	return components, mask.UpdateGhosts(ctx)
}

// labelAndCollapse writes the binary seed into the scratch field, labels it
// when label is set, relabels by size and copies the result into out.
func (b *Builder) labelAndCollapse(ctx context.Context, seed func(i, j int) bool, label bool, out *grid.IntField) (int, error) {
	for i, j := range b.grid.Points() {
		b.tmp.Set(i, j, boolInt(seed(i, j)))
	}

	if label {
		if err := b.labeler.Label(ctx, b.tmp, labeling.Plain()); err != nil {
			return 0, err
		}
	}

	n, err := RelabelBySize(ctx, b.tmp)
	if err != nil {
		return 0, err
	}

	return n, out.CopyFrom(b.tmp)
}

// IceRises computes the ice-rises mask:
//
//   - Ocean:       not grounded, not floating
//   - Rise:        grounded ice not connected to the biggest grounded area
//   - Continental: the biggest grounded area
//   - Floating:    floating ice
//
// When excludeRises is false grounded ice is not split into components and
// every grounded cell is Continental.
//
// Time: O(Mx×My) on the root for labeling, O(Mx×Ym) elsewhere.
func (b *Builder) IceRises(ctx context.Context, cellType *grid.IntField, excludeRises bool, out *grid.IntField) error {
	n, err := b.labelAndCollapse(ctx, func(i, j int) bool {
		return CellType(cellType.At(i, j)).Grounded()
	}, excludeRises, out)
	if err != nil {
		return fmt.Errorf("geometry: ice rises: %w", err)
	}

	// Floating ice shares this mask so later steps need one field less.
	for i, j := range b.grid.Points() {
		if out.At(i, j) == Ocean && CellType(cellType.At(i, j)).Floating() {
			out.Set(i, j, Floating)
		}
	}

	b.log.Debug("Computed ice rises", zap.Int("grounded_components", n), zap.Bool("exclude_ice_rises", excludeRises))
	return out.UpdateGhosts(ctx)
}

// ContinentalShelf computes the continental shelf mask:
//
//   - Detached:  bed above threshold, not connected to continental ice
//   - Principal: ice-free ocean with bed above threshold, connected to
//     continental ice through cells with bed above threshold
//   - Background: everything else
//
// Time: O(Mx×My) on the root for labeling, O(Mx×Ym) elsewhere.
func (b *Builder) ContinentalShelf(ctx context.Context, bed *grid.Field[float64], iceRises *grid.IntField, threshold float64, out *grid.IntField) error {
	for i, j := range b.grid.Points() {
		v := 0
		if bed.At(i, j) > threshold {
			v = 1
		}
		if iceRises.At(i, j) == Continental {
			v = 2
		}
		b.tmp.Set(i, j, v)
	}

	// Shallow areas without continental ice become 1, all else 0.
	if err := b.labeler.Label(ctx, b.tmp, labeling.Icebergs(Continental)); err != nil {
		return fmt.Errorf("geometry: continental shelf: %w", err)
	}

	// Remaining shallow open water is the shelf proper.
	for i, j := range b.grid.Points() {
		if b.tmp.At(i, j) > 0 {
			continue
		}
		if bed.At(i, j) > threshold && iceRises.At(i, j) == Ocean {
			b.tmp.Set(i, j, Principal)
		}
	}

	if err := out.CopyFrom(b.tmp); err != nil {
		return err
	}
	return out.UpdateGhosts(ctx)
}

// IceShelves gives every ice shelf its own positive id. Rises take part in
// labeling so that two shelves bridged by a rise share an id, and are reset
// to 0 afterwards.
//
// Time: O(Mx×My) on the root for labeling, O(Mx×Ym) elsewhere.
func (b *Builder) IceShelves(ctx context.Context, iceRises *grid.IntField, out *grid.IntField) error {
	for i, j := range b.grid.Points() {
		m := iceRises.At(i, j)
		b.tmp.Set(i, j, boolInt(m == Rise || m == Floating))
	}

	if err := b.labeler.Label(ctx, b.tmp, labeling.Plain()); err != nil {
		return fmt.Errorf("geometry: ice shelves: %w", err)
	}

	// Rises only bridge shelves; they carry no id.
	for i, j := range b.grid.Points() {
		if iceRises.At(i, j) == Rise {
			b.tmp.Set(i, j, 0)
		}
	}

	if err := out.CopyFrom(b.tmp); err != nil {
		return err
	}
	return out.UpdateGhosts(ctx)
}

// OceanLakes computes the ocean mask: OceanOpen for the biggest body of
// ice-free water, OceanIsolated for every smaller one, OceanIcy elsewhere.
func (b *Builder) OceanLakes(ctx context.Context, cellType *grid.IntField, out *grid.IntField) error {
	n, err := b.labelAndCollapse(ctx, func(i, j int) bool {
		return CellType(cellType.At(i, j)).IceFreeOcean()
	}, true, out)
	if err != nil {
		return fmt.Errorf("geometry: ocean mask: %w", err)
	}
	b.log.Debug("Computed ocean mask", zap.Int("water_bodies", n))
	return nil
}

// SubglacialLakes identifies floating ice and water cut off from the open
// ocean: Principal for the biggest connected ocean area (floating or ice-free),
// Detached for smaller ones, Background for grounded ice and land.
func (b *Builder) SubglacialLakes(ctx context.Context, cellType *grid.IntField, out *grid.IntField) error {
	n, err := b.labelAndCollapse(ctx, func(i, j int) bool {
		return CellType(cellType.At(i, j)).Ocean()
	}, true, out)
	if err != nil {
		return fmt.Errorf("geometry: sub-glacial lakes: %w", err)
	}
	b.log.Debug("Computed sub-glacial lakes", zap.Int("ocean_areas", n))
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
