package geometry

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/icegeom/accum"
	"github.com/katalvlaran/icegeom/config"
	"github.com/katalvlaran/icegeom/grid"
	"github.com/katalvlaran/icegeom/labeling"
)

// Geometry owns the masks and distance fields of one grid and recomputes them
// from scratch on every Update. Fields returned by the accessors belong to
// Geometry and must be treated as read-only.
type Geometry struct {
	grid *grid.Grid
	cfg  config.Pico
	box  BoxOptions
	log  *zap.Logger

	labeler labeling.Service
	builder *Builder

	iceRises         *grid.IntField
	continentalShelf *grid.IntField
	iceShelves       *grid.IntField
	ocean            *grid.IntField
	lakes            *grid.IntField
	distanceGL       *grid.IntField
	distanceCF       *grid.IntField
	boxes            *grid.IntField

	stats []accum.ShelfStats
}

// Option configures a Geometry.
type Option func(*Geometry)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(g *Geometry) {
		if l != nil {
			g.log = l
		}
	}
}

// WithLabeler replaces the centralized labeling service.
func WithLabeler(s labeling.Service) Option {
	return func(g *Geometry) {
		if s != nil {
			g.labeler = s
		}
	}
}

// WithBoxOptions overrides the box-count options derived from the config.
func WithBoxOptions(o BoxOptions) Option {
	return func(g *Geometry) {
		g.box = o
	}
}

// New allocates the fields on g. Nothing is computed until Update.
func New(g *grid.Grid, cfg config.Pico, opts ...Option) *Geometry {
	geo := &Geometry{
		grid: g,
		cfg:  cfg,
		box:  DefaultBoxOptions(cfg.NumberOfBoxes),
		log:  zap.NewNop(),

		iceRises:         grid.NewIntField(g, "ice_rises_mask"),
		continentalShelf: grid.NewIntField(g, "continental_shelf_mask"),
		iceShelves:       grid.NewIntField(g, "ice_shelf_mask"),
		ocean:            grid.NewIntField(g, "ocean_mask"),
		lakes:            grid.NewIntField(g, "lake_mask"),
		distanceGL:       grid.NewIntField(g, "distance_gl"),
		distanceCF:       grid.NewIntField(g, "distance_cf"),
		boxes:            grid.NewIntField(g, "box_mask"),
	}
	for _, o := range opts {
		o(geo)
	}
	if geo.labeler == nil {
		geo.labeler = labeling.NewCentralized(labeling.WithLogger(geo.log))
	}
	geo.builder = NewBuilder(g, geo.labeler, geo.log)

	return geo
}

// Update recomputes every mask from the cell classification and the bed
// elevation. It is collective.
//
// Time: O(Mx×Ym×R) per rank plus O(Mx×My) per labeling on the root,
// R = largest distance in cells.
func (g *Geometry) Update(ctx context.Context, bed *grid.Field[float64], cellType *grid.IntField) error {
	if bed.Grid() != g.grid || cellType.Grid() != g.grid {
		return fmt.Errorf("geometry: update: %w", grid.ErrGridMismatch)
	}
	exclude := g.cfg.ExcludeIceRises
	b := g.builder

	if err := b.IceRises(ctx, cellType, exclude, g.iceRises); err != nil {
		return err
	}
	if err := b.ContinentalShelf(ctx, bed, g.iceRises, g.cfg.ContinentalShelfDepth, g.continentalShelf); err != nil {
		return err
	}
	if err := b.IceShelves(ctx, g.iceRises, g.iceShelves); err != nil {
		return err
	}
	if err := b.OceanLakes(ctx, cellType, g.ocean); err != nil {
		return err
	}
	if err := b.SubglacialLakes(ctx, cellType, g.lakes); err != nil {
		return err
	}

	var solver []SolverOption
	if g.cfg.MaxDistanceRounds > 0 {
		solver = append(solver, WithMaxRounds(g.cfg.MaxDistanceRounds))
	}
	roundsGL, err := DistanceToGroundingLine(ctx, g.ocean, g.iceRises, exclude, g.distanceGL, solver...)
	if err != nil {
		return err
	}
	roundsCF, err := DistanceToCalvingFront(ctx, g.ocean, g.iceRises, exclude, g.distanceCF, solver...)
	if err != nil {
		return err
	}

	stats, err := ComputeBoxMask(ctx, g.distanceGL, g.distanceCF, g.iceShelves, g.lakes, g.box, g.boxes)
	if err != nil {
		return err
	}
	g.stats = stats

	g.log.Info("Updated ice shelf geometry",
		zap.Int("mx", g.grid.Mx),
		zap.Int("my", g.grid.My),
		zap.Int("shelves", len(stats)),
		zap.Int("rounds_gl", roundsGL),
		zap.Int("rounds_cf", roundsCF))
	return nil
}

// IceRises returns the ice-rises mask.
func (g *Geometry) IceRises() *grid.IntField { return g.iceRises }

// ContinentalShelf returns the continental-shelf mask.
func (g *Geometry) ContinentalShelf() *grid.IntField { return g.continentalShelf }

// IceShelves returns the ice-shelf id mask.
func (g *Geometry) IceShelves() *grid.IntField { return g.iceShelves }

// Ocean returns the ocean mask.
func (g *Geometry) Ocean() *grid.IntField { return g.ocean }

// Lakes returns the sub-glacial lake mask.
func (g *Geometry) Lakes() *grid.IntField { return g.lakes }

// DistanceGL returns the distance to the grounding line.
func (g *Geometry) DistanceGL() *grid.IntField { return g.distanceGL }

// DistanceCF returns the distance to the calving front.
func (g *Geometry) DistanceCF() *grid.IntField { return g.distanceCF }

// Boxes returns the box mask.
func (g *Geometry) Boxes() *grid.IntField { return g.boxes }

// ShelfStats returns the statistics of the last Update, one entry per shelf.
func (g *Geometry) ShelfStats() []accum.ShelfStats { return g.stats }

// Snapshot holds whole-field copies of every mask, for diagnostics.
type Snapshot struct {
	Mx               int                `yaml:"mx" json:"mx"`
	My               int                `yaml:"my" json:"my"`
	IceRises         [][]int            `yaml:"ice_rises_mask" json:"ice_rises_mask"`
	ContinentalShelf [][]int            `yaml:"continental_shelf_mask" json:"continental_shelf_mask"`
	IceShelves       [][]int            `yaml:"ice_shelf_mask" json:"ice_shelf_mask"`
	Ocean            [][]int            `yaml:"ocean_mask" json:"ocean_mask"`
	Lakes            [][]int            `yaml:"lake_mask" json:"lake_mask"`
	DistanceGL       [][]int            `yaml:"distance_gl" json:"distance_gl"`
	DistanceCF       [][]int            `yaml:"distance_cf" json:"distance_cf"`
	Boxes            [][]int            `yaml:"box_mask" json:"box_mask"`
	Shelves          []accum.ShelfStats `yaml:"shelves" json:"shelves"`
}

// Layer is one named raster of a Snapshot.
type Layer struct {
	Name string
	Rows [][]int
}

// Layers lists the rasters in computation order.
func (s *Snapshot) Layers() []Layer {
	return []Layer{
		{"ice_rises_mask", s.IceRises},
		{"continental_shelf_mask", s.ContinentalShelf},
		{"ice_shelf_mask", s.IceShelves},
		{"ocean_mask", s.Ocean},
		{"lake_mask", s.Lakes},
		{"distance_gl", s.DistanceGL},
		{"distance_cf", s.DistanceCF},
		{"box_mask", s.Boxes},
	}
}

// Masks gathers every field on the root rank. It is collective; ranks other
// than the root get a nil snapshot.
// Complexity: O(Mx×My) on the root.
func (g *Geometry) Masks(ctx context.Context) (*Snapshot, error) {
	s := &Snapshot{Mx: g.grid.Mx, My: g.grid.My}
	targets := []struct {
		field *grid.IntField
		dst   *[][]int
	}{
		{g.iceRises, &s.IceRises},
		{g.continentalShelf, &s.ContinentalShelf},
		{g.iceShelves, &s.IceShelves},
		{g.ocean, &s.Ocean},
		{g.lakes, &s.Lakes},
		{g.distanceGL, &s.DistanceGL},
		{g.distanceCF, &s.DistanceCF},
		{g.boxes, &s.Boxes},
	}

	for _, t := range targets {
		buf, err := t.field.PutOnRoot(ctx)
		if err != nil {
			return nil, fmt.Errorf("geometry: snapshot %s: %w", t.field.Name(), err)
		}
		*t.dst = rows(buf, g.grid.Mx, g.grid.My)
	}
	if !g.grid.Comm().IsRoot() {
		return nil, nil
	}

	s.Shelves = append([]accum.ShelfStats(nil), g.stats...)
	return s, nil
}

// rows splits a row-major buffer into My rows of Mx values, row j = 0 first.
func rows(buf []int, mx, my int) [][]int {
	if buf == nil {
		return nil
	}
	out := make([][]int, my)
	for j := range out {
		out[j] = buf[j*mx : (j+1)*mx : (j+1)*mx]
	}
	return out
}
