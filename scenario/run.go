package scenario

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/katalvlaran/icegeom/comm"
	"github.com/katalvlaran/icegeom/config"
	"github.com/katalvlaran/icegeom/geometry"
	"github.com/katalvlaran/icegeom/grid"
	"github.com/katalvlaran/icegeom/logging"
)

// Run performs one geometry update of sc on a group of ranks and returns the
// snapshot gathered on the root. A nil logger disables logging.
func Run(ctx context.Context, sc *Scenario, cfg config.Pico, ranks int, log *zap.Logger) (*geometry.Snapshot, error) {
	if log == nil {
		log = zap.NewNop()
	}
	mx, my := sc.Dims()
	if ranks > my {
		return nil, fmt.Errorf("%w: %d ranks for %d rows", grid.ErrInvalidGrid, ranks, my)
	}
	cells := sc.CellTypes()
	bed := sc.BedElevation()

	var (
		mu   sync.Mutex
		snap *geometry.Snapshot
	)
	err := comm.Run(ctx, ranks, func(ctx context.Context, c *comm.Comm) error {
		rlog := logging.ForRank(log, c.Rank())

		g, err := grid.New(c, mx, my)
		if err != nil {
			return err
		}
		cellType := grid.NewIntField(g, "cell_type")
		if err := cellType.LoadGlobal(cells); err != nil {
			return err
		}
		bedElevation := grid.NewField[float64](g, "bed_elevation")
		if err := bedElevation.LoadGlobal(bed); err != nil {
			return err
		}
		rlog.Debug("Loaded scenario",
			zap.String("scenario", sc.Name),
			zap.Int("ys", g.Ys),
			zap.Int("ym", g.Ym))

		geo := geometry.New(g, cfg, geometry.WithLogger(rlog))
		if err := geo.Update(ctx, bedElevation, cellType); err != nil {
			return err
		}
		s, err := geo.Masks(ctx)
		if err != nil {
			return err
		}
		if c.IsRoot() {
			mu.Lock()
			snap = s
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	return snap, nil
}
