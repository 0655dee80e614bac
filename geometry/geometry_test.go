package geometry_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/icegeom/config"
	"github.com/katalvlaran/icegeom/geometry"
	"github.com/katalvlaran/icegeom/grid"
	"github.com/katalvlaran/icegeom/labeling"
)

// bay has two shelves, one with an ice rise, a sub-glacial lake, a pool of
// open water inside the ice sheet and a floating island.
var bay = scene{
	"GGGGGGGGGGGG",
	"GGGFGGGGGGGG",
	"GGGGGGGGOGGG",
	"FFFFFGGFFFFF",
	"FFGFFGGFFFFF",
	"FFFFFGGFFFFF",
	"FFFFFOOFFFFF",
	"OOOOOOOOOOOO",
	"OOOOOOOOOFOO",
}

func update(t *testing.T, size int, s scene, cfg config.Pico, opts ...geometry.Option) *geometry.Snapshot {
	t.Helper()
	var mu sync.Mutex
	var snap *geometry.Snapshot

	runScene(t, size, s, nil, func(ctx context.Context, e env) error {
		geo := geometry.New(e.grid, cfg, opts...)
		if err := geo.Update(ctx, e.bed, e.cellType); err != nil {
			return err
		}
		out, err := geo.Masks(ctx)
		if err != nil {
			return err
		}
		if e.grid.Comm().IsRoot() {
			mu.Lock()
			snap = out
			mu.Unlock()
		} else if out != nil {
			return fmt.Errorf("rank %d got a snapshot", e.grid.Rank())
		}
		return nil
	})
	require.NotNil(t, snap)
	return snap
}

func TestGeometry_Update(t *testing.T) {
	cfg := config.DefaultConfig().Pico
	snap := update(t, 3, bay, cfg)

	require.Equal(t, 12, snap.Mx)
	require.Equal(t, 9, snap.My)

	// left shelf, right shelf, sub-glacial lake, floating island
	require.Equal(t, []int{0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0}, snap.IceShelves[1])
	require.Equal(t, []int{2, 2, 2, 2, 2, 0, 0, 3, 3, 3, 3, 3}, snap.IceShelves[3])
	require.Equal(t, 4, snap.IceShelves[8][9])
	require.Equal(t, geometry.Rise, snap.IceRises[4][2])
	require.Equal(t, 0, snap.IceShelves[4][2])

	require.Equal(t, geometry.OceanIsolated, snap.Ocean[2][8])
	require.Equal(t, geometry.OceanOpen, snap.Ocean[6][5])
	require.Equal(t, geometry.Detached, snap.Lakes[1][3])
	require.Equal(t, geometry.Principal, snap.Lakes[3][0])

	require.Equal(t, geometry.BoxNone, snap.Boxes[1][3])
	require.Equal(t, geometry.BoxUnresolved, snap.Boxes[8][9])
	for _, row := range snap.Boxes {
		for _, b := range row {
			require.True(t, b == geometry.BoxUnresolved || (b >= 0 && b <= cfg.NumberOfBoxes), "box %d", b)
		}
	}

	require.Len(t, snap.Shelves, 4)
	for k, st := range snap.Shelves {
		require.Equal(t, k+1, st.ID)
		require.True(t, st.Boxes >= 1 && st.Boxes <= cfg.NumberOfBoxes)
	}
	require.Zero(t, snap.Shelves[0].MaxCF, "the lake never reaches the front")
	require.Equal(t, 4, snap.Shelves[1].MaxGL)
	require.Equal(t, 1, snap.Shelves[3].Boxes, "the island never reaches the grounding line")
}

// TestGeometry_Determinism runs the same update on 1 to 4 ranks and expects
// identical output.
func TestGeometry_Determinism(t *testing.T) {
	cfg := config.DefaultConfig().Pico
	want := update(t, 1, bay, cfg)
	for _, size := range []int{2, 3, 4} {
		got := update(t, size, bay, cfg)
		require.Empty(t, cmp.Diff(want, got), "ranks %d", size)
	}
}

// TestGeometry_Repeatable runs Update twice on the same object.
func TestGeometry_Repeatable(t *testing.T) {
	cfg := config.DefaultConfig().Pico
	var first, second *geometry.Snapshot
	runScene(t, 2, bay, nil, func(ctx context.Context, e env) error {
		geo := geometry.New(e.grid, cfg)
		for _, dst := range []**geometry.Snapshot{&first, &second} {
			if err := geo.Update(ctx, e.bed, e.cellType); err != nil {
				return err
			}
			s, err := geo.Masks(ctx)
			if err != nil {
				return err
			}
			if s != nil {
				*dst = s
			}
		}
		return nil
	})
	require.Empty(t, cmp.Diff(first, second))
}

type countingLabeler struct {
	labeling.Service
	mu    sync.Mutex
	calls int
}

func (c *countingLabeler) Label(ctx context.Context, f *grid.IntField, mode labeling.Mode) error {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.Service.Label(ctx, f, mode)
}

func TestGeometry_Options(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	lab := &countingLabeler{Service: labeling.NewCentralized()}

	cfg := config.DefaultConfig().Pico
	cfg.ExcludeIceRises = false
	snap := update(t, 1, bay, cfg,
		geometry.WithLogger(zap.New(core)),
		geometry.WithLabeler(lab),
		geometry.WithBoxOptions(geometry.BoxOptions{NMax: 2, NMin: 1, Zeta: 1}))

	// continental shelf (icebergs), ice shelves, ocean, lakes; ice rises are
	// not labeled when they are kept
	require.Equal(t, 4, lab.calls)
	require.Equal(t, geometry.Continental, snap.IceRises[4][2])
	for _, st := range snap.Shelves {
		require.LessOrEqual(t, st.Boxes, 2)
	}

	entries := logs.FilterMessage("Updated ice shelf geometry").All()
	require.Len(t, entries, 1)
	require.Equal(t, int64(4), entries[0].ContextMap()["shelves"])
}

func TestGeometry_GridMismatch(t *testing.T) {
	err := runSceneErr(t, 1, scene{"FF", "FF"}, nil, func(ctx context.Context, e env) error {
		other, err := grid.New(e.grid.Comm(), 2, 2)
		if err != nil {
			return err
		}
		geo := geometry.New(other, config.DefaultConfig().Pico)
		return geo.Update(ctx, e.bed, e.cellType)
	})
	require.ErrorIs(t, err, grid.ErrGridMismatch)
}

func TestGeometry_NotConverged(t *testing.T) {
	cfg := config.DefaultConfig().Pico
	cfg.MaxDistanceRounds = 1
	err := runSceneErr(t, 2, bay, nil, func(ctx context.Context, e env) error {
		return geometry.New(e.grid, cfg).Update(ctx, e.bed, e.cellType)
	})
	require.ErrorIs(t, err, geometry.ErrNotConverged)
}
