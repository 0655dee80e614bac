package scenario_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/katalvlaran/icegeom/comm"
	"github.com/katalvlaran/icegeom/config"
	"github.com/katalvlaran/icegeom/geometry"
	"github.com/katalvlaran/icegeom/grid"
	"github.com/katalvlaran/icegeom/scenario"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"bay", "embayment", "trench"}, scenario.Names())
}

func TestBuiltin(t *testing.T) {
	for _, name := range scenario.Names() {
		sc, err := scenario.Builtin(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, sc.Name)
		mx, my := sc.Dims()
		assert.Len(t, sc.CellTypes(), mx*my)
		assert.Len(t, sc.BedElevation(), mx*my)
	}

	_, err := scenario.Builtin("antarctica")
	require.ErrorIs(t, err, scenario.ErrUnknownScenario)
}

func TestParse(t *testing.T) {
	sc, err := scenario.Parse([]byte(`
cells:
  - GF
  - OL
bed_default: -42
`))
	require.NoError(t, err)
	assert.Equal(t, []int{
		int(geometry.CellGrounded), int(geometry.CellFloating),
		int(geometry.CellIceFreeOcean), int(geometry.CellIceFreeLand),
	}, sc.CellTypes())
	assert.Equal(t, []float64{-42, -42, -42, -42}, sc.BedElevation())
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":       `cells: []`,
		"ragged":      "cells:\n  - GG\n  - G\n",
		"letter":      "cells:\n  - GX\n",
		"bed rows":    "cells:\n  - GG\nbed:\n  - [1, 2]\n  - [1, 2]\n",
		"bed columns": "cells:\n  - GG\nbed:\n  - [1]\n",
		"yaml":        "cells: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := scenario.Parse([]byte(doc))
			require.ErrorIs(t, err, scenario.ErrInvalidScenario)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strip.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cells:\n  - GFO\n"), 0644))

	sc, err := scenario.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "strip", sc.Name)

	_, err = scenario.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestRun_Embayment(t *testing.T) {
	sc, err := scenario.Builtin("embayment")
	require.NoError(t, err)

	snap, err := scenario.Run(context.Background(), sc, config.DefaultConfig().Pico, 3, nil)
	require.NoError(t, err)

	// one shelf, the rise at (3, 4) is not part of it
	require.Len(t, snap.Shelves, 1)
	assert.Equal(t, geometry.Rise, snap.IceRises[4][3])
	assert.Equal(t, 0, snap.IceShelves[4][3])
	assert.Equal(t, []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, snap.DistanceGL[2])
	assert.Equal(t, []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, snap.DistanceCF[6])
	assert.Equal(t, geometry.OceanOpen, snap.Ocean[7][0])
}

// TestRun_Trench checks the continental shelf behind and beyond a trench.
func TestRun_Trench(t *testing.T) {
	sc, err := scenario.Builtin("trench")
	require.NoError(t, err)

	snap, err := scenario.Run(context.Background(), sc, config.DefaultConfig().Pico, 2, nil)
	require.NoError(t, err)

	want := [][]int{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{2, 2, 0, 0, 0, 0, 2, 2},
		{2, 0, 0, 1, 1, 0, 0, 2},
		{0, 0, 0, 1, 1, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
	}
	require.Empty(t, cmp.Diff(want, snap.ContinentalShelf))
}

func TestRun_SameResultOnAnyRankCount(t *testing.T) {
	sc, err := scenario.Builtin("bay")
	require.NoError(t, err)
	cfg := config.DefaultConfig().Pico

	want, err := scenario.Run(context.Background(), sc, cfg, 1, nil)
	require.NoError(t, err)
	for _, ranks := range []int{2, 4, 9} {
		got, err := scenario.Run(context.Background(), sc, cfg, ranks, nil)
		require.NoError(t, err)
		require.Empty(t, cmp.Diff(want, got), "ranks %d", ranks)
	}
}

func TestRun_Invalid(t *testing.T) {
	sc, err := scenario.Builtin("embayment")
	require.NoError(t, err)

	_, err = scenario.Run(context.Background(), sc, config.DefaultConfig().Pico, 20, nil)
	require.ErrorIs(t, err, grid.ErrInvalidGrid)

	_, err = scenario.Run(context.Background(), sc, config.DefaultConfig().Pico, 0, nil)
	require.ErrorIs(t, err, comm.ErrInvalidSize)
}
