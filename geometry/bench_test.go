package geometry_test

import (
	"context"
	"strings"
	"testing"

	"github.com/katalvlaran/icegeom/comm"
	"github.com/katalvlaran/icegeom/config"
	"github.com/katalvlaran/icegeom/geometry"
	"github.com/katalvlaran/icegeom/grid"
)

// BenchmarkEikonal measures the wavefront on a 200×200 field seeded along
// the bottom row, on four ranks.
// Complexity: O(Mx×My×D), D = My
func BenchmarkEikonal(b *testing.B) {
	const n = 200
	seed := make([]int, n*n)
	for i := 0; i < n; i++ {
		seed[i] = 1
	}

	for i := 0; i < b.N; i++ {
		err := comm.Run(context.Background(), 4, func(ctx context.Context, c *comm.Comm) error {
			g, err := grid.New(c, n, n)
			if err != nil {
				return err
			}
			f := grid.NewIntField(g, "distance")
			if err := f.LoadGlobal(seed); err != nil {
				return err
			}
			_, err = geometry.Eikonal(ctx, f)
			return err
		})
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkUpdate measures a full update of a 60×48 embayment on two ranks.
func BenchmarkUpdate(b *testing.B) {
	const mx = 60
	rows := []string{}
	for j := 0; j < 48; j++ {
		switch {
		case j < 12:
			rows = append(rows, strings.Repeat("G", mx))
		case j < 36:
			rows = append(rows, strings.Repeat("F", mx/2-2)+"GGGG"+strings.Repeat("F", mx/2-2))
		default:
			rows = append(rows, strings.Repeat("O", mx))
		}
	}
	types := scene(rows).cellTypes(b)
	cfg := config.DefaultConfig().Pico

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		err := comm.Run(context.Background(), 2, func(ctx context.Context, c *comm.Comm) error {
			g, err := grid.New(c, mx, len(rows))
			if err != nil {
				return err
			}
			cellType := grid.NewIntField(g, "cell_type")
			if err := cellType.LoadGlobal(types); err != nil {
				return err
			}
			bed := grid.NewField[float64](g, "bed")
			bed.SetAll(-500)
			return geometry.New(g, cfg).Update(ctx, bed, cellType)
		})
		if err != nil {
			b.Fatal(err)
		}
	}
}
