package gridgraph_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/icegeom/gridgraph"
)

//----------------------------------------------------------------------------//
// NewGridGraph, From2D and InBounds Tests
//----------------------------------------------------------------------------//

// TestNewGridGraph_Errors verifies that NewGridGraph rejects empty or mis-sized buffers.
func TestNewGridGraph_Errors(t *testing.T) {
	cases := []struct {
		name  string
		cells []int
		w, h  int
		err   error
	}{
		{"ZeroWidth", []int{}, 0, 3, gridgraph.ErrEmptyGrid},
		{"ZeroHeight", []int{}, 3, 0, gridgraph.ErrEmptyGrid},
		{"ShortBuffer", []int{1, 2, 3}, 2, 2, gridgraph.ErrBufferSize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gridgraph.NewGridGraph(tc.cells, tc.w, tc.h, gridgraph.DefaultGridOptions())
			if !errors.Is(err, tc.err) {
				t.Errorf("NewGridGraph(%v,%d,%d) error = %v; want %v", tc.cells, tc.w, tc.h, err, tc.err)
			}
		})
	}
}

// TestFrom2D_Errors ensures From2D rejects bad inputs.
func TestFrom2D_Errors(t *testing.T) {
	if _, err := gridgraph.From2D(nil, gridgraph.Conn4); err != gridgraph.ErrEmptyGrid {
		t.Errorf("nil grid: got %v; want ErrEmptyGrid", err)
	}
	if _, err := gridgraph.From2D([][]int{{1}, {}}, gridgraph.Conn4); err != gridgraph.ErrNonRectangular {
		t.Errorf("jagged grid: got %v; want ErrNonRectangular", err)
	}
}

// TestInBounds checks InBounds on a 3×2 grid under Conn4.
func TestInBounds(t *testing.T) {
	gg, err := gridgraph.From2D([][]int{
		{0, 1, 0},
		{1, 0, 1},
	}, gridgraph.Conn4)
	if err != nil {
		t.Fatalf("From2D error: %v", err)
	}

	valid := [][2]int{{0, 0}, {2, 1}, {1, 1}}
	for _, xy := range valid {
		if !gg.InBounds(xy[0], xy[1]) {
			t.Errorf("InBounds(%d,%d)=false; want true", xy[0], xy[1])
		}
	}
	invalid := [][2]int{{-1, 0}, {3, 0}, {1, 2}, {2, -1}}
	for _, xy := range invalid {
		if gg.InBounds(xy[0], xy[1]) {
			t.Errorf("InBounds(%d,%d)=true; want false", xy[0], xy[1])
		}
	}
}

// TestCoordinate round-trips row-major indices.
func TestCoordinate(t *testing.T) {
	gg, _ := gridgraph.NewGridGraph(make([]int, 12), 4, 3, gridgraph.DefaultGridOptions())
	for idx := 0; idx < 12; idx++ {
		x, y := gg.Coordinate(idx)
		if got := y*4 + x; got != idx {
			t.Errorf("Coordinate(%d) = (%d,%d); maps back to %d", idx, x, y, got)
		}
	}
}

// TestNeighborOffsets checks offset counts for each connectivity.
func TestNeighborOffsets(t *testing.T) {
	opts := gridgraph.DefaultGridOptions()
	gg4, _ := gridgraph.NewGridGraph([]int{0}, 1, 1, opts)
	opts.Conn = gridgraph.Conn8
	gg8, _ := gridgraph.NewGridGraph([]int{0}, 1, 1, opts)
	if n := len(gg4.NeighborOffsets()); n != 4 {
		t.Errorf("Conn4 offsets = %d; want 4", n)
	}
	if n := len(gg8.NeighborOffsets()); n != 8 {
		t.Errorf("Conn8 offsets = %d; want 8", n)
	}
}
