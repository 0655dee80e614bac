package gridgraph

// ConnectedComponents finds all contiguous regions of eligible cells
// (Cells[idx] ≥ Threshold), according to gg.Conn connectivity.
// Returns a slice of components ordered by the row-major position of their
// first cell; each component is a slice of cell indices in BFS order.
//
// To convert an index back to (x,y), use Coordinate(idx).
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for visited flags and output.
func (gg *GridGraph) ConnectedComponents() [][]int {
	total := gg.Width * gg.Height
	seen := make([]bool, total)
	var comps [][]int
	offsets := gg.NeighborOffsets()

	for i0 := 0; i0 < total; i0++ {
		if !gg.eligible(i0) || seen[i0] {
			continue
		}
		// BFS to collect component
		queue := []int{i0}
		seen[i0] = true

		for qi := 0; qi < len(queue); qi++ {
			ux, uy := gg.Coordinate(queue[qi])
			for _, d := range offsets {
				vx, vy := ux+d[0], uy+d[1]
				if !gg.InBounds(vx, vy) {
					continue
				}
				vi := gg.index(vx, vy)
				if !seen[vi] && gg.eligible(vi) {
					seen[vi] = true
					queue = append(queue, vi)
				}
			}
		}
		comps = append(comps, queue)
	}

	return comps
}

// Label replaces every eligible cell with the 1-based id of its component and
// every other cell with 0. Returns the number of components.
//
// Time: O(W·H·d). Memory: O(W·H).
func (gg *GridGraph) Label() int {
	comps := gg.ConnectedComponents()
	clear(gg.Cells)
	for k, comp := range comps {
		for _, idx := range comp {
			gg.Cells[idx] = k + 1
		}
	}
	return len(comps)
}

// IdentifyIcebergs marks components that are not anchored. A component is
// anchored when at least one of its cells equals anchor. Cells of unanchored
// components become 1; cells of anchored components and background become 0.
// Returns the number of unanchored components.
//
// Time: O(W·H·d). Memory: O(W·H).
func (gg *GridGraph) IdentifyIcebergs(anchor int) int {
	comps := gg.ConnectedComponents()
	floating := make([]bool, len(comps))
	n := 0
	for k, comp := range comps {
		floating[k] = true
		for _, idx := range comp {
			if gg.Cells[idx] == anchor {
				floating[k] = false
				break
			}
		}
		if floating[k] {
			n++
		}
	}

	clear(gg.Cells)
	for k, comp := range comps {
		if !floating[k] {
			continue
		}
		for _, idx := range comp {
			gg.Cells[idx] = 1
		}
	}
	return n
}

// Label labels a row-major width×height buffer in place with 4-connectivity
// and background 0. See GridGraph.Label.
func Label(buf []int, width, height int) (int, error) {
	gg, err := NewGridGraph(buf, width, height, DefaultGridOptions())
	if err != nil {
		return 0, err
	}
	return gg.Label(), nil
}

// IdentifyIcebergs runs GridGraph.IdentifyIcebergs on a row-major
// width×height buffer in place with 4-connectivity.
func IdentifyIcebergs(buf []int, width, height, anchor int) (int, error) {
	gg, err := NewGridGraph(buf, width, height, DefaultGridOptions())
	if err != nil {
		return 0, err
	}
	return gg.IdentifyIcebergs(anchor), nil
}
