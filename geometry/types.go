package geometry

import (
	"errors"
)

// Sentinel errors for geometry operations.
var (
	// ErrInvalidOptions indicates box options outside their domain.
	ErrInvalidOptions = errors.New("geometry: invalid options")

	// ErrNotConverged indicates the wavefront did not settle within the round limit.
	ErrNotConverged = errors.New("geometry: distance computation did not converge")
)

// CellType classifies a grid cell. Values match the host model's cell-type mask.
type CellType int

const (
	CellIceFreeLand  CellType = 0
	CellGrounded     CellType = 2
	CellFloating     CellType = 3
	CellIceFreeOcean CellType = 4
)

// Grounded reports grounded ice.
func (c CellType) Grounded() bool { return c == CellGrounded }

// Floating reports floating ice.
func (c CellType) Floating() bool { return c == CellFloating }

// IceFreeOcean reports open water.
func (c CellType) IceFreeOcean() bool { return c == CellIceFreeOcean }

// Icy reports grounded or floating ice.
func (c CellType) Icy() bool { return c == CellGrounded || c == CellFloating }

// Ocean reports floating ice or open water.
func (c CellType) Ocean() bool { return c == CellFloating || c == CellIceFreeOcean }

// String returns a one-letter code: L, G, F or O.
func (c CellType) String() string {
	switch c {
	case CellGrounded:
		return "G"
	case CellFloating:
		return "F"
	case CellIceFreeOcean:
		return "O"
	case CellIceFreeLand:
		return "L"
	}
	return "?"
}

// Ice-rises mask values.
const (
	Ocean       = 0
	Rise        = 1
	Continental = 2
	Floating    = 3
)

// Values of masks produced by relabeling by size, and of the continental
// shelf mask: background, detached components, principal component.
const (
	Background = 0
	Detached   = 1
	Principal  = 2
)

// Ocean mask values.
const (
	OceanIcy      = Background
	OceanIsolated = Detached
	OceanOpen     = Principal
)

// Distance field values. Positive values are grid-step distances, with 1 on
// the cells next to the reference boundary.
const (
	// DistanceOutside marks cells outside the region of interest.
	DistanceOutside = -1
	// DistanceInterior marks region cells not labeled yet; it only exists while
	// the wavefront is running.
	DistanceInterior = 0
	// DistanceUnreachable marks region cells the wavefront never reached.
	DistanceUnreachable = -2
)

// Box mask values besides the box numbers 1..n.
const (
	BoxNone       = 0
	BoxUnresolved = -1
)
