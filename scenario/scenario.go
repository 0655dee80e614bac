// Package scenario describes input rasters for a geometry update: the cell
// classification and the bed elevation of a small grid. Scenarios come from
// YAML files or from the built-in set baked into the binary.
//
// Cells are written one string per row, row j = 0 first, one letter per cell:
//
//	G  grounded ice
//	F  floating ice
//	O  ice-free ocean
//	L  ice-free land
//
// Bed elevation is either a full matrix of rows or a single bed_default.
package scenario

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/icegeom/geometry"
)

// ErrInvalidScenario indicates malformed scenario rasters.
var ErrInvalidScenario = errors.New("scenario: invalid scenario")

// ErrUnknownScenario indicates a built-in name that does not exist.
var ErrUnknownScenario = errors.New("scenario: unknown built-in scenario")

//go:embed builtin
var builtinFS embed.FS

// Scenario is one set of input rasters.
type Scenario struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Cells       []string    `yaml:"cells"`
	Bed         [][]float64 `yaml:"bed,omitempty"`
	BedDefault  float64     `yaml:"bed_default,omitempty"`
}

// Parse decodes and validates a scenario.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// Validate checks that the rasters are rectangular and use known letters.
func (sc *Scenario) Validate() error {
	if len(sc.Cells) == 0 || len(sc.Cells[0]) == 0 {
		return fmt.Errorf("%w: no cells", ErrInvalidScenario)
	}
	mx := len(sc.Cells[0])
	for j, row := range sc.Cells {
		if len(row) != mx {
			return fmt.Errorf("%w: cell row %d has %d cells, want %d", ErrInvalidScenario, j, len(row), mx)
		}
		for i, ch := range row {
			if _, ok := letters[ch]; !ok {
				return fmt.Errorf("%w: unknown cell %q at (%d, %d)", ErrInvalidScenario, ch, i, j)
			}
		}
	}
	if sc.Bed == nil {
		return nil
	}
	if len(sc.Bed) != len(sc.Cells) {
		return fmt.Errorf("%w: %d bed rows, want %d", ErrInvalidScenario, len(sc.Bed), len(sc.Cells))
	}
	for j, row := range sc.Bed {
		if len(row) != mx {
			return fmt.Errorf("%w: bed row %d has %d values, want %d", ErrInvalidScenario, j, len(row), mx)
		}
	}
	return nil
}

var letters = map[rune]geometry.CellType{
	'G': geometry.CellGrounded,
	'F': geometry.CellFloating,
	'O': geometry.CellIceFreeOcean,
	'L': geometry.CellIceFreeLand,
}

// Dims returns the grid size.
func (sc *Scenario) Dims() (mx, my int) {
	return len(sc.Cells[0]), len(sc.Cells)
}

// CellTypes returns the classification as a row-major buffer.
func (sc *Scenario) CellTypes() []int {
	mx, my := sc.Dims()
	out := make([]int, 0, mx*my)
	for _, row := range sc.Cells {
		for _, ch := range row {
			out = append(out, int(letters[ch]))
		}
	}
	return out
}

// BedElevation returns the bed elevation as a row-major buffer.
func (sc *Scenario) BedElevation() []float64 {
	mx, my := sc.Dims()
	out := make([]float64, 0, mx*my)
	if sc.Bed == nil {
		for range mx * my {
			out = append(out, sc.BedDefault)
		}
		return out
	}
	for _, row := range sc.Bed {
		out = append(out, row...)
	}
	return out
}

// Names lists the built-in scenarios in lexical order.
func Names() []string {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && path.Ext(e.Name()) == ".yaml" {
			names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	slices.Sort(names)
	return names
}

// Builtin returns the built-in scenario called name.
func Builtin(name string) (*Scenario, error) {
	data, err := builtinFS.ReadFile(path.Join("builtin", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownScenario, name, strings.Join(Names(), ", "))
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("builtin %s: %w", name, err)
	}
	return sc, nil
}
