// Package render prints geometry snapshots for inspection: plain text grids,
// colored grids for terminals, or YAML.
package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/icegeom/geometry"
)

// ErrUnknownFormat indicates an output format other than text, color or yaml.
var ErrUnknownFormat = errors.New("render: unknown format")

// Format selects the output representation.
type Format string

const (
	FormatText  Format = "text"
	FormatColor Format = "color"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatColor, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Legends describe the values of the mask layers. Distance layers have none.
var Legends = map[string]string{
	"ice_rises_mask":         "0 ocean, 1 ice rise, 2 continental ice, 3 floating ice",
	"continental_shelf_mask": "0 none, 1 detached shallow bed, 2 continental shelf",
	"ice_shelf_mask":         "0 not a shelf, k shelf id",
	"ocean_mask":             "0 icy, 1 isolated water, 2 open ocean",
	"lake_mask":              "0 grounded or land, 1 sub-glacial lake, 2 connected to the open ocean",
	"distance_gl":            "-1 outside, -2 unreachable, k cells from the grounding line",
	"distance_cf":            "-1 outside, -2 unreachable, k cells from the calving front",
	"box_mask":               "0 no box, -1 unresolved, k box number",
}

// Snapshot writes every layer of s, followed by the shelf statistics.
func Snapshot(w io.Writer, s *geometry.Snapshot, f Format) error {
	if f == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("render: encode snapshot: %w", err)
		}
		return enc.Close()
	}

	var p palette
	if f == FormatColor {
		p = newPalette(lipgloss.NewRenderer(w))
	}
	for _, l := range s.Layers() {
		if _, err := io.WriteString(w, p.layer(l)+"\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, p.header("shelves")+"\n"+Shelves(s)+"\n")
	return err
}

// Layer renders one raster as right-aligned columns, row j = 0 on top.
func Layer(l geometry.Layer) string {
	var p palette
	return p.layer(l)
}

// Shelves renders the per-shelf statistics as a table.
func Shelves(s *geometry.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%5s %8s %8s %6s\n", "id", "max_gl", "max_cf", "boxes")
	for _, st := range s.Shelves {
		fmt.Fprintf(&b, "%5d %8d %8d %6d\n", st.ID, st.MaxGL, st.MaxCF, st.Boxes)
	}
	return strings.TrimRight(b.String(), "\n")
}

// palette colors cells by value. The zero palette renders plain text.
type palette struct {
	title    lipgloss.Style
	legend   lipgloss.Style
	zero     lipgloss.Style
	negative lipgloss.Style
	values   []lipgloss.Style
	enabled  bool
}

var cellColors = []lipgloss.Color{
	"#2196F3", // blue
	"#8BC34A", // lime green
	"#FFC107", // yellow
	"#4db6ac", // teal
	"#ff8a65", // orange-red
	"#e57373", // orange
}

func newPalette(r *lipgloss.Renderer) palette {
	p := palette{
		title:    r.NewStyle().Bold(true),
		legend:   r.NewStyle().Faint(true),
		zero:     r.NewStyle().Faint(true),
		negative: r.NewStyle().Foreground(lipgloss.Color("#e53935")),
		enabled:  true,
	}
	for _, c := range cellColors {
		p.values = append(p.values, r.NewStyle().Foreground(c))
	}
	return p
}

func (p palette) header(name string) string {
	if !p.enabled {
		return "# " + name
	}
	return p.title.Render("# " + name)
}

func (p palette) cell(v int, width int) string {
	s := fmt.Sprintf("%*d", width, v)
	if !p.enabled {
		return s
	}
	switch {
	case v < 0:
		return p.negative.Render(s)
	case v == 0:
		return p.zero.Render(s)
	}
	return p.values[(v-1)%len(p.values)].Render(s)
}

func (p palette) layer(l geometry.Layer) string {
	width := 1
	for _, row := range l.Rows {
		for _, v := range row {
			width = max(width, len(strconv.Itoa(v)))
		}
	}

	var b strings.Builder
	b.WriteString(p.header(l.Name))
	if legend, ok := Legends[l.Name]; ok {
		b.WriteString("  ")
		if p.enabled {
			b.WriteString(p.legend.Render(legend))
		} else {
			b.WriteString(legend)
		}
	}
	for _, row := range l.Rows {
		b.WriteByte('\n')
		for i, v := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(p.cell(v, width))
		}
	}
	return b.String()
}
