package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/litescript/ls-wheel/internal/astro"
	"github.com/litescript/ls-wheel/internal/chart"
	"github.com/litescript/ls-wheel/internal/layout"
)

// PlacementRow is one planet in the placement report.
type PlacementRow struct {
	Name        string  `json:"name"`
	TrueLon     float64 `json:"true_lon"`
	RenderLon   float64 `json:"render_lon"`
	Shift       float64 `json:"shift"`
	Position    string  `json:"position"`
	Retro       bool    `json:"retro,omitempty"`
	Cluster     int     `json:"cluster"`
	ClusterSize int     `json:"cluster_size"`
	Wraparound  bool    `json:"wraparound,omitempty"`
}

// PlacementExport is the JSON form of a layout run.
type PlacementExport struct {
	AscLon             float64        `json:"asc_lon"`
	MinAngularDistance float64        `json:"min_angular_distance"`
	Saturated          bool           `json:"saturated"`
	Planets            []PlacementRow `json:"planets"`
}

// GeneratePlacementRows joins a layout with the chart it came from.
func GeneratePlacementRows(c *chart.Chart, l layout.Layout) []PlacementRow {
	rows := make([]PlacementRow, 0, len(l.Objects))
	for i, o := range l.Objects {
		p, _ := c.Planet(o.ID)
		row := PlacementRow{
			Name:      o.ID,
			TrueLon:   o.TrueLon,
			RenderLon: o.RenderLon,
			Shift:     o.Displacement(),
			Position:  formatPosition(o.TrueLon),
			Retro:     p.Retro,
			Cluster:   l.ClusterOf(i),
		}
		if row.Cluster >= 0 {
			cl := l.Clusters[row.Cluster]
			row.ClusterSize = cl.Size()
			row.Wraparound = cl.Wraparound
		}
		rows = append(rows, row)
	}
	return rows
}

// ExportPlacements builds the JSON form of a layout run.
func ExportPlacements(c *chart.Chart, l layout.Layout, cfg layout.Config) *PlacementExport {
	return &PlacementExport{
		AscLon:             c.AscLon,
		MinAngularDistance: cfg.MinAngularDistance,
		Saturated:          l.Saturated,
		Planets:            GeneratePlacementRows(c, l),
	}
}

// WriteJSON writes the export as indented JSON.
func (e *PlacementExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// WritePlacementTable writes a text table of the layout.
func WritePlacementTable(w io.Writer, c *chart.Chart, l layout.Layout) {
	rows := GeneratePlacementRows(c, l)

	fmt.Fprintf(w, "Placements @ ASC %s\n", formatPosition(c.AscLon))
	fmt.Fprintln(w, strings.Repeat("─", 72))

	if len(rows) == 0 {
		fmt.Fprintln(w, "No visible planets")
		return
	}

	fmt.Fprintf(w, "%-8s %-14s %-3s %9s %9s %8s %-8s\n",
		"Planet", "Position", "R", "True", "Render", "Shift", "Cluster")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	for _, r := range rows {
		retro := ""
		if r.Retro {
			retro = "R"
		}
		cluster := "-"
		if r.ClusterSize > 1 {
			cluster = fmt.Sprintf("#%d/%d", r.Cluster+1, r.ClusterSize)
			if r.Wraparound {
				cluster += "*"
			}
		}
		fmt.Fprintf(w, "%-8s %-14s %-3s %9.3f %9.3f %+8.3f %-8s\n",
			truncateStr(r.Name, 8),
			r.Position,
			retro,
			r.TrueLon,
			r.RenderLon,
			r.Shift,
			cluster,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d planets in %d clusters\n", len(rows), len(l.Clusters))
	if l.Saturated {
		fmt.Fprintln(w, "Warning: wheel is saturated, labels may overlap")
	}
}

func formatPosition(lon float64) string {
	z := astro.Position(lon)
	return fmt.Sprintf("%s %s", z.Sign().Abbr, astro.FormatDMS(lon))
}

func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-2]) + ".."
}
