package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-wheel/internal/render"
	"github.com/litescript/ls-wheel/internal/state"
)

// recentEventLines is how many events sit under the table.
const recentEventLines = 6

// PlacementsModel lists every placed planet with its shift and cluster.
type PlacementsModel struct {
	width  int
	height int

	table    table.Model
	snapshot state.Snapshot
}

func placementColumns() []table.Column {
	return []table.Column{
		{Title: "Planet", Width: 8},
		{Title: "Position", Width: 14},
		{Title: "R", Width: 2},
		{Title: "True", Width: 9},
		{Title: "Render", Width: 9},
		{Title: "Shift", Width: 8},
		{Title: "Cluster", Width: 9},
	}
}

// NewPlacementsModel creates an empty placements view.
func NewPlacementsModel() PlacementsModel {
	t := table.New(
		table.WithColumns(placementColumns()),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(colorMuted)).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color(colorAccent)).
		Bold(true)
	t.SetStyles(styles)

	return PlacementsModel{table: t}
}

// SetSize updates the viewport size.
func (m PlacementsModel) SetSize(width, height int) PlacementsModel {
	m.width = width
	m.height = height
	h := height - recentEventLines - 4
	if h < 3 {
		h = 3
	}
	m.table.SetHeight(h)
	m.table.SetWidth(width)
	return m
}

// UpdateData refreshes the rows from a snapshot.
func (m PlacementsModel) UpdateData(snapshot state.Snapshot) PlacementsModel {
	m.snapshot = snapshot
	if snapshot.Chart == nil {
		m.table.SetRows(nil)
		return m
	}

	var rows []table.Row
	for _, r := range render.GeneratePlacementRows(snapshot.Chart, snapshot.Layout) {
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
		rows = append(rows, table.Row{
			r.Name,
			r.Position,
			retro,
			fmt.Sprintf("%.3f", r.TrueLon),
			fmt.Sprintf("%.3f", r.RenderLon),
			fmt.Sprintf("%+.3f", r.Shift),
			cluster,
		})
	}
	m.table.SetRows(rows)
	return m
}

// Selected returns the name in the highlighted row.
func (m PlacementsModel) Selected() string {
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return ""
	}
	return row[0]
}

// Update handles messages.
func (m PlacementsModel) Update(msg tea.Msg) (PlacementsModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the placements view.
func (m PlacementsModel) View() string {
	if m.snapshot.Chart == nil {
		return "No chart loaded"
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorTitle))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Placements"))
	b.WriteString(dimStyle.Render(fmt.Sprintf(" | %d planets in %d clusters | min %.1f°",
		len(m.snapshot.Layout.Objects), len(m.snapshot.Layout.Clusters), m.snapshot.Config.MinAngularDistance)))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderEvents())
	return b.String()
}

func (m PlacementsModel) renderEvents() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
	events := m.snapshot.Events
	if len(events) == 0 {
		return dimStyle.Render("No events")
	}
	if len(events) > recentEventLines {
		events = events[len(events)-recentEventLines:]
	}

	var lines []string
	for _, e := range events {
		line := fmt.Sprintf("%s %-9s %s", e.Timestamp.Format("15:04:05"), e.Type, e.Planet)
		if len(e.Cluster) > 0 {
			line += " with " + strings.Join(e.Cluster, ",")
		}
		lines = append(lines, eventStyle(e.Type).Render(line))
	}
	return strings.Join(lines, "\n")
}

func eventStyle(t state.EventType) lipgloss.Style {
	switch t {
	case state.EventClustered:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent))
	case state.EventHidden:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	case state.EventAppeared:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
	}
}
