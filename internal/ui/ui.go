// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-wheel/internal/chart"
	"github.com/litescript/ls-wheel/internal/state"
	"github.com/litescript/ls-wheel/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewWheel ViewMode = iota
	ViewPlacements
)

// distanceStep is the +/- increment of the collision threshold.
const distanceStep = 0.5

// Loader reads the chart from wherever it came from.
type Loader func() (*chart.Chart, error)

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// DataUpdateMsg signals a new layout is available.
	DataUpdateMsg struct {
		Snapshot state.Snapshot
	}

	// ErrorMsg signals a load error.
	ErrorMsg struct {
		Error error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state  *state.Manager
	loader Loader

	// UI state
	viewMode  ViewMode
	width     int
	height    int
	ready     bool
	statusMsg string

	keys keyMap
	help help.Model

	// Sub-models
	wheel      WheelModel
	placements PlacementsModel

	snapshot state.Snapshot
}

// New creates a new root UI model. loader may be nil, which disables reload.
func New(stateMgr *state.Manager, loader Loader) Model {
	m := Model{
		state:      stateMgr,
		loader:     loader,
		viewMode:   ViewWheel,
		keys:       defaultKeyMap(),
		help:       help.New(),
		wheel:      NewWheelModel(),
		placements: NewPlacementsModel(),
	}
	return m.applySnapshot(stateMgr.Snapshot())
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Wheel):
			m.viewMode = ViewWheel
		case key.Matches(msg, m.keys.Table):
			m.viewMode = ViewPlacements
		case key.Matches(msg, m.keys.SwitchView):
			m.viewMode = (m.viewMode + 1) % 2
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Wider):
			m = m.adjustDistance(distanceStep)
		case key.Matches(msg, m.keys.Narrower):
			m = m.adjustDistance(-distanceStep)
		case key.Matches(msg, m.keys.Reload):
			if m.loader == nil {
				m.statusMsg = "Nothing to reload"
			} else {
				m.statusMsg = "Reloading..."
				cmds = append(cmds, reloadCmd(m.state, m.loader))
			}
		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width

		// Title line plus footer
		contentHeight := msg.Height - 4
		m.wheel = m.wheel.SetSize(msg.Width, contentHeight)
		m.placements = m.placements.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		m = m.applySnapshot(m.state.Snapshot())

	case DataUpdateMsg:
		if msg.Snapshot.LastError == nil {
			m.statusMsg = ""
		}
		m = m.applySnapshot(msg.Snapshot)

	case ErrorMsg:
		m.statusMsg = "Error: " + msg.Error.Error()

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m Model) applySnapshot(s state.Snapshot) Model {
	m.snapshot = s
	m.wheel = m.wheel.UpdateData(s)
	m.placements = m.placements.UpdateData(s)
	return m
}

func (m Model) adjustDistance(delta float64) Model {
	next := m.state.MinDistance() + delta
	if err := m.state.SetMinDistance(next); err != nil {
		m.statusMsg = fmt.Sprintf("Min distance must stay positive (%.1f°)", next)
		return m
	}
	m.statusMsg = fmt.Sprintf("Min distance %.1f°", next)
	return m.applySnapshot(m.state.Snapshot())
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewWheel:
		m.wheel, cmd = m.wheel.Update(msg)
	case ViewPlacements:
		m.placements, cmd = m.placements.Update(msg)
	}
	// Animation ticks belong to the wheel whichever view is showing.
	if _, ok := msg.(animTickMsg); ok && m.viewMode != ViewWheel {
		m.wheel, cmd = m.wheel.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewWheel:
		content = m.wheel.View()
	case ViewPlacements:
		content = m.placements.View()
	}

	return m.renderTabs() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Wheel", "[2] Placements"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))

	parts := []string{dimStyle.Render("ls-wheel v" + version.Version)}
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))

	var status string
	switch {
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case !m.snapshot.LastLoad.IsZero():
		status = dimStyle.Render("loaded " + m.snapshot.LastLoad.Format("15:04:05"))
		if m.snapshot.LoadDuration > 0 {
			status += dimStyle.Render(" (" + m.snapshot.LoadDuration.Round(time.Millisecond).String() + ")")
		}
	default:
		status = dimStyle.Render("Waiting for chart...")
	}

	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + m.help.View(m.keys)
	if m.statusMsg != "" {
		footer += "\n  " + dimStyle.Render(m.statusMsg)
	}
	return footer
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func reloadCmd(mgr *state.Manager, load Loader) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		c, err := load()
		mgr.Update(c, time.Since(start), err)
		if err != nil {
			return ErrorMsg{Error: err}
		}
		return DataUpdateMsg{Snapshot: mgr.Snapshot()}
	}
}

// SendDataUpdate wraps a snapshot as a message.
func SendDataUpdate(snapshot state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return DataUpdateMsg{Snapshot: snapshot}
	}
}

// SendError wraps an error as a message.
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Error: err}
	}
}
