package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-wheel/internal/astro"
	"github.com/litescript/ls-wheel/internal/render"
	"github.com/litescript/ls-wheel/internal/state"
)

const (
	// Animation
	animDuration  = 400 * time.Millisecond
	animFrameRate = 30 * time.Millisecond

	// rotateStep is how far [ and ] turn the wheel, in degrees.
	rotateStep = 30.0

	colorAccent = "229" // bright gold
	colorMuted  = "60"  // muted purple
	colorTitle  = "135" // violet
)

// WheelModel renders the chart wheel on a terminal canvas.
type WheelModel struct {
	width  int
	height int

	// Wheel rotation in degrees, added to the ascendant
	rotation float64

	// Animation state
	animating   bool
	animFrom    float64
	animTarget  float64
	animStart   time.Time
	animPending bool // a tick is already scheduled

	// Focus over the placed planets, in longitude order
	focusIdx int
	planets  []string

	snapshot state.Snapshot

	labelMode render.TermLabelMode
	plain     bool
	ticks     bool

	keys keyMap
}

// NewWheelModel creates a wheel view with the ascendant on the left.
func NewWheelModel() WheelModel {
	return WheelModel{
		labelMode: render.TermLabelFocused,
		keys:      defaultKeyMap(),
	}
}

// SetSize updates the viewport size.
func (m WheelModel) SetSize(width, height int) WheelModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData takes a new snapshot and keeps focus on the same planet when
// it is still placed.
func (m WheelModel) UpdateData(snapshot state.Snapshot) WheelModel {
	focused := m.Focused()
	m.snapshot = snapshot

	m.planets = make([]string, 0, len(snapshot.Layout.Objects))
	for _, o := range snapshot.Layout.Objects {
		m.planets = append(m.planets, o.ID)
	}

	m.focusIdx = 0
	for i, id := range m.planets {
		if id == focused {
			m.focusIdx = i
			break
		}
	}
	return m
}

// Focused returns the focused planet name, or "" with nothing placed.
func (m WheelModel) Focused() string {
	if m.focusIdx < 0 || m.focusIdx >= len(m.planets) {
		return ""
	}
	return m.planets[m.focusIdx]
}

// Rotation returns the current wheel rotation in degrees.
func (m WheelModel) Rotation() float64 {
	return m.rotation
}

// animTickMsg is sent during animation
type animTickMsg time.Time

func animTick() tea.Cmd {
	return tea.Tick(animFrameRate, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

// Update handles messages.
func (m WheelModel) Update(msg tea.Msg) (WheelModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.FocusNext):
			return m.focusStep(1)
		case key.Matches(msg, m.keys.FocusPrev):
			return m.focusStep(-1)
		case key.Matches(msg, m.keys.RotateCCW):
			return m.rotateTo(m.target() + rotateStep)
		case key.Matches(msg, m.keys.RotateCW):
			return m.rotateTo(m.target() - rotateStep)
		case key.Matches(msg, m.keys.Labels):
			m.labelMode = (m.labelMode + 1) % 3
		case key.Matches(msg, m.keys.Glyphs):
			m.plain = !m.plain
		case key.Matches(msg, m.keys.Ticks):
			m.ticks = !m.ticks
		}

	case animTickMsg:
		m.animPending = false
		if m.animating {
			return m.updateAnimation()
		}
	}

	return m, nil
}

// target is where the wheel is heading: the animation end, or the current
// rotation when still.
func (m WheelModel) target() float64 {
	if m.animating {
		return m.animTarget
	}
	return m.rotation
}

func (m WheelModel) focusStep(delta int) (WheelModel, tea.Cmd) {
	n := len(m.planets)
	if n == 0 {
		return m, nil
	}
	m.focusIdx = ((m.focusIdx+delta)%n + n) % n

	// Bring the focused planet round to the left, where the ascendant sits
	// unrotated.
	o, ok := m.snapshot.Layout.Find(m.planets[m.focusIdx])
	if !ok || m.snapshot.Chart == nil {
		return m, nil
	}
	return m.rotateTo(o.RenderLon - m.snapshot.Chart.AscLon)
}

func (m WheelModel) rotateTo(deg float64) (WheelModel, tea.Cmd) {
	m.animating = true
	m.animFrom = m.rotation
	m.animTarget = m.rotation + normalizeAngle(deg-m.rotation)
	m.animStart = time.Now()
	if m.animPending {
		return m, nil
	}
	m.animPending = true
	return m, animTick()
}

func (m WheelModel) updateAnimation() (WheelModel, tea.Cmd) {
	elapsed := time.Since(m.animStart)
	t := float64(elapsed) / float64(animDuration)

	if t >= 1.0 {
		m.animating = false
		m.rotation = normalizeAngle(m.animTarget)
		return m, nil
	}

	// Ease-out cubic
	t = 1 - math.Pow(1-t, 3)
	m.rotation = lerpAngle(m.animFrom, m.animTarget, t)

	m.animPending = true
	return m, animTick()
}

// View renders the wheel view.
func (m WheelModel) View() string {
	if m.width < 20 || m.height < 10 {
		return "Wheel view requires larger terminal"
	}
	if m.snapshot.Chart == nil {
		return "No chart loaded"
	}

	viewHeight := m.height - 4
	canvas := render.RenderTerminal(m.scene(), m.width, viewHeight, render.TermOptions{
		Focus:  m.Focused(),
		Labels: m.labelMode,
		Plain:  m.plain,
	})

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(canvas.String())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m WheelModel) scene() render.Scene {
	opts := []render.Option{
		render.WithRotation(m.rotation),
		render.WithLayoutConfig(m.snapshot.Config),
	}
	if m.ticks {
		opts = append(opts, render.WithTicks())
	}
	return render.BuildScene(m.snapshot.Chart, m.snapshot.Theme, opts...)
}

func (m WheelModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorTitle))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent))

	parts := []string{
		titleStyle.Render("Wheel"),
		dimStyle.Render("Labels: ") + accentStyle.Render(m.labelMode.String()),
		dimStyle.Render(fmt.Sprintf("Rot:%.0f°", m.rotation)),
		dimStyle.Render(fmt.Sprintf("Min:%.1f°", m.snapshot.Config.MinAngularDistance)),
	}
	if m.snapshot.Layout.Saturated {
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27")).Render("saturated"))
	}
	return strings.Join(parts, " | ")
}

func (m WheelModel) renderStatus() string {
	name := m.Focused()
	if name == "" {
		return "No planets placed"
	}
	o, _ := m.snapshot.Layout.Find(name)
	ps := m.snapshot.Theme.Registry.Resolve(name)
	z := astro.Position(o.TrueLon)

	line := fmt.Sprintf(">>> %s %s | %s %s | render %.2f° | shift %+.2f°",
		ps.Symbol, name, z.Sign().Name, astro.FormatDMS(o.TrueLon), o.RenderLon, o.Displacement())

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent))
	status := accentStyle.Render(line)

	if partners := m.clusterPartners(name); len(partners) > 0 {
		dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
		status += "\n" + dimStyle.Render("    crowded with "+strings.Join(partners, ", "))
	}
	return status
}

func (m WheelModel) clusterPartners(name string) []string {
	l := m.snapshot.Layout
	for i, o := range l.Objects {
		if o.ID != name {
			continue
		}
		ci := l.ClusterOf(i)
		if ci < 0 {
			return nil
		}
		var out []string
		for _, idx := range l.Clusters[ci].Members {
			if id := l.Objects[idx].ID; id != name {
				out = append(out, id)
			}
		}
		return out
	}
	return nil
}

// normalizeAngle wraps angle to -180..+180 range
func normalizeAngle(a float64) float64 {
	for a > 180 {
		a -= 360
	}
	for a < -180 {
		a += 360
	}
	return a
}

// lerpAngle interpolates between angles, taking shortest path
func lerpAngle(a, b, t float64) float64 {
	diff := normalizeAngle(b - a)
	return a + diff*t
}

// Init returns nil cmd
func (m WheelModel) Init() tea.Cmd {
	return nil
}
