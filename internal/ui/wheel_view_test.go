package ui

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-wheel/internal/chart"
	"github.com/litescript/ls-wheel/internal/render"
	"github.com/litescript/ls-wheel/internal/state"
	"github.com/litescript/ls-wheel/internal/style"
)

func testManager(planets ...chart.Planet) *state.Manager {
	mgr := state.NewManager(state.DefaultConfig(), style.DefaultTheme())
	c := &chart.Chart{AscLon: 0, Planets: planets}
	for i := 0; i < 12; i++ {
		c.Houses = append(c.Houses, chart.House{ID: i + 1, AbsLon: float64(i * 30)})
	}
	mgr.Update(c, time.Millisecond, nil)
	return mgr
}

func defaultPlanets() []chart.Planet {
	return []chart.Planet{
		{Name: "Su", AbsLon: 10},
		{Name: "Mo", AbsLon: 12, Retro: true},
		{Name: "Ma", AbsLon: 200},
	}
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0, 0},
		{180, 180},
		{-180, -180},
		{360, 0},
		{-360, 0},
		{350, -10},
		{370, 10},
		{-190, 170},
		{540, 180},
		{-540, -180},
	}

	for _, tt := range tests {
		got := normalizeAngle(tt.input)
		if math.Abs(got-tt.expected) > 0.001 {
			t.Errorf("normalizeAngle(%v) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestLerpAngle_ShortestPath(t *testing.T) {
	tests := []struct {
		from     float64
		to       float64
		t        float64
		expected float64
	}{
		{0, 90, 0.5, 45},
		{0, 180, 0.5, 90},

		// 350 to 10 goes +20, not -340
		{350, 10, 0.5, 360},
		{350, 10, 0.0, 350},
		{350, 10, 1.0, 370},

		{10, 350, 0.5, 0},
		{10, 350, 1.0, -10},
	}

	for _, tt := range tests {
		got := lerpAngle(tt.from, tt.to, tt.t)
		gotNorm := normalizeAngle(got)
		expNorm := normalizeAngle(tt.expected)

		diff := math.Abs(gotNorm - expNorm)
		if diff > 180 {
			diff = 360 - diff
		}

		if diff > 0.001 {
			t.Errorf("lerpAngle(%v, %v, %v) = %v (norm: %v), want %v (norm: %v)",
				tt.from, tt.to, tt.t, got, gotNorm, tt.expected, expNorm)
		}
	}
}

func TestWheelModel_UpdateDataKeepsFocus(t *testing.T) {
	m := NewWheelModel().UpdateData(testManager(defaultPlanets()...).Snapshot())
	if got := m.Focused(); got != "Su" {
		t.Fatalf("initial focus = %q, want Su", got)
	}

	m, _ = m.Update(keyPress("j"))
	if got := m.Focused(); got != "Mo" {
		t.Fatalf("focus after j = %q, want Mo", got)
	}

	// Mo survives a reload, so focus stays on it
	moved := defaultPlanets()
	moved[2].AbsLon = 100
	m = m.UpdateData(testManager(moved...).Snapshot())
	if got := m.Focused(); got != "Mo" {
		t.Errorf("focus after reload = %q, want Mo", got)
	}

	// Without Mo focus falls back to the first planet
	m = m.UpdateData(testManager(defaultPlanets()[0], defaultPlanets()[2]).Snapshot())
	if got := m.Focused(); got != "Su" {
		t.Errorf("focus after Mo vanished = %q, want Su", got)
	}

	if got := NewWheelModel().Focused(); got != "" {
		t.Errorf("empty model focus = %q", got)
	}
}

func TestWheelModel_FocusRotatesPlanetToLeft(t *testing.T) {
	m := NewWheelModel().UpdateData(testManager(defaultPlanets()...).Snapshot())

	m, cmd := m.Update(keyPress("k"))
	if cmd == nil {
		t.Fatal("focus change should start an animation")
	}
	if got := m.Focused(); got != "Ma" {
		t.Fatalf("focus after k = %q, want Ma (wraps)", got)
	}
	if !m.animating {
		t.Fatal("not animating")
	}
	// Ma at 200 with the ascendant at 0: shortest turn is -160
	if math.Abs(m.animTarget-(-160)) > 1e-9 {
		t.Errorf("animTarget = %v, want -160", m.animTarget)
	}
}

func TestWheelModel_RotateKeys(t *testing.T) {
	m := NewWheelModel()

	m, cmd := m.Update(keyPress("["))
	if cmd == nil {
		t.Fatal("rotation should schedule an animation tick")
	}
	if m.animTarget != 30 {
		t.Errorf("animTarget = %v, want 30", m.animTarget)
	}

	// A second press while animating extends the target without a second
	// tick loop
	m, cmd = m.Update(keyPress("["))
	if cmd != nil {
		t.Error("second press should reuse the running tick")
	}
	if m.animTarget != 60 {
		t.Errorf("animTarget = %v, want 60", m.animTarget)
	}

	m, _ = m.Update(keyPress("]"))
	if m.animTarget != 30 {
		t.Errorf("animTarget = %v, want 30", m.animTarget)
	}
}

func TestWheelModel_AnimationCompletes(t *testing.T) {
	m := NewWheelModel()
	m, _ = m.Update(keyPress("["))

	// Mid-animation the wheel is between start and target
	m.animStart = time.Now().Add(-animDuration / 2)
	m, cmd := m.Update(animTickMsg(time.Now()))
	if cmd == nil || !m.animating {
		t.Fatal("animation ended early")
	}
	if m.Rotation() <= 0 || m.Rotation() >= 30 {
		t.Errorf("mid rotation = %v, want within (0, 30)", m.Rotation())
	}

	m.animStart = time.Now().Add(-2 * animDuration)
	m, cmd = m.Update(animTickMsg(time.Now()))
	if cmd != nil || m.animating {
		t.Error("animation should have finished")
	}
	if m.Rotation() != 30 {
		t.Errorf("final rotation = %v, want 30", m.Rotation())
	}

	// Stray ticks after the end are ignored
	if _, cmd := m.Update(animTickMsg(time.Now())); cmd != nil {
		t.Error("idle model scheduled a tick")
	}
}

func TestWheelModel_Toggles(t *testing.T) {
	m := NewWheelModel()
	if m.labelMode != render.TermLabelFocused {
		t.Fatalf("default label mode = %v", m.labelMode)
	}

	m, _ = m.Update(keyPress("l"))
	if m.labelMode != render.TermLabelAll {
		t.Errorf("after l: %v, want all", m.labelMode)
	}
	m, _ = m.Update(keyPress("l"))
	m, _ = m.Update(keyPress("l"))
	if m.labelMode != render.TermLabelFocused {
		t.Errorf("label mode should cycle back to focus, got %v", m.labelMode)
	}

	m, _ = m.Update(keyPress("g"))
	m, _ = m.Update(keyPress("t"))
	if !m.plain || !m.ticks {
		t.Errorf("plain=%v ticks=%v, want both on", m.plain, m.ticks)
	}
}

func TestWheelModel_View(t *testing.T) {
	if got := NewWheelModel().SetSize(10, 5).View(); !strings.Contains(got, "larger terminal") {
		t.Errorf("small view = %q", got)
	}
	if got := NewWheelModel().SetSize(80, 30).View(); got != "No chart loaded" {
		t.Errorf("empty view = %q", got)
	}

	m := NewWheelModel().SetSize(80, 30).UpdateData(testManager(defaultPlanets()...).Snapshot())
	view := m.View()
	if !strings.Contains(view, "Wheel") {
		t.Error("header missing")
	}
	if !strings.Contains(view, ">>> ☉ Su") {
		t.Error("focused status missing")
	}
	if !strings.Contains(view, "crowded with Mo") {
		t.Error("cluster partners missing")
	}
}
