package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-wheel/internal/chart"
)

func sized(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

func press(m Model, s string) (Model, tea.Cmd) {
	next, cmd := m.Update(keyPress(s))
	return next.(Model), cmd
}

func TestModel_ViewSwitching(t *testing.T) {
	m := New(testManager(defaultPlanets()...), nil)
	if got := m.View(); got != "Initializing..." {
		t.Errorf("view before size = %q", got)
	}

	m = sized(t, m)
	if m.viewMode != ViewWheel {
		t.Fatalf("default view = %v", m.viewMode)
	}

	m, _ = press(m, "2")
	if m.viewMode != ViewPlacements {
		t.Errorf("after 2: %v", m.viewMode)
	}
	view := m.View()
	if !strings.Contains(view, "Placements") || !strings.Contains(view, "Ma") {
		t.Errorf("placements view missing content:\n%s", view)
	}

	m, _ = press(m, "tab")
	if m.viewMode != ViewWheel {
		t.Errorf("tab should wrap back to the wheel, got %v", m.viewMode)
	}
}

func TestModel_AdjustDistance(t *testing.T) {
	mgr := testManager(defaultPlanets()...)
	m := sized(t, New(mgr, nil))

	m, _ = press(m, "+")
	if got := mgr.MinDistance(); got != 8 {
		t.Errorf("MinDistance after + = %v, want 8", got)
	}
	if m.snapshot.Config.MinAngularDistance != 8 {
		t.Error("model snapshot not refreshed")
	}

	if err := mgr.SetMinDistance(0.5); err != nil {
		t.Fatal(err)
	}
	m, _ = press(m, "-")
	if got := mgr.MinDistance(); got != 0.5 {
		t.Errorf("MinDistance should not drop to zero, got %v", got)
	}
	if !strings.Contains(m.statusMsg, "positive") {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestModel_Reload(t *testing.T) {
	mgr := testManager(defaultPlanets()...)

	m := sized(t, New(mgr, nil))
	m, cmd := press(m, "r")
	if cmd != nil || m.statusMsg != "Nothing to reload" {
		t.Errorf("reload without loader: cmd=%v status=%q", cmd, m.statusMsg)
	}

	loader := func() (*chart.Chart, error) {
		return &chart.Chart{Planets: []chart.Planet{{Name: "Ve", AbsLon: 45}}}, nil
	}
	m = sized(t, New(mgr, loader))
	m, cmd = press(m, "r")
	if cmd == nil {
		t.Fatal("reload should return a command")
	}
	msg := cmd()
	update, ok := msg.(DataUpdateMsg)
	if !ok {
		t.Fatalf("reload produced %T", msg)
	}
	if _, ok := update.Snapshot.Layout.Find("Ve"); !ok {
		t.Error("reloaded chart not laid out")
	}

	next, _ := m.Update(update)
	m = next.(Model)
	if m.wheel.Focused() != "Ve" {
		t.Errorf("wheel focus = %q, want Ve", m.wheel.Focused())
	}

	failing := func() (*chart.Chart, error) { return nil, errors.New("disk gone") }
	m = sized(t, New(mgr, failing))
	_, cmd = press(m, "r")
	if em, ok := cmd().(ErrorMsg); !ok || em.Error.Error() != "disk gone" {
		t.Errorf("failing reload produced %#v", cmd())
	}
	if mgr.Snapshot().LastError == nil {
		t.Error("load error not recorded")
	}
}

func TestModel_ErrorMsg(t *testing.T) {
	m := sized(t, New(testManager(), nil))
	next, _ := m.Update(ErrorMsg{Error: errors.New("bad chart")})
	m = next.(Model)
	if !strings.Contains(m.View(), "bad chart") {
		t.Error("error not shown in footer")
	}
}

func TestModel_Quit(t *testing.T) {
	m := sized(t, New(testManager(), nil))
	_, cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q produced %T, want tea.QuitMsg", cmd())
	}
}
