// Package state provides thread-safe state management for the application.
package state

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/litescript/ls-wheel/internal/chart"
	"github.com/litescript/ls-wheel/internal/layout"
	"github.com/litescript/ls-wheel/internal/style"
)

// EventType represents the type of placement change.
type EventType string

const (
	EventAppeared  EventType = "APPEARED"
	EventHidden    EventType = "HIDDEN"
	EventClustered EventType = "CLUSTERED"
	EventSeparated EventType = "SEPARATED"
)

// Event represents a change in how a planet is placed between two layouts.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Planet    string    `json:"planet"`
	Cluster   []string  `json:"cluster,omitempty"`
	RenderLon float64   `json:"render_lon"`
	Shift     float64   `json:"shift"`
}

// HistoryEntry represents a single point in the history buffer.
type HistoryEntry struct {
	Timestamp   time.Time
	MinDistance float64
	Layout      layout.Layout
}

// TimeSeries is a single data point with timestamp.
type TimeSeries struct {
	Timestamp time.Time
	Value     float64
}

// placement is what event detection remembers about a planet.
type placement struct {
	cluster string // comma-joined member names
	size    int
}

// Manager holds the chart being viewed, its theme and the current layout.
type Manager struct {
	mu sync.RWMutex

	// Current state
	chart        *chart.Chart
	theme        style.Theme
	cfg          layout.Config
	current      layout.Layout
	lastLoad     time.Time
	lastError    error
	loadDuration time.Duration

	// Previous placements for event detection
	prev      map[string]placement
	prevOrder []string

	// History buffers
	history       []HistoryEntry
	maxHistoryLen int
	shifts        map[string][]TimeSeries
	maxShiftHist  int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	// Configuration
	refreshInterval time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	MaxHistoryLen   int
	MaxShiftHist    int
	MaxEvents       int
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistoryLen:   20,
		MaxShiftHist:    60,
		MaxEvents:       50,
		RefreshInterval: 2 * time.Second,
	}
}

// NewManager creates a state manager that lays out with th's settings.
func NewManager(cfg Config, th style.Theme) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		theme:           th,
		cfg:             th.LayoutConfig(),
		maxHistoryLen:   cfg.MaxHistoryLen,
		maxShiftHist:    cfg.MaxShiftHist,
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
		shifts:          make(map[string][]TimeSeries),
		prev:            make(map[string]placement),
	}
}

// Update installs a freshly loaded chart and lays it out. A nil chart
// records the error and keeps the previous layout.
func (m *Manager) Update(c *chart.Chart, loadDuration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastLoad = time.Now()
	m.lastError = err
	m.loadDuration = loadDuration

	if c == nil {
		return
	}
	m.chart = c
	m.replan()
}

// SetTheme swaps the theme and re-lays out with its settings.
func (m *Manager) SetTheme(th style.Theme) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.theme = th
	m.cfg = th.LayoutConfig()
	if m.chart != nil {
		m.replan()
	}
}

// SetMinDistance changes the collision threshold and re-lays out.
func (m *Manager) SetMinDistance(deg float64) error {
	cfg := layout.Config{MinAngularDistance: deg}
	if err := cfg.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg
	if m.chart != nil {
		m.replan()
	}
	return nil
}

// MinDistance returns the collision threshold in use.
func (m *Manager) MinDistance() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg.MinAngularDistance
}

// replan must be called with m.mu held.
func (m *Manager) replan() {
	l := layout.Plan(m.chart.Objects(m.theme.Registry), m.cfg)

	m.detectEvents(l)
	m.current = l

	now := time.Now()
	m.history = append(m.history, HistoryEntry{
		Timestamp:   now,
		MinDistance: m.cfg.MinAngularDistance,
		Layout:      l,
	})
	if len(m.history) > m.maxHistoryLen {
		m.history = m.history[1:]
	}

	m.updateShiftHistory(l, now)

	m.prev = make(map[string]placement, len(l.Objects))
	m.prevOrder = m.prevOrder[:0]
	for i, o := range l.Objects {
		m.prev[o.ID] = placementOf(l, i)
		m.prevOrder = append(m.prevOrder, o.ID)
	}
}

func placementOf(l layout.Layout, i int) placement {
	ci := l.ClusterOf(i)
	if ci < 0 {
		return placement{cluster: l.Objects[i].ID, size: 1}
	}
	members := memberNames(l, ci)
	return placement{cluster: strings.Join(members, ","), size: len(members)}
}

func memberNames(l layout.Layout, ci int) []string {
	c := l.Clusters[ci]
	names := make([]string, len(c.Members))
	for j, idx := range c.Members {
		names[j] = l.Objects[idx].ID
	}
	slices.Sort(names)
	return names
}

// detectEvents compares the new layout with the previous one.
func (m *Manager) detectEvents(l layout.Layout) {
	now := time.Now()
	seen := make(map[string]bool, len(l.Objects))

	for i, o := range l.Objects {
		seen[o.ID] = true
		cur := placementOf(l, i)
		old, was := m.prev[o.ID]

		e := Event{
			Timestamp: now,
			Planet:    o.ID,
			RenderLon: o.RenderLon,
			Shift:     o.Displacement(),
		}
		if cur.size > 1 {
			e.Cluster = strings.Split(cur.cluster, ",")
		}

		switch {
		case !was:
			e.Type = EventAppeared
		case old.cluster == cur.cluster:
			continue
		case cur.size > 1:
			e.Type = EventClustered
		default:
			e.Type = EventSeparated
		}
		m.addEvent(e)
	}

	for _, id := range m.prevOrder {
		if !seen[id] {
			m.addEvent(Event{Type: EventHidden, Timestamp: now, Planet: id})
		}
	}
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

func (m *Manager) updateShiftHistory(l layout.Layout, ts time.Time) {
	for _, o := range l.Objects {
		hist := append(m.shifts[o.ID], TimeSeries{Timestamp: ts, Value: o.Displacement()})
		if len(hist) > m.maxShiftHist {
			hist = hist[1:]
		}
		m.shifts[o.ID] = hist
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Chart        *chart.Chart
	Theme        style.Theme
	Config       layout.Config
	Layout       layout.Layout
	LastLoad     time.Time
	LastError    error
	LoadDuration time.Duration
	Events       []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l := layout.Layout{
		Objects:   slices.Clone(m.current.Objects),
		Clusters:  slices.Clone(m.current.Clusters),
		Saturated: m.current.Saturated,
	}

	return Snapshot{
		Chart:        m.chart,
		Theme:        m.theme,
		Config:       m.cfg,
		Layout:       l,
		LastLoad:     m.lastLoad,
		LastError:    m.lastError,
		LoadDuration: m.loadDuration,
		Events:       m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// History returns the retained layouts, oldest first.
func (m *Manager) History() []HistoryEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.history)
}

// ShiftHistory returns the recorded displacement of a planet over time,
// or nil if it was never placed.
func (m *Manager) ShiftHistory(planet string) []TimeSeries {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.shifts[planet])
}

// RefreshInterval returns how often a watched chart file is polled.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}

// HasData returns true once a chart has been loaded.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.chart != nil
}
