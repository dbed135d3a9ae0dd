package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the UI reacts to.
type keyMap struct {
	Quit       key.Binding
	SwitchView key.Binding
	Wheel      key.Binding
	Table      key.Binding
	Reload     key.Binding
	Wider      key.Binding
	Narrower   key.Binding
	RotateCCW  key.Binding
	RotateCW   key.Binding
	FocusNext  key.Binding
	FocusPrev  key.Binding
	Labels     key.Binding
	Glyphs     key.Binding
	Ticks      key.Binding
	Help       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		SwitchView: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
		Wheel:      key.NewBinding(key.WithKeys("1", "w"), key.WithHelp("1", "wheel")),
		Table:      key.NewBinding(key.WithKeys("2", "p"), key.WithHelp("2", "placements")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Wider:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "min distance")),
		Narrower:   key.NewBinding(key.WithKeys("-", "_")),
		RotateCCW:  key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "rotate")),
		RotateCW:   key.NewBinding(key.WithKeys("]")),
		FocusNext:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/k", "focus")),
		FocusPrev:  key.NewBinding(key.WithKeys("up", "k")),
		Labels:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "labels")),
		Glyphs:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "glyphs")),
		Ticks:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "ticks")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FocusNext, k.RotateCCW, k.Wider, k.Labels, k.SwitchView, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Wheel, k.Table, k.SwitchView},
		{k.FocusNext, k.RotateCCW, k.Wider},
		{k.Labels, k.Glyphs, k.Ticks},
		{k.Reload, k.Help, k.Quit},
	}
}
