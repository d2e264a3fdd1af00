package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	NextTab key.Binding
	PrevTab key.Binding
	JumpTab key.Binding
	Up      key.Binding
	Down    key.Binding

	// Selection within a tab
	PrevItem key.Binding
	NextItem key.Binding

	// Filters
	Filters key.Binding
	Reset   key.Binding
	Back    key.Binding

	// Application
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab", "]"),
			key.WithHelp("Tab/]", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "["),
			key.WithHelp("S-Tab/[", "previous tab"),
		),
		JumpTab: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "jump to tab"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		PrevItem: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "previous score, bucket or supplier"),
		),
		NextItem: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "next score, bucket or supplier"),
		),
		Filters: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "edit filters"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset filters"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close filters"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.PrevItem, k.NextItem, k.Filters, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.JumpTab},
		{k.Up, k.Down, k.PrevItem, k.NextItem},
		{k.Filters, k.Reset, k.Back},
		{k.Help, k.Quit},
	}
}
