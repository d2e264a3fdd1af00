// Package testing provides helpers for driving dashboard models in tests.
package testing

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyPress creates a rune key message such as "q" or "]".
func KeyPress(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// Key creates a message for a special key.
func Key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// KeySpace creates a space bar message.
func KeySpace() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
}

// WindowSize creates a terminal resize message.
func WindowSize(width, height int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: width, Height: height}
}
