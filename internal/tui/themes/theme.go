// Package themes holds the lipgloss styles of the terminal dashboard.
package themes

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	Highlighted   lipgloss.Style
	RoundedBox    lipgloss.Style
	ActiveTab     lipgloss.Style
	InactiveTab   lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusInfo    lipgloss.Style
	Bar           lipgloss.Style
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
	Success       lipgloss.Color
	Info          lipgloss.Color
}

func newTheme(primary, secondary, fg, muted, border, success, warning, errColor, info lipgloss.Color) Theme {
	return Theme{
		Primary:   primary,
		Secondary: secondary,
		Muted:     muted,
		Border:    border,
		Error:     errColor,
		Warning:   warning,
		Success:   success,
		Info:      info,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Selected: lipgloss.NewStyle().
			Background(primary).
			Foreground(fg).
			Bold(true),
		Highlighted: lipgloss.NewStyle().
			Background(border).
			Foreground(fg),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true, true, false, true).
			BorderForeground(primary).
			Foreground(primary).
			Bold(true).
			Padding(0, 1),
		InactiveTab: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true, true, false, true).
			BorderForeground(border).
			Foreground(muted).
			Padding(0, 1),
		StatusSuccess: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(warning).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(info).
			Bold(true),
		Bar: lipgloss.NewStyle().
			Foreground(primary),
	}
}

// Default is the default theme.
var Default = newTheme(
	lipgloss.Color("#7c3aed"),
	lipgloss.Color("#a78bfa"),
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#737373"),
	lipgloss.Color("#404040"),
	lipgloss.Color("#10b981"),
	lipgloss.Color("#f59e0b"),
	lipgloss.Color("#ef4444"),
	lipgloss.Color("#3b82f6"),
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(
	lipgloss.Color("#cba6f7"),
	lipgloss.Color("#f5c2e7"),
	lipgloss.Color("#cdd6f4"),
	lipgloss.Color("#6c7086"),
	lipgloss.Color("#45475a"),
	lipgloss.Color("#a6e3a1"),
	lipgloss.Color("#f9e2af"),
	lipgloss.Color("#f38ba8"),
	lipgloss.Color("#89dceb"),
)

var registry = map[string]Theme{
	"default":          Default,
	"catppuccin-mocha": CatppuccinMocha,
}

// GetTheme returns a theme by name, falling back to Default.
func GetTheme(name string) Theme {
	if t, ok := registry[name]; ok {
		return t
	}
	return Default
}

// Names lists the registered theme names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RiskStyle colours a mean risk score from low (success) to high (error).
func (t Theme) RiskStyle(mean float64) lipgloss.Style {
	switch {
	case mean >= 2.5:
		return t.StatusError
	case mean >= 1.5:
		return t.StatusWarning
	default:
		return t.StatusSuccess
	}
}
