package tui

import (
	"time"

	"github.com/sachihirani/supplier-risk-dashboard/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	ReferenceDate time.Time
	Theme         themes.Theme
	Source        string
	Width         int
	Height        int
	ShowHelp      bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		ReferenceDate: time.Now(),
		Theme:         themes.Default,
		Width:         120,
		Height:        40,
		ShowHelp:      true,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithReferenceDate sets the day unpaid buckets are computed against.
func WithReferenceDate(t time.Time) Option {
	return func(c *Config) {
		c.ReferenceDate = t
	}
}

// WithSource labels where the invoices came from in the status bar.
func WithSource(source string) Option {
	return func(c *Config) {
		c.Source = source
	}
}

// WithHelp toggles the key help footer.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
