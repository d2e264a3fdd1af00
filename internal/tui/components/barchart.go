package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sachihirani/supplier-risk-dashboard/internal/tui/themes"
)

// Bar is one row of a horizontal bar chart. Display is printed after the bar.
type Bar struct {
	Label   string
	Display string
	Value   float64
}

const (
	maxLabelWidth = 24
	minBarWidth   = 4
	barRune       = "█"
)

// NoDataMessage is shown by charts with nothing to plot.
const NoDataMessage = "No data"

// RenderBarChart draws bars scaled to the largest value so that every line
// fits in width columns.
func RenderBarChart(theme themes.Theme, title string, bars []Bar, width int) string {
	lines := []string{theme.Subtitle.Render(title)}
	if len(bars) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Muted).Render(NoDataMessage))
		return strings.Join(lines, "\n")
	}

	labelWidth, displayWidth := 0, 0
	maxValue := 0.0
	for _, b := range bars {
		labelWidth = max(labelWidth, lipgloss.Width(b.Label))
		displayWidth = max(displayWidth, lipgloss.Width(b.Display))
		maxValue = max(maxValue, b.Value)
	}
	labelWidth = min(labelWidth, maxLabelWidth)
	barWidth := max(minBarWidth, width-labelWidth-displayWidth-2)

	for _, b := range bars {
		n := 0
		if maxValue > 0 && b.Value > 0 {
			n = max(1, int(b.Value/maxValue*float64(barWidth)+0.5))
		}
		lines = append(lines, fmt.Sprintf("%-*s %s%s %s",
			labelWidth, truncate(b.Label, labelWidth),
			theme.Bar.Render(strings.Repeat(barRune, n)),
			strings.Repeat(" ", barWidth-n),
			b.Display,
		))
	}

	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
