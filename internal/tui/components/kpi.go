package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sachihirani/supplier-risk-dashboard/internal/tui/themes"
)

// KPI is a single headline number.
type KPI struct {
	Label string
	Value string
}

const kpiGap = 1

// RenderKPIs lays the tiles out left to right, wrapping onto a new line
// when the next tile would exceed width.
func RenderKPIs(theme themes.Theme, kpis []KPI, width int) string {
	var (
		lines   []string
		current []string
		used    int
	)

	for _, k := range kpis {
		tile := theme.RoundedBox.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			lipgloss.NewStyle().Foreground(theme.Muted).Render(k.Label),
			theme.Bold.Render(k.Value),
		))
		w := lipgloss.Width(tile)
		if len(current) > 0 && width > 0 && used+kpiGap+w > width {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current, used = nil, 0
		}
		if len(current) > 0 {
			current = append(current, lipgloss.NewStyle().Width(kpiGap).Render(""))
			used += kpiGap
		}
		current = append(current, tile)
		used += w
	}
	if len(current) > 0 {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, current...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
