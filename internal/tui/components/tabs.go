package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sachihirani/supplier-risk-dashboard/internal/tui/themes"
)

// RenderTabs draws the tab bar with the active tab highlighted.
func RenderTabs(theme themes.Theme, titles []string, active int) string {
	rendered := make([]string, len(titles))
	for i, title := range titles {
		if i == active {
			rendered[i] = theme.ActiveTab.Render(title)
		} else {
			rendered[i] = theme.InactiveTab.Render(title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, rendered...)
}
