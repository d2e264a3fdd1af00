package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	tuitest "github.com/sachihirani/supplier-risk-dashboard/internal/tui/testing"
	"github.com/sachihirani/supplier-risk-dashboard/internal/tui/themes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBarChart(t *testing.T) {
	tests := []struct {
		name     string
		bars     []Bar
		width    int
		contains []string
		excludes []string
	}{
		{
			name:     "empty chart",
			bars:     nil,
			width:    40,
			contains: []string{"Title", NoDataMessage},
		},
		{
			name: "scales to largest value",
			bars: []Bar{
				{Label: "2024-01", Value: 10, Display: "$10"},
				{Label: "2024-02", Value: 5, Display: "$5"},
			},
			width:    40,
			contains: []string{"2024-01", "$10", "2024-02", "$5"},
			excludes: []string{NoDataMessage},
		},
		{
			name: "long labels are truncated",
			bars: []Bar{
				{Label: strings.Repeat("Supplier", 5), Value: 1, Display: "1"},
			},
			width:    60,
			contains: []string{"…"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tuitest.StripANSI(RenderBarChart(themes.Default, "Title", tt.bars, tt.width))
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRenderBarChart_BarLengths(t *testing.T) {
	bars := []Bar{
		{Label: "a", Value: 100, Display: "100"},
		{Label: "b", Value: 50, Display: "50"},
		{Label: "c", Value: 0, Display: "0"},
		{Label: "d", Value: 0.1, Display: "0.1"},
	}
	out := tuitest.StripANSI(RenderBarChart(themes.Default, "T", bars, 30))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)

	count := func(line string) int { return strings.Count(line, barRune) }
	full := count(lines[1])
	assert.Positive(t, full)
	assert.InDelta(t, full/2, count(lines[2]), 1)
	assert.Zero(t, count(lines[3]))
	assert.Equal(t, 1, count(lines[4]), "small positive values still get a bar")

	for _, line := range lines[1:] {
		assert.LessOrEqual(t, lipgloss.Width(line), 30)
	}
}

func TestRenderKPIs(t *testing.T) {
	kpis := []KPI{
		{Label: "Total Invoices", Value: "9"},
		{Label: "% Paid Late", Value: "22.2%"},
		{Label: "Average Days Late", Value: "15.5 days"},
	}

	wide := tuitest.StripANSI(RenderKPIs(themes.Default, kpis, 200))
	assert.True(t, tuitest.ContainsInOrder(wide, "Total Invoices", "% Paid Late", "Average Days Late"))
	assert.Contains(t, wide, "22.2%")

	narrow := RenderKPIs(themes.Default, kpis, 20)
	assert.Greater(t, lipgloss.Height(narrow), lipgloss.Height(RenderKPIs(themes.Default, kpis, 200)),
		"tiles wrap when the width is exhausted")
}

func TestRenderTabs(t *testing.T) {
	titles := []string{"Key Insights", "Risk Overview", "To Pay Hub"}
	out := RenderTabs(themes.Default, titles, 1)

	plain := tuitest.StripANSI(out)
	assert.True(t, tuitest.ContainsInOrder(plain, "Key Insights", "Risk Overview", "To Pay Hub"))

	// Tabs are joined side by side, so each tab shows up line by line.
	lines := strings.Split(out, "\n")
	active := strings.Split(themes.Default.ActiveTab.Render("Risk Overview"), "\n")
	require.Len(t, lines, len(active))
	for i := range active {
		assert.Contains(t, lines[i], active[i], "line %d", i)
	}

	width := 0
	for _, title := range titles {
		width += lipgloss.Width(themes.Default.InactiveTab.Render(title))
	}
	assert.Equal(t, width, lipgloss.Width(RenderTabs(themes.Default, titles, -1)))
}
