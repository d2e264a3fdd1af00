package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sachihirani/supplier-risk-dashboard/internal/insights"
	"github.com/sachihirani/supplier-risk-dashboard/internal/tui/components"
)

const (
	filterPanelWidth = 34
	// Terminals narrower than this hide the filter panel unless it has focus.
	sideBySideWidth = 110
)

func (m Model) showSidePanel() bool {
	return m.width >= sideBySideWidth
}

func (m Model) contentWidth() int {
	if m.showSidePanel() {
		return max(40, m.width-filterPanelWidth-3)
	}
	return max(40, m.width-2)
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.renderLoading()
	}

	header := m.renderHeader()
	tabs := components.RenderTabs(m.theme, tabTitles, int(m.tab))

	var body string
	switch {
	case m.focus == focusFilters && !m.showSidePanel():
		body = m.renderFilterPanel()
	case m.showSidePanel():
		body = lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.renderFilterPanel(),
			m.theme.Normal.Render(" │ "),
			m.renderTab(),
		)
	default:
		body = m.renderTab()
	}

	parts := []string{header, tabs, body}
	if m.config.ShowHelp {
		parts = append(parts, "", m.help.View(m.keymap))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render("Supplier Risk Dashboard"),
		m.spinner.View()+" Loading invoices...",
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderHeader() string {
	status := fmt.Sprintf("%s invoices · as of %s · %s",
		insights.FormatCount(len(m.filtered)),
		insights.FormatHeaderDate(m.referenceDate),
		m.filter.Describe(),
	)
	if m.config.Source != "" {
		status += " · " + m.config.Source
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render("Supplier Risk Dashboard"),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(status),
	)
}

func (m Model) renderFilterPanel() string {
	title := "Filters"
	if m.focus == focusFilters {
		title += "  (Tab: next control · Space: toggle · c: clear · Esc: done)"
	} else {
		title += "  (f to edit)"
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Subtitle.Render(title),
		m.filters.View(),
	)
}

func (m Model) renderTab() string {
	switch m.tab {
	case TabRiskOverview:
		return m.renderRiskOverview()
	case TabToPayHub:
		return m.renderToPayHub()
	case TabSupplierProfile:
		return m.renderSupplierProfile()
	default:
		return m.renderKeyInsights()
	}
}

func (m Model) renderKeyInsights() string {
	ki := m.snapshot.KeyInsights
	width := m.contentWidth()

	kpis := components.RenderKPIs(m.theme, []components.KPI{
		{Label: "Total Invoice Amount", Value: insights.FormatMoney(ki.TotalAmount)},
		{Label: "Total Invoices", Value: insights.FormatCount(ki.TotalInvoices)},
		{Label: "Paid On Time", Value: insights.FormatCount(ki.PaidOnTime)},
		{Label: "Paid Late", Value: insights.FormatCount(ki.PaidLate)},
		{Label: "% Paid Late", Value: ki.FormatLatePercent()},
		{Label: "Average Invoice Amount", Value: insights.FormatAverage(ki.AverageAmount)},
		{Label: "Average Days Late", Value: ki.FormatAverageDaysLate()},
	}, width)

	monthly := make([]components.Bar, len(ki.Monthly))
	lateTrend := make([]components.Bar, len(ki.Monthly))
	for i, p := range ki.Monthly {
		f, _ := p.Amount.Float64()
		monthly[i] = components.Bar{Label: p.Month, Value: f, Display: insights.FormatMoney(p.Amount)}
		lateTrend[i] = components.Bar{Label: p.Month, Value: p.LatePercent, Display: insights.FormatPercent(p.LatePercent)}
	}

	status := make([]components.Bar, len(ki.StatusCounts))
	for i, c := range ki.StatusCounts {
		status[i] = components.Bar{Label: c.Label, Value: float64(c.Count), Display: insights.FormatCount(c.Count)}
	}

	byAmount := make([]components.Bar, len(ki.TopByAmount))
	for i, s := range ki.TopByAmount {
		f, _ := s.Amount.Float64()
		byAmount[i] = components.Bar{Label: s.Name, Value: f, Display: insights.FormatMoney(s.Amount)}
	}

	byCount := make([]components.Bar, len(ki.TopByCount))
	for i, s := range ki.TopByCount {
		byCount[i] = components.Bar{Label: s.Name, Value: float64(s.Invoices), Display: insights.FormatCount(s.Invoices)}
	}

	half := width/2 - 2
	return lipgloss.JoinVertical(
		lipgloss.Left,
		kpis,
		"",
		m.twoColumns(
			components.RenderBarChart(m.theme, "Monthly Invoice Amount", monthly, half),
			components.RenderBarChart(m.theme, "Late Payment % Over Time", lateTrend, half),
		),
		"",
		components.RenderBarChart(m.theme, "Invoice Status", status, half),
		"",
		m.twoColumns(
			components.RenderBarChart(m.theme, "Top 10 Suppliers by Invoice Amount", byAmount, half),
			components.RenderBarChart(m.theme, "Top 10 Suppliers by Invoice Count", byCount, half),
		),
	)
}

// twoColumns places charts side by side on wide terminals and stacks them
// on narrow ones.
func (m Model) twoColumns(left, right string) string {
	if m.contentWidth() < 80 {
		return lipgloss.JoinVertical(lipgloss.Left, left, "", right)
	}
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().PaddingRight(3).Render(left),
		right,
	)
}

func (m Model) renderRiskOverview() string {
	ro := m.snapshot.RiskOverview
	width := m.contentWidth()

	kpis := components.RenderKPIs(m.theme, []components.KPI{
		{Label: "Duplicate ABNs", Value: insights.FormatCount(ro.DuplicateABN)},
		{Label: "Duplicate Invoices", Value: insights.FormatCount(ro.DuplicateInvoice)},
		{Label: "High Amount Invoices > 30k", Value: insights.FormatCount(ro.HighAmount)},
	}, width)

	var distribution string
	if ro.Warning != "" {
		distribution = lipgloss.JoinVertical(
			lipgloss.Left,
			m.theme.Subtitle.Render("Invoices by Risk Score"),
			m.theme.StatusWarning.Render(ro.Warning),
		)
	} else {
		bars := make([]components.Bar, len(ro.Distribution))
		for i, rc := range ro.Distribution {
			bars[i] = components.Bar{Label: rc.Score.Label(), Value: float64(rc.Count), Display: insights.FormatCount(rc.Count)}
		}
		distribution = components.RenderBarChart(m.theme, "Invoices by Risk Score", bars, width/2-2)
	}

	selector := m.renderSelector("Risk list", m.riskScore.Label())
	return lipgloss.JoinVertical(
		lipgloss.Left,
		kpis,
		"",
		m.twoColumns(m.renderHeatmap(ro.Heatmap), distribution),
		"",
		selector,
		m.renderTable(),
	)
}

func (m Model) renderHeatmap(h insights.Heatmap) string {
	lines := []string{m.theme.Subtitle.Render("Average Risk Score by Service Category and Supplier Type")}
	if h.Empty() {
		lines = append(lines, lipgloss.NewStyle().Foreground(m.theme.Muted).Render(components.NoDataMessage))
		return strings.Join(lines, "\n")
	}

	rowWidth := 0
	for _, r := range h.Rows {
		rowWidth = max(rowWidth, lipgloss.Width(r))
	}
	rowWidth = min(rowWidth, 20)
	colWidth := 0
	for _, c := range h.Columns {
		colWidth = max(colWidth, lipgloss.Width(c))
	}
	colWidth = max(6, min(colWidth, 14))

	header := fmt.Sprintf("%-*s", rowWidth, "")
	for _, c := range h.Columns {
		header += " " + fmt.Sprintf("%*s", colWidth, truncateLabel(c, colWidth))
	}
	lines = append(lines, m.theme.Bold.Render(header))

	for _, r := range h.Rows {
		line := fmt.Sprintf("%-*s", rowWidth, truncateLabel(r, rowWidth))
		for _, c := range h.Columns {
			cell, ok := h.Cell(r, c)
			if !ok {
				line += " " + fmt.Sprintf("%*s", colWidth, "·")
				continue
			}
			line += " " + m.theme.RiskStyle(cell.Mean).Render(fmt.Sprintf("%*.2f", colWidth, cell.Mean))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func truncateLabel(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

func (m Model) renderToPayHub() string {
	hub := m.snapshot.ToPayHub
	title := m.theme.Subtitle.Render(hub.Header)
	if hub.Warning != "" {
		return lipgloss.JoinVertical(lipgloss.Left, title, m.theme.StatusWarning.Render(hub.Warning))
	}

	bars := make([]components.Bar, len(hub.Summary))
	for i, s := range hub.Summary {
		bars[i] = components.Bar{
			Label:   s.Label,
			Value:   float64(s.Count),
			Display: fmt.Sprintf("%s · %s", insights.FormatCount(s.Count), insights.FormatMoneyCents(s.Amount)),
		}
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		components.RenderBarChart(m.theme, hub.Header, bars, m.contentWidth()-2),
		"",
		m.renderSelector("Invoices", m.SelectedBucket().Label()),
		m.renderTable(),
	)
}

func (m Model) renderSupplierProfile() string {
	if m.profile == nil {
		return m.theme.StatusWarning.Render("No suppliers match the current filters.")
	}
	p := m.profile
	width := m.contentWidth()

	info := components.RenderKPIs(m.theme, []components.KPI{
		{Label: "Name", Value: p.Name},
		{Label: "ABN", Value: p.ABN},
		{Label: "Country", Value: p.Country},
		{Label: "Service Category", Value: p.ServiceCategory},
		{Label: "Supplier Type", Value: p.SupplierType},
		{Label: "Terms (Days)", Value: fmt.Sprintf("%d", p.TermsDays)},
		{Label: "Contact", Value: p.Contact()},
	}, width)

	stats := components.RenderKPIs(m.theme, []components.KPI{
		{Label: "Invoices", Value: insights.FormatCount(p.InvoiceCount)},
		{Label: "Total Amount", Value: insights.FormatMoneyCents(p.TotalAmount)},
		{Label: "Average Amount", Value: insights.FormatAverage(p.AverageAmount)},
	}, width)

	late := make([]components.Bar, len(p.MonthlyLate))
	for i, pt := range p.MonthlyLate {
		late[i] = components.Bar{Label: pt.Month, Value: pt.LatePercent, Display: insights.FormatPercent(pt.LatePercent)}
	}
	risk := make([]components.Bar, len(p.RiskDistribution))
	for i, rc := range p.RiskDistribution {
		risk[i] = components.Bar{Label: rc.Score.Label(), Value: float64(rc.Count), Display: insights.FormatCount(rc.Count)}
	}

	half := width/2 - 2
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderSelector("Supplier", p.Name),
		info,
		stats,
		"",
		m.twoColumns(
			components.RenderBarChart(m.theme, "% Paid Late by Month", late, half),
			components.RenderBarChart(m.theme, "Risk Score Distribution", risk, half),
		),
		"",
		m.renderTable(),
	)
}

func (m Model) renderSelector(label, value string) string {
	return fmt.Sprintf("%s  %s %s %s",
		m.theme.Subtitle.Render(label),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("◀"),
		m.theme.Bold.Render(value),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("▶"),
	)
}

func (m Model) renderTable() string {
	if m.table.RowCount() == 0 {
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Render("No invoices.")
	}
	return m.table.View()
}
