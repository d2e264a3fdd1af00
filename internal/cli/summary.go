package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sachihirani/supplier-risk-dashboard/internal/insights"
)

// RenderSummary prints the three non-interactive views of a snapshot as
// terminal tables.
func RenderSummary(snap *insights.Snapshot) string {
	ki := snap.KeyInsights
	ro := snap.RiskOverview
	hub := snap.ToPayHub

	parts := []string{
		FormatTitle("Supplier Risk Summary"),
		SubtitleStyle.Render(fmt.Sprintf("As of %s · %s",
			insights.FormatHeaderDate(snap.ReferenceDate), snap.Filter.Describe())),
		"",
		TitleStyle.Render("Key Insights"),
		renderTable([]string{"Metric", "Value"}, [][]string{
			{"Total Invoice Amount", insights.FormatMoney(ki.TotalAmount)},
			{"Total Invoices", insights.FormatCount(ki.TotalInvoices)},
			{"Paid On Time", insights.FormatCount(ki.PaidOnTime)},
			{"Paid Late", insights.FormatCount(ki.PaidLate)},
			{"% Paid Late", ki.FormatLatePercent()},
			{"Average Invoice Amount", insights.FormatAverage(ki.AverageAmount)},
			{"Average Days Late", ki.FormatAverageDaysLate()},
		}),
	}

	if len(ki.TopByAmount) > 0 {
		rows := make([][]string, len(ki.TopByAmount))
		for i, s := range ki.TopByAmount {
			rows[i] = []string{s.Name, insights.FormatMoney(s.Amount), insights.FormatCount(s.Invoices)}
		}
		parts = append(parts, renderTable([]string{"Top Supplier", "Amount", "Invoices"}, rows))
	}

	parts = append(parts,
		"",
		TitleStyle.Render("Risk Overview"),
		renderTable([]string{"Flag", "Invoices"}, [][]string{
			{"Duplicate ABNs", insights.FormatCount(ro.DuplicateABN)},
			{"Duplicate Invoices", insights.FormatCount(ro.DuplicateInvoice)},
			{"High Amount Invoices > 30k", insights.FormatCount(ro.HighAmount)},
		}),
	)
	if ro.Warning != "" {
		parts = append(parts, FormatWarning(ro.Warning))
	} else {
		rows := make([][]string, len(ro.Distribution))
		for i, rc := range ro.Distribution {
			rows[i] = []string{rc.Score.Label(), insights.FormatCount(rc.Count)}
		}
		parts = append(parts, renderTable([]string{"Risk Score", "Invoices"}, rows))
	}

	parts = append(parts, "", TitleStyle.Render(hub.Header))
	if hub.Warning != "" {
		parts = append(parts, FormatWarning(hub.Warning))
	} else {
		rows := make([][]string, len(hub.Summary))
		for i, s := range hub.Summary {
			rows[i] = []string{s.Label, insights.FormatCount(s.Count), insights.FormatMoneyCents(s.Amount)}
		}
		parts = append(parts, renderTable([]string{"Category", "Invoices", "Amount"}, rows))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtitleStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		}).
		String()
}
