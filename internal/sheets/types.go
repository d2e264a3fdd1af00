package sheets

import (
	"fmt"

	"github.com/sachihirani/supplier-risk-dashboard/internal/insights"
	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
	"github.com/shopspring/decimal"
)

// Tab titles.
const (
	TabKeyInsights  = "Key Insights"
	TabRiskOverview = "Risk Overview"
	TabToPayHub     = "To Pay Hub"
)

// Tab is the rendered content of one worksheet.
type Tab struct {
	Title string
	Rows  [][]any
	// SectionRows are bolded as headings.
	SectionRows []int
	// CurrencyColumns get a currency number format.
	CurrencyColumns []int
}

// BuildTabs renders a snapshot into worksheet contents.
func BuildTabs(snap *insights.Snapshot) []Tab {
	return []Tab{
		keyInsightsTab(snap),
		riskOverviewTab(snap),
		toPayHubTab(snap),
	}
}

type tabBuilder struct {
	tab Tab
}

func newTab(title string, currencyColumns ...int) *tabBuilder {
	return &tabBuilder{tab: Tab{Title: title, CurrencyColumns: currencyColumns}}
}

func (b *tabBuilder) section(title string) {
	if len(b.tab.Rows) > 0 {
		b.tab.Rows = append(b.tab.Rows, []any{})
	}
	b.tab.SectionRows = append(b.tab.SectionRows, len(b.tab.Rows))
	b.tab.Rows = append(b.tab.Rows, []any{title})
}

func (b *tabBuilder) row(cells ...any) {
	b.tab.Rows = append(b.tab.Rows, cells)
}

// money keeps amounts numeric so the sheet can format and sum them.
func money(d decimal.Decimal) any {
	f, _ := d.Round(2).Float64()
	return f
}

func keyInsightsTab(snap *insights.Snapshot) Tab {
	ki := snap.KeyInsights
	b := newTab(TabKeyInsights, 1)

	b.row("Supplier Risk Dashboard", "Generated "+snap.GeneratedAt.Format("2006-01-02 15:04"))
	b.row("Filter", snap.Filter.Describe())

	b.section("Headline")
	b.row("Total Invoices", ki.TotalInvoices)
	b.row("Total Invoice Amount", money(ki.TotalAmount))
	b.row("Paid On Time", ki.PaidOnTime)
	b.row("Paid Late", ki.PaidLate)
	b.row("% Paid Late", ki.FormatLatePercent())
	b.row("Average Invoice Amount", insights.FormatAverage(ki.AverageAmount))
	b.row("Average Days Late", ki.FormatAverageDaysLate())

	b.section("Monthly Invoice Amount")
	b.row("Month", "Amount", "Invoices", "Late %")
	for _, p := range ki.Monthly {
		b.row(p.Month, money(p.Amount), p.Invoices, insights.FormatPercent(p.LatePercent))
	}

	b.section("Invoice Status")
	b.row("Status", "Count")
	for _, c := range ki.StatusCounts {
		b.row(c.Label, c.Count)
	}

	b.section("Top Suppliers by Amount")
	b.row("Supplier", "Amount", "Invoices", "Supplier ID")
	for _, s := range ki.TopByAmount {
		b.row(s.Name, money(s.Amount), s.Invoices, s.SupplierID)
	}

	b.section("Top Suppliers by Invoice Count")
	b.row("Supplier", "Amount", "Invoices", "Supplier ID")
	for _, s := range ki.TopByCount {
		b.row(s.Name, money(s.Amount), s.Invoices, s.SupplierID)
	}

	return b.tab
}

func riskOverviewTab(snap *insights.Snapshot) Tab {
	ro := snap.RiskOverview
	b := newTab(TabRiskOverview)

	b.section("Risk Flags")
	b.row("Duplicate ABNs", ro.DuplicateABN)
	b.row("Duplicate Invoices", ro.DuplicateInvoice)
	b.row("High Amount Invoices > 30k", ro.HighAmount)

	b.section("Invoices by Risk Score")
	if ro.Warning != "" {
		b.row(ro.Warning)
	} else {
		b.row("Risk Score", "Count")
		for _, rc := range ro.Distribution {
			b.row(rc.Score.Label(), rc.Count)
		}
	}

	b.section("Average Risk Score by Service Category and Supplier Type")
	header := []any{"Service Category"}
	for _, col := range ro.Heatmap.Columns {
		header = append(header, col)
	}
	b.row(header...)
	for _, r := range ro.Heatmap.Rows {
		line := []any{r}
		for _, c := range ro.Heatmap.Columns {
			if cell, ok := ro.Heatmap.Cell(r, c); ok {
				line = append(line, fmt.Sprintf("%.2f", cell.Mean))
			} else {
				line = append(line, "")
			}
		}
		b.row(line...)
	}

	return b.tab
}

func toPayHubTab(snap *insights.Snapshot) Tab {
	hub := snap.ToPayHub
	b := newTab(TabToPayHub, 3)

	b.section(hub.Header)
	if hub.Warning != "" {
		b.row(hub.Warning)
		return b.tab
	}
	b.row("Category", "Count", "", "Amount")
	for _, s := range hub.Summary {
		b.row(s.Label, s.Count, "", money(s.Amount))
	}

	for _, bucket := range model.UnpaidBuckets {
		rows := hub.ToPayRows(bucket)
		if len(rows) == 0 {
			continue
		}
		b.section(bucket.Label())
		b.row("Invoice ID", "Supplier", "Due Date", "Amount", "Status")
		for _, r := range rows {
			b.row(r.InvoiceID, r.Name, r.DueDate, money(r.Amount), string(r.Bucket))
		}
	}

	return b.tab
}
