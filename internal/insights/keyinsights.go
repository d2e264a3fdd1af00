package insights

import (
	"cmp"
	"slices"

	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
	"github.com/shopspring/decimal"
)

// Status values counted by the headline metrics.
const (
	StatusOnTime = "On Time"
	StatusLate   = "Late"
)

// TopN is the length of the top supplier rankings.
const TopN = 10

// KeyInsights holds the headline metrics and charts of the first tab.
type KeyInsights struct {
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	AverageAmount   decimal.NullDecimal `json:"average_amount"`
	AverageDaysLate *float64            `json:"average_days_late"`
	Monthly         []MonthlyPoint      `json:"monthly"`
	StatusCounts    []Count             `json:"status_counts"`
	TopByAmount     []SupplierTotal     `json:"top_by_amount"`
	TopByCount      []SupplierTotal     `json:"top_by_count"`
	TotalInvoices   int                 `json:"total_invoices"`
	PaidOnTime      int                 `json:"paid_on_time"`
	PaidLate        int                 `json:"paid_late"`
	LatePercent     float64             `json:"late_percent"`
}

// SupplierTotal aggregates one supplier's invoices.
type SupplierTotal struct {
	SupplierID string          `json:"supplier_id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Invoices   int             `json:"invoices"`
}

// ComputeKeyInsights aggregates the filtered invoices.
func ComputeKeyInsights(invoices []model.Invoice) KeyInsights {
	ki := KeyInsights{
		TotalInvoices: len(invoices),
		TotalAmount:   sumAmounts(invoices),
		AverageAmount: averageAmount(invoices),
		Monthly:       monthlySeries(invoices),
		StatusCounts:  statusCounts(invoices),
	}

	var daysLateSum, daysLateCount int
	for _, inv := range invoices {
		switch inv.Status {
		case StatusOnTime:
			ki.PaidOnTime++
		case StatusLate:
			ki.PaidLate++
		}
		if days, ok := inv.DaysLate(); ok && days > 0 {
			daysLateSum += days
			daysLateCount++
		}
	}

	ki.LatePercent = percent(ki.PaidLate, ki.TotalInvoices)
	if daysLateCount > 0 {
		avg := float64(daysLateSum) / float64(daysLateCount)
		ki.AverageDaysLate = &avg
	}

	totals := supplierTotals(invoices)
	ki.TopByAmount = topSuppliers(totals, func(a, b SupplierTotal) int {
		return b.Amount.Cmp(a.Amount)
	})
	ki.TopByCount = topSuppliers(totals, func(a, b SupplierTotal) int {
		return cmp.Compare(b.Invoices, a.Invoices)
	})

	return ki
}

// FormatLatePercent renders the paid-late share, or "0%" when there are no invoices.
func (k KeyInsights) FormatLatePercent() string {
	if k.TotalInvoices == 0 {
		return "0%"
	}
	return FormatPercent(k.LatePercent)
}

// FormatAverageDaysLate renders the average delay, or N/A when nothing was paid late.
func (k KeyInsights) FormatAverageDaysLate() string {
	if k.AverageDaysLate == nil {
		return NotAvailable
	}
	return FormatDays(*k.AverageDaysLate)
}

// statusCounts tallies invoices by status, most frequent first.
func statusCounts(invoices []model.Invoice) []Count {
	counts := make(map[string]int)
	for _, inv := range invoices {
		status := inv.Status
		if status == "" {
			status = "Unknown"
		}
		counts[status]++
	}

	out := make([]Count, 0, len(counts))
	for label, n := range counts {
		out = append(out, Count{Label: label, Count: n})
	}
	slices.SortFunc(out, func(a, b Count) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return out
}

type supplierKey struct {
	id   string
	name string
}

func supplierTotals(invoices []model.Invoice) []SupplierTotal {
	byKey := make(map[supplierKey]*SupplierTotal)
	var order []supplierKey
	for _, inv := range invoices {
		key := supplierKey{id: inv.SupplierID, name: inv.SupplierName}
		t, ok := byKey[key]
		if !ok {
			t = &SupplierTotal{SupplierID: key.id, Name: key.name, Amount: decimal.Zero}
			byKey[key] = t
			order = append(order, key)
		}
		t.Amount = t.Amount.Add(inv.Amount)
		t.Invoices++
	}

	out := make([]SupplierTotal, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	return out
}

// topSuppliers sorts a copy of totals by rank, breaking ties by supplier ID
// then name, and keeps the first TopN.
func topSuppliers(totals []SupplierTotal, rank func(a, b SupplierTotal) int) []SupplierTotal {
	sorted := slices.Clone(totals)
	slices.SortFunc(sorted, func(a, b SupplierTotal) int {
		if c := rank(a, b); c != 0 {
			return c
		}
		if c := cmp.Compare(a.SupplierID, b.SupplierID); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	if len(sorted) > TopN {
		sorted = sorted[:TopN]
	}
	return sorted
}
