package insights

import (
	"cmp"
	"slices"
	"time"

	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
	"github.com/shopspring/decimal"
)

// Snapshot bundles the non-interactive views for one filter and reference
// date. It is what gets printed, served and exported.
type Snapshot struct {
	GeneratedAt   time.Time    `json:"generated_at"`
	ReferenceDate time.Time    `json:"reference_date"`
	Filter        Filter       `json:"filter"`
	KeyInsights   KeyInsights  `json:"key_insights"`
	RiskOverview  RiskOverview `json:"risk_overview"`
	ToPayHub      ToPayHub     `json:"to_pay_hub"`
}

// BuildSnapshot filters invoices and computes every view.
func BuildSnapshot(invoices []model.Invoice, f Filter, referenceDate time.Time) *Snapshot {
	filtered := f.Apply(invoices)
	return &Snapshot{
		GeneratedAt:   time.Now(),
		ReferenceDate: model.DateOf(referenceDate),
		Filter:        f,
		KeyInsights:   ComputeKeyInsights(filtered),
		RiskOverview:  ComputeRiskOverview(filtered),
		ToPayHub:      ComputeToPayHub(filtered, referenceDate),
	}
}

// Count is a labelled tally.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// MonthlyPoint aggregates invoices issued in one month.
type MonthlyPoint struct {
	Month       string          `json:"month"`
	Amount      decimal.Decimal `json:"amount"`
	Invoices    int             `json:"invoices"`
	PaidLate    int             `json:"paid_late"`
	LatePercent float64         `json:"late_percent"`
}

// monthlySeries groups invoices by invoice month, ascending. Invoices without
// an invoice date are skipped.
func monthlySeries(invoices []model.Invoice) []MonthlyPoint {
	byMonth := make(map[string]*MonthlyPoint)
	for _, inv := range invoices {
		if inv.InvoiceDate.IsZero() {
			continue
		}
		month := inv.InvoiceDate.Format(monthLayout)
		p, ok := byMonth[month]
		if !ok {
			p = &MonthlyPoint{Month: month, Amount: decimal.Zero}
			byMonth[month] = p
		}
		p.Amount = p.Amount.Add(inv.Amount)
		p.Invoices++
		if inv.PaidLate {
			p.PaidLate++
		}
	}

	series := make([]MonthlyPoint, 0, len(byMonth))
	for _, p := range byMonth {
		p.LatePercent = percent(p.PaidLate, p.Invoices)
		series = append(series, *p)
	}
	slices.SortFunc(series, func(a, b MonthlyPoint) int {
		return cmp.Compare(a.Month, b.Month)
	})
	return series
}

// RiskCount is the number of invoices carrying a risk score.
type RiskCount struct {
	Score model.RiskScore `json:"score"`
	Count int             `json:"count"`
}

// riskDistribution counts scored invoices per score, ascending, omitting
// scores that do not occur.
func riskDistribution(invoices []model.Invoice) []RiskCount {
	counts := make(map[model.RiskScore]int)
	for _, inv := range invoices {
		if inv.RiskScore.Valid() {
			counts[inv.RiskScore]++
		}
	}

	var dist []RiskCount
	for _, score := range model.RiskScores {
		if n := counts[score]; n > 0 {
			dist = append(dist, RiskCount{Score: score, Count: n})
		}
	}
	return dist
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func sumAmounts(invoices []model.Invoice) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range invoices {
		total = total.Add(inv.Amount)
	}
	return total
}

// averageAmount returns the mean amount; Valid is false with no invoices.
func averageAmount(invoices []model.Invoice) decimal.NullDecimal {
	if len(invoices) == 0 {
		return decimal.NullDecimal{}
	}
	avg := sumAmounts(invoices).Div(decimal.NewFromInt(int64(len(invoices))))
	return decimal.NewNullDecimal(avg)
}

// FormatAverage renders an optional average in cents, or N/A.
func FormatAverage(avg decimal.NullDecimal) string {
	if !avg.Valid {
		return NotAvailable
	}
	return FormatMoneyCents(avg.Decimal)
}
