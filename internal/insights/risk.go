package insights

import (
	"slices"

	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
)

// NoRiskDataWarning is reported when no invoice carries a risk score.
const NoRiskDataWarning = "No risk score data available to display."

// RiskOverview holds the flag counts and risk charts of the second tab.
type RiskOverview struct {
	Heatmap          Heatmap     `json:"heatmap"`
	Warning          string      `json:"warning,omitempty"`
	Distribution     []RiskCount `json:"distribution"`
	DuplicateABN     int         `json:"duplicate_abn"`
	DuplicateInvoice int         `json:"duplicate_invoice"`
	HighAmount       int         `json:"high_amount"`
	Scored           int         `json:"scored"`
}

// Heatmap is the mean risk score per service category and supplier type.
// Rows and Columns are sorted; cells with no scored invoices are absent.
type Heatmap struct {
	Rows    []string      `json:"rows"`
	Columns []string      `json:"columns"`
	Cells   []HeatmapCell `json:"cells"`
}

// HeatmapCell is one (category, type) mean.
type HeatmapCell struct {
	ServiceCategory string  `json:"service_category"`
	SupplierType    string  `json:"supplier_type"`
	Mean            float64 `json:"mean"`
	Invoices        int     `json:"invoices"`
}

// Cell looks up the cell for a category and supplier type.
func (h Heatmap) Cell(category, supplierType string) (HeatmapCell, bool) {
	for _, c := range h.Cells {
		if c.ServiceCategory == category && c.SupplierType == supplierType {
			return c, true
		}
	}
	return HeatmapCell{}, false
}

// Empty reports whether the heatmap has no cells.
func (h Heatmap) Empty() bool {
	return len(h.Cells) == 0
}

// ComputeRiskOverview aggregates risk flags and scores.
func ComputeRiskOverview(invoices []model.Invoice) RiskOverview {
	var ro RiskOverview
	for _, inv := range invoices {
		if inv.DuplicateABN {
			ro.DuplicateABN++
		}
		if inv.DuplicateInvoice {
			ro.DuplicateInvoice++
		}
		if inv.HighAmount {
			ro.HighAmount++
		}
		if inv.RiskScore.Valid() {
			ro.Scored++
		}
	}

	ro.Heatmap = buildHeatmap(invoices)
	ro.Distribution = riskDistribution(invoices)
	if ro.Scored == 0 {
		ro.Warning = NoRiskDataWarning
	}
	return ro
}

func buildHeatmap(invoices []model.Invoice) Heatmap {
	type key struct{ category, supplierType string }
	type acc struct{ sum, n int }

	cells := make(map[key]*acc)
	rows := make(map[string]struct{})
	cols := make(map[string]struct{})
	for _, inv := range invoices {
		if !inv.RiskScore.Valid() {
			continue
		}
		k := key{inv.ServiceCategory, inv.SupplierType}
		a, ok := cells[k]
		if !ok {
			a = &acc{}
			cells[k] = a
		}
		a.sum += int(inv.RiskScore)
		a.n++
		rows[k.category] = struct{}{}
		cols[k.supplierType] = struct{}{}
	}

	h := Heatmap{
		Rows:    sortedKeys(rows),
		Columns: sortedKeys(cols),
		Cells:   []HeatmapCell{},
	}
	for _, r := range h.Rows {
		for _, c := range h.Columns {
			a, ok := cells[key{r, c}]
			if !ok {
				continue
			}
			h.Cells = append(h.Cells, HeatmapCell{
				ServiceCategory: r,
				SupplierType:    c,
				Mean:            float64(a.sum) / float64(a.n),
				Invoices:        a.n,
			})
		}
	}
	return h
}

// RiskList returns the invoices carrying score, in input order.
func RiskList(invoices []model.Invoice, score model.RiskScore) []model.Invoice {
	var out []model.Invoice
	for _, inv := range invoices {
		if inv.RiskScore == score && score.Valid() {
			out = append(out, inv)
		}
	}
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
