package insights

import (
	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
	"github.com/shopspring/decimal"
)

// RiskRow is one line of the risk invoice list.
type RiskRow struct {
	InvoiceID string          `json:"invoice_id"`
	Name      string          `json:"name"`
	DueDate   string          `json:"due_date"`
	Amount    decimal.Decimal `json:"amount"`
	RiskScore int             `json:"risk_score"`
}

// RiskRows lists the invoices carrying score.
func RiskRows(invoices []model.Invoice, score model.RiskScore) []RiskRow {
	list := RiskList(invoices, score)
	rows := make([]RiskRow, len(list))
	for i, inv := range list {
		rows[i] = RiskRow{
			InvoiceID: inv.ID,
			Name:      inv.SupplierName,
			Amount:    inv.Amount,
			DueDate:   FormatDate(inv.DueDate),
			RiskScore: int(inv.RiskScore),
		}
	}
	return rows
}

// ToPayRow is one line of the unpaid invoice list.
type ToPayRow struct {
	InvoiceID string             `json:"invoice_id"`
	Name      string             `json:"name"`
	DueDate   string             `json:"due_date"`
	Amount    decimal.Decimal    `json:"amount"`
	Bucket    model.UnpaidBucket `json:"bucket"`
}

// ToPayRows lists the invoices in bucket.
func (h ToPayHub) ToPayRows(bucket model.UnpaidBucket) []ToPayRow {
	list := h.InvoicesIn(bucket)
	rows := make([]ToPayRow, len(list))
	for i, f := range list {
		rows[i] = ToPayRow{
			InvoiceID: f.ID,
			Name:      f.SupplierName,
			DueDate:   FormatDate(f.DueDate),
			Amount:    f.Amount,
			Bucket:    f.Bucket,
		}
	}
	return rows
}
