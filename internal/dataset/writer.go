package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
)

// Write renders invoices as CSV with every known column, in a form Read accepts.
func Write(w io.Writer, invoices []model.Invoice) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(AllColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, inv := range invoices {
		if err := cw.Write(record(inv)); err != nil {
			return fmt.Errorf("failed to write invoice %s: %w", inv.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func record(inv model.Invoice) []string {
	return []string{
		inv.ID,
		inv.SupplierID,
		inv.SupplierName,
		inv.ABN,
		inv.SupplierType,
		inv.ServiceCategory,
		inv.Country,
		inv.ContactName,
		inv.ContactEmail,
		strconv.Itoa(inv.TermsDays),
		inv.Amount.StringFixed(2),
		formatDate(inv.InvoiceDate),
		formatDate(inv.DueDate),
		formatDate(inv.PaymentDate),
		inv.Status,
		inv.PaymentStatus,
		strconv.FormatBool(inv.PaidLate),
		strconv.FormatBool(inv.DuplicateABN),
		strconv.FormatBool(inv.DuplicateInvoice),
		strconv.FormatBool(inv.HighAmount),
		inv.RiskScore.String(),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
