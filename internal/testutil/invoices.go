// Package testutil provides shared fixtures for tests across the module.
package testutil

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
	"github.com/shopspring/decimal"
)

// ReferenceDate is the "today" used by the standard fixture.
var ReferenceDate = time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)

// Day returns ReferenceDate shifted by offset days.
func Day(offset int) time.Time {
	return ReferenceDate.AddDate(0, 0, offset)
}

// Date builds a UTC calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// InvoiceBuilder builds invoices with sensible defaults for tests.
type InvoiceBuilder struct {
	inv model.Invoice
}

// NewInvoice starts an invoice with the given ID owned by the default supplier.
func NewInvoice(id string) *InvoiceBuilder {
	return &InvoiceBuilder{inv: model.Invoice{
		ID:              id,
		SupplierID:      "S001",
		SupplierName:    "Acme Logistics",
		ABN:             "51824753556",
		SupplierType:    "Contractor",
		ServiceCategory: "Freight",
		Country:         "Australia",
		ContactName:     "Jo Smith",
		ContactEmail:    "jo@acme.example",
		TermsDays:       30,
		Amount:          decimal.NewFromInt(1000),
		InvoiceDate:     Date(2024, 1, 10),
		DueDate:         Date(2024, 2, 9),
		Status:          "On Time",
		PaymentStatus:   "Paid",
	}}
}

// Supplier sets supplier identity fields.
func (b *InvoiceBuilder) Supplier(id, name, supplierType, category string) *InvoiceBuilder {
	b.inv.SupplierID = id
	b.inv.SupplierName = name
	b.inv.SupplierType = supplierType
	b.inv.ServiceCategory = category
	return b
}

// Amount sets the invoice amount from a decimal string.
func (b *InvoiceBuilder) Amount(amount string) *InvoiceBuilder {
	b.inv.Amount = decimal.RequireFromString(amount)
	return b
}

// Dates sets the invoice, due and payment dates. Zero values mean absent.
func (b *InvoiceBuilder) Dates(invoiced, due, paid time.Time) *InvoiceBuilder {
	b.inv.InvoiceDate = invoiced
	b.inv.DueDate = due
	b.inv.PaymentDate = paid
	return b
}

// Due sets only the due date.
func (b *InvoiceBuilder) Due(due time.Time) *InvoiceBuilder {
	b.inv.DueDate = due
	return b
}

// Status sets the status and payment status strings.
func (b *InvoiceBuilder) Status(status, paymentStatus string) *InvoiceBuilder {
	b.inv.Status = status
	b.inv.PaymentStatus = paymentStatus
	return b
}

// Late marks the invoice as paid late.
func (b *InvoiceBuilder) Late() *InvoiceBuilder {
	b.inv.PaidLate = true
	b.inv.Status = "Late"
	return b
}

// Risk sets the risk score.
func (b *InvoiceBuilder) Risk(score model.RiskScore) *InvoiceBuilder {
	b.inv.RiskScore = score
	return b
}

// Duplicates sets the duplicate ABN and duplicate invoice flags.
func (b *InvoiceBuilder) Duplicates(abn, invoice bool) *InvoiceBuilder {
	b.inv.DuplicateABN = abn
	b.inv.DuplicateInvoice = invoice
	return b
}

// HighAmount sets the high amount flag.
func (b *InvoiceBuilder) HighAmount() *InvoiceBuilder {
	b.inv.HighAmount = true
	return b
}

// Build returns the invoice.
func (b *InvoiceBuilder) Build() model.Invoice {
	return b.inv
}

// StandardInvoices returns a small dataset covering every view: three
// suppliers, two supplier types, paid and unpaid invoices, risk scores and
// every unpaid bucket relative to ReferenceDate.
func StandardInvoices() []model.Invoice {
	return []model.Invoice{
		NewInvoice("INV-001").
			Supplier("S001", "Acme Logistics", "Contractor", "Freight").
			Amount("1200.50").
			Dates(Date(2024, 1, 5), Date(2024, 2, 4), Date(2024, 2, 1)).
			Risk(model.RiskLow).
			Build(),
		NewInvoice("INV-002").
			Supplier("S001", "Acme Logistics", "Contractor", "Freight").
			Amount("800").
			Dates(Date(2024, 1, 20), Date(2024, 2, 19), Date(2024, 3, 1)).
			Late().
			Risk(model.RiskMedium).
			Build(),
		NewInvoice("INV-003").
			Supplier("S002", "Bright Cleaning", "Vendor", "Facilities").
			Amount("45000").
			Dates(Date(2024, 2, 3), Date(2024, 3, 4), Date(2024, 3, 24)).
			Late().
			HighAmount().
			Duplicates(true, false).
			Risk(model.RiskHigh).
			Build(),
		NewInvoice("INV-004").
			Supplier("S002", "Bright Cleaning", "Vendor", "Facilities").
			Amount("300").
			Dates(Date(2024, 2, 15), Day(-1), time.Time{}).
			Status("Pending", "Unpaid").
			Duplicates(false, true).
			Risk(model.RiskHigh).
			Build(),
		NewInvoice("INV-005").
			Supplier("S003", "Coastal Print", "Vendor", "Marketing").
			Amount("150.25").
			Dates(Date(2024, 3, 1), Day(0), time.Time{}).
			Status("Pending", "Unpaid").
			Build(),
		NewInvoice("INV-006").
			Supplier("S003", "Coastal Print", "Vendor", "Marketing").
			Amount("99.75").
			Dates(Date(2024, 3, 2), Day(2), time.Time{}).
			Status("Pending", "Unpaid").
			Risk(model.RiskLow).
			Build(),
		NewInvoice("INV-007").
			Supplier("S001", "Acme Logistics", "Contractor", "Freight").
			Amount("2500").
			Dates(Date(2024, 3, 10), Day(7), time.Time{}).
			Status("Pending", "Unpaid").
			Build(),
		NewInvoice("INV-008").
			Supplier("S001", "Acme Logistics", "Contractor", "Warehousing").
			Amount("640").
			Dates(Date(2024, 3, 12), Day(10), time.Time{}).
			Status("Pending", "Unpaid").
			Risk(model.RiskMedium).
			Build(),
		NewInvoice("INV-009").
			Supplier("S003", "Coastal Print", "Vendor", "Marketing").
			Amount("410").
			Dates(Date(2024, 3, 15), Day(3), time.Time{}).
			Status("Pending", "Unpaid").
			Build(),
	}
}

var csvHeader = []string{
	"Invoice_ID", "Supplier_ID", "Name", "ABN", "Supplier_Type", "Service_Category",
	"Country", "Contact_Name", "Contact_Email", "Terms (Days)", "Invoice_Amount",
	"Invoice_Date", "Due_Date", "Payment_Date", "Status", "Payment_Status",
	"Paid_Late_Flag", "Duplicate_ABN", "Duplicate_Invoice", "High_Amount", "Risk_Score",
}

// InvoicesCSV renders invoices in the source CSV layout.
func InvoicesCSV(t *testing.T, invoices []model.Invoice) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		t.Fatalf("failed to write header: %v", err)
	}

	for _, inv := range invoices {
		risk := ""
		if inv.RiskScore.Valid() {
			risk = strconv.Itoa(int(inv.RiskScore))
		}
		record := []string{
			inv.ID, inv.SupplierID, inv.SupplierName, inv.ABN, inv.SupplierType, inv.ServiceCategory,
			inv.Country, inv.ContactName, inv.ContactEmail, strconv.Itoa(inv.TermsDays), inv.Amount.String(),
			formatDate(inv.InvoiceDate), formatDate(inv.DueDate), formatDate(inv.PaymentDate),
			inv.Status, inv.PaymentStatus,
			formatBool(inv.PaidLate), formatBool(inv.DuplicateABN), formatBool(inv.DuplicateInvoice),
			formatBool(inv.HighAmount), risk,
		}
		if err := w.Write(record); err != nil {
			t.Fatalf("failed to write record %s: %v", inv.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("failed to flush csv: %v", err)
	}
	return buf.Bytes()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatBool(b bool) string {
	return fmt.Sprintf("%t", b)
}
