// Package model defines the core domain models used throughout the application.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice represents a single supplier invoice from the risk dataset.
// Invoices are read-only once loaded.
type Invoice struct {
	InvoiceDate      time.Time
	DueDate          time.Time // zero when absent
	PaymentDate      time.Time // zero when unpaid
	Amount           decimal.Decimal
	ID               string
	SupplierID       string
	SupplierName     string
	ABN              string
	SupplierType     string
	ServiceCategory  string
	Country          string
	ContactName      string
	ContactEmail     string
	Status           string
	PaymentStatus    string
	TermsDays        int
	RiskScore        RiskScore
	PaidLate         bool
	DuplicateABN     bool
	DuplicateInvoice bool
	HighAmount       bool
}

// HasDueDate reports whether the invoice carries a due date.
func (i Invoice) HasDueDate() bool {
	return !i.DueDate.IsZero()
}

// IsPaid reports whether a payment date was recorded.
func (i Invoice) IsPaid() bool {
	return !i.PaymentDate.IsZero()
}

// DaysLate returns the number of days between the due date and the payment
// date. ok is false when either date is missing.
func (i Invoice) DaysLate() (days int, ok bool) {
	if !i.HasDueDate() || !i.IsPaid() {
		return 0, false
	}
	return DaysBetween(i.DueDate, i.PaymentDate), true
}

// Month returns the invoice month in YYYY-MM form.
func (i Invoice) Month() string {
	return i.InvoiceDate.Format("2006-01")
}

// DateOf truncates t to its calendar date, expressed as midnight UTC.
// Dates from different time zones compare by their wall-clock day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}
