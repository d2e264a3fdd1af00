// Package storage provides the data persistence layer for the dashboard.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
	"github.com/sachihirani/supplier-risk-dashboard/internal/service"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrEmptySlice       = errors.New("slice cannot be empty")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidInvoice   = errors.New("invalid invoice")
	ErrInvalidImportRun = errors.New("invalid import run")
	ErrInvalidPaging    = errors.New("limit and offset must not be negative")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateInvoices validates a slice of invoices.
func validateInvoices(invoices []model.Invoice) error {
	if invoices == nil {
		return fmt.Errorf("%w: invoices", ErrNilParameter)
	}
	if len(invoices) == 0 {
		return fmt.Errorf("%w: invoices", ErrEmptySlice)
	}

	for i := range invoices {
		if err := validateInvoice(&invoices[i]); err != nil {
			return fmt.Errorf("invoice at index %d: %w", i, err)
		}
	}
	return nil
}

// validateInvoice validates a single invoice.
func validateInvoice(inv *model.Invoice) error {
	if inv == nil {
		return fmt.Errorf("%w: invoice", ErrNilParameter)
	}
	if strings.TrimSpace(inv.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidInvoice)
	}
	if strings.TrimSpace(inv.SupplierID) == "" {
		return fmt.Errorf("%w: %s missing supplier ID", ErrInvalidInvoice, inv.ID)
	}
	if inv.RiskScore != model.RiskNone && !inv.RiskScore.Valid() {
		return fmt.Errorf("%w: %s risk score %d out of range", ErrInvalidInvoice, inv.ID, inv.RiskScore)
	}
	return nil
}

// validateImportRun validates an import run record.
func validateImportRun(run *model.ImportRun) error {
	if run == nil {
		return fmt.Errorf("%w: import run", ErrNilParameter)
	}
	if strings.TrimSpace(run.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidImportRun)
	}
	if run.ImportedAt.IsZero() {
		return fmt.Errorf("%w: missing import time", ErrInvalidImportRun)
	}
	if run.RowCount < 0 {
		return fmt.Errorf("%w: negative row count", ErrInvalidImportRun)
	}
	return nil
}

// validateInvoiceFilter checks the date bounds and paging values.
func validateInvoiceFilter(filter service.InvoiceFilter) error {
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return fmt.Errorf("%w: end date %v is before start date %v",
			ErrInvalidDateRange, filter.EndDate.Format(dateLayout), filter.StartDate.Format(dateLayout))
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return ErrInvalidPaging
	}
	return nil
}
