// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/sachihirani/supplier-risk-dashboard/internal/insights"
	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
)

// InvoiceFilter narrows stored invoice queries. Zero values mean no limit.
type InvoiceFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	SupplierID string
	Limit      int
	Offset     int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Invoice operations
	ReplaceInvoices(ctx context.Context, runID string, invoices []model.Invoice) error
	GetInvoices(ctx context.Context, filter InvoiceFilter) ([]model.Invoice, error)
	GetInvoiceCount(ctx context.Context) (int, error)

	// Import run tracking
	SaveImportRun(ctx context.Context, run *model.ImportRun) error
	GetLatestImportRun(ctx context.Context) (*model.ImportRun, error)

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit() error
	Rollback() error
	// Include all Storage methods for use within transaction
	Storage
}

// ReportWriter publishes a dashboard snapshot to an external destination.
type ReportWriter interface {
	Write(ctx context.Context, snapshot *insights.Snapshot) error
}
