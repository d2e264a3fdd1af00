package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sachihirani/supplier-risk-dashboard/internal/common"
	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
	"github.com/sachihirani/supplier-risk-dashboard/internal/service"
	"github.com/shopspring/decimal"
)

const invoiceColumns = `
	id, supplier_id, supplier_name, abn, supplier_type, service_category,
	country, contact_name, contact_email, terms_days, amount,
	invoice_date, due_date, payment_date, status, payment_status,
	paid_late, duplicate_abn, duplicate_invoice, high_amount, risk_score`

// ReplaceInvoices swaps the stored invoice snapshot for a new one tagged with
// runID. Rows keep their input order; invoice IDs need not be unique.
func (s *SQLiteStorage) ReplaceInvoices(ctx context.Context, runID string, invoices []model.Invoice) error {
	// Validate inputs
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(runID, "runID"); err != nil {
		return err
	}
	if err := validateInvoices(invoices); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.replaceInvoicesTx(ctx, tx, runID, invoices); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) replaceInvoicesTx(ctx context.Context, tx *sql.Tx, runID string, invoices []model.Invoice) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM invoices`); err != nil {
		return fmt.Errorf("failed to clear invoices: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO invoices (seq, run_id, `+invoiceColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, inv := range invoices {
		_, err = stmt.ExecContext(ctx,
			i+1,
			runID,
			inv.ID,
			inv.SupplierID,
			inv.SupplierName,
			inv.ABN,
			inv.SupplierType,
			inv.ServiceCategory,
			inv.Country,
			inv.ContactName,
			inv.ContactEmail,
			inv.TermsDays,
			inv.Amount.String(),
			formatDate(inv.InvoiceDate),
			formatDate(inv.DueDate),
			formatDate(inv.PaymentDate),
			inv.Status,
			inv.PaymentStatus,
			inv.PaidLate,
			inv.DuplicateABN,
			inv.DuplicateInvoice,
			inv.HighAmount,
			int(inv.RiskScore),
		)
		if err != nil {
			return fmt.Errorf("failed to insert invoice %s: %w", inv.ID, err)
		}
	}

	return nil
}

// GetInvoices returns stored invoices in import order.
func (s *SQLiteStorage) GetInvoices(ctx context.Context, filter service.InvoiceFilter) ([]model.Invoice, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateInvoiceFilter(filter); err != nil {
		return nil, err
	}
	return s.getInvoicesTx(ctx, s.db, filter)
}

func (s *SQLiteStorage) getInvoicesTx(ctx context.Context, q queryable, filter service.InvoiceFilter) ([]model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE 1=1`
	var args []any

	if filter.StartDate != nil {
		query += " AND invoice_date >= ?"
		args = append(args, filter.StartDate.Format(dateLayout))
	}
	if filter.EndDate != nil {
		query += " AND invoice_date <= ?"
		args = append(args, filter.EndDate.Format(dateLayout))
	}
	if filter.SupplierID != "" {
		query += " AND supplier_id = ?"
		args = append(args, filter.SupplierID)
	}

	query += " ORDER BY seq ASC"

	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var invoices []model.Invoice
	for rows.Next() {
		inv, scanErr := scanInvoice(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}

	return invoices, nil
}

// GetInvoiceCount returns the number of stored invoices.
func (s *SQLiteStorage) GetInvoiceCount(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return s.getInvoiceCountTx(ctx, s.db)
}

func (s *SQLiteStorage) getInvoiceCountTx(ctx context.Context, q queryable) (int, error) {
	var count int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count invoices: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row scanner) (model.Invoice, error) {
	var (
		inv                        model.Invoice
		amount                     string
		invoiceDate, due, paidDate sql.NullString
		risk                       int
	)

	err := row.Scan(
		&inv.ID,
		&inv.SupplierID,
		&inv.SupplierName,
		&inv.ABN,
		&inv.SupplierType,
		&inv.ServiceCategory,
		&inv.Country,
		&inv.ContactName,
		&inv.ContactEmail,
		&inv.TermsDays,
		&amount,
		&invoiceDate,
		&due,
		&paidDate,
		&inv.Status,
		&inv.PaymentStatus,
		&inv.PaidLate,
		&inv.DuplicateABN,
		&inv.DuplicateInvoice,
		&inv.HighAmount,
		&risk,
	)
	if err != nil {
		return inv, fmt.Errorf("failed to scan invoice: %w", err)
	}

	if inv.Amount, err = decimal.NewFromString(amount); err != nil {
		return inv, fmt.Errorf("%w: invoice %s amount %q", common.ErrDatabaseCorrupted, inv.ID, amount)
	}
	if inv.InvoiceDate, err = parseDate(invoiceDate); err != nil {
		return inv, err
	}
	if inv.DueDate, err = parseDate(due); err != nil {
		return inv, err
	}
	if inv.PaymentDate, err = parseDate(paidDate); err != nil {
		return inv, err
	}
	inv.RiskScore = model.RiskScore(risk)

	return inv, nil
}
