package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS import_runs (
					id TEXT PRIMARY KEY,
					source TEXT NOT NULL,
					row_count INTEGER NOT NULL DEFAULT 0,
					imported_at DATETIME NOT NULL
				)`,
				`CREATE INDEX idx_import_runs_imported_at ON import_runs(imported_at)`,

				`CREATE TABLE IF NOT EXISTS invoices (
					id TEXT PRIMARY KEY,
					run_id TEXT NOT NULL,
					supplier_id TEXT NOT NULL,
					supplier_name TEXT NOT NULL DEFAULT '',
					abn TEXT NOT NULL DEFAULT '',
					supplier_type TEXT NOT NULL DEFAULT '',
					service_category TEXT NOT NULL DEFAULT '',
					country TEXT NOT NULL DEFAULT '',
					contact_name TEXT NOT NULL DEFAULT '',
					contact_email TEXT NOT NULL DEFAULT '',
					terms_days INTEGER NOT NULL DEFAULT 0,
					amount TEXT NOT NULL,
					invoice_date TEXT,
					due_date TEXT,
					payment_date TEXT,
					status TEXT NOT NULL DEFAULT '',
					payment_status TEXT NOT NULL DEFAULT '',
					paid_late BOOLEAN NOT NULL DEFAULT 0,
					duplicate_abn BOOLEAN NOT NULL DEFAULT 0,
					duplicate_invoice BOOLEAN NOT NULL DEFAULT 0,
					high_amount BOOLEAN NOT NULL DEFAULT 0,
					risk_score INTEGER NOT NULL DEFAULT 0 CHECK (risk_score BETWEEN 0 AND 3)
				)`,
				`CREATE INDEX idx_invoices_invoice_date ON invoices(invoice_date)`,
				`CREATE INDEX idx_invoices_supplier ON invoices(supplier_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Index invoices by due date for unpaid triage",
		Up: func(tx *sql.Tx) error {
			if _, err := tx.Exec(`CREATE INDEX idx_invoices_due_date ON invoices(due_date)`); err != nil {
				return fmt.Errorf("failed to create due date index: %w", err)
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Key invoices by file position so repeated invoice IDs import",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE invoices_v3 (
					seq INTEGER PRIMARY KEY,
					id TEXT NOT NULL,
					run_id TEXT NOT NULL,
					supplier_id TEXT NOT NULL,
					supplier_name TEXT NOT NULL DEFAULT '',
					abn TEXT NOT NULL DEFAULT '',
					supplier_type TEXT NOT NULL DEFAULT '',
					service_category TEXT NOT NULL DEFAULT '',
					country TEXT NOT NULL DEFAULT '',
					contact_name TEXT NOT NULL DEFAULT '',
					contact_email TEXT NOT NULL DEFAULT '',
					terms_days INTEGER NOT NULL DEFAULT 0,
					amount TEXT NOT NULL,
					invoice_date TEXT,
					due_date TEXT,
					payment_date TEXT,
					status TEXT NOT NULL DEFAULT '',
					payment_status TEXT NOT NULL DEFAULT '',
					paid_late BOOLEAN NOT NULL DEFAULT 0,
					duplicate_abn BOOLEAN NOT NULL DEFAULT 0,
					duplicate_invoice BOOLEAN NOT NULL DEFAULT 0,
					high_amount BOOLEAN NOT NULL DEFAULT 0,
					risk_score INTEGER NOT NULL DEFAULT 0 CHECK (risk_score BETWEEN 0 AND 3)
				)`,
				`INSERT INTO invoices_v3 (run_id, ` + invoiceColumns + `)
					SELECT run_id, ` + invoiceColumns + ` FROM invoices ORDER BY invoice_date, id`,
				`DROP TABLE invoices`,
				`ALTER TABLE invoices_v3 RENAME TO invoices`,
				`CREATE INDEX idx_invoices_id ON invoices(id)`,
				`CREATE INDEX idx_invoices_invoice_date ON invoices(invoice_date)`,
				`CREATE INDEX idx_invoices_supplier ON invoices(supplier_id)`,
				`CREATE INDEX idx_invoices_due_date ON invoices(due_date)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	// Get current version
	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	// Apply migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		// Update version
		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	// Verify we're at the expected schema version
	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
