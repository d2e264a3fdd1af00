package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sachihirani/supplier-risk-dashboard/internal/common"
	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
)

// SaveImportRun records a completed import.
func (s *SQLiteStorage) SaveImportRun(ctx context.Context, run *model.ImportRun) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateImportRun(run); err != nil {
		return err
	}
	return s.saveImportRunTx(ctx, s.db, run)
}

func (s *SQLiteStorage) saveImportRunTx(ctx context.Context, q queryable, run *model.ImportRun) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO import_runs (id, source, row_count, imported_at)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.Source, run.RowCount, run.ImportedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save import run %s: %w", run.ID, err)
	}
	return nil
}

// GetLatestImportRun returns the most recent import, or common.ErrNotFound
// when nothing has been imported yet.
func (s *SQLiteStorage) GetLatestImportRun(ctx context.Context) (*model.ImportRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getLatestImportRunTx(ctx, s.db)
}

func (s *SQLiteStorage) getLatestImportRunTx(ctx context.Context, q queryable) (*model.ImportRun, error) {
	var run model.ImportRun
	err := q.QueryRowContext(ctx, `
		SELECT id, source, row_count, imported_at
		FROM import_runs
		ORDER BY imported_at DESC
		LIMIT 1
	`).Scan(&run.ID, &run.Source, &run.RowCount, &run.ImportedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no import runs", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest import run: %w", err)
	}
	return &run, nil
}
