package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sachihirani/supplier-risk-dashboard/internal/cli"
	"github.com/sachihirani/supplier-risk-dashboard/internal/common"
	"github.com/sachihirani/supplier-risk-dashboard/internal/dataset"
	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
	"github.com/sachihirani/supplier-risk-dashboard/internal/service"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load the invoice CSV into the local database",
		Long: `Load the invoice CSV into the local SQLite database.

Each import replaces the stored invoices and is recorded as an import run.
Afterwards the other commands can read from the database with --source db.`,
		RunE: runImport,
	}

	cmd.Flags().Bool("quiet", false, "do not show a progress bar")

	return cmd
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	quiet, _ := cmd.Flags().GetBool("quiet")

	d, err := loadDashboardConfig()
	if err != nil {
		return err
	}
	if d.DataPath == "" {
		return common.NewUserError("no dataset to import; pass --file or set dashboard.data_path", common.ErrMissingConfig)
	}

	store, err := initStorage(ctx, d.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var progress io.Writer
	if !quiet {
		progress = cmd.ErrOrStderr()
	}

	run, err := importFile(ctx, store, d.DataPath, progress)
	if err != nil {
		return err
	}

	slog.Info("import complete",
		"run_id", run.ID,
		"invoices", run.RowCount,
		"database", d.DatabasePath)
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
		fmt.Sprintf("Imported %d invoices from %s (run %s)", run.RowCount, run.Source, run.ID)))
	return nil
}

// importFile parses path and replaces the stored invoices in one
// transaction. Progress is drawn on progress when it is non-nil.
func importFile(ctx context.Context, store service.Storage, path string, progress io.Writer) (*model.ImportRun, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("cannot open dataset %s", path), err)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if progress != nil {
		info, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		bar := newImportBar(progress, info.Size())
		reader := progressbar.NewReader(f, bar)
		r = &reader
		defer func() { _ = bar.Finish() }()
	}

	invoices, err := dataset.Read(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	run := &model.ImportRun{
		ID:         uuid.NewString(),
		Source:     path,
		RowCount:   len(invoices),
		ImportedAt: time.Now(),
	}

	tx, err := store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.ReplaceInvoices(ctx, run.ID, invoices); err != nil {
		return nil, err
	}
	if err := tx.SaveImportRun(ctx, run); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	return run, nil
}

func newImportBar(w io.Writer, size int64) *progressbar.ProgressBar {
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Reading invoices...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)
}
