package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sachihirani/supplier-risk-dashboard/internal/common"
	"github.com/sachihirani/supplier-risk-dashboard/internal/config"
	"github.com/sachihirani/supplier-risk-dashboard/internal/dataset"
	"github.com/sachihirani/supplier-risk-dashboard/internal/insights"
	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
	"github.com/sachihirani/supplier-risk-dashboard/internal/service"
	"github.com/sachihirani/supplier-risk-dashboard/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const flagDateLayout = "2006-01-02"

// loadDashboardConfig resolves the dashboard settings for the current run.
func loadDashboardConfig() (*config.Dashboard, error) {
	return config.LoadDashboard(viper.GetViper(), time.Now())
}

// initStorage opens the SQLite store and runs migrations.
func initStorage(ctx context.Context, dbPath string) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadInvoices reads the configured dataset from the CSV file or the store.
// It returns the invoices and a label describing where they came from.
func loadInvoices(ctx context.Context, d *config.Dashboard) ([]model.Invoice, string, error) {
	switch d.Source {
	case config.SourceDB:
		store, err := initStorage(ctx, d.DatabasePath)
		if err != nil {
			return nil, "", err
		}
		defer func() { _ = store.Close() }()

		invoices, err := store.GetInvoices(ctx, service.InvoiceFilter{})
		if err != nil {
			return nil, "", fmt.Errorf("failed to read stored invoices: %w", err)
		}
		if len(invoices) == 0 {
			return nil, "", common.NewUserError("the invoice database is empty; run 'riskdash import' first", common.ErrNoData)
		}

		label := d.DatabasePath
		if run, err := store.GetLatestImportRun(ctx); err == nil {
			label = fmt.Sprintf("%s (imported %s)", run.Source, run.ImportedAt.Local().Format("2006-01-02 15:04"))
		}
		return invoices, label, nil

	default:
		ds, err := dataset.LoadFile(ctx, d.DataPath)
		if err != nil {
			return nil, "", err
		}
		return ds.Invoices, ds.Source, nil
	}
}

// addFilterFlags registers the filter flags shared by the non-interactive commands.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("type", nil, "only include these supplier types")
	cmd.Flags().StringSlice("category", nil, "only include these service categories")
	cmd.Flags().StringSlice("name", nil, "only include these suppliers")
	cmd.Flags().String("from", "", "earliest invoice date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "latest invoice date (YYYY-MM-DD)")
}

// filterFromFlags builds and validates the filter given on the command line.
func filterFromFlags(cmd *cobra.Command) (insights.Filter, error) {
	var f insights.Filter
	f.SupplierTypes, _ = cmd.Flags().GetStringSlice("type")
	f.ServiceCategories, _ = cmd.Flags().GetStringSlice("category")
	f.SupplierNames, _ = cmd.Flags().GetStringSlice("name")

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	for _, d := range []struct {
		dst *time.Time
		raw string
	}{{&f.DateRange.From, from}, {&f.DateRange.To, to}} {
		raw := strings.TrimSpace(d.raw)
		if raw == "" {
			continue
		}
		t, err := time.Parse(flagDateLayout, raw)
		if err != nil {
			return insights.Filter{}, common.NewUserError(
				fmt.Sprintf("invalid date %q; use YYYY-MM-DD", raw), common.ErrInvalidFilter)
		}
		*d.dst = t
	}

	if err := f.Validate(); err != nil {
		return insights.Filter{}, err
	}
	return f, nil
}
