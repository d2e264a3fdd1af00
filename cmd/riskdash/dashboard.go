package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sachihirani/supplier-risk-dashboard/internal/config"
	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
	"github.com/sachihirani/supplier-risk-dashboard/internal/tui"
	"github.com/sachihirani/supplier-risk-dashboard/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	demoInvoiceCount = 400
	demoSeed         = 42
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive terminal dashboard",
		Long: `Open the four-tab terminal dashboard: Key Insights, Risk Overview,
To Pay Hub and Supplier Profile.

Press f to edit the filters, Tab or 1-4 to switch tabs and ←/→ to change the
selected risk score, unpaid category or supplier.`,
		RunE: runDashboard,
	}

	cmd.Flags().String("theme", "", fmt.Sprintf("color theme (%v)", themes.Names()))
	cmd.Flags().Bool("demo", false, "use generated sample invoices instead of a dataset")
	_ = viper.BindPFlag(config.KeyTheme, cmd.Flags().Lookup("theme"))

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	if demo, _ := cmd.Flags().GetBool("demo"); demo {
		return runDemoDashboard(cmd)
	}

	d, err := loadDashboardConfig()
	if err != nil {
		return err
	}

	source := d.DataPath
	if d.Source == config.SourceDB {
		source = d.DatabasePath
	}

	slog.Debug("starting dashboard", "source", d.Source, "reference_date", d.ReferenceDate.Format(time.DateOnly))
	return tui.Run(cmd.Context(), dashboardLoader(d),
		tui.WithReferenceDate(d.ReferenceDate),
		tui.WithTheme(themes.GetTheme(d.Theme)),
		tui.WithSource(source),
	)
}

// runDemoDashboard shows generated invoices and needs no dataset.
func runDemoDashboard(cmd *cobra.Command) error {
	ref, err := config.ParseReferenceDate(viper.GetString(config.KeyReferenceDate), time.Now())
	if err != nil {
		return err
	}

	return tui.Run(cmd.Context(), tui.SampleLoader(demoInvoiceCount, ref, demoSeed),
		tui.WithReferenceDate(ref),
		tui.WithTheme(themes.GetTheme(viper.GetString(config.KeyTheme))),
		tui.WithSource("sample data"),
	)
}

// dashboardLoader defers reading the dataset until the dashboard is on screen
// so the loading spinner covers it.
func dashboardLoader(d *config.Dashboard) tui.Loader {
	return func(ctx context.Context) ([]model.Invoice, error) {
		invoices, _, err := loadInvoices(ctx, d)
		return invoices, err
	}
}
