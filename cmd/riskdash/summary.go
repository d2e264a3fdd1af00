package main

import (
	"encoding/json"
	"fmt"

	"github.com/sachihirani/supplier-risk-dashboard/internal/cli"
	"github.com/sachihirani/supplier-risk-dashboard/internal/common"
	"github.com/sachihirani/supplier-risk-dashboard/internal/insights"
	"github.com/spf13/cobra"
)

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard views without the interactive UI",
		Long: `Print Key Insights, Risk Overview and To Pay Hub for the dataset.

Use the filter flags to narrow the invoices and --format json for machine
readable output.`,
		RunE: runSummary,
	}

	cmd.Flags().String("format", "table", "output format (table, json)")
	addFilterFlags(cmd)

	return cmd
}

func runSummary(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "json" {
		return common.NewUserError(fmt.Sprintf("unknown format %q; use table or json", format), common.ErrInvalidConfig)
	}

	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	d, err := loadDashboardConfig()
	if err != nil {
		return err
	}
	invoices, _, err := loadInvoices(cmd.Context(), d)
	if err != nil {
		return err
	}

	snap := insights.BuildSnapshot(invoices, filter, d.ReferenceDate)
	out := cmd.OutOrStdout()

	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	_, err = fmt.Fprintln(out, cli.RenderSummary(snap))
	return err
}
