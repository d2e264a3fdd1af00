package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sachihirani/supplier-risk-dashboard/internal/cli"
	"github.com/sachihirani/supplier-risk-dashboard/internal/common"
	"github.com/sachihirani/supplier-risk-dashboard/internal/config"
	"github.com/sachihirani/supplier-risk-dashboard/internal/insights"
	"github.com/sachihirani/supplier-risk-dashboard/internal/report"
	"github.com/sachihirani/supplier-risk-dashboard/internal/service"
	"github.com/sachihirani/supplier-risk-dashboard/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export dashboard views",
		Long:  `Export dashboard views to Google Sheets or a supplier profile to PDF.`,
	}

	cmd.AddCommand(exportSheetsCmd())
	cmd.AddCommand(exportPDFCmd())

	return cmd
}

func exportSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Write Key Insights, Risk Overview and To Pay Hub to Google Sheets",
		Long: `Write Key Insights, Risk Overview and To Pay Hub to Google Sheets.

Credentials come from sheets.* in the config file or the GOOGLE_SHEETS_*
environment variables. Run 'riskdash auth sheets' once to obtain a refresh
token. Each export replaces the previous contents of the three tabs.`,
		RunE: runExportSheets,
	}

	cmd.Flags().String("spreadsheet-id", "", "existing spreadsheet to write to (default: create one)")
	_ = viper.BindPFlag("sheets.spreadsheet_id", cmd.Flags().Lookup("spreadsheet-id"))
	addFilterFlags(cmd)

	return cmd
}

func runExportSheets(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	d, err := loadDashboardConfig()
	if err != nil {
		return err
	}

	sheetsConfig, err := config.LoadSheetsConfig(viper.GetViper())
	if err != nil {
		return common.NewUserError("Google Sheets is not configured; see 'riskdash export sheets --help'", err)
	}

	writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default().With("component", "sheets"))
	if err != nil {
		return fmt.Errorf("failed to create sheets writer: %w", err)
	}

	invoices, _, err := loadInvoices(ctx, d)
	if err != nil {
		return err
	}

	if err := publish(cmd, writer, insights.BuildSnapshot(invoices, filter, d.ReferenceDate)); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Exported dashboard to Google Sheets"))
	return nil
}

// publish hands a snapshot to a report writer.
func publish(cmd *cobra.Command, w service.ReportWriter, snap *insights.Snapshot) error {
	if err := w.Write(cmd.Context(), snap); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return nil
}

func exportPDFCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Write a supplier profile to PDF",
		Long: `Write a supplier profile to PDF: supplier details, invoice statistics,
monthly late payments, risk score distribution and the invoice list.

The configured logo (dashboard.logo_path) is drawn in the page header.`,
		RunE: runExportPDF,
	}

	cmd.Flags().String("supplier", "", "supplier name (required)")
	cmd.Flags().StringP("out", "o", "", "output file (default: <supplier>.pdf)")
	_ = cmd.MarkFlagRequired("supplier")
	addFilterFlags(cmd)

	return cmd
}

func runExportPDF(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	supplier, _ := cmd.Flags().GetString("supplier")
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = pdfFileName(supplier)
	}

	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	d, err := loadDashboardConfig()
	if err != nil {
		return err
	}
	invoices, _, err := loadInvoices(ctx, d)
	if err != nil {
		return err
	}

	profile, err := insights.ComputeSupplierProfile(filter.Apply(invoices), supplier)
	if err != nil {
		return err
	}

	f, err := os.Create(out) // #nosec G304 - output path is chosen by the user
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}

	err = report.WriteSupplierProfile(f, profile, report.Options{
		GeneratedAt: time.Now(),
		LogoPath:    d.LogoPath,
		Filter:      filter.Describe(),
	})
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(out)
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Wrote %s profile to %s", supplier, out)))
	return nil
}

// pdfFileName derives a file name from a supplier name.
func pdfFileName(supplier string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}, strings.TrimSpace(supplier))
	if name == "" {
		name = "supplier"
	}
	return filepath.Clean(strings.ToLower(name) + ".pdf")
}
