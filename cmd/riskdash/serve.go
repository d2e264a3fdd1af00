package main

import (
	"log/slog"

	"github.com/sachihirani/supplier-risk-dashboard/internal/config"
	"github.com/sachihirani/supplier-risk-dashboard/internal/web"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Long: `Serve the dashboard over HTTP.

  /              HTML dashboard, filters in the query string
  /api/...       JSON views (filters, insights, risk, topay, suppliers)
  /metrics       Prometheus metrics`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "listen address (default: serve.addr)")
	_ = viper.BindPFlag(config.KeyServeAddr, cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	d, err := loadDashboardConfig()
	if err != nil {
		return err
	}
	invoices, source, err := loadInvoices(ctx, d)
	if err != nil {
		return err
	}

	logger := slog.Default().With("component", "web")
	server, err := web.NewServer(invoices, web.Options{
		ReferenceDate: d.ReferenceDate,
		Logger:        logger,
		LogoPath:      d.LogoPath,
	})
	if err != nil {
		return err
	}

	logger.Info("serving dashboard", "addr", d.ServeAddr, "source", source, "invoices", len(invoices))
	return server.ListenAndServe(ctx, d.ServeAddr)
}
