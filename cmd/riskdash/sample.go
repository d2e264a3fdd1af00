package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sachihirani/supplier-risk-dashboard/internal/cli"
	"github.com/sachihirani/supplier-risk-dashboard/internal/config"
	"github.com/sachihirani/supplier-risk-dashboard/internal/dataset"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func sampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a generated invoice CSV",
		Long: `Write a generated invoice CSV with the columns the dashboard reads.

Due dates are spread around the reference date (--as-of) so every unpaid
category is populated.`,
		RunE: runSample,
	}

	cmd.Flags().IntP("count", "n", demoInvoiceCount, "number of invoices")
	cmd.Flags().Uint64("seed", demoSeed, "random seed")
	cmd.Flags().StringP("out", "o", "", "output file (default: stdout)")

	return cmd
}

func runSample(cmd *cobra.Command, _ []string) error {
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetUint64("seed")
	out, _ := cmd.Flags().GetString("out")

	ref, err := config.ParseReferenceDate(viper.GetString(config.KeyReferenceDate), time.Now())
	if err != nil {
		return err
	}

	invoices := dataset.Sample(count, ref, seed)
	if out == "" {
		return dataset.Write(cmd.OutOrStdout(), invoices)
	}

	f, err := os.Create(out) // #nosec G304 - output path is chosen by the user
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := dataset.Write(f, invoices); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess(fmt.Sprintf("Wrote %d invoices to %s", len(invoices), out)))
	return nil
}
