package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sachihirani/supplier-risk-dashboard/internal/cli"
	"github.com/sachihirani/supplier-risk-dashboard/internal/common"
	"github.com/sachihirani/supplier-risk-dashboard/internal/config"
	"github.com/sachihirani/supplier-risk-dashboard/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with external services",
		Long:  `Authenticate with external services like Google Sheets.`,
	}

	cmd.AddCommand(authSheetsCmd())

	return cmd
}

func authSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Authenticate with Google Sheets",
		Long: `Authenticate with Google Sheets using OAuth2.

This command will:
1. Open a local callback server and print the Google consent URL
2. Save the token for future use
3. Update your config file with the refresh token

You'll need to run this once to set up Google Sheets export.`,
		RunE: runAuthSheets,
	}

	cmd.Flags().String("client-id", "", "OAuth2 Client ID (overrides config)")
	cmd.Flags().String("client-secret", "", "OAuth2 Client Secret (overrides config)")

	return cmd
}

func runAuthSheets(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	clientID := viper.GetString("sheets.client_id")
	clientSecret := viper.GetString("sheets.client_secret")

	// Override with flags if provided
	if flagID, _ := cmd.Flags().GetString("client-id"); flagID != "" {
		clientID = flagID
	}
	if flagSecret, _ := cmd.Flags().GetString("client-secret"); flagSecret != "" {
		clientSecret = flagSecret
	}

	// Check for environment variables as fallback
	if clientID == "" {
		clientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if clientSecret == "" {
		clientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}

	if clientID == "" || clientSecret == "" {
		return common.NewUserError(
			"OAuth2 credentials not found; set sheets.client_id and sheets.client_secret or use --client-id and --client-secret",
			common.ErrMissingConfig)
	}

	tokenFile, err := config.TokenFile()
	if err != nil {
		return fmt.Errorf("failed to locate token file: %w", err)
	}

	slog.Info("Starting Google Sheets authentication", "token_file", tokenFile)

	token, err := sheets.GetOrCreateToken(ctx, sheets.OAuth2Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenFile:    tokenFile,
	})
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	viper.Set("sheets.refresh_token", token.RefreshToken)
	if err := viper.WriteConfig(); err != nil {
		slog.Warn("Failed to update config file with refresh token", "error", err)
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("Could not save the refresh token to the config file. Add this to config.yaml:"))
		fmt.Fprintf(cmd.OutOrStdout(), "sheets:\n  refresh_token: %q\n", token.RefreshToken)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Google Sheets is configured. Run 'riskdash export sheets' to publish the dashboard."))
	return nil
}
