package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sachihirani/supplier-risk-dashboard/internal/common"
	"github.com/sachihirani/supplier-risk-dashboard/internal/sheets"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("RISKDASH_TEST_DIR", "/data")

	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "~", want: "/home/tester"},
		{input: "~/invoices.csv", want: "/home/tester/invoices.csv"},
		{input: "$RISKDASH_TEST_DIR/invoices.csv", want: "/data/invoices.csv"},
		{input: "/abs/path.csv", want: "/abs/path.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	dir, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "riskdash"), dir)

	token, err := TokenFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "riskdash", "sheets-token.json"), token)
}

func TestLoadDashboard(t *testing.T) {
	now := time.Date(2024, 6, 14, 18, 30, 0, 0, time.Local)
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		check   func(t *testing.T, d *Dashboard)
		values  map[string]any
		wantErr error
		name    string
	}{
		{
			name:   "csv with defaults",
			values: map[string]any{KeyDataPath: "~/data/invoices.csv"},
			check: func(t *testing.T, d *Dashboard) {
				t.Helper()
				assert.Equal(t, "/home/tester/data/invoices.csv", d.DataPath)
				assert.Equal(t, SourceCSV, d.Source)
				assert.Equal(t, "default", d.Theme)
				assert.Equal(t, "/home/tester/.local/share/riskdash/riskdash.db", d.DatabasePath)
				assert.Equal(t, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), d.ReferenceDate)
			},
		},
		{
			name:   "explicit reference date",
			values: map[string]any{KeyDataPath: "x.csv", KeyReferenceDate: "2024-01-31"},
			check: func(t *testing.T, d *Dashboard) {
				t.Helper()
				assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), d.ReferenceDate)
			},
		},
		{
			name:   "database source needs no file",
			values: map[string]any{KeySource: "DB"},
			check: func(t *testing.T, d *Dashboard) {
				t.Helper()
				assert.Equal(t, SourceDB, d.Source)
				assert.Empty(t, d.DataPath)
			},
		},
		{
			name:    "missing data path",
			values:  map[string]any{},
			wantErr: common.ErrMissingConfig,
		},
		{
			name:    "unknown source",
			values:  map[string]any{KeySource: "s3"},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "bad reference date",
			values:  map[string]any{KeyDataPath: "x.csv", KeyReferenceDate: "14/06/2024"},
			wantErr: common.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			for k, val := range tt.values {
				v.Set(k, val)
			}

			d, err := LoadDashboard(v, now)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, d)
		})
	}
}

func TestLoadSheetsConfig(t *testing.T) {
	for _, key := range []string{
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH",
		"GOOGLE_SHEETS_CLIENT_ID",
		"GOOGLE_SHEETS_CLIENT_SECRET",
		"GOOGLE_SHEETS_REFRESH_TOKEN",
		"GOOGLE_SHEETS_SPREADSHEET_ID",
		"GOOGLE_SHEETS_SPREADSHEET_NAME",
	} {
		t.Setenv(key, "")
	}

	t.Run("viper values win", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "from-env")
		v := viper.New()
		v.Set("sheets.service_account_path", "/keys/sa.json")
		v.Set("sheets.spreadsheet_id", "from-config")

		cfg, err := LoadSheetsConfig(v)
		require.NoError(t, err)
		assert.Equal(t, "/keys/sa.json", cfg.ServiceAccountPath)
		assert.Equal(t, "from-config", cfg.SpreadsheetID)
		assert.Equal(t, sheets.DefaultSpreadsheetName, cfg.SpreadsheetName)
		assert.Equal(t, 3, cfg.RetryAttempts)
	})

	t.Run("retry settings", func(t *testing.T) {
		v := viper.New()
		v.Set("sheets.service_account_path", "/keys/sa.json")
		v.Set("sheets.retry_attempts", 0)
		v.Set("sheets.retry_delay", "250ms")
		v.Set("sheets.retry_max_delay", "5s")

		cfg, err := LoadSheetsConfig(v)
		require.NoError(t, err)
		assert.Zero(t, cfg.RetryAttempts)
		assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)
		assert.Equal(t, 5*time.Second, cfg.RetryMaxDelay)
	})

	t.Run("environment fallback", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "id")
		t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "secret")
		t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "token")
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_NAME", "Payables")

		cfg, err := LoadSheetsConfig(viper.New())
		require.NoError(t, err)
		assert.Equal(t, "id", cfg.ClientID)
		assert.Equal(t, "Payables", cfg.SpreadsheetName)
	})

	t.Run("no credentials", func(t *testing.T) {
		_, err := LoadSheetsConfig(viper.New())
		require.Error(t, err)
	})
}
