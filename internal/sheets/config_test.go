package sheets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/sachihirani/supplier-risk-dashboard/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultSpreadsheetName, cfg.SpreadsheetName)
	assert.Equal(t, "Australia/Sydney", cfg.TimeZone)
	assert.True(t, cfg.EnableFormatting)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, 30*time.Second, cfg.RetryMaxDelay)

	err := cfg.Validate()
	assert.EqualError(t, err, "no authentication method configured")

	cfg.ServiceAccountPath = "/keys/payables.json"
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	serviceAccount := func(mutate func(*Config)) Config {
		cfg := DefaultConfig()
		cfg.ServiceAccountPath = "/keys/payables.json"
		mutate(&cfg)
		return cfg
	}

	tests := []struct {
		name   string
		errMsg string
		config Config
	}{
		{
			name:   "oauth without refresh token",
			config: Config{ClientID: "riskdash", ClientSecret: "s3cret", BatchSize: 500},
			errMsg: "no authentication method configured",
		},
		{
			name: "oauth and service account together",
			config: serviceAccount(func(c *Config) {
				c.ClientID, c.ClientSecret, c.RefreshToken = "riskdash", "s3cret", "refresh"
			}),
			errMsg: "multiple authentication methods configured",
		},
		{
			name:   "zero batch size",
			config: serviceAccount(func(c *Config) { c.BatchSize = 0 }),
			errMsg: "batch size must be positive",
		},
		{
			name:   "negative retries",
			config: serviceAccount(func(c *Config) { c.RetryAttempts = -1 }),
			errMsg: "retry attempts cannot be negative",
		},
		{
			name:   "negative max delay",
			config: serviceAccount(func(c *Config) { c.RetryMaxDelay = -time.Second }),
			errMsg: "retry max delay cannot be negative",
		},
		{
			name: "single attempt without delay",
			config: serviceAccount(func(c *Config) {
				c.RetryAttempts, c.RetryDelay = 0, 0
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func testWriter(attempts int) *Writer {
	cfg := DefaultConfig()
	cfg.ServiceAccountPath = "/keys/payables.json"
	cfg.RetryAttempts = attempts
	cfg.RetryDelay = time.Millisecond
	cfg.RetryMaxDelay = 2 * time.Millisecond
	return &Writer{config: cfg, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func apiError(code int) error {
	return fmt.Errorf("failed to write batch starting at row 1: %w", &googleapi.Error{Code: code, Message: http.StatusText(code)})
}

func TestWriterRetry(t *testing.T) {
	tests := []struct {
		name      string
		attempts  int
		failures  []error
		wantCalls int
		wantErr   bool
	}{
		{
			name:      "server errors and quota recover",
			attempts:  3,
			failures:  []error{apiError(http.StatusServiceUnavailable), apiError(http.StatusTooManyRequests)},
			wantCalls: 3,
		},
		{
			name:      "network error recovers",
			attempts:  1,
			failures:  []error{errors.New("connection reset by peer")},
			wantCalls: 2,
		},
		{
			name:      "bad request is final",
			attempts:  3,
			failures:  []error{apiError(http.StatusBadRequest)},
			wantCalls: 1,
			wantErr:   true,
		},
		{
			name:     "retries exhausted",
			attempts: 1,
			failures: []error{
				apiError(http.StatusInternalServerError),
				apiError(http.StatusBadGateway),
			},
			wantCalls: 2,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testWriter(tt.attempts)
			calls := 0
			err := w.retry(context.Background(), "write Invoices", func(context.Context) error {
				calls++
				if calls <= len(tt.failures) {
					return tt.failures[calls-1]
				}
				return nil
			})

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClassifyAPIError(t *testing.T) {
	assert.NoError(t, classifyAPIError(nil))
	assert.ErrorIs(t, classifyAPIError(apiError(http.StatusTooManyRequests)), common.ErrRateLimit)
	assert.True(t, common.IsRetryable(classifyAPIError(apiError(http.StatusServiceUnavailable))))
	assert.False(t, common.IsRetryable(classifyAPIError(apiError(http.StatusForbidden))))
	assert.False(t, common.IsRetryable(classifyAPIError(context.Canceled)))

	var apiErr *googleapi.Error
	require.ErrorAs(t, classifyAPIError(apiError(http.StatusNotFound)), &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Code)
}
