package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/sachihirani/supplier-risk-dashboard/internal/common"
	"github.com/sachihirani/supplier-risk-dashboard/internal/insights"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Writer implements the ReportWriter interface for Google Sheets.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: service,
		logger:  logger,
	}, nil
}

// Write implements the ReportWriter interface. Each tab is cleared and
// rewritten so repeated exports replace earlier ones.
func (w *Writer) Write(ctx context.Context, snap *insights.Snapshot) error {
	tabs := BuildTabs(snap)

	w.logger.Info("starting sheets export",
		"invoices", snap.KeyInsights.TotalInvoices,
		"reference_date", snap.ReferenceDate.Format("2006-01-02"),
		"filter", snap.Filter.Describe())

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx, tabs)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	sheetIDs, err := w.ensureTabs(ctx, spreadsheetID, tabs)
	if err != nil {
		return fmt.Errorf("failed to prepare tabs: %w", err)
	}

	for _, tab := range tabs {
		err = w.retry(ctx, "write "+tab.Title, func(ctx context.Context) error {
			if clearErr := w.clearTab(ctx, spreadsheetID, tab.Title); clearErr != nil {
				return clearErr
			}
			return w.writeData(ctx, spreadsheetID, tab)
		})
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", tab.Title, err)
		}
	}

	if w.config.EnableFormatting {
		err = w.retry(ctx, "format", func(ctx context.Context) error {
			return w.applyFormatting(ctx, spreadsheetID, tabs, sheetIDs)
		})
		if err != nil {
			// Don't fail the whole export if formatting fails
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("sheets export completed",
		"spreadsheet_id", spreadsheetID,
		"tabs", len(tabs))

	return nil
}

// retry runs one export step under the configured backoff.
func (w *Writer) retry(ctx context.Context, step string, op func(context.Context) error) error {
	backoff := common.Backoff{
		Attempts: w.config.RetryAttempts + 1,
		Delay:    w.config.RetryDelay,
		MaxDelay: w.config.RetryMaxDelay,
	}
	return common.Retry(ctx, w.logger, step, backoff, func(ctx context.Context) error {
		return classifyAPIError(op(ctx))
	})
}

// classifyAPIError tags Sheets API failures for common.Retry. Quota errors
// map to ErrRateLimit, server errors are transient and other API statuses
// are final. Errors without a status are treated as network trouble.
func classifyAPIError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return common.Transient(err)
	}
	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
	case apiErr.Code >= http.StatusInternalServerError:
		return common.Transient(err)
	default:
		return common.Permanent(err)
	}
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		client := oauthConfig(config.ClientID, config.ClientSecret, "")
		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}
		tokenSource = client.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// getOrCreateSpreadsheet gets an existing spreadsheet or creates a new one
// with a sheet per tab.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context, tabs []Tab) (string, error) {
	if w.config.SpreadsheetID != "" {
		return w.config.SpreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
	}
	for _, tab := range tabs {
		spreadsheet.Sheets = append(spreadsheet.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: tab.Title},
		})
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, nil
}

// ensureTabs adds any missing worksheet and returns the sheet ID per title.
func (w *Writer) ensureTabs(ctx context.Context, spreadsheetID string, tabs []Tab) (map[string]int64, error) {
	existing, err := w.service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to access spreadsheet %s: %w", spreadsheetID, err)
	}

	ids := make(map[string]int64, len(tabs))
	for _, s := range existing.Sheets {
		ids[s.Properties.Title] = s.Properties.SheetId
	}

	var requests []*sheets.Request
	for _, tab := range tabs {
		if _, ok := ids[tab.Title]; ok {
			continue
		}
		requests = append(requests, &sheets.Request{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: tab.Title},
			},
		})
	}
	if len(requests) == 0 {
		return ids, nil
	}

	resp, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to add tabs: %w", err)
	}
	for _, reply := range resp.Replies {
		if reply.AddSheet != nil {
			ids[reply.AddSheet.Properties.Title] = reply.AddSheet.Properties.SheetId
		}
	}

	return ids, nil
}

func (w *Writer) clearTab(ctx context.Context, spreadsheetID, title string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, tabRange(title, "A:Z"), &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// writeData writes a tab in batches to stay under API limits.
func (w *Writer) writeData(ctx context.Context, spreadsheetID string, tab Tab) error {
	for i := 0; i < len(tab.Rows); i += w.config.BatchSize {
		end := min(i+w.config.BatchSize, len(tab.Rows))

		valueRange := &sheets.ValueRange{Values: tab.Rows[i:end]}
		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, tabRange(tab.Title, fmt.Sprintf("A%d", i+1)), valueRange).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "tab", tab.Title, "start_row", i+1, "rows", end-i)
	}

	return nil
}

func tabRange(title, cells string) string {
	return fmt.Sprintf("'%s'!%s", title, cells)
}

// applyFormatting bolds section rows, formats currency columns and sizes columns.
func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, tabs []Tab, sheetIDs map[string]int64) error {
	var requests []*sheets.Request
	for _, tab := range tabs {
		sheetID, ok := sheetIDs[tab.Title]
		if !ok {
			continue
		}
		requests = append(requests, formatRequests(tab, sheetID)...)
	}
	if len(requests) == 0 {
		return nil
	}

	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return err
}

func formatRequests(tab Tab, sheetID int64) []*sheets.Request {
	var requests []*sheets.Request

	for _, row := range tab.SectionRows {
		requests = append(requests, &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    int64(row),
					EndRowIndex:      int64(row + 1),
					StartColumnIndex: 0,
					EndColumnIndex:   1,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{Bold: true, FontSize: 12},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		})
	}

	for _, col := range tab.CurrencyColumns {
		requests = append(requests, &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    0,
					EndRowIndex:      int64(len(tab.Rows)),
					StartColumnIndex: int64(col),
					EndColumnIndex:   int64(col + 1),
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						NumberFormat: &sheets.NumberFormat{
							Type:    "CURRENCY",
							Pattern: "$#,##0.00",
						},
					},
				},
				Fields: "userEnteredFormat.numberFormat",
			},
		})
	}

	requests = append(requests, &sheets.Request{
		AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
			Dimensions: &sheets.DimensionRange{
				SheetId:    sheetID,
				Dimension:  "COLUMNS",
				StartIndex: 0,
				EndIndex:   6,
			},
		},
	})

	return requests
}
