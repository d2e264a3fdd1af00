package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/sachihirani/supplier-risk-dashboard/internal/common"
	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
)

// Dataset is the immutable set of invoices for a dashboard session.
type Dataset struct {
	LoadedAt time.Time
	Source   string
	Invoices []model.Invoice
}

// New wraps already loaded invoices.
func New(source string, invoices []model.Invoice) *Dataset {
	return &Dataset{
		Source:   source,
		Invoices: invoices,
		LoadedAt: time.Now(),
	}
}

// Len returns the number of invoices.
func (d *Dataset) Len() int {
	return len(d.Invoices)
}

// LoadFile reads the dataset from a CSV file on disk.
func LoadFile(ctx context.Context, path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("cannot open dataset %s", path), err)
	}
	defer func() { _ = f.Close() }()

	start := time.Now()
	invoices, err := Read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	slog.Info("Loaded invoice dataset",
		"path", path,
		"invoices", len(invoices),
		"duration", time.Since(start))

	return New(path, invoices), nil
}

// Read parses invoices from CSV. The header row is required; columns are
// matched by name so their order does not matter.
func Read(ctx context.Context, r io.Reader) ([]model.Invoice, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", common.ErrNoData)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	idx, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	var invoices []model.Invoice
	for {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read record: %w", readErr)
		}
		line, _ := reader.FieldPos(0)
		if isEmptyRecord(record) {
			continue
		}

		inv, parseErr := idx.parse(line, record)
		if parseErr != nil {
			return nil, parseErr
		}
		invoices = append(invoices, inv)
	}

	return invoices, nil
}

// columnIndex maps column names to positions in a record.
type columnIndex map[string]int

func indexHeader(header []string) (columnIndex, error) {
	idx := make(columnIndex, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		idx[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrMissingColumn, strings.Join(missing, ", "))
	}

	return idx, nil
}

// get returns the cell for column, or "" when the column is absent or the
// record is short.
func (c columnIndex) get(record []string, column string) string {
	i, ok := c[column]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func (c columnIndex) parse(line int, record []string) (model.Invoice, error) {
	inv := model.Invoice{
		ID:              cleanText(c.get(record, ColInvoiceID)),
		SupplierID:      cleanText(c.get(record, ColSupplierID)),
		SupplierName:    cleanText(c.get(record, ColName)),
		ABN:             cleanText(c.get(record, ColABN)),
		SupplierType:    cleanText(c.get(record, ColSupplierType)),
		ServiceCategory: cleanText(c.get(record, ColServiceCategory)),
		Country:         cleanText(c.get(record, ColCountry)),
		ContactName:     cleanText(c.get(record, ColContactName)),
		ContactEmail:    cleanText(c.get(record, ColContactEmail)),
		Status:          normalizeStatus(c.get(record, ColStatus)),
		PaymentStatus:   normalizeStatus(c.get(record, ColPaymentStatus)),
	}

	var err error

	raw := c.get(record, ColInvoiceAmount)
	if inv.Amount, err = parseAmount(raw); err != nil {
		return inv, fieldError(line, ColInvoiceAmount, raw, err)
	}

	dates := []struct {
		dst    *time.Time
		column string
	}{
		{&inv.InvoiceDate, ColInvoiceDate},
		{&inv.DueDate, ColDueDate},
		{&inv.PaymentDate, ColPaymentDate},
	}
	for _, d := range dates {
		raw = c.get(record, d.column)
		if *d.dst, err = parseDate(raw); err != nil {
			return inv, fieldError(line, d.column, raw, err)
		}
	}

	flags := []struct {
		dst    *bool
		column string
	}{
		{&inv.PaidLate, ColPaidLateFlag},
		{&inv.DuplicateABN, ColDuplicateABN},
		{&inv.DuplicateInvoice, ColDuplicateInvoice},
		{&inv.HighAmount, ColHighAmount},
	}
	for _, f := range flags {
		raw = c.get(record, f.column)
		if *f.dst, err = parseBool(raw); err != nil {
			return inv, fieldError(line, f.column, raw, err)
		}
	}

	raw = c.get(record, ColTermsDays)
	if inv.TermsDays, err = parseWholeNumber(raw); err != nil {
		return inv, fieldError(line, ColTermsDays, raw, err)
	}

	raw = c.get(record, ColRiskScore)
	if inv.RiskScore, err = parseRiskScore(raw); err != nil {
		return inv, fieldError(line, ColRiskScore, raw, err)
	}

	return inv, nil
}

func isEmptyRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
