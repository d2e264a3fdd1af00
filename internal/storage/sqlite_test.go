package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sachihirani/supplier-risk-dashboard/internal/common"
	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
	"github.com/sachihirani/supplier-risk-dashboard/internal/service"
	"github.com/sachihirani/supplier-risk-dashboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	require.ErrorIs(t, err, ErrEmptyString)
}

func TestNewSQLiteStorage_InMemory(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Migrate(context.Background()))
	assert.Equal(t, ":memory:", store.Path())
}

func TestSQLiteStorage_ReplaceInvoices(t *testing.T) {
	tests := []struct {
		name     string
		invoices []model.Invoice
		wantErr  error
		want     int
	}{
		{
			name:     "standard fixture",
			invoices: testutil.StandardInvoices(),
			want:     9,
		},
		{
			name:     "empty slice",
			invoices: []model.Invoice{},
			wantErr:  ErrEmptySlice,
		},
		{
			name:     "nil slice",
			invoices: nil,
			wantErr:  ErrNilParameter,
		},
		{
			name: "missing supplier",
			invoices: []model.Invoice{
				testutil.NewInvoice("INV-1").Supplier("", "Nobody", "Vendor", "Misc").Build(),
			},
			wantErr: ErrInvalidInvoice,
		},
		{
			name: "repeated invoice IDs",
			invoices: []model.Invoice{
				testutil.NewInvoice("INV-1").Build(),
				testutil.NewInvoice("INV-1").Amount("20").Build(),
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := createTestStorage(t)
			defer cleanup()
			ctx := context.Background()

			err := store.ReplaceInvoices(ctx, "run-1", tt.invoices)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				count, countErr := store.GetInvoiceCount(ctx)
				require.NoError(t, countErr)
				assert.Zero(t, count, "failed replace must not leave rows behind")
				return
			}
			require.NoError(t, err)

			count, err := store.GetInvoiceCount(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, count)
		})
	}
}

func TestSQLiteStorage_ReplaceInvoicesOverwritesPreviousRun(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.ReplaceInvoices(ctx, "run-1", testutil.StandardInvoices()))
	require.NoError(t, store.ReplaceInvoices(ctx, "run-2", []model.Invoice{
		testutil.NewInvoice("INV-900").Build(),
	}))

	invoices, err := store.GetInvoices(ctx, service.InvoiceFilter{})
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "INV-900", invoices[0].ID)
}

func TestSQLiteStorage_KeepsImportOrderAndRepeatedIDs(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	want := []model.Invoice{
		testutil.NewInvoice("INV-9").Amount("10").Dates(testutil.Date(2024, 5, 1), testutil.Date(2024, 6, 1), time.Time{}).Build(),
		testutil.NewInvoice("INV-2").Amount("20").Dates(testutil.Date(2024, 1, 1), testutil.Date(2024, 2, 1), time.Time{}).Build(),
		testutil.NewInvoice("INV-9").Amount("30").Duplicates(false, true).Build(),
	}
	require.NoError(t, store.ReplaceInvoices(ctx, "run-1", want))

	got, err := store.GetInvoices(ctx, service.InvoiceFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.True(t, want[i].Amount.Equal(got[i].Amount), "row %d amount", i)
	}

	assert.False(t, got[0].DuplicateInvoice)
	assert.True(t, got[2].DuplicateInvoice)
}

func TestSQLiteStorage_RoundTrip(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	want := testutil.StandardInvoices()
	require.NoError(t, store.ReplaceInvoices(ctx, "run-1", want))

	stored, err := store.GetInvoices(ctx, service.InvoiceFilter{})
	require.NoError(t, err)
	require.Len(t, stored, len(want))

	for i, inv := range want {
		got := stored[i]
		assert.Equal(t, inv.ID, got.ID)
		assert.Equal(t, inv.SupplierName, got.SupplierName)
		assert.True(t, inv.Amount.Equal(got.Amount), "amount %s != %s", inv.Amount, got.Amount)
		assert.True(t, inv.InvoiceDate.Equal(got.InvoiceDate))
		assert.True(t, inv.DueDate.Equal(got.DueDate))
		assert.Equal(t, inv.PaymentDate.IsZero(), got.PaymentDate.IsZero())
		assert.Equal(t, inv.RiskScore, got.RiskScore)
		assert.Equal(t, inv.PaidLate, got.PaidLate)
		assert.Equal(t, inv.DuplicateABN, got.DuplicateABN)
		assert.Equal(t, inv.DuplicateInvoice, got.DuplicateInvoice)
		assert.Equal(t, inv.HighAmount, got.HighAmount)
	}
}

func TestSQLiteStorage_GetInvoicesFilter(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()
	require.NoError(t, store.ReplaceInvoices(ctx, "run-1", testutil.StandardInvoices()))

	start := testutil.Date(2024, 2, 1)
	end := testutil.Date(2024, 3, 1)

	tests := []struct {
		name    string
		filter  service.InvoiceFilter
		wantIDs []string
		wantErr error
	}{
		{
			name:    "date range inclusive",
			filter:  service.InvoiceFilter{StartDate: &start, EndDate: &end},
			wantIDs: []string{"INV-003", "INV-004", "INV-005"},
		},
		{
			name:    "supplier",
			filter:  service.InvoiceFilter{SupplierID: "S003"},
			wantIDs: []string{"INV-005", "INV-006", "INV-009"},
		},
		{
			name:    "paged",
			filter:  service.InvoiceFilter{Limit: 2, Offset: 1},
			wantIDs: []string{"INV-002", "INV-003"},
		},
		{
			name:    "reversed range",
			filter:  service.InvoiceFilter{StartDate: &end, EndDate: &start},
			wantErr: ErrInvalidDateRange,
		},
		{
			name:    "negative limit",
			filter:  service.InvoiceFilter{Limit: -1},
			wantErr: ErrInvalidPaging,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invoices, err := store.GetInvoices(ctx, tt.filter)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			ids := make([]string, len(invoices))
			for i, inv := range invoices {
				ids[i] = inv.ID
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestSQLiteStorage_ImportRuns(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.GetLatestImportRun(ctx)
	require.ErrorIs(t, err, common.ErrNotFound)

	first := &model.ImportRun{ID: "a", Source: "one.csv", RowCount: 3, ImportedAt: time.Now().Add(-time.Hour)}
	second := &model.ImportRun{ID: "b", Source: "two.csv", RowCount: 5, ImportedAt: time.Now()}
	require.NoError(t, store.SaveImportRun(ctx, first))
	require.NoError(t, store.SaveImportRun(ctx, second))

	latest, err := store.GetLatestImportRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", latest.ID)
	assert.Equal(t, "two.csv", latest.Source)
	assert.Equal(t, 5, latest.RowCount)

	require.ErrorIs(t, store.SaveImportRun(ctx, &model.ImportRun{ID: "c"}), ErrInvalidImportRun)
	require.ErrorIs(t, store.SaveImportRun(ctx, nil), ErrNilParameter)
}

func TestSQLiteStorage_TransactionCommitAndRollback(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.ReplaceInvoices(ctx, "run-1", testutil.StandardInvoices()))
	require.NoError(t, tx.Rollback())

	count, err := store.GetInvoiceCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	tx, err = store.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.ReplaceInvoices(ctx, "run-2", testutil.StandardInvoices()))
	require.NoError(t, tx.SaveImportRun(ctx, &model.ImportRun{ID: "run-2", Source: "x.csv", RowCount: 9, ImportedAt: time.Now()}))

	inTx, err := tx.GetInvoiceCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, inTx)

	_, err = tx.BeginTx(ctx)
	require.Error(t, err)
	require.Error(t, tx.Migrate(ctx))
	require.NoError(t, tx.Commit())

	count, err = store.GetInvoiceCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, count)

	run, err := store.GetLatestImportRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, "run-2", run.ID)
}
