package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_ReachesExpectedVersion(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	var version int
	require.NoError(t, store.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)
	assert.Equal(t, migrations[len(migrations)-1].Version, ExpectedSchemaVersion)
}

func TestMigrate_Idempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	require.NoError(t, store.Migrate(context.Background()))
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	for _, name := range []string{"idx_invoices_id", "idx_invoices_invoice_date", "idx_invoices_supplier", "idx_invoices_due_date"} {
		var count int
		err := store.db.QueryRow(`
			SELECT COUNT(*) FROM sqlite_master
			WHERE type='index' AND name=?
		`, name).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "index %s", name)
	}
}

func TestMigrate_NewerDatabaseRejected(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.db.Exec("PRAGMA user_version = 99")
	require.NoError(t, err)

	err = store.Migrate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema version mismatch")
}
