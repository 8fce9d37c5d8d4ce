package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestNewStoreCreatesParentDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "ledger.db")

	store, err := NewStore(dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.FileExists(t, dbPath)
}

func TestNewStoreRejectsEmptyPath(t *testing.T) {
	_, err := NewStore("")
	require.Error(t, err)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	store := newTestStore(t)

	// Reopening the same file must not re-apply migrations.
	require.NoError(t, store.Close())

	reopened, err := NewStore(store.dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	var version int
	err = reopened.db.QueryRowContext(context.Background(),
		`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	require.NoError(t, err)
	require.Equal(t, len(migrations), version)
}
