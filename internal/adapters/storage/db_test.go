package storage

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// TestInitDB_CreatesLocalStorage verifies the key-value table exists.
func TestInitDB_CreatesLocalStorage(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, InitDB(db))

	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='local_storage'").Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "local_storage", name)
}

// TestInitDB_Idempotent verifies InitDB can run on every startup.
func TestInitDB_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, InitDB(db))
	_, err := db.Exec("INSERT INTO local_storage (namespace, key, value, updated_at) VALUES ('d', 'k', 'v', 't')")
	require.NoError(t, err)
	require.NoError(t, InitDB(db))

	var value string
	require.NoError(t, db.QueryRow("SELECT value FROM local_storage WHERE namespace='d' AND key='k'").Scan(&value))
	require.Equal(t, "v", value)
}

// TestOpen_File verifies pragmas are accepted for on-disk databases.
func TestOpen_File(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "indvend.db"))
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	require.Equal(t, "wal", mode)
}
