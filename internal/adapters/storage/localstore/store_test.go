package localstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"indvend/internal/adapters/storage"
	"indvend/internal/adapters/storage/localstore"
)

func newSQLiteStore(t *testing.T) *localstore.SQLiteStore {
	t.Helper()
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, storage.InitDB(db))
	return localstore.NewSQLiteStore(db)
}

// TestStores runs the same contract against every implementation.
func TestStores(t *testing.T) {
	impls := map[string]func(t *testing.T) localstore.Store{
		"sqlite": func(t *testing.T) localstore.Store { return newSQLiteStore(t) },
		"memory": func(*testing.T) localstore.Store { return localstore.NewMemoryStore() },
	}
	for name, mk := range impls {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := mk(t)

			_, ok, err := s.GetItem(ctx, "dev-1", "iv_attendance")
			require.NoError(t, err)
			require.False(t, ok, "missing key reported present")

			require.NoError(t, s.SetItem(ctx, "dev-1", "iv_attendance", "[]"))
			require.NoError(t, s.SetItem(ctx, "dev-1", "iv_attendance", `[{"id":"a"}]`))
			v, ok, err := s.GetItem(ctx, "dev-1", "iv_attendance")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, `[{"id":"a"}]`, v)

			_, ok, err = s.GetItem(ctx, "dev-2", "iv_attendance")
			require.NoError(t, err)
			require.False(t, ok, "namespaces must be isolated")

			require.NoError(t, s.RemoveItem(ctx, "dev-1", "iv_attendance"))
			require.NoError(t, s.RemoveItem(ctx, "dev-1", "iv_attendance"))
			_, ok, err = s.GetItem(ctx, "dev-1", "iv_attendance")
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}
