package sqldb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pressly/sqlturso/internal/sqldb"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := sqldb.Open(ctx, "sqlite", ":memory:")
	require.NoError(t, err)
	require.Equal(t, 1, db.Stats().MaxOpenConnections)
	require.NoError(t, db.Close())

	db, err = sqldb.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "x.db"))
	require.NoError(t, err)
	require.Equal(t, 0, db.Stats().MaxOpenConnections)
	require.NoError(t, db.Close())

	_, err = sqldb.Open(ctx, "postgres", "postgres://localhost/db")
	require.ErrorContains(t, err, "unsupported driver postgres")

	_, err = sqldb.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "missing", "dir", "x.db"))
	require.ErrorContains(t, err, "failed to connect")
}

func TestIsMemory(t *testing.T) {
	t.Parallel()
	for dsn, want := range map[string]bool{
		":memory:":                           true,
		":memory:?_pragma=busy_timeout(100)": true,
		"file::memory:?cache=shared":         true,
		"/tmp/x.db":                          false,
		"file:x.db?mode=ro":                  false,
	} {
		require.Equal(t, want, sqldb.IsMemory(dsn), dsn)
	}
}
