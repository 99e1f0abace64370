package sqlstore

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/phrazzld/blog-api/internal/config"
	"github.com/stretchr/testify/require"
)

// openSQLite opens a migrated SQLite database in a temporary directory.
func openSQLite(t *testing.T) (*sql.DB, Dialect) {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    filepath.Join(t.TempDir(), "blog.db"),
	}
	db, dialect, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err, "failed to open sqlite database")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(context.Background(), db, dialect, MigrateUp, nil))
	return db, dialect
}

// openExternal opens a migrated database named by envVar, skipping the test
// when the variable is unset. The posts table is emptied before returning.
func openExternal(t *testing.T, driver, envVar string) (*sql.DB, Dialect) {
	t.Helper()

	url := os.Getenv(envVar)
	if url == "" {
		t.Skipf("%s not set, skipping %s tests", envVar, driver)
	}

	cfg := config.DatabaseConfig{
		Driver:                 driver,
		URL:                    url,
		MaxOpenConns:           5,
		MaxIdleConns:           2,
		ConnMaxLifetimeMinutes: 5,
	}
	db, dialect, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err, "failed to open %s database", driver)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(context.Background(), db, dialect, MigrateUp, nil))
	_, err = db.ExecContext(context.Background(), "DELETE FROM posts")
	require.NoError(t, err, "failed to empty posts table")
	return db, dialect
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
