package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/blog-api/internal/config"
	"github.com/phrazzld/blog-api/internal/platform/memory"
	"github.com/phrazzld/blog-api/internal/platform/sqlstore"
	"github.com/phrazzld/blog-api/internal/store"
)

// errNoSQLDatabase is returned for migration commands under the memory driver.
var errNoSQLDatabase = errors.New("migrations require a SQL database driver (postgres, sqlite or mysql)")

// setupPostStore creates the PostStore for the configured driver. The
// returned *sql.DB is nil for the memory driver; otherwise the caller owns it.
func setupPostStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.PostStore, *sql.DB, error) {
	if cfg.Database.Driver == config.DriverMemory {
		logger.Warn("using in-memory post store; posts are lost on restart")
		return memory.NewPostStore(logger), nil, nil
	}

	db, dialect, err := sqlstore.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := sqlstore.Migrate(ctx, db, dialect, sqlstore.MigrateUp, logger); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	return sqlstore.NewPostStore(db, dialect, logger), db, nil
}

// runMigrations executes a single goose command against the configured
// database and closes the connection.
func runMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	if cfg.Database.Driver == config.DriverMemory {
		return errNoSQLDatabase
	}

	db, dialect, err := sqlstore.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Error closing database connection", "error", err)
		}
	}()

	return sqlstore.Migrate(ctx, db, dialect, command, logger)
}
