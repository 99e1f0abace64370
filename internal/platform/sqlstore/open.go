package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/phrazzld/blog-api/internal/config"
	"github.com/phrazzld/blog-api/internal/redact"
	_ "modernc.org/sqlite" // sqlite driver for database/sql
)

// pingTimeout bounds the connectivity check performed by Open.
const pingTimeout = 5 * time.Second

// Open opens and verifies a connection pool for the configured SQL driver.
// The caller owns the returned *sql.DB and must close it.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, Dialect, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "database"), slog.String("driver", cfg.Driver))

	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := prepareDSN(dialect, cfg.URL)
	if err != nil {
		return nil, nil, err
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		log.Error("failed to open database connection",
			slog.String("error", redact.Error(err)))
		return nil, nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	configurePool(db, dialect, cfg)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		log.Error("database ping failed",
			slog.String("error", redact.Error(err)))

		if errors.Is(err, context.DeadlineExceeded) {
			return nil, nil, fmt.Errorf("database ping timed out after %s: %w", pingTimeout, err)
		}
		var netErr net.Error
		if errors.As(err, &netErr) {
			return nil, nil, fmt.Errorf("network error connecting to database: %w", err)
		}
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("database connection established",
		slog.Int("max_open_conns", db.Stats().MaxOpenConnections))
	return db, dialect, nil
}

// prepareDSN adjusts a configured URL for the driver. MySQL needs parseTime
// so DATETIME columns scan into time.Time, and UTC so stored values round-trip.
func prepareDSN(dialect Dialect, url string) (string, error) {
	if dialect.Name() != config.DriverMySQL {
		return url, nil
	}

	mysqlCfg, err := mysql.ParseDSN(url)
	if err != nil {
		return "", fmt.Errorf("invalid mysql dsn: %w", err)
	}
	mysqlCfg.ParseTime = true
	mysqlCfg.Loc = time.UTC
	return mysqlCfg.FormatDSN(), nil
}

func configurePool(db *sql.DB, dialect Dialect, cfg config.DatabaseConfig) {
	// SQLite serializes writers; a single connection avoids SQLITE_BUSY.
	if dialect.Name() == config.DriverSQLite {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		return
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
}
