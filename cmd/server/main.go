// Package main implements the entry point for the blog API server, which
// serves the authenticated post CRUD endpoints and runs schema migrations.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/phrazzld/blog-api/internal/config"
	"github.com/phrazzld/blog-api/internal/platform/logger"
)

// main is the entry point for the blog-api server.
// Without -migrate it initializes the application and serves HTTP until
// SIGINT/SIGTERM; with -migrate it runs the migration command and exits.
func main() {
	configPath := flag.String("config", "", "path to a config file (default: ./config.yaml or ./config/config.yaml when present)")
	migrateCmd := flag.String("migrate", "", "run a migration command and exit: up, down, reset, status, version")
	flag.Parse()

	if err := run(context.Background(), *configPath, *migrateCmd); err != nil {
		slog.Error("blog-api exited with error", "error", err)
		os.Exit(1)
	}
}

// run loads configuration, sets up logging and dispatches to the migration
// runner or the HTTP server.
func run(ctx context.Context, configPath, migrateCmd string) error {
	cfg, err := loadAppConfig(configPath)
	if err != nil {
		return err
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver)

	if migrateCmd != "" {
		return runMigrations(ctx, cfg, migrateCmd, l)
	}

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}

// loadAppConfig loads the application configuration from a config file and
// BLOG_* environment variables, including those from an optional .env file.
func loadAppConfig(path string) (*config.Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if len(cfg.Auth.Users) == 0 {
		slog.Warn("no users configured; every login will be rejected")
	}
	return cfg, nil
}

// loadDotEnv exports the variables of a dotenv file. Variables already set
// in the environment win; a missing file is ignored.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
