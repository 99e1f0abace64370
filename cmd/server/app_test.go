package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/phrazzld/blog-api/internal/config"
	"github.com/phrazzld/blog-api/internal/platform/memory"
	"github.com/phrazzld/blog-api/internal/platform/sqlstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplication(t *testing.T) {
	t.Run("memory driver", func(t *testing.T) {
		app := newTestApplication(t, config.DriverMemory)

		assert.Nil(t, app.db)
		assert.IsType(t, &memory.PostStore{}, app.postStore)
		assert.NotNil(t, app.postService)
		assert.NotNil(t, app.authenticator)
	})

	t.Run("sqlite driver applies migrations", func(t *testing.T) {
		app := newTestApplication(t, config.DriverSQLite)

		require.NotNil(t, app.db)
		assert.IsType(t, &sqlstore.PostStore{}, app.postStore)

		dialect, err := sqlstore.DialectFor(config.DriverSQLite)
		require.NoError(t, err)
		version, err := sqlstore.SchemaVersion(context.Background(), app.db, dialect)
		require.NoError(t, err)
		assert.Positive(t, version)

		post, err := app.postService.SavePost(context.Background(), "title", "content")
		require.NoError(t, err)
		assert.Positive(t, post.ID)
	})

	t.Run("short jwt secret", func(t *testing.T) {
		cfg := testConfig(t, config.DriverMemory)
		cfg.Auth.JWTSecret = "too-short"

		_, err := newApplication(context.Background(), cfg, discardLogger())
		assert.ErrorContains(t, err, "JWT service")
	})

	t.Run("unreachable database", func(t *testing.T) {
		cfg := testConfig(t, config.DriverSQLite)
		cfg.Database.URL = "/nonexistent-dir/sub/blog.db"

		_, err := newApplication(context.Background(), cfg, discardLogger())
		assert.ErrorContains(t, err, "post store")
	})
}

func TestRunMigrations(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.DriverSQLite)
	log := discardLogger()

	dialect, err := sqlstore.DialectFor(config.DriverSQLite)
	require.NoError(t, err)

	schemaVersion := func() int64 {
		t.Helper()
		db, _, err := sqlstore.Open(ctx, cfg.Database, log)
		require.NoError(t, err)
		defer db.Close()
		v, err := sqlstore.SchemaVersion(ctx, db, dialect)
		require.NoError(t, err)
		return v
	}

	require.NoError(t, runMigrations(ctx, cfg, sqlstore.MigrateUp, log))
	assert.Positive(t, schemaVersion())

	require.NoError(t, runMigrations(ctx, cfg, sqlstore.MigrateStatus, log))
	require.NoError(t, runMigrations(ctx, cfg, sqlstore.MigrateVersion, log))

	require.NoError(t, runMigrations(ctx, cfg, sqlstore.MigrateReset, log))
	assert.Zero(t, schemaVersion())

	assert.ErrorContains(t, runMigrations(ctx, cfg, "sideways", log), "unknown migration command")
}

func TestRunMigrationsMemoryDriver(t *testing.T) {
	cfg := testConfig(t, config.DriverMemory)
	err := runMigrations(context.Background(), cfg, sqlstore.MigrateUp, discardLogger())
	assert.ErrorIs(t, err, errNoSQLDatabase)
}

func TestLoadAppConfig(t *testing.T) {
	t.Setenv("BLOG_AUTH_JWT_SECRET", testSecret)
	t.Setenv("BLOG_DATABASE_DRIVER", config.DriverMemory)

	cfg, err := loadAppConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Pagination.DefaultLimit)

	_, err = loadAppConfig("/does/not/exist.yaml")
	assert.ErrorContains(t, err, "failed to load configuration")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("BLOG_TEST_DOTENV_VALUE=from-file\nBLOG_TEST_DOTENV_SET=from-file\n"), 0o600))

	t.Setenv("BLOG_TEST_DOTENV_SET", "from-env")
	t.Setenv("BLOG_TEST_DOTENV_VALUE", "")
	require.NoError(t, os.Unsetenv("BLOG_TEST_DOTENV_VALUE"))

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("BLOG_TEST_DOTENV_VALUE"))
	assert.Equal(t, "from-env", os.Getenv("BLOG_TEST_DOTENV_SET"), "existing variables are not overridden")

	assert.NoError(t, loadDotEnv(filepath.Join(dir, "missing.env")))
}
