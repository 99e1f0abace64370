package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/phrazzld/blog-api/internal/config"
	"github.com/phrazzld/blog-api/internal/service/auth"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testUsername = "user1"
	testPassword = "password1"
	testSecret   = "test-secret-that-is-at-least-32-characters"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testConfig returns a valid configuration for driver. SQLite databases live
// in a per-test temporary directory.
func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()

	hash, err := auth.HashPassword(testPassword, bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "error", ShutdownTimeoutSeconds: 1},
		Database: config.DatabaseConfig{
			Driver:      driver,
			AutoMigrate: true,
		},
		Auth: config.AuthConfig{
			JWTSecret:            testSecret,
			TokenLifetimeMinutes: 60,
			Users:                map[string]string{testUsername: hash},
		},
		Pagination: config.PaginationConfig{DefaultLimit: 10, MaxLimit: 100},
	}
	if driver == config.DriverSQLite {
		cfg.Database.URL = filepath.Join(t.TempDir(), "blog.db")
	}
	require.NoError(t, config.Validate(cfg))
	return cfg
}

func newTestApplication(t *testing.T, driver string) *application {
	t.Helper()

	app, err := newApplication(context.Background(), testConfig(t, driver), discardLogger())
	require.NoError(t, err)
	t.Cleanup(app.cleanup)
	return app
}

// apiClient sends requests through a router, attaching a bearer token when set.
type apiClient struct {
	t      *testing.T
	router http.Handler
	token  string
}

func (c *apiClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	return rec
}

func (c *apiClient) login(username, password string) *httptest.ResponseRecorder {
	c.t.Helper()
	return c.do(http.MethodPost, "/api/login_check", map[string]string{
		"username": username,
		"password": password,
	})
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}
