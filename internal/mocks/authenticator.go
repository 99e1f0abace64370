package mocks

import (
	"context"

	"github.com/phrazzld/blog-api/internal/service/auth"
)

// MockAuthenticator implements auth.Authenticator for testing
type MockAuthenticator struct {
	LoginFn func(ctx context.Context, username, password string) (string, error)

	Token string
	Err   error
}

// Ensure MockAuthenticator implements auth.Authenticator
var _ auth.Authenticator = (*MockAuthenticator)(nil)

// Login implements the auth.Authenticator interface
func (m *MockAuthenticator) Login(ctx context.Context, username, password string) (string, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, username, password)
	}
	return m.Token, m.Err
}
