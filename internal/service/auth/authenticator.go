package auth

import (
	"context"
	"log/slog"

	"github.com/phrazzld/blog-api/internal/platform/logger"
	"golang.org/x/crypto/bcrypt"
)

// Authenticator exchanges user credentials for an access token.
type Authenticator interface {
	// Login checks username and password and returns a signed token.
	// Returns ErrInvalidCredentials when either is wrong.
	Login(ctx context.Context, username, password string) (string, error)
}

// userAuthenticator checks credentials against a fixed set of users, each
// mapped to a bcrypt password hash.
type userAuthenticator struct {
	users      map[string]string
	verifier   PasswordVerifier
	jwtService JWTService
	logger     *slog.Logger

	// compared against when the username is unknown, so both failure
	// paths cost one bcrypt comparison at the configured cost
	dummyHash string
}

// NewAuthenticator creates an Authenticator over the configured users.
func NewAuthenticator(
	users map[string]string,
	verifier PasswordVerifier,
	jwtService JWTService,
	logger *slog.Logger,
) (Authenticator, error) {
	if verifier == nil {
		verifier = NewBcryptVerifier()
	}
	if logger == nil {
		logger = slog.Default()
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("blog-api-unknown-user"), dummyHashCost(users))
	if err != nil {
		return nil, err
	}

	copied := make(map[string]string, len(users))
	for name, hash := range users {
		copied[name] = hash
	}

	return &userAuthenticator{
		users:      copied,
		verifier:   verifier,
		jwtService: jwtService,
		logger:     logger.With(slog.String("component", "authenticator")),
		dummyHash:  string(dummy),
	}, nil
}

// dummyHashCost returns the highest bcrypt cost among the configured hashes,
// or bcrypt.DefaultCost (what cmd/hash-generator produces) when none parse.
func dummyHashCost(users map[string]string) int {
	cost := 0
	for _, hash := range users {
		if c, err := bcrypt.Cost([]byte(hash)); err == nil && c > cost {
			cost = c
		}
	}
	if cost == 0 {
		return bcrypt.DefaultCost
	}
	return cost
}

// Login implements Authenticator.Login
func (a *userAuthenticator) Login(ctx context.Context, username, password string) (string, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)

	hash, known := a.users[username]
	if !known {
		_ = a.verifier.Compare(a.dummyHash, password)
		log.Debug("login failed: unknown user")
		return "", ErrInvalidCredentials
	}

	if err := a.verifier.Compare(hash, password); err != nil {
		log.Debug("login failed: password mismatch", slog.String("username", username))
		return "", ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(ctx, username)
	if err != nil {
		log.Error("failed to generate token", slog.String("error", err.Error()))
		return "", err
	}

	log.Info("user logged in", slog.String("username", username))
	return token, nil
}
