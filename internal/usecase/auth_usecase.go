// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"farmweather/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Username string
	Password string
}

// --- Output DTOs ---

// LoginOutput returns the issued session after a successful login. Token is
// the plaintext cookie value; only its hash is stored server-side.
type LoginOutput struct {
	Token     string
	ExpiresAt time.Time
	Account   *entity.Account
}

// AuthUsecase defines the interface for account and session operations.
// This is the contract that the delivery layer (e.g. HTTP handlers) will depend on.
type AuthUsecase interface {
	// Register creates a new account. It does not log the account in.
	Register(ctx context.Context, input *RegisterInput) (*entity.Account, error)

	// Login verifies credentials and issues a new session.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Logout ends the session for the given token. Idempotent: logging out
	// an unknown or already-ended session is not an error.
	Logout(ctx context.Context, token string) error

	// CurrentAccount resolves a session token to its account, or
	// ErrUnauthenticated when the token is missing, unknown or expired.
	CurrentAccount(ctx context.Context, token string) (*entity.Account, error)

	// CleanupExpiredSessions removes expired sessions and returns how many
	// were deleted.
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}
