// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"farmweather/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session token hash matches no live session.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository manages server-side login sessions. One row per issued
// token; the plaintext token never reaches the store, only its hash.
type SessionRepository interface {
	// Create persists a new session.
	Create(ctx context.Context, session *entity.Session) error

	// FindByTokenHash retrieves a session by its token hash. Expired
	// sessions are reported as ErrSessionNotFound.
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error)

	// DeleteByTokenHash removes a session, ending the login. Deleting a
	// session that does not exist is not an error.
	DeleteByTokenHash(ctx context.Context, tokenHash string) error

	// DeleteByAccountID removes all sessions for an account.
	DeleteByAccountID(ctx context.Context, accountID uuid.UUID) error

	// DeleteExpired removes all expired sessions and returns how many were
	// deleted. Called periodically for cleanup.
	DeleteExpired(ctx context.Context) (int64, error)
}
