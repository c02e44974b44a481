// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"farmweather/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for account persistence.
var (
	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountExists is returned when an insert violates the username or
	// email uniqueness constraint.
	ErrAccountExists = errors.New("account already exists")
)

// AccountRepository defines the standard operations for account persistence.
// Accounts are never deleted and, apart from the reserved profile fields,
// never updated.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID, including its
	// crop history.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByUsername retrieves a single account by its username.
	FindByUsername(ctx context.Context, username string) (*entity.Account, error)

	// FindByUsernameOrEmail retrieves the first account matching either the
	// username or the email. Used by registration to detect duplicates.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*entity.Account, error)

	// Create persists a new account. Returns ErrAccountExists when the
	// username or email is already taken.
	Create(ctx context.Context, account *entity.Account) error
}
