// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a registered farmer account. Username and Email are
// unique across all accounts and immutable after creation.
type Account struct {
	ID           uuid.UUID // The unique identifier for the account.
	Username     string    // Login identifier, unique.
	Email        string    // Contact email, unique.
	PasswordHash string    // bcrypt hash of the password. Never logged or rendered.
	Phone        string    // Optional contact number, reserved for future use.
	FarmArea     string    // Optional farm area description, reserved for future use.
	Pincode      string    // Optional default postal code, reserved for future use.
	CropHistory  []CropRecord
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CropRecord is a single entry in an account's crop history.
// The history is append-only and empty at registration.
type CropRecord struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	CropName  string
	Season    string
	CreatedAt time.Time
}

// Session is a server-side login session. The plaintext token lives only in
// the client cookie; the store keeps its SHA-256 hash.
type Session struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
