package service

import "time"

// SessionTokenService issues and fingerprints opaque session tokens. The
// plaintext token is handed to the client; only its hash is persisted.
type SessionTokenService interface {
	// Generate returns a new cryptographically random token.
	Generate() (string, error)

	// HashToken returns the storage fingerprint of a token.
	HashToken(token string) string

	// TTL returns how long a newly issued session stays valid.
	TTL() time.Duration
}
