package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"time"

	"farmweather/config"
	"farmweather/internal/domain/service"

	"github.com/pkg/errors"
)

const tokenByteLength = 32

// sessionTokenService issues opaque random session tokens and hashes them for
// storage. Holding only the SHA-256 fingerprint server-side means a leaked
// sessions table cannot be replayed as cookies.
type sessionTokenService struct {
	ttl time.Duration
}

// NewSessionTokenService is the constructor for sessionTokenService.
func NewSessionTokenService(cfg *config.Config) service.SessionTokenService {
	return &sessionTokenService{ttl: cfg.Session.TTL}
}

// Generate returns a new URL-safe random token.
func (s *sessionTokenService) Generate() (string, error) {
	raw := make([]byte, tokenByteLength)
	if _, err := rand.Read(raw); err != nil {
		return "", errors.Wrap(err, "failed to generate session token")
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// HashToken returns the hex-encoded SHA-256 fingerprint of a token.
func (s *sessionTokenService) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// TTL returns how long a newly issued session stays valid.
func (s *sessionTokenService) TTL() time.Duration {
	return s.ttl
}
