package auth

import (
	"testing"
	"time"

	"farmweather/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService(ttl time.Duration) *sessionTokenService {
	svc := NewSessionTokenService(&config.Config{
		Session: &config.SessionConfig{TTL: ttl},
	})

	return svc.(*sessionTokenService)
}

func TestSessionTokenService_GenerateUnique(t *testing.T) {
	svc := newTokenService(time.Hour)

	seen := make(map[string]struct{})
	for range 100 {
		token, err := svc.Generate()
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		_, dup := seen[token]
		assert.False(t, dup, "token issued twice")
		seen[token] = struct{}{}
	}
}

func TestSessionTokenService_HashToken(t *testing.T) {
	svc := newTokenService(time.Hour)

	hash := svc.HashToken("some-token")

	// Hex-encoded SHA-256.
	assert.Len(t, hash, 64)
	assert.NotEqual(t, "some-token", hash)
	assert.Equal(t, hash, svc.HashToken("some-token"))
	assert.NotEqual(t, hash, svc.HashToken("other-token"))
}

func TestSessionTokenService_TTL(t *testing.T) {
	svc := newTokenService(30 * time.Minute)

	assert.Equal(t, 30*time.Minute, svc.TTL())
}
