package auth

import (
	"testing"

	"farmweather/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newHasher() *bcryptHasher {
	hasher := NewBcryptHasher(&config.Config{
		Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost},
	})

	return hasher.(*bcryptHasher)
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := newHasher()

	hash, err := hasher.Hash("growmore")
	require.NoError(t, err)
	assert.NotEqual(t, "growmore", hash)

	assert.True(t, hasher.Check("growmore", hash))
	assert.False(t, hasher.Check("growless", hash))
}

func TestBcryptHasher_SamePasswordDifferentHashes(t *testing.T) {
	hasher := newHasher()

	first, err := hasher.Hash("growmore")
	require.NoError(t, err)
	second, err := hasher.Hash("growmore")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("growmore", first))
	assert.True(t, hasher.Check("growmore", second))
}

func TestNewBcryptHasher_CostOutOfRangeFallsBack(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{
		Auth: &config.AuthConfig{BcryptCost: 99},
	})

	assert.Equal(t, bcrypt.DefaultCost, hasher.(*bcryptHasher).cost)
}
