package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"vitrina/config"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}})

	hash, err := hasher.Hash("secreto123")
	require.NoError(t, err)
	assert.NotEqual(t, "secreto123", hash)

	assert.True(t, hasher.Check("secreto123", hash))
	assert.False(t, hasher.Check("otro", hash))
	assert.False(t, hasher.Check("secreto123", "not-a-hash"))
}

func TestBcryptHasher_Cost(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
		want int
	}{
		{"nil config", nil, bcrypt.DefaultCost},
		{"unset", &config.Config{Auth: &config.AuthConfig{}}, bcrypt.DefaultCost},
		{"configured", &config.Config{Auth: &config.AuthConfig{BcryptCost: 5}}, 5},
		{"out of range", &config.Config{Auth: &config.AuthConfig{BcryptCost: 99}}, bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := NewBcryptHasher(tt.cfg).(*bcryptHasher)
			require.True(t, ok)
			assert.Equal(t, tt.want, h.cost)
		})
	}
}

func TestBcryptHasher_SaltedHashes(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}})

	a, err := hasher.Hash("same")
	require.NoError(t, err)
	b, err := hasher.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, hasher.Check("same", a))
	assert.True(t, hasher.Check("same", b))
}
