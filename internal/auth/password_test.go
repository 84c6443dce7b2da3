package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordCost_Valid(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"8 characters", "password"},
		{"long password", "cashew-corner-warehouse-2025!"},
		{"with unicode", "කජු-password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPasswordCost(tt.password, bcrypt.MinCost)

			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)
			assert.True(t, CheckPassword(tt.password, hash))
		})
	}
}

func TestHashPassword_DefaultCost(t *testing.T) {
	hash, err := HashPassword("admin12345")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultBcryptCost, cost)
}

func TestHashPassword_TooShort(t *testing.T) {
	for _, pw := range []string{"", "a", "1234567"} {
		hash, err := HashPasswordCost(pw, bcrypt.MinCost)
		assert.ErrorIs(t, err, ErrPasswordTooShort)
		assert.Empty(t, hash)
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPasswordCost("Password123", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, CheckPassword("Password123", hash))
	assert.False(t, CheckPassword("password123", hash))
	assert.False(t, CheckPassword("", hash))
	assert.False(t, CheckPassword("Password123", "not-a-hash"))
	assert.False(t, CheckPassword("Password123", ""))
}
