package auth

import (
	"testing"

	"otpauth/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newFastHasherConfig() *config.Config {
	return &config.Config{OTP: &config.OTPConfig{BcryptCost: bcrypt.MinCost}}
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher(newFastHasherConfig())

	hash, err := hasher.Hash("123456")
	require.NoError(t, err)
	assert.NotEqual(t, "123456", hash)

	assert.True(t, hasher.Check("123456", hash))
	assert.False(t, hasher.Check("654321", hash))
	assert.False(t, hasher.Check("123456", "not-a-hash"))
}

func TestBcryptHasher_SaltsEachHash(t *testing.T) {
	hasher := NewBcryptHasher(newFastHasherConfig())

	first, err := hasher.Hash("000000")
	require.NoError(t, err)
	second, err := hasher.Hash("000000")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_UsesConfiguredCost(t *testing.T) {
	hasher := NewBcryptHasher(newFastHasherConfig())

	hash, err := hasher.Hash("424242")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}
