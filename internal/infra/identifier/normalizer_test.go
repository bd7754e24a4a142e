package identifier

import (
	"testing"

	"otpauth/config"
	"otpauth/internal/domain/entity"
	"otpauth/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNormalizer() service.IdentifierNormalizer {
	return NewNormalizer(&config.Config{OTP: &config.OTPConfig{DefaultRegion: "ZM"}})
}

func TestNormalize_PhoneFormatsConverge(t *testing.T) {
	n := newTestNormalizer()

	inputs := []string{
		"0978123456",
		"+260978123456",
		"+260 97 812 3456",
		"  097-812-3456 ",
		"00260978123456",
		"(097) 812-3456",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			got, err := n.Normalize(in)
			require.NoError(t, err)
			assert.Equal(t, "+260978123456", got.Value)
			assert.Equal(t, entity.IdentifierPhone, got.Kind)
		})
	}
}

func TestNormalize_Email(t *testing.T) {
	n := newTestNormalizer()

	got, err := n.Normalize("  New.User@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "new.user@example.com", got.Value)
	assert.Equal(t, entity.IdentifierEmail, got.Kind)
}

func TestNormalize_Idempotent(t *testing.T) {
	n := newTestNormalizer()

	for _, in := range []string{"0978000111", "+260 96 123 4567", "Mixed.Case@Example.org"} {
		first, err := n.Normalize(in)
		require.NoError(t, err, in)

		second, err := n.Normalize(first.Value)
		require.NoError(t, err, in)
		assert.Equal(t, first, second)
	}
}

func TestNormalize_Rejects(t *testing.T) {
	n := newTestNormalizer()

	inputs := []string{
		"",
		"   ",
		"not-an-identifier",
		"12",
		"+260 97 ABC 3456",
		"user@",
		"@example.com",
		"user@@example.com",
		"097812345678901234567890123456789",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := n.Normalize(in)
			assert.ErrorIs(t, err, service.ErrInvalidIdentifier)
		})
	}
}
