package auth

import (
	"crypto/rand"
	"math/big"
	"strings"

	"otpauth/config"
	"otpauth/internal/domain/service"
	"otpauth/internal/errors"
)

const defaultCodeLength = 6

// numericCodeGenerator draws each digit uniformly from crypto/rand.
type numericCodeGenerator struct {
	length int
}

// NewCodeGenerator is the constructor for numericCodeGenerator.
func NewCodeGenerator(cfg *config.Config) service.CodeGenerator {
	length := defaultCodeLength
	if cfg.OTP != nil && cfg.OTP.CodeLength > 0 {
		length = cfg.OTP.CodeLength
	}

	return &numericCodeGenerator{length: length}
}

// Generate returns a fixed-length numeric code. Leading zeros are kept.
func (g *numericCodeGenerator) Generate() (string, error) {
	var b strings.Builder
	b.Grow(g.length)

	ten := big.NewInt(10)
	for range g.length {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", errors.Wrap(err, "read random digit")
		}
		b.WriteByte(byte('0' + n.Int64()))
	}

	return b.String(), nil
}
