package auth

import (
	"otpauth/config"
	"otpauth/internal/domain/service"
	"otpauth/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptHasher is a concrete implementation of the CodeHasher interface using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher.
func NewBcryptHasher(cfg *config.Config) service.CodeHasher {
	cost := bcrypt.DefaultCost
	if cfg.OTP != nil && cfg.OTP.BcryptCost != 0 {
		cost = cfg.OTP.BcryptCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash of the code. bcrypt handles salt generation.
func (h *bcryptHasher) Hash(code string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(code), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "bcrypt hash")
	}

	return string(bytes), nil
}

// Check compares a plaintext code with a bcrypt hash in constant time.
func (h *bcryptHasher) Check(code, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
