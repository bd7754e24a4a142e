package service

import (
	"otpauth/internal/domain/entity"
	"otpauth/internal/errors"
)

// ErrInvalidIdentifier is returned for input that is neither a phone number nor an email.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// IdentifierNormalizer canonicalizes raw identifiers. Normalize must be
// idempotent: normalizing a normalized value returns it unchanged.
type IdentifierNormalizer interface {
	Normalize(raw string) (entity.Identifier, error)
}
