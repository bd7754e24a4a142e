// Package identifier canonicalizes the phone numbers and email addresses
// users sign in with.
package identifier

import (
	"strings"

	"otpauth/config"
	"otpauth/internal/domain/entity"
	"otpauth/internal/domain/service"
	"otpauth/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

const (
	defaultRegion  = "ZM"
	maxEmailLength = 254
	maxPhoneLength = 32
)

type normalizer struct {
	region   string
	validate *validator.Validate
}

// NewNormalizer builds a normalizer that reads national numbers in the
// configured default region.
func NewNormalizer(cfg *config.Config) service.IdentifierNormalizer {
	region := defaultRegion
	if cfg.OTP != nil && cfg.OTP.DefaultRegion != "" {
		region = strings.ToUpper(cfg.OTP.DefaultRegion)
	}

	return &normalizer{
		region:   region,
		validate: validator.New(),
	}
}

// Normalize returns an E.164 phone number or a lowercase email address.
func (n *normalizer) Normalize(raw string) (entity.Identifier, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return entity.Identifier{}, errors.Wrap(service.ErrInvalidIdentifier, "empty identifier")
	}

	if strings.Contains(trimmed, "@") {
		return n.normalizeEmail(trimmed)
	}

	return n.normalizePhone(trimmed)
}

func (n *normalizer) normalizeEmail(raw string) (entity.Identifier, error) {
	email := strings.ToLower(raw)
	if len(email) > maxEmailLength {
		return entity.Identifier{}, errors.Wrap(service.ErrInvalidIdentifier, "email too long")
	}
	if err := n.validate.Var(email, "email"); err != nil {
		return entity.Identifier{}, errors.Wrap(service.ErrInvalidIdentifier, "malformed email")
	}

	return entity.Identifier{Value: email, Kind: entity.IdentifierEmail}, nil
}

func (n *normalizer) normalizePhone(raw string) (entity.Identifier, error) {
	if len(raw) > maxPhoneLength || !isPhoneShaped(raw) {
		return entity.Identifier{}, errors.Wrap(service.ErrInvalidIdentifier, "malformed phone number")
	}

	num, err := phonenumbers.Parse(raw, n.region)
	if err != nil {
		return entity.Identifier{}, errors.Wrap(service.ErrInvalidIdentifier, err.Error())
	}
	if !phonenumbers.IsValidNumber(num) {
		return entity.Identifier{}, errors.Wrap(service.ErrInvalidIdentifier, "phone number is not assignable")
	}

	return entity.Identifier{
		Value: phonenumbers.Format(num, phonenumbers.E164),
		Kind:  entity.IdentifierPhone,
	}, nil
}

// isPhoneShaped accepts digits, one leading plus, and common separators.
// phonenumbers is lenient about stray letters, so they are refused here.
func isPhoneShaped(s string) bool {
	digits := 0
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return false
		}
	}

	return digits > 0
}
