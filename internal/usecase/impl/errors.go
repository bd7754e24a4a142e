package impl

import (
	"otpauth/internal/domain/entity"
	domainerrors "otpauth/internal/domain/errors"
	"otpauth/internal/domain/service"
	"otpauth/internal/errors"
)

// terminalStatusError maps a finished session to the error a caller sees.
func terminalStatusError(status entity.OtpStatus) error {
	switch status {
	case entity.OtpStatusVerified:
		return domainerrors.ErrAlreadyVerified.WrapMessage("otp session already verified")
	case entity.OtpStatusExhausted:
		return domainerrors.ErrTooManyAttempts.WrapMessage("otp session exhausted")
	case entity.OtpStatusExpired:
		return domainerrors.ErrSessionExpired.WrapMessage("otp session expired")
	default:
		return nil
	}
}

// tokenValidationError keeps expiry distinguishable from every other failure.
func tokenValidationError(err error) error {
	if errors.Is(err, service.ErrTokenExpired) {
		return domainerrors.ErrTokenExpired.WrapMessage(err.Error())
	}

	return domainerrors.ErrTokenInvalid.WrapMessage(err.Error())
}
