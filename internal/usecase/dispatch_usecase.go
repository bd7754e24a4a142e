package usecase

import (
	"context"

	"otpauth/internal/domain/service"
)

// DispatchUsecase delivers codes published by the API. A returned error
// wrapping service.ErrUndeliverable must not be retried.
type DispatchUsecase interface {
	Dispatch(ctx context.Context, event *service.OtpDispatchEvent) error
}
