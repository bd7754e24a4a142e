package service

import (
	"context"
	"time"

	"otpauth/internal/domain/entity"

	"github.com/google/uuid"
)

// OtpDelivery is one code to hand to the outside world.
type OtpDelivery struct {
	SessionID uuid.UUID
	Channel   entity.Channel
	Phone     string
	Email     string
	Code      string
	ExpiresAt time.Time
}

// Notifier delivers codes out of band.
type Notifier interface {
	Notify(ctx context.Context, delivery *OtpDelivery) error
}
