package repository

import (
	"context"
	"time"

	"otpauth/internal/domain/entity"
	"otpauth/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrOnboardingTokenNotFound is returned when no grant has the given ID.
	ErrOnboardingTokenNotFound = errors.New("onboarding token not found")
	// ErrOnboardingTokenConsumed is returned when the grant was already used.
	ErrOnboardingTokenConsumed = errors.New("onboarding token already consumed")
)

// OnboardingTokenRepository tracks single-use role selection grants.
type OnboardingTokenRepository interface {
	Create(ctx context.Context, token *entity.OnboardingToken) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.OnboardingToken, error)

	// Consume marks the grant used. It returns ErrOnboardingTokenConsumed if
	// it was consumed before and ErrOnboardingTokenNotFound if it is unknown.
	Consume(ctx context.Context, id uuid.UUID, at time.Time) error

	// DeleteExpiredBefore removes grants whose expiry is before cutoff.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
