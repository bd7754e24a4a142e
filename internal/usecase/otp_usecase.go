// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"otpauth/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// StartOtpInput defines the data required to issue a code.
type StartOtpInput struct {
	Identifier       string
	PreferredChannel entity.Channel // Optional.
	SourceKey        string         // Caller address used for source rate limiting.
}

// VerifyOtpInput defines the data required to verify a code.
type VerifyOtpInput struct {
	SessionID uuid.UUID
	Code      string
}

// ResendOtpInput defines the data required to send a fresh code for a pending session.
type ResendOtpInput struct {
	SessionID uuid.UUID
	SourceKey string
}

// --- Output DTOs ---

// StartOtpOutput describes the session a code was issued for.
type StartOtpOutput struct {
	SessionID uuid.UUID
	Channel   entity.Channel
	ExpiresIn time.Duration
}

// VerifyOtpOutput carries either a full token pair or, for users without a
// role, a single onboarding token.
type VerifyOtpOutput struct {
	IsNewUser           bool
	Tokens              *entity.TokenPair
	OnboardingToken     string
	OnboardingExpiresAt time.Time
	User                *entity.User
}

// OtpUsecase defines the code issuance and verification flow.
type OtpUsecase interface {
	StartOtp(ctx context.Context, input *StartOtpInput) (*StartOtpOutput, error)
	VerifyOtp(ctx context.Context, input *VerifyOtpInput) (*VerifyOtpOutput, error)
	ResendOtp(ctx context.Context, input *ResendOtpInput) (*StartOtpOutput, error)
}
