package usecase

import (
	"context"

	"otpauth/internal/domain/entity"

	"github.com/google/uuid"
)

// SelectRoleInput defines the data required to finish onboarding.
type SelectRoleInput struct {
	OnboardingToken string
	Role            entity.Role
}

// AuthOutput is a signed-in user with fresh tokens.
type AuthOutput struct {
	Tokens *entity.TokenPair
	User   *entity.User
}

// AuthUsecase defines the token lifecycle after a code has been verified.
type AuthUsecase interface {
	SelectRole(ctx context.Context, input *SelectRoleInput) (*AuthOutput, error)
	Refresh(ctx context.Context, refreshToken string) (*entity.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	GetMe(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
