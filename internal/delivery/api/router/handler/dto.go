package handler

import (
	"time"

	"otpauth/internal/domain/entity"
	domainerrors "otpauth/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// --- Requests ---

type StartOtpRequest struct {
	Identifier       string `json:"identifier" validate:"required,max=320"`
	PreferredChannel string `json:"preferredChannel" validate:"omitempty,oneof=sms email"`
}

type VerifyOtpRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
	Code      string `json:"code" validate:"required,max=16"`
}

type ResendOtpRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

type SelectRoleRequest struct {
	OnboardingToken string `json:"onboardingToken" validate:"required"`
	Role            string `json:"role" validate:"required"`
}

// RefreshTokenRequest is shared by refresh and logout.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// --- Responses ---

type StartOtpResponse struct {
	SessionID string `json:"sessionId"`
	Channel   string `json:"channel"`
	ExpiresIn int64  `json:"expiresIn"` // seconds
}

type VerifyOtpResponse struct {
	IsNewUser       bool          `json:"isNewUser"`
	AccessToken     string        `json:"accessToken,omitempty"`
	RefreshToken    string        `json:"refreshToken,omitempty"`
	OnboardingToken string        `json:"onboardingToken,omitempty"`
	User            *UserResponse `json:"user"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type SelectRoleResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	User         *UserResponse `json:"user"`
}

type MeResponse struct {
	User *UserResponse `json:"user"`
}

type UserResponse struct {
	ID             string    `json:"id"`
	Identifier     string    `json:"identifier"`
	IdentifierKind string    `json:"identifierKind"`
	Role           string    `json:"role"`
	IsVerified     bool      `json:"isVerified"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type CleanupResponse struct {
	OtpSessions      int64 `json:"otpSessions"`
	RefreshTokens    int64 `json:"refreshTokens"`
	OnboardingTokens int64 `json:"onboardingTokens"`
}

func toUserResponse(user *entity.User) *UserResponse {
	if user == nil {
		return nil
	}

	return &UserResponse{
		ID:             user.ID.String(),
		Identifier:     user.Identifier,
		IdentifierKind: string(user.IdentifierKind),
		Role:           user.Role.String(),
		IsVerified:     user.IsVerified,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

func toSeconds(d time.Duration) int64 {
	return int64(d / time.Second)
}

// bindAndValidate decodes the body into req and checks its tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("request body is not valid JSON")
	}

	return c.Validate(req)
}
