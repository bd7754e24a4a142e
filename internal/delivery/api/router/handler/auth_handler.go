package handler

import (
	"log/slog"
	"net/http"

	"otpauth/internal/delivery/api/response"
	deliverycontext "otpauth/internal/delivery/context"
	"otpauth/internal/domain/entity"
	domainerrors "otpauth/internal/domain/errors"
	"otpauth/internal/errors"
	"otpauth/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthHandler serves onboarding and the token lifecycle.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// SelectRole finishes onboarding.
func (h *AuthHandler) SelectRole(c echo.Context) error {
	req := new(SelectRoleRequest)
	if err := bindAndValidate(c, req); err != nil {
		return err
	}

	output, err := h.uc.SelectRole(c.Request().Context(), &usecase.SelectRoleInput{
		OnboardingToken: req.OnboardingToken,
		Role:            entity.Role(req.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, &SelectRoleResponse{
		AccessToken:  output.Tokens.AccessToken,
		RefreshToken: output.Tokens.RefreshToken,
		User:         toUserResponse(output.User),
	}, "Role selected")
}

// RefreshToken rotates a refresh token.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	req := new(RefreshTokenRequest)
	if err := bindAndValidate(c, req); err != nil {
		return err
	}

	pair, err := h.uc.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, &TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "Token refreshed")
}

// Logout revokes the refresh token family.
func (h *AuthHandler) Logout(c echo.Context) error {
	req := new(RefreshTokenRequest)
	if err := bindAndValidate(c, req); err != nil {
		return err
	}

	if err := h.uc.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized.WrapMessage("user ID not found in context")
	}

	user, err := h.uc.GetMe(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, &MeResponse{User: toUserResponse(user)}, "")
}
