// Package handler contains the HTTP handlers of the API server.
package handler

import (
	"log/slog"
	"net/http"

	"otpauth/internal/delivery/api/response"
	"otpauth/internal/domain/entity"
	domainerrors "otpauth/internal/domain/errors"
	"otpauth/internal/errors"
	"otpauth/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// OtpHandler serves the code issuance and verification endpoints.
type OtpHandler struct {
	uc     usecase.OtpUsecase
	logger *slog.Logger
}

// NewOtpHandler is the constructor for OtpHandler, injected by Fx.
func NewOtpHandler(uc usecase.OtpUsecase, logger *slog.Logger) *OtpHandler {
	return &OtpHandler{
		uc:     uc,
		logger: logger,
	}
}

// StartOtp issues a code for an identifier.
func (h *OtpHandler) StartOtp(c echo.Context) error {
	req := new(StartOtpRequest)
	if err := bindAndValidate(c, req); err != nil {
		return err
	}

	output, err := h.uc.StartOtp(c.Request().Context(), &usecase.StartOtpInput{
		Identifier:       req.Identifier,
		PreferredChannel: entity.Channel(req.PreferredChannel),
		SourceKey:        c.RealIP(),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toStartOtpResponse(output), "Code sent")
}

// VerifyOtp checks a code and signs the user in or hands out an onboarding token.
func (h *OtpHandler) VerifyOtp(c echo.Context) error {
	req := new(VerifyOtpRequest)
	if err := bindAndValidate(c, req); err != nil {
		return err
	}

	sessionID, err := parseSessionID(req.SessionID)
	if err != nil {
		return err
	}

	output, err := h.uc.VerifyOtp(c.Request().Context(), &usecase.VerifyOtpInput{
		SessionID: sessionID,
		Code:      req.Code,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	resp := &VerifyOtpResponse{
		IsNewUser:       output.IsNewUser,
		OnboardingToken: output.OnboardingToken,
		User:            toUserResponse(output.User),
	}
	if output.Tokens != nil {
		resp.AccessToken = output.Tokens.AccessToken
		resp.RefreshToken = output.Tokens.RefreshToken
	}

	return response.Success(c, http.StatusOK, resp, "Code verified")
}

// ResendOtp replaces the code of a pending session and sends it again.
func (h *OtpHandler) ResendOtp(c echo.Context) error {
	req := new(ResendOtpRequest)
	if err := bindAndValidate(c, req); err != nil {
		return err
	}

	sessionID, err := parseSessionID(req.SessionID)
	if err != nil {
		return err
	}

	output, err := h.uc.ResendOtp(c.Request().Context(), &usecase.ResendOtpInput{
		SessionID: sessionID,
		SourceKey: c.RealIP(),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toStartOtpResponse(output), "Code resent")
}

func parseSessionID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("sessionId must be a UUID")
	}

	return id, nil
}

func toStartOtpResponse(output *usecase.StartOtpOutput) *StartOtpResponse {
	return &StartOtpResponse{
		SessionID: output.SessionID.String(),
		Channel:   output.Channel.String(),
		ExpiresIn: toSeconds(output.ExpiresIn),
	}
}
