package handler

import (
	"log/slog"
	"net/http"

	"otpauth/internal/delivery/api/response"
	"otpauth/internal/errors"
	"otpauth/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AdminHandler serves operator endpoints.
type AdminHandler struct {
	maintenance usecase.MaintenanceUsecase
	logger      *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(maintenance usecase.MaintenanceUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		maintenance: maintenance,
		logger:      logger,
	}
}

// Cleanup runs one reaper pass on demand.
func (h *AdminHandler) Cleanup(c echo.Context) error {
	output, err := h.maintenance.Cleanup(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, &CleanupResponse{
		OtpSessions:      output.OtpSessions,
		RefreshTokens:    output.RefreshTokens,
		OnboardingTokens: output.OnboardingTokens,
	}, "Cleanup completed")
}
