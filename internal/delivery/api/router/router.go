// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"otpauth/internal/delivery/api/middleware"
	"otpauth/internal/delivery/api/router/handler"
	"otpauth/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	OtpHandler     *handler.OtpHandler
	AuthHandler    *handler.AuthHandler
	AdminHandler   *handler.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	otpHandler     *handler.OtpHandler
	authHandler    *handler.AuthHandler
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		otpHandler:     params.OtpHandler,
		authHandler:    params.AuthHandler,
		adminHandler:   params.AdminHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	otpGroup := e.Group("/otp")
	{
		otpGroup.POST("/start", r.otpHandler.StartOtp)
		otpGroup.POST("/verify", r.otpHandler.VerifyOtp)
		otpGroup.POST("/resend", r.otpHandler.ResendOtp)
	}

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/select-role", r.authHandler.SelectRole)
		authGroup.POST("/refresh", r.authHandler.RefreshToken)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
	}

	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.POST("/maintenance/cleanup", r.adminHandler.Cleanup)
	}
}
