package middleware

import (
	"strings"

	deliverycontext "otpauth/internal/delivery/context"
	"otpauth/internal/domain/entity"
	domainerrors "otpauth/internal/domain/errors"
	"otpauth/internal/domain/service"
	"otpauth/internal/errors"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware authenticates access tokens and gates routes by role.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate accepts only access tokens. Refresh and onboarding tokens
// are rejected as invalid.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrUnauthorized.WrapMessage("authorization header is missing")
		}

		tokenString, ok := strings.CutPrefix(authHeader, bearerPrefix)
		if !ok || tokenString == "" {
			return domainerrors.ErrTokenInvalid.WrapMessage("authorization header must be a bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString, service.TokenTypeAccess)
		if errors.Is(err, service.ErrTokenExpired) {
			return domainerrors.ErrTokenExpired.WrapMessage("access token expired")
		}
		if err != nil {
			return domainerrors.ErrTokenInvalid.WrapMessage("access token rejected")
		}

		userID, err := claims.UserUUID()
		if err != nil {
			return domainerrors.ErrTokenInvalid.WrapMessage("access token subject is malformed")
		}

		deliverycontext.SetPrincipal(c, userID, entity.Role(claims.Role))

		return next(c)
	}
}

// RequireRole admits principals holding one of roles. It must run after
// Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := deliverycontext.GetRole(c)
			if !ok {
				return domainerrors.ErrForbidden.WrapMessage("role information missing")
			}
			if !entity.Roles(roles).Contains(role) {
				return domainerrors.ErrForbidden.WrapMessage("role " + role.String() + " may not access this route")
			}

			return next(c)
		}
	}
}
