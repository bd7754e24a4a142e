// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"otpauth/config"
	"otpauth/internal/domain/entity"
	"otpauth/internal/domain/service"
	"otpauth/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// jwtService signs each token type with its own HMAC key so a token can
// never be replayed against another audience.
type jwtService struct {
	issuer  string
	secrets map[service.TokenType][]byte
	ttls    map[service.TokenType]time.Duration
	now     func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	return newJWTService(cfg, time.Now)
}

func newJWTService(cfg *config.Config, now func() time.Time) (*jwtService, error) {
	keys := cfg.SecretKey
	if keys.Access == "" || keys.Refresh == "" || keys.Onboarding == "" {
		return nil, errors.New("jwt secrets must be provided")
	}
	if cfg.Token == nil {
		return nil, errors.New("token config must be provided")
	}

	return &jwtService{
		issuer: cfg.Token.Issuer,
		secrets: map[service.TokenType][]byte{
			service.TokenTypeAccess:     []byte(keys.Access),
			service.TokenTypeRefresh:    []byte(keys.Refresh),
			service.TokenTypeOnboarding: []byte(keys.Onboarding),
		},
		ttls: map[service.TokenType]time.Duration{
			service.TokenTypeAccess:     cfg.Token.AccessTTL,
			service.TokenTypeRefresh:    cfg.Token.RefreshTTL,
			service.TokenTypeOnboarding: cfg.Token.OnboardingTTL,
		},
		now: now,
	}, nil
}

// IssueAccessToken carries the role for stateless authorization.
func (s *jwtService) IssueAccessToken(userID uuid.UUID, role entity.Role) (*service.IssuedToken, error) {
	return s.issue(userID, service.Claims{
		Role: role.String(),
		Type: service.TokenTypeAccess,
	})
}

// IssueRefreshToken binds the token to its rotation family.
func (s *jwtService) IssueRefreshToken(userID, familyID uuid.UUID) (*service.IssuedToken, error) {
	return s.issue(userID, service.Claims{
		FamilyID: familyID.String(),
		Type:     service.TokenTypeRefresh,
	})
}

// IssueOnboardingToken grants role selection only.
func (s *jwtService) IssueOnboardingToken(userID, sessionID uuid.UUID) (*service.IssuedToken, error) {
	return s.issue(userID, service.Claims{
		SessionID: sessionID.String(),
		Type:      service.TokenTypeOnboarding,
	})
}

// ValidateToken checks the validity of a token string of the given type.
func (s *jwtService) ValidateToken(tokenString string, tokenType service.TokenType) (*service.Claims, error) {
	secret, ok := s.secrets[tokenType]
	if !ok {
		return nil, errors.Wrapf(service.ErrTokenInvalid, "unknown token type %q", tokenType)
	}

	claims := &service.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, errors.WithStack(service.ErrTokenExpired)
	case err != nil:
		return nil, errors.Wrap(service.ErrTokenInvalid, err.Error())
	}

	if claims.Type != tokenType {
		return nil, errors.Wrapf(service.ErrTokenInvalid, "expected %s token, got %q", tokenType, claims.Type)
	}

	return claims, nil
}

// HashToken returns the hex SHA-256 of a raw token. Tokens are high-entropy
// so an unsalted digest is enough for lookup.
func (s *jwtService) HashToken(tokenString string) string {
	sum := sha256.Sum256([]byte(tokenString))

	return hex.EncodeToString(sum[:])
}

func (s *jwtService) issue(userID uuid.UUID, claims service.Claims) (*service.IssuedToken, error) {
	now := s.now()
	tokenID := uuid.New()
	expiresAt := jwt.NewNumericDate(now.Add(s.ttls[claims.Type]))

	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        tokenID.String(),
		Subject:   userID.String(),
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: expiresAt,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString(s.secrets[claims.Type])
	if err != nil {
		return nil, errors.Wrapf(err, "sign %s token", claims.Type)
	}

	return &service.IssuedToken{
		Value:     signed,
		ID:        tokenID,
		ExpiresAt: expiresAt.Time,
	}, nil
}
