package service

import (
	"time"

	"otpauth/internal/domain/entity"
	"otpauth/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenExpired is returned for a well-formed token past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for any other validation failure.
	ErrTokenInvalid = errors.New("token invalid")
)

// TokenType separates the three token audiences. A token of one type is
// never accepted where another is expected.
type TokenType string

const (
	TokenTypeAccess     TokenType = "access"
	TokenTypeRefresh    TokenType = "refresh"
	TokenTypeOnboarding TokenType = "onboarding"
)

// Claims defines the custom claims for the JWT tokens. The user ID travels
// in the registered subject and the token ID in jti.
type Claims struct {
	Role      string    `json:"role,omitempty"`
	FamilyID  string    `json:"fid,omitempty"`
	SessionID string    `json:"sid,omitempty"`
	Type      TokenType `json:"type"`
	jwt.RegisteredClaims
}

// UserUUID parses the subject.
func (c *Claims) UserUUID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, errors.Wrap(ErrTokenInvalid, "subject is not a uuid")
	}

	return id, nil
}

// TokenUUID parses the jti.
func (c *Claims) TokenUUID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.ID)
	if err != nil {
		return uuid.Nil, errors.Wrap(ErrTokenInvalid, "jti is not a uuid")
	}

	return id, nil
}

// IssuedToken is a signed token with the identity needed to persist it.
type IssuedToken struct {
	Value     string
	ID        uuid.UUID
	ExpiresAt time.Time
}

// TokenService signs and validates JWTs.
type TokenService interface {
	IssueAccessToken(userID uuid.UUID, role entity.Role) (*IssuedToken, error)

	IssueRefreshToken(userID, familyID uuid.UUID) (*IssuedToken, error)

	IssueOnboardingToken(userID, sessionID uuid.UUID) (*IssuedToken, error)

	// ValidateToken checks signature, expiry and type. It returns
	// ErrTokenExpired or ErrTokenInvalid on failure.
	ValidateToken(tokenString string, tokenType TokenType) (*Claims, error)

	// HashToken returns the storage key for a raw token.
	HashToken(tokenString string) string
}
