package repository

import (
	"context"
	"time"

	"otpauth/internal/domain/entity"
	"otpauth/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrRefreshTokenNotFound is returned when a refresh token is not found.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	// ErrRefreshTokenSuperseded is returned when a rotation lost the race for a token.
	ErrRefreshTokenSuperseded = errors.New("refresh token already superseded")
)

// RefreshTokenRepository stores refresh token chains for rotation and
// replay detection.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *entity.RefreshToken) error

	// FindByHash retrieves a token by the SHA-256 hash of its raw value.
	FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// MarkSuperseded stamps the token as rotated if it has not been already.
	// It returns ErrRefreshTokenSuperseded when another rotation won.
	MarkSuperseded(ctx context.Context, id uuid.UUID, at time.Time) error

	// RevokeFamily revokes every unrevoked token of a family and returns the
	// number of rows changed. Revoking a revoked family changes nothing.
	RevokeFamily(ctx context.Context, familyID uuid.UUID, reason string, at time.Time) (int64, error)

	// IsFamilyRevoked reports whether any token of the family has been revoked.
	IsFamilyRevoked(ctx context.Context, familyID uuid.UUID) (bool, error)

	// DeleteExpiredBefore removes tokens whose expiry is before cutoff.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
