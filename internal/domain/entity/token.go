package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is one link in a rotation chain. The raw token is never
// stored; only its SHA-256 hash.
type RefreshToken struct {
	ID            uuid.UUID  // The token's jti.
	UserID        uuid.UUID  // Owner.
	FamilyID      uuid.UUID  // Shared by every token rotated from the same sign-in.
	ParentID      *uuid.UUID // Token this one replaced; nil for the first in a family.
	TokenHash     string     // SHA-256 hex of the raw token.
	ExpiresAt     time.Time  // Absolute expiry.
	SupersededAt  *time.Time // Set when the token is rotated away.
	RevokedAt     *time.Time // Set when the family is revoked.
	RevokedReason string     // logout, reuse_detected.
	CreatedAt     time.Time
}

// IsSuperseded reports whether the token was already exchanged.
func (t *RefreshToken) IsSuperseded() bool {
	return t.SupersededAt != nil
}

// IsRevoked reports whether the token's family was revoked.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired reports whether the token is past its expiry at now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// Revocation reasons.
const (
	RevokeReasonLogout        = "logout"
	RevokeReasonReuseDetected = "reuse_detected"
)

// OnboardingToken records a single-use grant to pick a role.
type OnboardingToken struct {
	ID         uuid.UUID  // The token's jti.
	UserID     uuid.UUID  // User who may select a role.
	SessionID  uuid.UUID  // OTP session that produced the grant.
	ExpiresAt  time.Time  // Absolute expiry.
	ConsumedAt *time.Time // Set on successful role selection.
	CreatedAt  time.Time
}

// TokenPair is what a signed-in client holds.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}
