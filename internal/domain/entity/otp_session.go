package entity

import (
	"time"

	"github.com/google/uuid"
)

// OtpStatus is the lifecycle state of an OtpSession.
type OtpStatus string

const (
	OtpStatusPending   OtpStatus = "pending"
	OtpStatusVerified  OtpStatus = "verified"
	OtpStatusExpired   OtpStatus = "expired"
	OtpStatusExhausted OtpStatus = "exhausted"
)

// IsTerminal reports whether no further transition is possible.
func (s OtpStatus) IsTerminal() bool {
	return s != OtpStatusPending
}

// AttemptOutcome is the result of registering one verification attempt.
type AttemptOutcome int

const (
	AttemptVerified AttemptOutcome = iota + 1
	AttemptInvalidCode
	AttemptExhausted
)

// OtpSession tracks one issued code from start to a terminal state.
//
// Status only moves away from pending, Attempts only grows, and Attempts
// never exceeds MaxAttempts. Version increases by one on every persisted
// change and guards concurrent writers.
type OtpSession struct {
	ID             uuid.UUID
	Identifier     string
	IdentifierKind IdentifierKind
	Channel        Channel
	CodeHash       string
	Attempts       int
	MaxAttempts    int
	ResendCount    int
	Status         OtpStatus
	Version        int64
	CreatedAt      time.Time
	ExpiresAt      time.Time
	UpdatedAt      time.Time
}

// NewOtpSession creates a pending session expiring ttl after now.
func NewOtpSession(identifier Identifier, channel Channel, codeHash string, maxAttempts int, now time.Time, ttl time.Duration) *OtpSession {
	return &OtpSession{
		ID:             uuid.New(),
		Identifier:     identifier.Value,
		IdentifierKind: identifier.Kind,
		Channel:        channel,
		CodeHash:       codeHash,
		MaxAttempts:    maxAttempts,
		Status:         OtpStatusPending,
		Version:        1,
		CreatedAt:      now,
		ExpiresAt:      now.Add(ttl),
		UpdatedAt:      now,
	}
}

// IsExpiredAt reports whether the session lifetime has elapsed at now.
func (s *OtpSession) IsExpiredAt(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// ExpiresIn is the remaining lifetime at now, never negative.
func (s *OtpSession) ExpiresIn(now time.Time) time.Duration {
	return max(s.ExpiresAt.Sub(now), 0)
}

// Expire moves a pending session to expired.
func (s *OtpSession) Expire(now time.Time) {
	if s.Status != OtpStatusPending {
		return
	}
	s.Status = OtpStatusExpired
	s.UpdatedAt = now
}

// RegisterAttempt counts one attempt and applies its outcome. The caller
// must have checked that the session is pending and unexpired.
func (s *OtpSession) RegisterAttempt(matched bool, now time.Time) AttemptOutcome {
	s.Attempts++
	s.UpdatedAt = now

	switch {
	case matched:
		s.Status = OtpStatusVerified

		return AttemptVerified
	case s.Attempts >= s.MaxAttempts:
		s.Attempts = s.MaxAttempts
		s.Status = OtpStatusExhausted

		return AttemptExhausted
	default:
		return AttemptInvalidCode
	}
}

// Rotate replaces the code hash for a resend. Attempts and expiry are kept.
func (s *OtpSession) Rotate(codeHash string, now time.Time) {
	s.CodeHash = codeHash
	s.ResendCount++
	s.UpdatedAt = now
}
