// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"time"

	"otpauth/internal/domain/entity"
	"otpauth/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrOtpSessionNotFound is returned when no session has the given ID.
	ErrOtpSessionNotFound = errors.New("otp session not found")
	// ErrVersionConflict is returned when a compare-and-swap write lost a race.
	ErrVersionConflict = errors.New("version conflict")
)

// OtpSessionRepository persists OTP sessions.
type OtpSessionRepository interface {
	Create(ctx context.Context, session *entity.OtpSession) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.OtpSession, error)

	// CompareAndSwap writes session if the stored version still equals
	// expectedVersion, and bumps session.Version on success. It returns
	// ErrVersionConflict when another writer got there first.
	CompareAndSwap(ctx context.Context, session *entity.OtpSession, expectedVersion int64) error

	// DeleteExpiredBefore removes sessions whose expiry is before cutoff.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
