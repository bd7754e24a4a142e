package postgres

import (
	"context"
	"time"

	"otpauth/internal/domain/entity"
	domainerrors "otpauth/internal/domain/errors"
	"otpauth/internal/domain/repository"
	"otpauth/internal/errors"
	"otpauth/internal/infra/persistence/model"
	"otpauth/internal/infra/persistence/postgres/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// otpSessionRepository implements repository.OtpSessionRepository.
type otpSessionRepository struct {
	q *query.Query
}

// NewOtpSessionRepository is the constructor for otpSessionRepository.
func NewOtpSessionRepository(db *gorm.DB) repository.OtpSessionRepository {
	return &otpSessionRepository{
		q: query.Use(db),
	}
}

func (repo *otpSessionRepository) Create(ctx context.Context, session *entity.OtpSession) error {
	if err := repo.q.OtpSessionModel.WithContext(ctx).Create(fromOtpSessionDomain(session)); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create otp session")
	}

	return nil
}

func (repo *otpSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.OtpSession, error) {
	o := repo.q.OtpSessionModel

	m, err := o.WithContext(ctx).Where(o.ID.Eq(id)).First()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(repository.ErrOtpSessionNotFound)
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find otp session")
	}

	return toOtpSessionDomain(m), nil
}

// CompareAndSwap is a single conditional UPDATE, so the attempt counter and
// status land together or not at all.
func (repo *otpSessionRepository) CompareAndSwap(ctx context.Context, session *entity.OtpSession, expectedVersion int64) error {
	o := repo.q.OtpSessionModel
	next := expectedVersion + 1

	info, err := o.WithContext(ctx).
		Where(o.ID.Eq(session.ID), o.Version.Eq(expectedVersion)).
		UpdateSimple(
			o.CodeHash.Value(session.CodeHash),
			o.Attempts.Value(session.Attempts),
			o.ResendCount.Value(session.ResendCount),
			o.Status.Value(string(session.Status)),
			o.Version.Value(next),
			o.UpdatedAt.Value(session.UpdatedAt),
		)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update otp session")
	}
	if info.RowsAffected == 0 {
		return errors.WithStack(repository.ErrVersionConflict)
	}

	session.Version = next

	return nil
}

func (repo *otpSessionRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	o := repo.q.OtpSessionModel

	info, err := o.WithContext(ctx).Where(o.ExpiresAt.Lt(cutoff)).Delete()
	if err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to delete expired otp sessions")
	}

	return info.RowsAffected, nil
}

func fromOtpSessionDomain(s *entity.OtpSession) *model.OtpSessionModel {
	return &model.OtpSessionModel{
		ID:             s.ID,
		Identifier:     s.Identifier,
		IdentifierKind: string(s.IdentifierKind),
		Channel:        string(s.Channel),
		CodeHash:       s.CodeHash,
		Attempts:       s.Attempts,
		MaxAttempts:    s.MaxAttempts,
		ResendCount:    s.ResendCount,
		Status:         string(s.Status),
		Version:        s.Version,
		CreatedAt:      s.CreatedAt,
		ExpiresAt:      s.ExpiresAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func toOtpSessionDomain(m *model.OtpSessionModel) *entity.OtpSession {
	return &entity.OtpSession{
		ID:             m.ID,
		Identifier:     m.Identifier,
		IdentifierKind: entity.IdentifierKind(m.IdentifierKind),
		Channel:        entity.Channel(m.Channel),
		CodeHash:       m.CodeHash,
		Attempts:       m.Attempts,
		MaxAttempts:    m.MaxAttempts,
		ResendCount:    m.ResendCount,
		Status:         entity.OtpStatus(m.Status),
		Version:        m.Version,
		CreatedAt:      m.CreatedAt,
		ExpiresAt:      m.ExpiresAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
