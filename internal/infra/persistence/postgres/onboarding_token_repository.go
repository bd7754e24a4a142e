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

type onboardingTokenRepository struct {
	q *query.Query
}

// NewOnboardingTokenRepository is the constructor for onboardingTokenRepository.
func NewOnboardingTokenRepository(db *gorm.DB) repository.OnboardingTokenRepository {
	return &onboardingTokenRepository{
		q: query.Use(db),
	}
}

func (repo *onboardingTokenRepository) Create(ctx context.Context, token *entity.OnboardingToken) error {
	m := &model.OnboardingTokenModel{
		ID:         token.ID,
		UserID:     token.UserID,
		SessionID:  token.SessionID,
		ExpiresAt:  token.ExpiresAt,
		ConsumedAt: token.ConsumedAt,
		CreatedAt:  token.CreatedAt,
	}
	if err := repo.q.OnboardingTokenModel.WithContext(ctx).Create(m); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create onboarding token")
	}

	return nil
}

func (repo *onboardingTokenRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.OnboardingToken, error) {
	o := repo.q.OnboardingTokenModel

	m, err := o.WithContext(ctx).Where(o.ID.Eq(id)).First()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(repository.ErrOnboardingTokenNotFound)
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find onboarding token")
	}

	return &entity.OnboardingToken{
		ID:         m.ID,
		UserID:     m.UserID,
		SessionID:  m.SessionID,
		ExpiresAt:  m.ExpiresAt,
		ConsumedAt: m.ConsumedAt,
		CreatedAt:  m.CreatedAt,
	}, nil
}

func (repo *onboardingTokenRepository) Consume(ctx context.Context, id uuid.UUID, at time.Time) error {
	o := repo.q.OnboardingTokenModel

	info, err := o.WithContext(ctx).
		Where(o.ID.Eq(id), o.ConsumedAt.IsNull()).
		Update(o.ConsumedAt, at)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to consume onboarding token")
	}
	if info.RowsAffected == 1 {
		return nil
	}

	if _, err := repo.FindByID(ctx, id); err != nil {
		return err
	}

	return errors.WithStack(repository.ErrOnboardingTokenConsumed)
}

func (repo *onboardingTokenRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	o := repo.q.OnboardingTokenModel

	info, err := o.WithContext(ctx).Where(o.ExpiresAt.Lt(cutoff)).Delete()
	if err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to delete expired onboarding tokens")
	}

	return info.RowsAffected, nil
}
