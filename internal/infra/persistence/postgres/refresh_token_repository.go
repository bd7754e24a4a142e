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

// refreshTokenRepository implements the domain.RefreshTokenRepository interface.
type refreshTokenRepository struct {
	q *query.Query
}

// NewRefreshTokenRepository is the constructor for refreshTokenRepository.
func NewRefreshTokenRepository(db *gorm.DB) repository.RefreshTokenRepository {
	return &refreshTokenRepository{
		q: query.Use(db),
	}
}

func (repo *refreshTokenRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	if err := repo.q.RefreshTokenModel.WithContext(ctx).Create(fromRefreshTokenDomain(token)); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create refresh token")
	}

	return nil
}

// FindByHash does not filter on expiry or revocation; callers decide.
func (repo *refreshTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	r := repo.q.RefreshTokenModel

	m, err := r.WithContext(ctx).Where(r.TokenHash.Eq(tokenHash)).First()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(repository.ErrRefreshTokenNotFound)
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find refresh token")
	}

	return toRefreshTokenDomain(m), nil
}

func (repo *refreshTokenRepository) MarkSuperseded(ctx context.Context, id uuid.UUID, at time.Time) error {
	r := repo.q.RefreshTokenModel

	info, err := r.WithContext(ctx).
		Where(r.ID.Eq(id), r.SupersededAt.IsNull()).
		Update(r.SupersededAt, at)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to supersede refresh token")
	}
	if info.RowsAffected == 0 {
		return errors.WithStack(repository.ErrRefreshTokenSuperseded)
	}

	return nil
}

func (repo *refreshTokenRepository) RevokeFamily(ctx context.Context, familyID uuid.UUID, reason string, at time.Time) (int64, error) {
	r := repo.q.RefreshTokenModel

	info, err := r.WithContext(ctx).
		Where(r.FamilyID.Eq(familyID), r.RevokedAt.IsNull()).
		UpdateSimple(
			r.RevokedAt.Value(at),
			r.RevokedReason.Value(reason),
		)
	if err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to revoke refresh token family")
	}

	return info.RowsAffected, nil
}

// IsFamilyRevoked looks at the whole family. A token committed by a rotation
// that raced a revocation is still caught by its revoked siblings.
func (repo *refreshTokenRepository) IsFamilyRevoked(ctx context.Context, familyID uuid.UUID) (bool, error) {
	r := repo.q.RefreshTokenModel

	count, err := r.WithContext(ctx).
		Where(r.FamilyID.Eq(familyID), r.RevokedAt.IsNotNull()).
		Count()
	if err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to check refresh token family")
	}

	return count > 0, nil
}

func (repo *refreshTokenRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	r := repo.q.RefreshTokenModel

	info, err := r.WithContext(ctx).Where(r.ExpiresAt.Lt(cutoff)).Delete()
	if err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to delete expired refresh tokens")
	}

	return info.RowsAffected, nil
}

func fromRefreshTokenDomain(t *entity.RefreshToken) *model.RefreshTokenModel {
	return &model.RefreshTokenModel{
		ID:            t.ID,
		UserID:        t.UserID,
		FamilyID:      t.FamilyID,
		ParentID:      t.ParentID,
		TokenHash:     t.TokenHash,
		ExpiresAt:     t.ExpiresAt,
		SupersededAt:  t.SupersededAt,
		RevokedAt:     t.RevokedAt,
		RevokedReason: t.RevokedReason,
		CreatedAt:     t.CreatedAt,
	}
}

func toRefreshTokenDomain(m *model.RefreshTokenModel) *entity.RefreshToken {
	return &entity.RefreshToken{
		ID:            m.ID,
		UserID:        m.UserID,
		FamilyID:      m.FamilyID,
		ParentID:      m.ParentID,
		TokenHash:     m.TokenHash,
		ExpiresAt:     m.ExpiresAt,
		SupersededAt:  m.SupersededAt,
		RevokedAt:     m.RevokedAt,
		RevokedReason: m.RevokedReason,
		CreatedAt:     m.CreatedAt,
	}
}
