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
	"gorm.io/gen"
	"gorm.io/gorm"
)

// userRepository is the concrete implementation of the UserRepository interface.
type userRepository struct {
	q *query.Query
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		q: query.Use(db),
	}
}

func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.findOne(ctx, repo.q.UserModel.ID.Eq(id))
}

func (repo *userRepository) FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	return repo.findOne(ctx, repo.q.UserModel.Identifier.Eq(identifier))
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := repo.q.UserModel.WithContext(ctx).Create(fromUserDomain(user)); err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.WithStack(repository.ErrUserAlreadyExists)
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	return nil
}

// AssignRole only touches rows still holding the unassigned role, so two
// concurrent selections cannot both succeed.
func (repo *userRepository) AssignRole(ctx context.Context, id uuid.UUID, role entity.Role, at time.Time) error {
	u := repo.q.UserModel

	info, err := u.WithContext(ctx).
		Where(u.ID.Eq(id), u.Role.Eq(entity.RoleUnassigned.String())).
		UpdateSimple(
			u.Role.Value(role.String()),
			u.IsVerified.Value(true),
			u.UpdatedAt.Value(at),
		)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to assign role")
	}
	if info.RowsAffected == 1 {
		return nil
	}

	if _, err := repo.FindByID(ctx, id); err != nil {
		return err
	}

	return errors.WithStack(repository.ErrRoleAlreadyAssigned)
}

func (repo *userRepository) GrantRole(ctx context.Context, id uuid.UUID, role entity.Role, at time.Time) error {
	u := repo.q.UserModel

	info, err := u.WithContext(ctx).
		Where(u.ID.Eq(id)).
		UpdateSimple(
			u.Role.Value(role.String()),
			u.IsVerified.Value(true),
			u.UpdatedAt.Value(at),
		)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to grant role")
	}
	if info.RowsAffected == 0 {
		return errors.WithStack(repository.ErrUserNotFound)
	}

	return nil
}

func (repo *userRepository) findOne(ctx context.Context, conds ...gen.Condition) (*entity.User, error) {
	m, err := repo.q.UserModel.WithContext(ctx).Where(conds...).First()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(repository.ErrUserNotFound)
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user")
	}

	return toUserDomain(m), nil
}

func fromUserDomain(u *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:             u.ID,
		Identifier:     u.Identifier,
		IdentifierKind: string(u.IdentifierKind),
		Role:           u.Role.String(),
		IsVerified:     u.IsVerified,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func toUserDomain(m *model.UserModel) *entity.User {
	return &entity.User{
		ID:             m.ID,
		Identifier:     m.Identifier,
		IdentifierKind: entity.IdentifierKind(m.IdentifierKind),
		Role:           entity.Role(m.Role),
		IsVerified:     m.IsVerified,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
