package repository

import (
	"context"
	"time"

	"otpauth/internal/domain/entity"
	"otpauth/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is a domain-specific error returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when the identifier is already registered.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrRoleAlreadyAssigned is returned when a role was set by an earlier call.
	ErrRoleAlreadyAssigned = errors.New("role already assigned")
)

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByIdentifier looks a user up by normalized identifier.
	FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error)

	Create(ctx context.Context, user *entity.User) error

	// AssignRole sets the role of a user whose role is still unassigned and
	// marks them verified. It returns ErrRoleAlreadyAssigned otherwise.
	AssignRole(ctx context.Context, id uuid.UUID, role entity.Role, at time.Time) error

	// GrantRole sets the role of a user whatever it was before and marks
	// them verified. It is used for roles that cannot be self-selected.
	GrantRole(ctx context.Context, id uuid.UUID, role entity.Role, at time.Time) error
}
