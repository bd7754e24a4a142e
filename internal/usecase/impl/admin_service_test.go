package impl

import (
	"context"
	"testing"

	"otpauth/internal/domain/entity"
	domainerrors "otpauth/internal/domain/errors"
	"otpauth/internal/domain/service"
	"otpauth/internal/infra/persistence/postgres"
	"otpauth/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminService_SeedAdmins(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDeliveries()
	ctx := context.Background()

	onboarding := f.signIn(t, "pending@example.com")
	f.signedInUser(t, "cy@example.com", entity.RoleCustomer)

	out, err := f.admin.SeedAdmins(ctx, []string{"Root@Example.com", "pending@example.com", "cy@example.com", "root@example.com"})
	require.NoError(t, err)
	assert.Equal(t, &usecase.SeedAdminsOutput{Created: 1, Promoted: 2}, out)

	users := postgres.NewUserRepository(f.db)
	for _, identifier := range []string{"root@example.com", "pending@example.com", "cy@example.com"} {
		user, err := users.FindByIdentifier(ctx, identifier)
		require.NoError(t, err)
		assert.Equal(t, entity.RoleAdmin, user.Role, identifier)
		assert.True(t, user.IsVerified, identifier)
	}

	t.Run("second pass is a no-op", func(t *testing.T) {
		out, err := f.admin.SeedAdmins(ctx, []string{"root@example.com", "cy@example.com"})
		require.NoError(t, err)
		assert.Equal(t, &usecase.SeedAdminsOutput{}, out)
	})

	t.Run("promoted user no longer onboards", func(t *testing.T) {
		_, err := f.auth.SelectRole(ctx, &usecase.SelectRoleInput{
			OnboardingToken: onboarding.OnboardingToken,
			Role:            entity.RoleVendor,
		})
		assert.ErrorIs(t, err, domainerrors.ErrRoleAlreadySet)
	})

	t.Run("seeded admin signs in with full tokens", func(t *testing.T) {
		verified := f.signIn(t, "root@example.com")
		assert.False(t, verified.IsNewUser)
		require.NotNil(t, verified.Tokens)

		claims, err := f.tokens.ValidateToken(verified.Tokens.AccessToken, service.TokenTypeAccess)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Role)
	})
}

func TestAdminService_SeedAdmins_RejectsBadIdentifier(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.admin.SeedAdmins(ctx, []string{"root@example.com", "not-an-identifier"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidIdentifier)

	_, err = postgres.NewUserRepository(f.db).FindByIdentifier(ctx, "root@example.com")
	assert.Error(t, err, "nothing is written when any identifier is invalid")
}
