package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"otpauth/internal/domain/entity"
	domainerrors "otpauth/internal/domain/errors"
	"otpauth/internal/domain/service"
	"otpauth/internal/errors"
	"otpauth/internal/infra/persistence/postgres"
	"otpauth/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signedInUser completes onboarding and returns the first token pair.
func (f *serviceFixture) signedInUser(t *testing.T, identifier string, role entity.Role) *usecase.AuthOutput {
	t.Helper()

	verified := f.signIn(t, identifier)
	require.True(t, verified.IsNewUser)

	out, err := f.auth.SelectRole(context.Background(), &usecase.SelectRoleInput{
		OnboardingToken: verified.OnboardingToken,
		Role:            role,
	})
	require.NoError(t, err)

	return out
}

func TestAuthService_SelectRole(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDeliveries()
	ctx := context.Background()

	verified := f.signIn(t, "+260961234567")
	input := &usecase.SelectRoleInput{OnboardingToken: verified.OnboardingToken, Role: entity.RoleTasker}

	out, err := f.auth.SelectRole(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, entity.RoleTasker, out.User.Role)
	assert.True(t, out.User.IsVerified)
	require.NotNil(t, out.Tokens)

	claims, err := f.tokens.ValidateToken(out.Tokens.AccessToken, service.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "tasker", claims.Role)

	t.Run("token is single use", func(t *testing.T) {
		_, err := f.auth.SelectRole(ctx, input)
		assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
	})

	t.Run("new onboarding token cannot change the role", func(t *testing.T) {
		again := f.signIn(t, "+260961234567")
		assert.False(t, again.IsNewUser)
		assert.Empty(t, again.OnboardingToken)
	})
}

func TestAuthService_SelectRole_Rejects(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDeliveries()
	ctx := context.Background()

	verified := f.signIn(t, "ada@example.com")

	t.Run("unassigned role", func(t *testing.T) {
		_, err := f.auth.SelectRole(ctx, &usecase.SelectRoleInput{
			OnboardingToken: verified.OnboardingToken,
			Role:            entity.RoleUnassigned,
		})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidRole)
	})

	t.Run("admin cannot be self-selected", func(t *testing.T) {
		_, err := f.auth.SelectRole(ctx, &usecase.SelectRoleInput{
			OnboardingToken: verified.OnboardingToken,
			Role:            entity.RoleAdmin,
		})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidRole)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := f.auth.SelectRole(ctx, &usecase.SelectRoleInput{
			OnboardingToken: verified.OnboardingToken,
			Role:            entity.Role("owner"),
		})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidRole)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := f.auth.SelectRole(ctx, &usecase.SelectRoleInput{OnboardingToken: "nope", Role: entity.RoleVendor})
		assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
	})

	t.Run("access token in place of onboarding token", func(t *testing.T) {
		access, err := f.tokens.IssueAccessToken(verified.User.ID, entity.RoleVendor)
		require.NoError(t, err)

		_, err = f.auth.SelectRole(ctx, &usecase.SelectRoleInput{OnboardingToken: access.Value, Role: entity.RoleVendor})
		assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
	})

	t.Run("signed but never recorded", func(t *testing.T) {
		forged, err := f.tokens.IssueOnboardingToken(verified.User.ID, uuid.New())
		require.NoError(t, err)

		_, err = f.auth.SelectRole(ctx, &usecase.SelectRoleInput{OnboardingToken: forged.Value, Role: entity.RoleVendor})
		assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
	})

	// Nothing above may have consumed the real token.
	_, err := f.auth.SelectRole(ctx, &usecase.SelectRoleInput{OnboardingToken: verified.OnboardingToken, Role: entity.RoleVendor})
	assert.NoError(t, err)
}

func TestAuthService_SelectRole_ConcurrentSelections(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDeliveries()

	// Two verified sessions give the same user two onboarding tokens.
	first := f.signIn(t, "ada@example.com")
	second := f.signIn(t, "ada@example.com")
	require.Equal(t, first.User.ID, second.User.ID)

	inputs := []*usecase.SelectRoleInput{
		{OnboardingToken: first.OnboardingToken, Role: entity.RoleCustomer},
		{OnboardingToken: second.OnboardingToken, Role: entity.RoleVendor},
	}

	errs := make([]error, len(inputs))
	var wg sync.WaitGroup
	for i, input := range inputs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.auth.SelectRole(context.Background(), input)
		}()
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domainerrors.ErrRoleAlreadySet):
			rejected++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)
}

func TestAuthService_Refresh_Rotates(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDeliveries()
	ctx := context.Background()

	signedIn := f.signedInUser(t, "ada@example.com", entity.RoleCustomer)

	rotated, err := f.auth.Refresh(ctx, signedIn.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, signedIn.Tokens.RefreshToken, rotated.RefreshToken)

	repo := postgres.NewRefreshTokenRepository(f.db)
	oldRecord, err := repo.FindByHash(ctx, f.tokens.HashToken(signedIn.Tokens.RefreshToken))
	require.NoError(t, err)
	newRecord, err := repo.FindByHash(ctx, f.tokens.HashToken(rotated.RefreshToken))
	require.NoError(t, err)

	assert.True(t, oldRecord.IsSuperseded())
	assert.Equal(t, oldRecord.FamilyID, newRecord.FamilyID)
	require.NotNil(t, newRecord.ParentID)
	assert.Equal(t, oldRecord.ID, *newRecord.ParentID)

	claims, err := f.tokens.ValidateToken(rotated.AccessToken, service.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "customer", claims.Role)
}

func TestAuthService_Refresh_ReuseRevokesFamily(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDeliveries()
	ctx := context.Background()

	signedIn := f.signedInUser(t, "ada@example.com", entity.RoleCustomer)
	stolen := signedIn.Tokens.RefreshToken

	rotated, err := f.auth.Refresh(ctx, stolen)
	require.NoError(t, err)

	_, err = f.auth.Refresh(ctx, stolen)
	require.ErrorIs(t, err, domainerrors.ErrTokenReuseDetected)

	// The revocation committed, so the legitimate successor is dead too.
	_, err = f.auth.Refresh(ctx, rotated.RefreshToken)
	require.ErrorIs(t, err, domainerrors.ErrTokenInvalid)

	record, err := postgres.NewRefreshTokenRepository(f.db).FindByHash(ctx, f.tokens.HashToken(rotated.RefreshToken))
	require.NoError(t, err)
	assert.True(t, record.IsRevoked())
	assert.Equal(t, entity.RevokeReasonReuseDetected, record.RevokedReason)
}

func TestAuthService_Refresh_ReplayAfterLogout(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDeliveries()
	ctx := context.Background()

	signedIn := f.signedInUser(t, "ada@example.com", entity.RoleCustomer)

	rotated, err := f.auth.Refresh(ctx, signedIn.Tokens.RefreshToken)
	require.NoError(t, err)
	require.NoError(t, f.auth.Logout(ctx, rotated.RefreshToken))

	_, err = f.auth.Refresh(ctx, signedIn.Tokens.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrTokenReuseDetected, "a rotated-away token is still a replay")

	_, err = f.auth.Refresh(ctx, rotated.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)

	record, err := postgres.NewRefreshTokenRepository(f.db).FindByHash(ctx, f.tokens.HashToken(rotated.RefreshToken))
	require.NoError(t, err)
	assert.Equal(t, entity.RevokeReasonLogout, record.RevokedReason, "the earlier revocation is kept")
}

func TestAuthService_Refresh_ConcurrentRotations(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDeliveries()
	ctx := context.Background()

	signedIn := f.signedInUser(t, "ada@example.com", entity.RoleCustomer)

	const callers = 2
	pairs := make([]*entity.TokenPair, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pairs[i], errs[i] = f.auth.Refresh(context.Background(), signedIn.Tokens.RefreshToken)
		}()
	}
	wg.Wait()

	var winner *entity.TokenPair
	var reused int
	for i, err := range errs {
		switch {
		case err == nil:
			require.Nil(t, winner, "only one rotation may succeed")
			winner = pairs[i]
		case errors.Is(err, domainerrors.ErrTokenReuseDetected):
			reused++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	require.NotNil(t, winner)
	assert.Equal(t, 1, reused)

	// The loser revoked the family, so the winner's token is dead as well.
	_, err := f.auth.Refresh(ctx, winner.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestAuthService_Refresh_Rejects(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDeliveries()
	ctx := context.Background()

	signedIn := f.signedInUser(t, "ada@example.com", entity.RoleCustomer)

	t.Run("garbage", func(t *testing.T) {
		_, err := f.auth.Refresh(ctx, "garbage")
		assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
	})

	t.Run("access token", func(t *testing.T) {
		_, err := f.auth.Refresh(ctx, signedIn.Tokens.AccessToken)
		assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
	})

	t.Run("valid signature but unknown", func(t *testing.T) {
		orphan, err := f.tokens.IssueRefreshToken(signedIn.User.ID, uuid.New())
		require.NoError(t, err)

		_, err = f.auth.Refresh(ctx, orphan.Value)
		assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
	})

	t.Run("expired record", func(t *testing.T) {
		f.auth.now = func() time.Time { return time.Now().Add(31 * 24 * time.Hour) }
		defer func() { f.auth.now = time.Now }()

		_, err := f.auth.Refresh(ctx, signedIn.Tokens.RefreshToken)
		assert.ErrorIs(t, err, domainerrors.ErrTokenExpired)
	})
}

func TestAuthService_Logout(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDeliveries()
	ctx := context.Background()

	signedIn := f.signedInUser(t, "ada@example.com", entity.RoleVendor)
	rotated, err := f.auth.Refresh(ctx, signedIn.Tokens.RefreshToken)
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(ctx, rotated.RefreshToken))
	require.NoError(t, f.auth.Logout(ctx, rotated.RefreshToken), "logout is idempotent")

	_, err = f.auth.Refresh(ctx, rotated.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)

	record, err := postgres.NewRefreshTokenRepository(f.db).FindByHash(ctx, f.tokens.HashToken(signedIn.Tokens.RefreshToken))
	require.NoError(t, err)
	assert.Equal(t, entity.RevokeReasonLogout, record.RevokedReason)

	assert.ErrorIs(t, f.auth.Logout(ctx, "never-issued"), domainerrors.ErrTokenInvalid)
}

func TestAuthService_GetMe(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDeliveries()
	ctx := context.Background()

	signedIn := f.signedInUser(t, "ada@example.com", entity.RoleTasker)

	user, err := f.auth.GetMe(ctx, signedIn.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Identifier)
	assert.Equal(t, entity.RoleTasker, user.Role)

	_, err = f.auth.GetMe(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestMaintenanceService_Cleanup(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDeliveries()
	ctx := context.Background()

	f.start(t, "ada@example.com")
	f.signIn(t, "bob@example.com")
	signedIn := f.signedInUser(t, "cy@example.com", entity.RoleCustomer)

	out, err := f.maintenance.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, &usecase.CleanupOutput{}, out)

	// Sessions go once expired for longer than retention, tokens once expired.
	f.maintenance.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

	out, err = f.maintenance.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.OtpSessions)
	assert.Equal(t, int64(2), out.OnboardingTokens)
	assert.Zero(t, out.RefreshTokens)

	_, err = postgres.NewRefreshTokenRepository(f.db).FindByHash(ctx, f.tokens.HashToken(signedIn.Tokens.RefreshToken))
	assert.NoError(t, err)
}
