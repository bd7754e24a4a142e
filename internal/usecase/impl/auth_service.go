package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "otpauth/internal/delivery/context"
	"otpauth/internal/domain/entity"
	domainerrors "otpauth/internal/domain/errors"
	"otpauth/internal/domain/repository"
	"otpauth/internal/domain/service"
	"otpauth/internal/errors"
	"otpauth/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	tokenService     service.TokenService
	issuer           *tokenIssuer
	logger           *slog.Logger
	now              func() time.Time
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	TokenService     service.TokenService
	Logger           *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		tokenService:     params.TokenService,
		issuer:           &tokenIssuer{tokens: params.TokenService},
		logger:           params.Logger,
		now:              time.Now,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SelectRole consumes an onboarding token, sets the role and signs the user
// in. Consumption, assignment and issuance commit together.
func (srv *authService) SelectRole(ctx context.Context, input *usecase.SelectRoleInput) (*usecase.AuthOutput, error) {
	claims, err := srv.tokenService.ValidateToken(input.OnboardingToken, service.TokenTypeOnboarding)
	if err != nil {
		return nil, tokenValidationError(err)
	}

	if !input.Role.IsSelectable() {
		return nil, domainerrors.ErrInvalidRole.WrapMessage("role " + input.Role.String() + " is not selectable")
	}

	userID, err := claims.UserUUID()
	if err != nil {
		return nil, tokenValidationError(err)
	}
	tokenID, err := claims.TokenUUID()
	if err != nil {
		return nil, tokenValidationError(err)
	}

	now := srv.now()
	output := &usecase.AuthOutput{}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		onboardingRepo := repoFactory.NewOnboardingTokenRepository()
		userRepo := repoFactory.NewUserRepository()

		record, err := onboardingRepo.FindByID(ctx, tokenID)
		if errors.Is(err, repository.ErrOnboardingTokenNotFound) {
			return domainerrors.ErrTokenInvalid.WrapMessage("onboarding token is not on record")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find onboarding token")
		}
		if record.UserID != userID {
			return domainerrors.ErrTokenInvalid.WrapMessage("onboarding token subject mismatch")
		}

		err = onboardingRepo.Consume(ctx, tokenID, now)
		if errors.Is(err, repository.ErrOnboardingTokenConsumed) || errors.Is(err, repository.ErrOnboardingTokenNotFound) {
			return domainerrors.ErrTokenInvalid.WrapMessage("onboarding token already used")
		}
		if err != nil {
			return errors.Wrap(err, "failed to consume onboarding token")
		}

		err = userRepo.AssignRole(ctx, userID, input.Role, now)
		if errors.Is(err, repository.ErrRoleAlreadyAssigned) {
			return domainerrors.ErrRoleAlreadySet.WrapMessage("user already has a role")
		}
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrTokenInvalid.WrapMessage("onboarding token user no longer exists")
		}
		if err != nil {
			return errors.Wrap(err, "failed to assign role")
		}

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to reload user")
		}
		output.User = user

		pair, err := srv.issuer.issuePair(ctx, repoFactory.NewRefreshTokenRepository(), user, uuid.New(), nil, now)
		if err != nil {
			return err
		}
		output.Tokens = pair

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to select role")
	}

	srv.log(ctx).Info("Role selected",
		slog.String("user_id", userID.String()),
		slog.String("role", input.Role.String()),
	)

	return output, nil
}

// Refresh rotates a refresh token. Presenting a token that was already
// rotated revokes its whole family; the revocation commits before the
// error is returned.
func (srv *authService) Refresh(ctx context.Context, refreshToken string) (*entity.TokenPair, error) {
	claims, err := srv.tokenService.ValidateToken(refreshToken, service.TokenTypeRefresh)
	if err != nil {
		return nil, tokenValidationError(err)
	}

	userID, err := claims.UserUUID()
	if err != nil {
		return nil, tokenValidationError(err)
	}

	tokenHash := srv.tokenService.HashToken(refreshToken)
	now := srv.now()

	var (
		pair        *entity.TokenPair
		reusedToken *entity.RefreshToken
	)

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshRepo := repoFactory.NewRefreshTokenRepository()

		record, err := refreshRepo.FindByHash(ctx, tokenHash)
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return domainerrors.ErrTokenInvalid.WrapMessage("refresh token is not on record")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find refresh token")
		}
		if record.UserID != userID {
			return domainerrors.ErrTokenInvalid.WrapMessage("refresh token subject mismatch")
		}

		// A rotated-away token is a replay even when its family is already
		// revoked, so this check comes first.
		if record.IsSuperseded() {
			reusedToken = record

			return srv.revokeForReuse(ctx, refreshRepo, record, now)
		}

		revoked, err := refreshRepo.IsFamilyRevoked(ctx, record.FamilyID)
		if err != nil {
			return errors.Wrap(err, "failed to check refresh token family")
		}
		if revoked {
			return domainerrors.ErrTokenInvalid.WrapMessage("refresh token family revoked")
		}
		if record.IsExpired(now) {
			return domainerrors.ErrTokenExpired.WrapMessage("refresh token expired")
		}

		err = refreshRepo.MarkSuperseded(ctx, record.ID, now)
		if errors.Is(err, repository.ErrRefreshTokenSuperseded) {
			// Lost a race against a concurrent rotation of the same token.
			reusedToken = record

			return srv.revokeForReuse(ctx, refreshRepo, record, now)
		}
		if err != nil {
			return errors.Wrap(err, "failed to supersede refresh token")
		}

		user, err := repoFactory.NewUserRepository().FindByID(ctx, record.UserID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrTokenInvalid.WrapMessage("refresh token user no longer exists")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find user")
		}

		parentID := record.ID
		pair, err = srv.issuer.issuePair(ctx, refreshRepo, user, record.FamilyID, &parentID, now)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to refresh tokens")
	}

	if reusedToken != nil {
		srv.log(ctx).Warn("Refresh token reuse detected, family revoked",
			slog.String("user_id", reusedToken.UserID.String()),
			slog.String("family_id", reusedToken.FamilyID.String()),
		)

		return nil, domainerrors.ErrTokenReuseDetected.WrapMessage("refresh token was already used")
	}

	return pair, nil
}

func (srv *authService) revokeForReuse(
	ctx context.Context,
	refreshRepo repository.RefreshTokenRepository,
	record *entity.RefreshToken,
	now time.Time,
) error {
	if _, err := refreshRepo.RevokeFamily(ctx, record.FamilyID, entity.RevokeReasonReuseDetected, now); err != nil {
		return errors.Wrap(err, "failed to revoke refresh token family")
	}

	return nil
}

// Logout revokes the family of a known refresh token. Expired tokens are
// accepted and repeated calls are no-ops.
func (srv *authService) Logout(ctx context.Context, refreshToken string) error {
	record, err := srv.refreshTokenRepo.FindByHash(ctx, srv.tokenService.HashToken(refreshToken))
	if errors.Is(err, repository.ErrRefreshTokenNotFound) {
		return domainerrors.ErrTokenInvalid.WrapMessage("refresh token is not on record")
	}
	if err != nil {
		return errors.Wrap(err, "failed to find refresh token")
	}

	revoked, err := srv.refreshTokenRepo.RevokeFamily(ctx, record.FamilyID, entity.RevokeReasonLogout, srv.now())
	if err != nil {
		return errors.Wrap(err, "failed to revoke refresh token family")
	}

	srv.log(ctx).Info("Logged out",
		slog.String("user_id", record.UserID.String()),
		slog.Int64("revoked", revoked),
	)

	return nil
}

func (srv *authService) GetMe(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound.WrapMessage("user not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}
