// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"otpauth/config"
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

// maxVersionRetries bounds the optimistic retry loop. Every lost race means
// another writer committed, and a session only takes a handful of writes
// before it turns terminal.
const maxVersionRetries = 10

// otpService implements the OtpUsecase interface.
type otpService struct {
	txManager   repository.TransactionManager
	sessionRepo repository.OtpSessionRepository
	normalizer  service.IdentifierNormalizer
	limiter     service.OtpRateLimiter
	generator   service.CodeGenerator
	hasher      service.CodeHasher
	notifier    service.Notifier
	issuer      *tokenIssuer
	selector    *channelSelector
	cfg         *config.OTPConfig
	logger      *slog.Logger
	now         func() time.Time
}

// OtpServiceParams holds dependencies for OtpService, injected by Fx.
type OtpServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	SessionRepo  repository.OtpSessionRepository
	Normalizer   service.IdentifierNormalizer
	Limiter      service.OtpRateLimiter
	Generator    service.CodeGenerator
	Hasher       service.CodeHasher
	Notifier     service.Notifier
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewOtpService is the constructor for otpService.
func NewOtpService(params OtpServiceParams) usecase.OtpUsecase {
	return &otpService{
		txManager:   params.TxManager,
		sessionRepo: params.SessionRepo,
		normalizer:  params.Normalizer,
		limiter:     params.Limiter,
		generator:   params.Generator,
		hasher:      params.Hasher,
		notifier:    params.Notifier,
		issuer:      &tokenIssuer{tokens: params.TokenService},
		selector:    newChannelSelector(params.Config.OTP.ChannelPolicy),
		cfg:         params.Config.OTP,
		logger:      params.Logger,
		now:         time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *otpService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// StartOtp issues a code for an identifier. Whether the identifier belongs
// to an existing user is only decided at verification.
func (srv *otpService) StartOtp(ctx context.Context, input *usecase.StartOtpInput) (*usecase.StartOtpOutput, error) {
	identifier, err := srv.normalizer.Normalize(input.Identifier)
	if err != nil {
		return nil, domainerrors.ErrInvalidIdentifier.WrapMessage(err.Error())
	}

	reservation, err := srv.reserve(ctx, identifier.Value, input.SourceKey)
	if err != nil {
		return nil, err
	}

	code, codeHash, err := srv.newCode()
	if err != nil {
		srv.rollback(ctx, reservation)

		return nil, err
	}

	now := srv.now()
	contacts := contactsFor(identifier)
	channel := srv.selector.Select(contacts, input.PreferredChannel)
	session := entity.NewOtpSession(identifier, channel, codeHash, srv.cfg.MaxAttempts, now, srv.cfg.TTL)

	if err := srv.sessionRepo.Create(ctx, session); err != nil {
		srv.rollback(ctx, reservation)

		return nil, errors.Wrap(err, "failed to create otp session")
	}

	srv.log(ctx).Info("OTP session started",
		slog.String("session_id", session.ID.String()),
		slog.String("identifier_kind", string(identifier.Kind)),
		slog.String("channel", channel.String()),
	)

	srv.deliver(ctx, session, contacts, code)

	return &usecase.StartOtpOutput{
		SessionID: session.ID,
		Channel:   channel,
		ExpiresIn: session.ExpiresIn(now),
	}, nil
}

// VerifyOtp checks a code. Every attempt is persisted together with the
// status it produces before the outcome is returned, and a lost race is
// retried against the fresh row.
func (srv *otpService) VerifyOtp(ctx context.Context, input *usecase.VerifyOtpInput) (*usecase.VerifyOtpOutput, error) {
	for range maxVersionRetries {
		session, err := srv.loadPending(ctx, input.SessionID)
		if err != nil {
			return nil, err
		}

		now := srv.now()
		expectedVersion := session.Version
		outcome := session.RegisterAttempt(srv.hasher.Check(input.Code, session.CodeHash), now)

		if outcome == entity.AttemptVerified {
			output, err := srv.completeVerification(ctx, session, expectedVersion, now)
			if errors.Is(err, repository.ErrVersionConflict) || errors.Is(err, repository.ErrUserAlreadyExists) {
				continue
			}
			if err != nil {
				return nil, err
			}

			srv.log(ctx).Info("OTP verified",
				slog.String("session_id", session.ID.String()),
				slog.String("user_id", output.User.ID.String()),
				slog.Bool("new_user", output.IsNewUser),
			)

			return output, nil
		}

		err = srv.sessionRepo.CompareAndSwap(ctx, session, expectedVersion)
		if errors.Is(err, repository.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to record otp attempt")
		}

		srv.log(ctx).Info("OTP attempt rejected",
			slog.String("session_id", session.ID.String()),
			slog.Int("attempts", session.Attempts),
			slog.String("status", string(session.Status)),
		)

		if outcome == entity.AttemptExhausted {
			return nil, domainerrors.ErrTooManyAttempts.WrapMessage("otp attempts exhausted")
		}

		return nil, domainerrors.ErrInvalidCode.WrapMessage("otp code mismatch")
	}

	return nil, domainerrors.ErrInternalError.WrapMessage("otp session update kept conflicting")
}

// completeVerification commits the verified transition, the user and the
// issued tokens in one transaction so a verified session always has tokens.
func (srv *otpService) completeVerification(
	ctx context.Context,
	session *entity.OtpSession,
	expectedVersion int64,
	now time.Time,
) (*usecase.VerifyOtpOutput, error) {
	output := &usecase.VerifyOtpOutput{}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewOtpSessionRepository().CompareAndSwap(ctx, session, expectedVersion); err != nil {
			return errors.Wrap(err, "failed to mark otp session verified")
		}

		user, err := srv.resolveUser(ctx, repoFactory.NewUserRepository(), session, now)
		if err != nil {
			return err
		}
		output.User = user

		if user.NeedsOnboarding() {
			token, err := srv.issuer.issueOnboarding(ctx, repoFactory.NewOnboardingTokenRepository(), user, session.ID, now)
			if err != nil {
				return err
			}
			output.IsNewUser = true
			output.OnboardingToken = token.Value
			output.OnboardingExpiresAt = token.ExpiresAt

			return nil
		}

		pair, err := srv.issuer.issuePair(ctx, repoFactory.NewRefreshTokenRepository(), user, uuid.New(), nil, now)
		if err != nil {
			return err
		}
		output.Tokens = pair

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to complete otp verification")
	}

	return output, nil
}

// resolveUser finds the account for the verified identifier or creates one
// with no role. A concurrent creation surfaces as ErrUserAlreadyExists and
// the caller retries.
func (srv *otpService) resolveUser(
	ctx context.Context,
	userRepo repository.UserRepository,
	session *entity.OtpSession,
	now time.Time,
) (*entity.User, error) {
	user, err := userRepo.FindByIdentifier(ctx, session.Identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user by identifier")
	}

	user = &entity.User{
		ID:             uuid.New(),
		Identifier:     session.Identifier,
		IdentifierKind: session.IdentifierKind,
		Role:           entity.RoleUnassigned,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	return user, nil
}

// ResendOtp replaces the code of a pending session. Attempts and expiry
// carry over so a resend never buys more guesses or more time.
func (srv *otpService) ResendOtp(ctx context.Context, input *usecase.ResendOtpInput) (*usecase.StartOtpOutput, error) {
	session, err := srv.loadResendable(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	reservation, err := srv.reserve(ctx, session.Identifier, input.SourceKey)
	if err != nil {
		return nil, err
	}

	code, codeHash, err := srv.newCode()
	if err != nil {
		srv.rollback(ctx, reservation)

		return nil, err
	}

	for attempt := range maxVersionRetries {
		if attempt > 0 {
			if session, err = srv.loadResendable(ctx, input.SessionID); err != nil {
				srv.rollback(ctx, reservation)

				return nil, err
			}
		}

		now := srv.now()
		expectedVersion := session.Version
		session.Rotate(codeHash, now)

		err = srv.sessionRepo.CompareAndSwap(ctx, session, expectedVersion)
		if errors.Is(err, repository.ErrVersionConflict) {
			continue
		}
		if err != nil {
			srv.rollback(ctx, reservation)

			return nil, errors.Wrap(err, "failed to rotate otp code")
		}

		srv.log(ctx).Info("OTP code resent",
			slog.String("session_id", session.ID.String()),
			slog.Int("resend_count", session.ResendCount),
		)

		contacts := contactsFor(entity.Identifier{Value: session.Identifier, Kind: session.IdentifierKind})
		srv.deliver(ctx, session, contacts, code)

		return &usecase.StartOtpOutput{
			SessionID: session.ID,
			Channel:   session.Channel,
			ExpiresIn: session.ExpiresIn(now),
		}, nil
	}

	srv.rollback(ctx, reservation)

	return nil, domainerrors.ErrInternalError.WrapMessage("otp session update kept conflicting")
}

// loadPending returns a session that can still take an attempt. A session
// found past its expiry is persisted as expired on the way out.
func (srv *otpService) loadPending(ctx context.Context, id uuid.UUID) (*entity.OtpSession, error) {
	for range maxVersionRetries {
		session, err := srv.sessionRepo.FindByID(ctx, id)
		if errors.Is(err, repository.ErrOtpSessionNotFound) {
			return nil, domainerrors.ErrSessionNotFound.WrapMessage("otp session not found")
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to load otp session")
		}

		if err := terminalStatusError(session.Status); err != nil {
			return nil, err
		}

		now := srv.now()
		if !session.IsExpiredAt(now) {
			return session, nil
		}

		expectedVersion := session.Version
		session.Expire(now)
		err = srv.sessionRepo.CompareAndSwap(ctx, session, expectedVersion)
		if errors.Is(err, repository.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to expire otp session")
		}

		return nil, domainerrors.ErrSessionExpired.WrapMessage("otp session expired")
	}

	return nil, domainerrors.ErrInternalError.WrapMessage("otp session update kept conflicting")
}

func (srv *otpService) loadResendable(ctx context.Context, id uuid.UUID) (*entity.OtpSession, error) {
	session, err := srv.loadPending(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.ResendCount >= srv.cfg.MaxResends {
		return nil, domainerrors.ErrRateLimited.WrapMessage("otp resend limit reached")
	}

	return session, nil
}

func (srv *otpService) reserve(ctx context.Context, identifier, sourceKey string) (service.Reservation, error) {
	reservation, allowed, err := srv.limiter.Allow(ctx, identifier, sourceKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check otp rate limit")
	}
	if !allowed {
		srv.log(ctx).Warn("OTP rate limited", slog.String("source", sourceKey))

		return nil, domainerrors.ErrRateLimited.WrapMessage("otp rate limit exceeded")
	}

	return reservation, nil
}

func (srv *otpService) newCode() (code, codeHash string, err error) {
	code, err = srv.generator.Generate()
	if err != nil {
		return "", "", errors.Wrap(err, "failed to generate otp code")
	}

	codeHash, err = srv.hasher.Hash(code)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to hash otp code")
	}

	return code, codeHash, nil
}

// rollback releases rate limit hits for a request that never produced a code.
func (srv *otpService) rollback(ctx context.Context, reservation service.Reservation) {
	if err := reservation.Rollback(ctx); err != nil {
		srv.log(ctx).Error("Failed to roll back otp rate limit", slog.Any("error", err))
	}
}

// deliver hands the code to the notifier. The session is already committed,
// so a failure here is logged and the caller still gets its session.
func (srv *otpService) deliver(ctx context.Context, session *entity.OtpSession, contacts contactSet, code string) {
	notifyCtx, cancel := context.WithTimeout(ctx, srv.cfg.NotifyTimeout)
	defer cancel()

	delivery := &service.OtpDelivery{
		SessionID: session.ID,
		Channel:   session.Channel,
		Phone:     contacts.Phone,
		Email:     contacts.Email,
		Code:      code,
		ExpiresAt: session.ExpiresAt,
	}

	if err := srv.notifier.Notify(notifyCtx, delivery); err != nil {
		srv.log(ctx).Error("OTP delivery failed",
			slog.String("session_id", session.ID.String()),
			slog.String("channel", session.Channel.String()),
			slog.Any("error", err),
		)
	}
}
