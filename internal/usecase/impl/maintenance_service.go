package impl

import (
	"context"
	"log/slog"
	"time"

	"otpauth/config"
	deliverycontext "otpauth/internal/delivery/context"
	"otpauth/internal/domain/repository"
	"otpauth/internal/errors"
	"otpauth/internal/usecase"
)

type maintenanceService struct {
	txManager repository.TransactionManager
	retention time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewMaintenanceService is the constructor for maintenanceService.
func NewMaintenanceService(txManager repository.TransactionManager, cfg *config.Config, logger *slog.Logger) usecase.MaintenanceUsecase {
	return &maintenanceService{
		txManager: txManager,
		retention: cfg.Reaper.Retention,
		logger:    logger,
		now:       time.Now,
	}
}

// Cleanup deletes sessions expired for longer than the retention window and
// tokens past their expiry. Expired records are already unusable, so this
// only reclaims space.
func (srv *maintenanceService) Cleanup(ctx context.Context) (*usecase.CleanupOutput, error) {
	now := srv.now()
	output := &usecase.CleanupOutput{}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error

		output.OtpSessions, err = repoFactory.NewOtpSessionRepository().DeleteExpiredBefore(ctx, now.Add(-srv.retention))
		if err != nil {
			return errors.Wrap(err, "failed to delete otp sessions")
		}

		output.OnboardingTokens, err = repoFactory.NewOnboardingTokenRepository().DeleteExpiredBefore(ctx, now)
		if err != nil {
			return errors.Wrap(err, "failed to delete onboarding tokens")
		}

		output.RefreshTokens, err = repoFactory.NewRefreshTokenRepository().DeleteExpiredBefore(ctx, now)
		if err != nil {
			return errors.Wrap(err, "failed to delete refresh tokens")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to clean up expired records")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Expired records cleaned up",
		slog.Int64("otp_sessions", output.OtpSessions),
		slog.Int64("onboarding_tokens", output.OnboardingTokens),
		slog.Int64("refresh_tokens", output.RefreshTokens),
	)

	return output, nil
}
