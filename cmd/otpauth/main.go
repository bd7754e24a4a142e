package main

import (
	"context"
	"log/slog"
	"os"

	"otpauth/config"
	"otpauth/internal/delivery"
	"otpauth/internal/delivery/api"
	"otpauth/internal/delivery/api/middleware"
	"otpauth/internal/delivery/api/router/handler"
	"otpauth/internal/delivery/reaper"
	"otpauth/internal/infra/auth"
	"otpauth/internal/infra/identifier"
	logs "otpauth/internal/infra/log"
	"otpauth/internal/infra/persistence/postgres"
	"otpauth/internal/infra/pubsub"
	"otpauth/internal/infra/ratelimit"
	"otpauth/internal/usecase"
	"otpauth/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectMiddleware(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			seedAdmins,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			ratelimit.NewRedisClient,
		),
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewOtpSessionRepository,
			postgres.NewUserRepository,
			postgres.NewRefreshTokenRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewCodeGenerator,
			auth.NewJWTService,
			identifier.NewNormalizer,
			ratelimit.NewOtpRateLimiter,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewOtpService,
			impl.NewAuthService,
			impl.NewMaintenanceService,
			impl.NewAdminService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewOtpHandler,
			handler.NewAuthHandler,
			handler.NewAdminHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				reaper.New,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// seedAdmins grants the admin role to the configured identifiers at startup.
func seedAdmins(lc fx.Lifecycle, cfg *config.Config, admins usecase.AdminUsecase) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if len(cfg.Admin.Identifiers) == 0 {
				return nil
			}

			_, err := admins.SeedAdmins(ctx, cfg.Admin.Identifiers)

			return err
		},
	})
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
