package ratelimit

import (
	"context"
	"log/slog"

	"otpauth/config"
	"otpauth/internal/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// RedisParams holds dependencies for the Redis client.
type RedisParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewRedisClient connects when redis is configured and returns nil when it
// is not, which selects the in-process limiter.
func NewRedisClient(params RedisParams) redis.UniversalClient {
	cfg := params.Config.Redis
	if cfg == nil || cfg.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	params.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
			defer cancel()

			if err := client.Ping(pingCtx).Err(); err != nil {
				return errors.Wrap(err, "redis ping")
			}
			params.Logger.Info("Connected to redis", slog.String("addr", cfg.Addr))

			return nil
		},
		OnStop: func(context.Context) error {
			params.Logger.Info("Closing redis client")

			return errors.WithStack(client.Close())
		},
	})

	return client
}
