package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"otpauth/config"
	"otpauth/internal/domain/service"
	"otpauth/internal/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const (
	identifierKeyPrefix = "id:"
	sourceKeyPrefix     = "src:"
)

// otpLimiter enforces the per-identifier and per-source start limits.
type otpLimiter struct {
	store         windowStore
	window        time.Duration
	perIdentifier int
	perSource     int
}

// LimiterParams holds dependencies for the OTP rate limiter.
type LimiterParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	Redis  redis.UniversalClient
}

// NewOtpRateLimiter uses Redis when a client is available and falls back
// to an in-process window otherwise.
func NewOtpRateLimiter(params LimiterParams) service.OtpRateLimiter {
	var store windowStore
	if params.Redis != nil {
		prefix := ""
		if params.Config.Redis != nil {
			prefix = params.Config.Redis.KeyPrefix
		}
		store = newRedisStore(params.Redis, prefix, time.Now)
		params.Logger.Info("OTP rate limiter backed by redis")
	} else {
		store = newMemoryStore(time.Now)
		params.Logger.Warn("OTP rate limiter backed by process memory; limits are per instance")
	}

	return newOtpLimiter(store, params.Config.RateLimit)
}

func newOtpLimiter(store windowStore, cfg *config.RateLimitConfig) *otpLimiter {
	return &otpLimiter{
		store:         store,
		window:        cfg.Window,
		perIdentifier: cfg.PerIdentifier,
		perSource:     cfg.PerSource,
	}
}

// Allow records both hits or neither.
func (l *otpLimiter) Allow(ctx context.Context, identifier, sourceKey string) (service.Reservation, bool, error) {
	res := &reservation{store: l.store}

	idKey := identifierKeyPrefix + identifier
	member, ok, err := l.store.hit(ctx, idKey, l.perIdentifier, l.window)
	if err != nil || !ok {
		return nil, false, err
	}
	res.add(idKey, member)

	if sourceKey == "" {
		return res, true, nil
	}

	srcKey := sourceKeyPrefix + sourceKey
	member, ok, err = l.store.hit(ctx, srcKey, l.perSource, l.window)
	if err != nil || !ok {
		if rbErr := res.Rollback(ctx); rbErr != nil {
			return nil, false, errors.Join(err, rbErr)
		}

		return nil, false, err
	}
	res.add(srcKey, member)

	return res, true, nil
}

type reservedHit struct {
	key    string
	member string
}

type reservation struct {
	store windowStore
	hits  []reservedHit
}

func (r *reservation) add(key, member string) {
	r.hits = append(r.hits, reservedHit{key: key, member: member})
}

// Rollback undoes every recorded hit. Calling it twice is harmless.
func (r *reservation) Rollback(ctx context.Context) error {
	var errs []error
	for _, h := range r.hits {
		if err := r.store.undo(ctx, h.key, h.member); err != nil {
			errs = append(errs, err)
		}
	}
	r.hits = nil

	return errors.Join(errs...)
}
