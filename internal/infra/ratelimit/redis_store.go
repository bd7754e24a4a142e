package ratelimit

import (
	"context"
	"strconv"
	"time"

	"otpauth/internal/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindowScript trims the log, then adds ARGV[4] only when the window
// has room. Scores are unix milliseconds.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window_ms = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window_ms)

if redis.call('ZCARD', key) >= limit then
	return 0
end

redis.call('ZADD', key, now, member)
redis.call('PEXPIRE', key, window_ms)

return 1
`)

// redisStore shares the sliding window log between instances.
type redisStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

func newRedisStore(client redis.UniversalClient, prefix string, now func() time.Time) *redisStore {
	return &redisStore{
		client: client,
		prefix: prefix,
		now:    now,
	}
}

func (s *redisStore) hit(ctx context.Context, key string, limit int, window time.Duration) (string, bool, error) {
	member := strconv.FormatInt(s.now().UnixMilli(), 10) + ":" + uuid.NewString()

	allowed, err := slidingWindowScript.Run(ctx, s.client, []string{s.prefix + key},
		s.now().UnixMilli(),
		window.Milliseconds(),
		limit,
		member,
	).Int()
	if err != nil {
		return "", false, errors.Wrap(err, "redis sliding window")
	}

	if allowed != 1 {
		return "", false, nil
	}

	return member, true, nil
}

func (s *redisStore) undo(ctx context.Context, key, member string) error {
	if err := s.client.ZRem(ctx, s.prefix+key, member).Err(); err != nil {
		return errors.Wrap(err, "redis sliding window undo")
	}

	return nil
}
