package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"warden/internal/shared/id"
)

// RedisRateLimiter keeps a sorted set of request timestamps per key, so the
// window slides instead of resetting at fixed boundaries. Keys are shared by
// every instance pointing at the same Redis.
type RedisRateLimiter struct {
	client *redis.Client
	prefix string
	cfg    Config
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client, prefix string, cfg Config) *RedisRateLimiter {
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return &RedisRateLimiter{
		client: client,
		prefix: prefix,
		cfg:    cfg,
		now:    time.Now,
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.cfg.Requests <= 0 {
		return true, nil
	}

	now := l.now()
	redisKey := l.key(key)
	windowStart := now.Add(-l.cfg.Window).UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	zcard := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: fmt.Sprintf("%d-%s", now.UnixNano(), id.MustGenerate(6)),
	})
	pipe.Expire(ctx, redisKey, l.cfg.Window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	return zcard.Val() < int64(l.cfg.Requests), nil
}

func (l *RedisRateLimiter) Remaining(ctx context.Context, key string) (int64, error) {
	redisKey := l.key(key)
	windowStart := l.now().Add(-l.cfg.Window).UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	zcard := pipe.ZCard(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to get remaining: %w", err)
	}

	remaining := int64(l.cfg.Requests) - zcard.Val()
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit: %w", err)
	}
	return nil
}

func (l *RedisRateLimiter) key(identifier string) string {
	return fmt.Sprintf("ratelimit:%s:%s", l.prefix, identifier)
}
