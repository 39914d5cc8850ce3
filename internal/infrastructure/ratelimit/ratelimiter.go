package ratelimit

import (
	"context"
	"time"
)

// Limiter admits or rejects one request for key within a rolling window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Remaining(ctx context.Context, key string) (int64, error)
	Reset(ctx context.Context, key string) error
}

type Config struct {
	Requests int
	Window   time.Duration
}
