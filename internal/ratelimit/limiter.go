package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// Limiter is a fixed-window request counter stored in Redis
type Limiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
}

// New creates a limiter allowing limit requests per window for each key
func New(client *redis.Client, limit int, window time.Duration) *Limiter {
	return &Limiter{
		redis:  client,
		limit:  limit,
		window: window,
	}
}

// Allow records a request for key and reports whether it is within the limit
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	k := keyPrefix + key
	count, err := l.redis.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit: %w", err)
	}

	// The first request of a window starts its expiry
	if count == 1 {
		if err := l.redis.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return count <= int64(l.limit), nil
}
