// Package ratelimit provides a fixed-window per-user rate limiter on Redis,
// used to throttle XP-earning submission endpoints.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter counts actions per user within a fixed window.
type Limiter struct {
	rdb *redis.Client
}

// New creates a Limiter. A nil client disables limiting (Allow always passes);
// deployments without Redis keep working.
func New(rdb *redis.Client) *Limiter {
	return &Limiter{rdb: rdb}
}

// Allow reports whether the user may perform the action, incrementing the
// window counter as a side effect.
func (l *Limiter) Allow(ctx context.Context, userID, action string, max int, window time.Duration) (bool, error) {
	if l == nil || l.rdb == nil {
		return true, nil
	}

	key := fmt.Sprintf("ratelimit:%s:%s", action, userID)
	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr failed: %w", err)
	}
	if count == 1 {
		// First hit in this window; start the clock.
		if err := l.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire failed: %w", err)
		}
	}
	return count <= int64(max), nil
}
