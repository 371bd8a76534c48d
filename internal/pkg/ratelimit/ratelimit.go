// internal/pkg/ratelimit/ratelimit.go
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window counter backed by Redis, keyed per user and
// action. Used to throttle booking creation bursts.
type Limiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

func NewLimiter(client *redis.Client, max int64, window time.Duration) *Limiter {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{client: client, max: max, window: window}
}

// Allow increments the counter for (action, userID) and reports whether
// the caller is still inside the window budget.
func (l *Limiter) Allow(ctx context.Context, action string, userID int64) (bool, error) {
	key := fmt.Sprintf("ratelimit:%s:%d", action, userID)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	// Set expiration on first hit
	if count == 1 {
		l.client.Expire(ctx, key, l.window)
	}

	return count <= l.max, nil
}

// Reset clears the counter for (action, userID).
func (l *Limiter) Reset(ctx context.Context, action string, userID int64) error {
	key := fmt.Sprintf("ratelimit:%s:%d", action, userID)
	return l.client.Del(ctx, key).Err()
}
