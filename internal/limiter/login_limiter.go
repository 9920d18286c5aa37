package limiter

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// LoginLimiter counts login attempts per email in a fixed window. It only
// slows down credential guessing; it is not part of the auth decision itself.
type LoginLimiter struct {
	client      *redisv9.Client
	window      time.Duration
	maxAttempts int
}

func NewLoginLimiter(client *redisv9.Client, window time.Duration, maxAttempts int) *LoginLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	return &LoginLimiter{
		client:      client,
		window:      window,
		maxAttempts: maxAttempts,
	}
}

func (l *LoginLimiter) Allow(ctx context.Context, email string) (bool, error) {
	key := fmt.Sprintf("auth:login:attempts:%s", email)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis incr login attempts failed: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("redis expire login attempts failed: %w", err)
		}
	}
	return count <= int64(l.maxAttempts), nil
}
