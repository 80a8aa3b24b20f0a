package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter throttles repeated failed logins per username, backed by
// Redis counters with a sliding expiry. Key format: login_fail:<username>
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

// TooMany reports whether the username has exhausted its attempt budget.
func (l *LoginLimiter) TooMany(ctx context.Context, username string) (bool, error) {
	if l.maxAttempts <= 0 {
		return false, nil
	}

	n, err := l.client.Get(ctx, l.key(username)).Int()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("attempt check: %w", err)
	}
	return n >= l.maxAttempts, nil
}

// Failure records one failed attempt and refreshes the window.
func (l *LoginLimiter) Failure(ctx context.Context, username string) error {
	key := l.key(username)

	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, username string) error {
	return l.client.Del(ctx, l.key(username)).Err()
}

func (l *LoginLimiter) key(username string) string {
	return fmt.Sprintf("login_fail:%s", username)
}
