package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const limiterPrefix = "login:fail:"

// LoginLimiter counts failed logins per email in a fixed window.
// Key format: login:fail:<email>
type LoginLimiter struct {
	client      redis.Cmdable
	maxAttempts int64
	window      time.Duration
}

// NewLoginLimiter returns a limiter that trips after maxAttempts failures
// within window. The window starts at the first failure.
func NewLoginLimiter(client redis.Cmdable, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, maxAttempts: int64(maxAttempts), window: window}
}

// Exceeded reports whether email has used up its attempts.
func (l *LoginLimiter) Exceeded(ctx context.Context, email string) (bool, error) {
	if l.maxAttempts <= 0 {
		return false, nil
	}
	n, err := l.client.Get(ctx, l.key(email)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("login limiter get: %w", err)
	}
	if n < l.maxAttempts {
		return false, nil
	}
	// A tripped counter must always expire, otherwise the lockout is permanent.
	if err := l.ensureExpiry(ctx, l.key(email)); err != nil {
		return false, err
	}
	return true, nil
}

// RecordFailure increments the counter and arms the expiry on first use.
// Later failures re-arm it if an earlier EXPIRE never landed.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) error {
	key := l.key(email)
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("login limiter incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("login limiter expire: %w", err)
		}
		return nil
	}
	return l.ensureExpiry(ctx, key)
}

// ensureExpiry sets the window on key when it exists without a TTL.
func (l *LoginLimiter) ensureExpiry(ctx context.Context, key string) error {
	ttl, err := l.client.TTL(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("login limiter ttl: %w", err)
	}
	// -1 means the key exists with no expiry; -2 means it is gone.
	if ttl != -1 {
		return nil
	}
	if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
		return fmt.Errorf("login limiter expire: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	if err := l.client.Del(ctx, l.key(email)).Err(); err != nil {
		return fmt.Errorf("login limiter reset: %w", err)
	}
	return nil
}

func (l *LoginLimiter) key(email string) string {
	return limiterPrefix + strings.ToLower(strings.TrimSpace(email))
}
