package persistence

import (
	"context"
	"fmt"
	"time"
)

// LoginRateLimiter throttles login attempts per identity key using a Redis
// counter with a sliding expiry window. It fails open when Redis is absent so
// authentication keeps working without the cache.
type LoginRateLimiter struct {
	redis       *Redis
	maxAttempts int
	window      time.Duration
}

// NewLoginRateLimiter builds a limiter; maxAttempts <= 0 disables it.
func NewLoginRateLimiter(redis *Redis, maxAttempts, windowSeconds int) *LoginRateLimiter {
	return &LoginRateLimiter{
		redis:       redis,
		maxAttempts: maxAttempts,
		window:      time.Duration(windowSeconds) * time.Second,
	}
}

// Allow records one attempt for the key and reports whether it is within the
// allowed budget for the current window.
func (l *LoginRateLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.maxAttempts <= 0 || l.redis == nil || l.redis.Client == nil {
		return true
	}

	counterKey := fmt.Sprintf("login_attempts:%s", key)
	count, err := l.redis.Client.Incr(ctx, counterKey).Result()
	if err != nil {
		return true
	}
	if count == 1 && l.window > 0 {
		l.redis.Client.Expire(ctx, counterKey, l.window)
	}
	return count <= int64(l.maxAttempts)
}

// Reset clears the attempt counter after a successful login.
func (l *LoginRateLimiter) Reset(ctx context.Context, key string) {
	if l == nil || l.redis == nil || l.redis.Client == nil {
		return
	}
	l.redis.Client.Del(ctx, fmt.Sprintf("login_attempts:%s", key))
}
