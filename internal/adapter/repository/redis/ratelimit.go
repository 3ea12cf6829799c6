// Package redis provides Redis-backed adapters for multi-node deployments.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RateLimiter implements usecase.RateLimiter with a Redis fixed window, so
// limits hold across replicas. Redis outages fail open: losing rate
// limiting briefly beats refusing every transaction.
type RateLimiter struct {
	client *redis.Client
	prefix string
	logger zerolog.Logger
}

// NewRateLimiter creates a new RateLimiter.
func NewRateLimiter(client *redis.Client, logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		client: client,
		prefix: "ratelimit:",
		logger: logger,
	}
}

// Allow reports whether another event fits in key's current window.
func (l *RateLimiter) Allow(key string, limit int, window time.Duration) bool {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	fullKey := l.prefix + key

	count, err := l.client.Incr(ctx, fullKey).Result()
	if err != nil {
		l.logger.Warn().Err(err).Str("key", key).Msg("rate limit check failed, allowing")
		return true
	}

	// First event in the window owns setting the expiry.
	if count == 1 {
		if err := l.client.Expire(ctx, fullKey, window).Err(); err != nil {
			l.logger.Warn().Err(err).Str("key", key).Msg("rate limit expiry failed")
		}
	}

	return count <= int64(limit)
}
