// Package cache memoizes hourly risk curves by their complete calculator
// input. A curve never changes for a given key, so entries only expire to
// bound storage.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/siterisk/internal/domain"
	"github.com/alexanderramin/siterisk/internal/risk"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long a curve is kept.
const DefaultTTL = 24 * time.Hour

// CurveCache stores computed hourly curves.
type CurveCache interface {
	// Get returns the cached curve and whether it was found.
	Get(ctx context.Context, key string) ([]domain.HourlyRiskPoint, bool, error)
	Set(ctx context.Context, key string, curve []domain.HourlyRiskPoint) error
}

// Key derives the cache key from every input the calculator reads.
func Key(in risk.CurveInput) string {
	return fmt.Sprintf("%s|w%d|p%d|b%d|m%d",
		strings.ToLower(strings.TrimSpace(in.Process)),
		in.Workers, in.ProgressRate, in.BaseScore, int(in.Month))
}

// Open returns a Redis-backed cache when redisURL is set and reachable,
// otherwise an in-memory cache. Connection problems are logged, not returned.
func Open(ctx context.Context, redisURL string, ttl time.Duration, logger *slog.Logger) CurveCache {
	if logger == nil {
		logger = slog.Default()
	}
	if redisURL == "" {
		return NewMemoryCache(ttl)
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn("invalid Redis URL, curve cache will use in-memory fallback", "error", err)
		return NewMemoryCache(ttl)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		logger.Warn("Redis not available, curve cache will use in-memory fallback", "error", err)
		return NewMemoryCache(ttl)
	}
	logger.Debug("connected to Redis", "addr", opt.Addr)
	return NewRedisCache(client, ttl)
}
