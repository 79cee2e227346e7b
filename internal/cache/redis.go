package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/siterisk/internal/domain"
	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every curve key in Redis.
const KeyPrefix = "siterisk:curve:"

// RedisCache stores curves as JSON values with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a RedisCache. A ttl of zero or less uses DefaultTTL.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) namespaceKey(key string) string {
	return KeyPrefix + key
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]domain.HourlyRiskPoint, bool, error) {
	val, err := c.client.Get(ctx, c.namespaceKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading curve: %w", err)
	}

	var curve []domain.HourlyRiskPoint
	if err := json.Unmarshal(val, &curve); err != nil {
		return nil, false, fmt.Errorf("decoding curve: %w", err)
	}
	return curve, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, curve []domain.HourlyRiskPoint) error {
	data, err := json.Marshal(curve)
	if err != nil {
		return fmt.Errorf("encoding curve: %w", err)
	}
	if err := c.client.Set(ctx, c.namespaceKey(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing curve: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
