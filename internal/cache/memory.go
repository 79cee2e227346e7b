package cache

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/siterisk/internal/domain"
)

type memoryEntry struct {
	curve   []domain.HourlyRiskPoint
	expires time.Time
}

// MemoryCache is a process-local CurveCache safe for concurrent use.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

// NewMemoryCache creates a MemoryCache. A ttl of zero or less uses DefaultTTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{ttl: ttl, now: time.Now, entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]domain.HourlyRiskPoint, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return append([]domain.HourlyRiskPoint(nil), e.curve...), true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, curve []domain.HourlyRiskPoint) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{
		curve:   append([]domain.HourlyRiskPoint(nil), curve...),
		expires: c.now().Add(c.ttl),
	}
	return nil
}

// Len returns the number of stored entries, including expired ones not yet
// evicted.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
