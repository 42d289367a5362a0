// Package cache implements the report cache on Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/cepet-deal/backend/internal/application/adapter"
)

// redisReportCache implements adapter.ReportCache with per-dealer version
// keys. Invalidation bumps the dealer's version, which orphans every cached
// entry at once; the orphans expire via TTL. This avoids scanning for the
// unbounded set of interval-specific keys a dealer may have accumulated.
type redisReportCache struct {
	client *redis.Client
}

// NewRedisReportCache creates a new Redis-backed report cache.
func NewRedisReportCache(client *redis.Client) adapter.ReportCache {
	return &redisReportCache{
		client: client,
	}
}

func (c *redisReportCache) versionKey(dealerID uuid.UUID) string {
	return fmt.Sprintf("finance:ver:%s", dealerID)
}

func (c *redisReportCache) dataKey(ctx context.Context, dealerID uuid.UUID, key string) (string, error) {
	version, err := c.client.Get(ctx, c.versionKey(dealerID)).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			return "", err
		}
		version = 0
	}
	return fmt.Sprintf("finance:%s:%d:%s", dealerID, version, key), nil
}

// Get retrieves a cached payload for the dealer's current version.
func (c *redisReportCache) Get(ctx context.Context, dealerID uuid.UUID, key string) ([]byte, bool, error) {
	dataKey, err := c.dataKey(ctx, dealerID, key)
	if err != nil {
		return nil, false, err
	}

	payload, err := c.client.Get(ctx, dataKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return payload, true, nil
}

// Set stores a payload under the dealer's current version with a TTL.
func (c *redisReportCache) Set(ctx context.Context, dealerID uuid.UUID, key string, payload []byte, ttl time.Duration) error {
	dataKey, err := c.dataKey(ctx, dealerID, key)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, dataKey, payload, ttl).Err()
}

// Invalidate discards every cached report for the dealer.
func (c *redisReportCache) Invalidate(ctx context.Context, dealerID uuid.UUID) error {
	return c.client.Incr(ctx, c.versionKey(dealerID)).Err()
}
