// cache/status_cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	logger "github.com/oddsview/matchgate/logging"
	"github.com/oddsview/matchgate/model"
)

// Store is the cache surface the lookup service consumes.
type Store interface {
	Get(ctx context.Context, apiKey, matchID string) (model.CachedStatus, bool, error)
	Set(ctx context.Context, apiKey, matchID string, entry model.CachedStatus) error
	Ping(ctx context.Context) error
}

// StatusCache stores resolved entitlement statuses in Redis under a fixed
// TTL, positive and negative entries alike.
type StatusCache struct {
	rdb   *redis.Client
	keyNS string
	ttl   time.Duration
}

var _ Store = (*StatusCache)(nil)

// NewStatusCache creates a Redis-backed status cache.
func NewStatusCache(rdb *redis.Client, keyPrefix string, ttl time.Duration) *StatusCache {
	if keyPrefix == "" {
		keyPrefix = "match_id:"
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &StatusCache{rdb: rdb, keyNS: keyPrefix, ttl: ttl}
}

// Key collisions are impossible across the declared inputs: API keys and
// match IDs are each unique within their own domains.
func (c *StatusCache) key(apiKey, matchID string) string {
	return c.keyNS + apiKey + ":" + matchID
}

// Get returns the cached status for the pair, reporting a miss when no entry
// exists.
func (c *StatusCache) Get(ctx context.Context, apiKey, matchID string) (model.CachedStatus, bool, error) {
	key := c.key(apiKey, matchID)
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		logger.Debug("Cache miss", zap.String("key", key))
		return model.CachedStatus{}, false, nil
	}
	if err != nil {
		return model.CachedStatus{}, false, fmt.Errorf("failed to get status from cache: %w", err)
	}

	var entry model.CachedStatus
	if err := json.Unmarshal(val, &entry); err != nil {
		return model.CachedStatus{}, false, fmt.Errorf("failed to unmarshal cached status: %w", err)
	}

	logger.Debug("Cache hit", zap.String("key", key), zap.String("status", string(entry.Status)))
	return entry, true, nil
}

// Set writes the entry under the cache's fixed TTL, overwriting any previous
// entry for the pair.
func (c *StatusCache) Set(ctx context.Context, apiKey, matchID string, entry model.CachedStatus) error {
	b, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cached status: %w", err)
	}

	key := c.key(apiKey, matchID)
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache status: %w", err)
	}

	logger.Debug("Cache set", zap.String("key", key), zap.String("status", string(entry.Status)))
	return nil
}

// Ping reports cache liveness for the health surface.
func (c *StatusCache) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("cache ping failed: %w", err)
	}
	return nil
}
