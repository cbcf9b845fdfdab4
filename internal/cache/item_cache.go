// Package cache provides a Redis-backed read-through cache for item details.
// Cache failures are never fatal: a broken Redis degrades to direct reads.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/fileshare/fileshare-backend/internal/domain"
)

// ItemCache stores serialized items under "item:{id}" with a TTL.
type ItemCache struct {
	log    *slog.Logger
	client *redis.Client
	ttl    time.Duration
}

// NewItemCache creates a cache on top of an existing Redis client.
func NewItemCache(logger *slog.Logger, client *redis.Client, ttl time.Duration) *ItemCache {
	return &ItemCache{
		log:    logger.With("component", "item_cache"),
		client: client,
		ttl:    ttl,
	}
}

func itemKey(id uuid.UUID) string {
	return "item:" + id.String()
}

// Get returns the cached item, or (nil, false) on a miss or any cache error.
func (c *ItemCache) Get(ctx context.Context, id uuid.UUID) (*domain.Item, bool) {
	data, err := c.client.Get(ctx, itemKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WarnContext(ctx, "cache get failed", slog.String("error", err.Error()))
		}
		return nil, false
	}

	var item domain.Item
	if err := json.Unmarshal(data, &item); err != nil {
		c.log.WarnContext(ctx, "cache entry corrupted, evicting", slog.String("key", itemKey(id)))
		c.client.Del(ctx, itemKey(id))
		return nil, false
	}

	return &item, true
}

// Set stores the item. Errors are logged and swallowed.
func (c *ItemCache) Set(ctx context.Context, item *domain.Item) {
	data, err := json.Marshal(item)
	if err != nil {
		c.log.WarnContext(ctx, "cache marshal failed", slog.String("error", err.Error()))
		return
	}

	if err := c.client.Set(ctx, itemKey(item.ID), data, c.ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "cache set failed", slog.String("error", err.Error()))
	}
}

// Evict removes the item from the cache. Errors are logged and swallowed.
func (c *ItemCache) Evict(ctx context.Context, id uuid.UUID) {
	if err := c.client.Del(ctx, itemKey(id)).Err(); err != nil {
		c.log.WarnContext(ctx, "cache evict failed", slog.String("error", err.Error()))
	}
}
