// Package cache holds the optional caches in front of subscription generation.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/subhub/internal/shared/logger"
)

const subscriptionKeyPrefix = "sub:"

// SubscriptionCache stores rendered subscription documents.
// Get reports a miss as ("", false, nil).
type SubscriptionCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, document string, ttl time.Duration) error
}

// SubscriptionKey builds sub:{userID}:{subconverterID}:{profileKey}:{fingerprint}.
// An empty profile key means the unmerged document.
func SubscriptionKey(userID, subconverterID, profileKey, fingerprint string) string {
	var b strings.Builder
	b.Grow(len(subscriptionKeyPrefix) + len(userID) + len(subconverterID) + len(profileKey) + len(fingerprint) + 3)
	b.WriteString(subscriptionKeyPrefix)
	b.WriteString(userID)
	b.WriteByte(':')
	b.WriteString(subconverterID)
	b.WriteByte(':')
	b.WriteString(profileKey)
	b.WriteByte(':')
	b.WriteString(fingerprint)
	return b.String()
}

// RedisSubscriptionCache implements SubscriptionCache with plain string keys.
type RedisSubscriptionCache struct {
	client *redis.Client
	logger logger.Interface
}

// NewRedisSubscriptionCache creates a new Redis-based subscription cache
func NewRedisSubscriptionCache(client *redis.Client, logger logger.Interface) *RedisSubscriptionCache {
	return &RedisSubscriptionCache{
		client: client,
		logger: logger,
	}
}

func (c *RedisSubscriptionCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get subscription from cache: %w", err)
	}
	return val, true, nil
}

func (c *RedisSubscriptionCache) Set(ctx context.Context, key, document string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, document, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set subscription in cache: %w", err)
	}
	c.logger.Debugw("subscription cached", "key", key, "ttl", ttl)
	return nil
}

// MemorySubscriptionCache implements SubscriptionCache in process memory.
type MemorySubscriptionCache struct {
	store *gocache.Cache
}

// NewMemorySubscriptionCache creates an in-memory cache whose expired
// entries are purged every cleanupInterval.
func NewMemorySubscriptionCache(defaultTTL, cleanupInterval time.Duration) *MemorySubscriptionCache {
	return &MemorySubscriptionCache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

func (c *MemorySubscriptionCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.store.Get(key)
	if !ok {
		return "", false, nil
	}
	doc, ok := v.(string)
	if !ok {
		c.store.Delete(key)
		return "", false, nil
	}
	return doc, true, nil
}

func (c *MemorySubscriptionCache) Set(_ context.Context, key, document string, ttl time.Duration) error {
	c.store.Set(key, document, ttl)
	return nil
}

// ItemCount returns the number of cached documents, expired ones included
// until the next cleanup.
func (c *MemorySubscriptionCache) ItemCount() int {
	return c.store.ItemCount()
}
