// Package cache holds the optional Redis-backed response caches. The caches
// degrade to pass-through when Redis is not configured.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// LeaderboardCache caches assembled leaderboard responses for a short TTL.
// A nil cache is valid and behaves as a permanent miss.
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLeaderboardCache connects a Redis-backed cache. An empty addr returns
// nil, which disables caching.
func NewLeaderboardCache(addr, password string, db int, ttl time.Duration) *LeaderboardCache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &LeaderboardCache{client: client, ttl: ttl}
}

// Get loads a cached value into dest, reporting whether it was present.
// Redis failures are treated as misses so the store stays authoritative.
func (c *LeaderboardCache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			return false
		}
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Set stores a value under key for the configured TTL. Failures are ignored.
func (c *LeaderboardCache) Set(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, raw, c.ttl)
}

// Purge deletes every key under the given prefix. Used after a reseed so
// stale rankings do not outlive the data they were computed from.
func (c *LeaderboardCache) Purge(ctx context.Context, prefix string) {
	if c == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
}

// Close releases the Redis connection.
func (c *LeaderboardCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
