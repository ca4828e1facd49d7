// Package cache provides a small cache-aside layer for catalog listings on
// top of Redis. The cache is optional: a nil *ListingCache is valid and every
// operation on it degrades to a direct fill.
package cache

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL keeps listings fresh enough while absorbing read bursts.
const DefaultTTL = time.Minute

type ListingCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	group  singleflight.Group
}

// New creates a listing cache. Keys are namespaced under prefix so
// invalidation can wipe them in one scan.
func New(client *redis.Client, prefix string, ttl time.Duration) *ListingCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ListingCache{client: client, prefix: prefix, ttl: ttl}
}

// ListingKey canonicalizes a listing query into a cache key. Category order
// does not matter, so they are sorted before joining.
func ListingKey(search, order string, page int, categories []string) string {
	cats := append([]string(nil), categories...)
	sort.Strings(cats)
	return fmt.Sprintf("s=%s&o=%s&p=%d&c=%s", search, order, page, strings.Join(cats, ","))
}

// Fetch returns the cached body for key, or runs fill and caches its result.
// Concurrent misses on the same key are collapsed into a single fill. Cache
// errors are logged and treated as misses; the fill result always wins.
func (c *ListingCache) Fetch(ctx context.Context, key string, fill func() ([]byte, error)) ([]byte, error) {
	if c == nil {
		return fill()
	}

	full := c.prefix + key
	if data, err := c.client.Get(ctx, full).Bytes(); err == nil {
		return data, nil
	} else if err != redis.Nil {
		log.Printf("listing cache get failed: %v", err)
	}

	body, err, _ := c.group.Do(key, func() (interface{}, error) {
		body, err := fill()
		if err != nil {
			return nil, err
		}
		if err := c.client.Set(ctx, full, body, c.ttl).Err(); err != nil {
			log.Printf("listing cache set failed: %v", err)
		}
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}

// Invalidate drops every cached listing. Called after any product mutation.
func (c *ListingCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"*", 100).Result()
		if err != nil {
			log.Printf("listing cache invalidate failed: %v", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				log.Printf("listing cache invalidate failed: %v", err)
				return
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
