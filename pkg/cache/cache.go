// Package cache implements the shared, process-wide cache in front of the
// upstream football API. Entries are keyed by normalized (endpoint, params)
// so logically equivalent requests collapse to one entry, and TTLs adapt to
// the endpoint's cache policy and, for fixture-bound data, the match status.
//
// The backing store is redis. Backend failures never propagate into the
// pipeline: a failed read is a miss, a failed write is logged and swallowed.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/lucide-ai/lucide/pkg/knowledge"
	"github.com/lucide-ai/lucide/pkg/metrics"
)

// Cache is safe for concurrent use by all pipeline invocations.
type Cache struct {
	rdb     *redis.Client
	kb      *knowledge.Base
	metrics *metrics.Metrics
	logger  *slog.Logger

	// Deduplicates concurrent upstream fetches for the same key.
	group singleflight.Group

	// Rolling counters backing the hit-rate gauge.
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates the cache. All dependencies are required.
func New(rdb *redis.Client, kb *knowledge.Base, m *metrics.Metrics) (*Cache, error) {
	if rdb == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	if kb == nil {
		return nil, fmt.Errorf("knowledge base cannot be nil")
	}
	if m == nil {
		return nil, fmt.Errorf("metrics cannot be nil - observability is required")
	}
	return &Cache{
		rdb:     rdb,
		kb:      kb,
		metrics: m,
		logger:  slog.With("component", "cache"),
	}, nil
}

// Get looks up the entry for (endpoint, params). Backend errors are logged
// and reported as a miss.
func (c *Cache) Get(ctx context.Context, endpoint string, params map[string]any) (any, bool) {
	key := Key(endpoint, params)
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Cache read failed, treating as miss", "key", key, "error", err)
		}
		c.miss(endpoint)
		return nil, false
	}

	var value any
	if err := json.Unmarshal(payload, &value); err != nil {
		c.logger.Warn("Cache entry undecodable, treating as miss", "key", key, "error", err)
		c.miss(endpoint)
		return nil, false
	}
	c.hit(endpoint)
	return value, true
}

// Set stores the entry with the TTL derived from the endpoint's cache policy
// and matchStatus. A zero TTL skips the write entirely; the -1 sentinel
// stores without expiry. Backend errors are logged and swallowed.
func (c *Cache) Set(ctx context.Context, endpoint string, params map[string]any, value any, matchStatus string) {
	ttl := c.kb.CacheTTLSeconds(endpoint, matchStatus)
	if ttl == knowledge.TTLNone {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("Cache value not serializable, skipping write",
			"endpoint", endpoint, "error", err)
		return
	}

	var expiry time.Duration
	if ttl > 0 {
		expiry = time.Duration(ttl) * time.Second
		c.metrics.CacheTTL.Observe(float64(ttl))
	}
	key := Key(endpoint, params)
	if err := c.rdb.Set(ctx, key, payload, expiry).Err(); err != nil {
		c.logger.Warn("Cache write failed", "key", key, "error", err)
		return
	}
	c.metrics.CacheSets.WithLabelValues(endpoint).Inc()
}

// GetOrFetch returns the cached entry or, on a miss, invokes fetch exactly
// once per key across concurrent callers (singleflight) and caches the
// result. statusOf, when non-nil, derives the match status from the fetched
// payload for adaptive TTLs. The returned bool is true when the value came
// from the cache.
func (c *Cache) GetOrFetch(
	ctx context.Context,
	endpoint string,
	params map[string]any,
	statusOf func(any) string,
	fetch func(context.Context) (any, error),
) (any, bool, error) {
	if value, ok := c.Get(ctx, endpoint, params); ok {
		return value, true, nil
	}

	key := Key(endpoint, params)
	value, err, shared := c.group.Do(key, func() (any, error) {
		fetched, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		status := ""
		if statusOf != nil {
			status = statusOf(fetched)
		}
		c.Set(ctx, endpoint, params, fetched, status)
		return fetched, nil
	})
	if err != nil {
		return nil, false, err
	}
	// A shared result means another in-flight fetch produced the value; it
	// was not served from the backing store, so it still counts as a miss.
	_ = shared
	return value, false, nil
}

// Invalidate removes every key matching the glob pattern (relative to the
// cache namespace, e.g. "fixtures_*"). Returns the number of keys removed.
func (c *Cache) Invalidate(ctx context.Context, pattern string) (int, error) {
	return c.deleteByPattern(ctx, keyPrefix+":"+pattern)
}

// ClearAll removes every entry in the cache namespace.
func (c *Cache) ClearAll(ctx context.Context) error {
	_, err := c.deleteByPattern(ctx, keyPrefix+":*")
	return err
}

func (c *Cache) deleteByPattern(ctx context.Context, pattern string) (int, error) {
	var removed int
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	batch := make([]string, 0, 100)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			n, err := c.rdb.Del(ctx, batch...).Result()
			if err != nil {
				return removed, fmt.Errorf("cache invalidation failed: %w", err)
			}
			removed += int(n)
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("cache scan failed: %w", err)
	}
	if len(batch) > 0 {
		n, err := c.rdb.Del(ctx, batch...).Result()
		if err != nil {
			return removed, fmt.Errorf("cache invalidation failed: %w", err)
		}
		removed += int(n)
	}
	return removed, nil
}

// HitRate returns hits/(hits+misses) observed by this process, 0 when no
// lookups have happened yet. Backs the lucide_cache_hit_rate gauge.
func (c *Cache) HitRate() float64 {
	hits := float64(c.hits.Load())
	total := hits + float64(c.misses.Load())
	if total == 0 {
		return 0
	}
	return hits / total
}

func (c *Cache) hit(endpoint string) {
	c.hits.Add(1)
	c.metrics.CacheHits.WithLabelValues(endpoint).Inc()
}

func (c *Cache) miss(endpoint string) {
	c.misses.Add(1)
	c.metrics.CacheMisses.WithLabelValues(endpoint).Inc()
}
