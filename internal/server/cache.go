package server

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/edufinder/campus-search/pkg/config"
	"github.com/edufinder/campus-search/pkg/metrics"
	pkgredis "github.com/edufinder/campus-search/pkg/redis"
	"golang.org/x/sync/singleflight"
)

const cacheKeyPrefix = "catalog:"

// ResponseCache caches serialised query responses in Redis, collapsing
// concurrent identical misses through singleflight so a popular query is
// computed once per TTL window.
type ResponseCache struct {
	client  *pkgredis.Client
	cfg     config.RedisConfig
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *slog.Logger
	hits    atomic.Int64
	misses  atomic.Int64
}

// NewResponseCache creates a ResponseCache over the given Redis client.
func NewResponseCache(client *pkgredis.Client, cfg config.RedisConfig, m *metrics.Metrics) *ResponseCache {
	return &ResponseCache{
		client:  client,
		cfg:     cfg,
		metrics: m,
		logger:  slog.Default().With("component", "response-cache"),
	}
}

// Key builds a stable cache key from an operation name and its parameters.
// Parameter order does not matter; empty values are skipped.
func Key(operation string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name, value := range params {
		if value != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var raw strings.Builder
	raw.WriteString(operation)
	for _, name := range names {
		raw.WriteByte('|')
		raw.WriteString(name)
		raw.WriteByte('=')
		raw.WriteString(strings.ToLower(params[name]))
	}
	hash := sha256.Sum256([]byte(raw.String()))
	return fmt.Sprintf("%s%s:%x", cacheKeyPrefix, operation, hash[:16])
}

// GetOrCompute returns the cached response body for key, or runs compute,
// caches its result, and returns it. The bool reports a cache hit.
func (c *ResponseCache) GetOrCompute(ctx context.Context, key string, compute func() ([]byte, error)) ([]byte, bool, error) {
	if data, ok := c.get(ctx, key); ok {
		return data, true, nil
	}
	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		if data, ok := c.get(ctx, key); ok {
			return data, nil
		}
		data, err := compute()
		if err != nil {
			return nil, err
		}
		if err := c.client.Set(ctx, key, data, c.cfg.CacheTTL); err != nil {
			c.logger.Error("cache set failed", "key", key, "error", err)
		}
		return data, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.([]byte), false, nil
}

func (c *ResponseCache) get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		c.misses.Add(1)
		if c.metrics != nil {
			c.metrics.CacheMissesTotal.Inc()
		}
		return nil, false
	}
	c.hits.Add(1)
	if c.metrics != nil {
		c.metrics.CacheHitsTotal.Inc()
	}
	return []byte(data), true
}

// Invalidate drops every cached response; called after a snapshot rebuild.
func (c *ResponseCache) Invalidate(ctx context.Context) error {
	deleted, err := c.client.FlushByPattern(ctx, cacheKeyPrefix+"*")
	if err != nil {
		return fmt.Errorf("invalidating cache: %w", err)
	}
	c.logger.Info("cache invalidated", "keys_deleted", deleted)
	return nil
}

// Stats returns the in-process hit and miss counters.
func (c *ResponseCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
