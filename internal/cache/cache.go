package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/jonathan/talent-matcher/internal/logging"
)

// Cache layers get-or-compute semantics over a Store. Concurrent misses on one key share a
// single computation that runs detached from any one caller's cancellation. Store failures
// are logged and never surface to callers.
type Cache struct {
	store  Store
	group  singleflight.Group
	logger *zap.Logger

	// generation is bumped on every invalidation. A computation started under an older
	// generation is returned to its callers but not written back.
	generation atomic.Uint64
	// mu orders writes against invalidations: writers check generation and Set under the
	// read lock, invalidations bump and purge under the write lock.
	mu sync.RWMutex

	hits        atomic.Int64
	misses      atomic.Int64
	storeErrors atomic.Int64
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits        int64 `json:"hits"`
	Misses      int64 `json:"misses"`
	StoreErrors int64 `json:"store_errors"`
}

// New creates a Cache over store.
func New(store Store, logger *zap.Logger) *Cache {
	return &Cache{store: store, logger: logging.OrNop(logger)}
}

// GetOrCompute returns the cached value under key, or runs compute, stores its result with
// ttl and tags, and returns it. Values are stored as JSON. A nil Cache always computes.
//
// compute receives ctx stripped of its cancellation and must bound itself. A caller whose
// ctx ends while waiting returns ctx.Err() and leaves the computation running for the rest.
func GetOrCompute[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, tags []string, compute func(context.Context) (T, error)) (T, error) {
	if c == nil || c.store == nil {
		return compute(ctx)
	}

	if v, ok := lookup[T](ctx, c, key); ok {
		return v, nil
	}
	c.misses.Add(1)

	gen := c.generation.Load()
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key+"@"+strconv.FormatUint(gen, 10), func() (any, error) {
		v, err := compute(detached)
		if err != nil {
			return nil, err
		}
		c.put(detached, key, v, ttl, tags, gen)
		return v, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

func lookup[T any](ctx context.Context, c *Cache, key string) (T, bool) {
	var v T
	data, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.storeErrors.Add(1)
		c.logger.Warn("cache: get failed, recomputing", zap.String("key", key), zap.Error(err))
		return v, false
	}
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		c.logger.Warn("cache: dropping undecodable entry", zap.String("key", key), zap.Error(err))
		_ = c.store.Delete(ctx, key)
		return v, false
	}
	c.hits.Add(1)
	return v, true
}

func (c *Cache) put(ctx context.Context, key string, v any, ttl time.Duration, tags []string, gen uint64) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("cache: value not encodable", zap.String("key", key), zap.Error(err))
		return
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.generation.Load() != gen {
		return
	}
	if err := c.store.Set(ctx, key, data, ttl, tags...); err != nil {
		c.storeErrors.Add(1)
		c.logger.Warn("cache: set failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateTags drops every entry carrying any of tags. It is idempotent.
func (c *Cache) InvalidateTags(ctx context.Context, tags ...string) {
	if c == nil || c.store == nil || len(tags) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation.Add(1)
	if err := c.store.InvalidateTags(ctx, tags...); err != nil {
		c.storeErrors.Add(1)
		c.logger.Warn("cache: invalidation failed", zap.Strings("tags", tags), zap.Error(err))
	}
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	return Stats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		StoreErrors: c.storeErrors.Load(),
	}
}
