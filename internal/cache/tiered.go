package cache

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/talent-matcher/internal/logging"
)

// TieredStore keeps a fast in-process L1 in front of an optional shared L2.
// L1 is only filled by Set, so every L1 entry carries its tags.
type TieredStore struct {
	l1 *MemoryStore
	l2 Store
}

// NewTieredStore combines l1 and l2. A nil l2 makes the store memory-only.
func NewTieredStore(l1 *MemoryStore, l2 Store) *TieredStore {
	return &TieredStore{l1: l1, l2: l2}
}

// Get implements Store.
func (t *TieredStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if data, ok, _ := t.l1.Get(ctx, key); ok {
		return data, true, nil
	}
	if t.l2 == nil {
		return nil, false, nil
	}
	data, ok, err := t.l2.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("l2: %w", err)
	}
	return data, ok, nil
}

// Set implements Store.
func (t *TieredStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) error {
	_ = t.l1.Set(ctx, key, value, ttl, tags...)
	if t.l2 == nil {
		return nil
	}
	if err := t.l2.Set(ctx, key, value, ttl, tags...); err != nil {
		return fmt.Errorf("l2: %w", err)
	}
	return nil
}

// Delete implements Store.
func (t *TieredStore) Delete(ctx context.Context, keys ...string) error {
	_ = t.l1.Delete(ctx, keys...)
	if t.l2 == nil {
		return nil
	}
	if err := t.l2.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("l2: %w", err)
	}
	return nil
}

// InvalidateTags implements Store.
func (t *TieredStore) InvalidateTags(ctx context.Context, tags ...string) error {
	_ = t.l1.InvalidateTags(ctx, tags...)
	if t.l2 == nil {
		return nil
	}
	if err := t.l2.InvalidateTags(ctx, tags...); err != nil {
		return fmt.Errorf("l2: %w", err)
	}
	return nil
}

// Options configures Open.
type Options struct {
	RedisURL        string
	MaxEntries      int
	CleanupInterval time.Duration
}

// Open builds the tiered store described by opts and starts the L1 cleanup loop, which
// stops when ctx is done. An unreachable Redis leaves the store memory-only. The returned
// function releases the Redis connection.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (*TieredStore, func() error) {
	logger = logging.OrNop(logger)

	l1 := NewMemoryStore(opts.MaxEntries)
	go l1.Run(ctx, opts.CleanupInterval)

	closer := func() error { return nil }
	var l2 Store
	if opts.RedisURL != "" {
		client, err := ConnectRedis(ctx, opts.RedisURL)
		if err != nil {
			logger.Warn("cache: redis unavailable, L2 disabled", zap.Error(err))
		} else {
			rs := NewRedisStore(client)
			l2 = rs
			closer = rs.Close
			logger.Info("cache: L2 redis connected", zap.String("addr", client.Options().Addr))
		}
	}

	logger.Info("cache: initialized",
		zap.Bool("redis", l2 != nil),
		zap.Int("max_entries", opts.MaxEntries))

	return NewTieredStore(l1, l2), closer
}
