// Package cache memoizes match scores, recommendation bundles and similarity lists.
// Entries carry tags so that every entry derived from a candidate or a job can be dropped
// when that candidate or job changes.
package cache

import (
	"context"
	"time"
)

// Store is a byte-level key/value store with per-entry TTLs and tag-based invalidation.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value for key. found is false for a missing or expired entry.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Set stores value under key for ttl and records key under every tag.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) error
	// Delete removes keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	// InvalidateTags removes every entry recorded under any of tags.
	InvalidateTags(ctx context.Context, tags ...string) error
}
