package cache

import (
	"context"
	"slices"
	"sync"
	"time"
)

// defaultCleanupInterval is used when Run is given a non-positive interval.
const defaultCleanupInterval = 5 * time.Minute

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
	tags      []string
}

// MemoryStore is an in-process Store bounded by a maximum entry count.
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[string]*memoryEntry
	tags       map[string]map[string]struct{}
	maxEntries int
	now        func() time.Time
}

// NewMemoryStore creates a MemoryStore. maxEntries <= 0 means unbounded.
func NewMemoryStore(maxEntries int) *MemoryStore {
	return &MemoryStore{
		entries:    make(map[string]*memoryEntry),
		tags:       make(map[string]map[string]struct{}),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(e.expiresAt) {
		m.removeLocked(key)
		return nil, false, nil
	}
	return e.data, true, nil
}

// Set implements Store.
func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration, tags ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.removeLocked(key)
	m.evictLocked()

	e := &memoryEntry{
		data:      slices.Clone(value),
		expiresAt: m.now().Add(ttl),
		tags:      slices.Clone(tags),
	}
	m.entries[key] = e
	for _, tag := range tags {
		keys, ok := m.tags[tag]
		if !ok {
			keys = make(map[string]struct{})
			m.tags[tag] = keys
		}
		keys[key] = struct{}{}
	}
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range keys {
		m.removeLocked(k)
	}
	return nil
}

// InvalidateTags implements Store.
func (m *MemoryStore) InvalidateTags(_ context.Context, tags ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, tag := range tags {
		for key := range m.tags[tag] {
			m.removeLocked(key)
		}
		delete(m.tags, tag)
	}
	return nil
}

// Len returns the number of stored entries, including expired ones not yet cleaned up.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Cleanup removes expired entries and returns how many were dropped.
func (m *MemoryStore) Cleanup() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeExpiredLocked()
}

// Run removes expired entries every interval until ctx is done.
func (m *MemoryStore) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultCleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Cleanup()
		}
	}
}

func (m *MemoryStore) removeLocked(key string) {
	e, ok := m.entries[key]
	if !ok {
		return
	}
	delete(m.entries, key)
	for _, tag := range e.tags {
		if keys, ok := m.tags[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(m.tags, tag)
			}
		}
	}
}

func (m *MemoryStore) removeExpiredLocked() int {
	now := m.now()
	removed := 0
	for key, e := range m.entries {
		if !now.Before(e.expiresAt) {
			m.removeLocked(key)
			removed++
		}
	}
	return removed
}

// evictLocked makes room for one more entry: expired entries go first, then the entries
// closest to expiry.
func (m *MemoryStore) evictLocked() {
	if m.maxEntries <= 0 || len(m.entries) < m.maxEntries {
		return
	}
	m.removeExpiredLocked()

	for len(m.entries) >= m.maxEntries {
		var (
			oldestKey string
			oldestAt  time.Time
			found     bool
		)
		for key, e := range m.entries {
			if !found || e.expiresAt.Before(oldestAt) {
				oldestKey, oldestAt, found = key, e.expiresAt, true
			}
		}
		if !found {
			return
		}
		m.removeLocked(oldestKey)
	}
}
