package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(t *testing.T, cfg *Config) (*Limiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)}
	l := NewLimiter(cfg)
	l.now = clock.Now
	t.Cleanup(l.Stop)
	return l, clock
}

func TestLimiter_AllowBurstThenDeny(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, RequestsPerSecond: 1, Burst: 3})

	for i := range 3 {
		allowed, info := l.Allow("10.0.0.1", "/score", "POST")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 3, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	allowed, info := l.Allow("10.0.0.1", "/score", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.InDelta(t, time.Second.Seconds(), info.RetryAfter.Seconds(), 0.01)
}

func TestLimiter_Refill(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, RequestsPerSecond: 2, Burst: 1})

	allowed, _ := l.Allow("c", "/score", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("c", "/score", "POST")
	require.False(t, allowed)

	clock.Advance(500 * time.Millisecond)
	allowed, _ = l.Allow("c", "/score", "POST")
	assert.True(t, allowed)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, RequestsPerSecond: 1, Burst: 1})

	allowed, _ := l.Allow("a", "/score", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("b", "/score", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("a", "/score", "POST")
	assert.False(t, allowed)
}

func TestLimiter_Whitelist(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled: true, RequestsPerSecond: 1, Burst: 1,
		Whitelist: map[string]bool{"127.0.0.1": true},
	})

	for range 10 {
		allowed, info := l.Allow("127.0.0.1", "/score", "POST")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
	assert.Zero(t, l.Len())
}

func TestLimiter_Blacklist(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled: true, RequestsPerSecond: 100, Burst: 100,
		Blacklist: map[string]bool{"10.6.6.6": true},
	})

	allowed, _ := l.Allow("10.6.6.6", "/health", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l, _ := newTestLimiter(t, DefaultConfig(0, 0))

	for range 100 {
		allowed, _ := l.Allow("c", "/score", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_EndpointTiers(t *testing.T) {
	l, _ := newTestLimiter(t, DefaultConfig(8, 8))

	// Pool endpoints get a quarter of the default burst.
	for i := range 2 {
		allowed, info := l.Allow("c", "/jobs/abc/recommendations", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 2, info.Limit)
	}
	allowed, _ := l.Allow("c", "/jobs/other/similar", "GET")
	assert.False(t, allowed, "every /jobs/ GET shares one bucket")

	// The default bucket is untouched.
	allowed, info := l.Allow("c", "/score", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 8, info.Limit)

	// Probes are unlimited.
	for range 50 {
		allowed, _ := l.Allow("c", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestLimiter_ZeroBurstFallsBackToRate(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, RequestsPerSecond: 2.5})

	_, info := l.Allow("c", "/score", "POST")
	assert.Equal(t, 3, info.Limit)
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, RequestsPerSecond: 1, Burst: 50})

	var allowedCount atomic.Int64
	var wg sync.WaitGroup
	for i := range 200 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if ok, _ := l.Allow("shared", "/score", "POST"); ok {
				allowedCount.Add(1)
			}
			l.Allow(fmt.Sprintf("client-%d", i%5), "/score", "POST")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(50), allowedCount.Load())
	assert.Equal(t, 6, l.Len())
}

func TestLimiter_CleanupIdleBuckets(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, RequestsPerSecond: 1, Burst: 1, IdleTTL: time.Minute})

	l.Allow("old", "/score", "POST")
	clock.Advance(2 * time.Minute)
	l.Allow("fresh", "/score", "POST")

	assert.Equal(t, 1, l.cleanupBuckets())
	assert.Equal(t, 1, l.Len())
}

func TestLimiter_StopTwice(t *testing.T) {
	l := NewLimiter(nil)
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/jobs/", Method: "GET", RequestsPerSecond: 1},
		{Path: "/jobs/special", Method: "GET", RequestsPerSecond: 2},
		{Path: "/health", Method: "GET"},
	}

	tests := []struct {
		path, method string
		want         float64
		found        bool
	}{
		{"/jobs/abc/similar", "GET", 1, true},
		{"/jobs/special", "GET", 2, true},
		{"/jobs/abc", "POST", 0, false},
		{"/health", "GET", 0, true},
		{"/score", "POST", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if !tt.found {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.RequestsPerSecond)
		})
	}
}
