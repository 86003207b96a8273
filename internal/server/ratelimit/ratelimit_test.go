package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(t *testing.T, cfg *Config) (*Limiter, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	l := NewLimiter(cfg)
	l.now = clock.Now
	t.Cleanup(l.Stop)
	return l, clock
}

func TestTokenBucket_Take(t *testing.T) {
	start := time.Now()
	b := newTokenBucket(3, 1.0, start)

	for i := 0; i < 3; i++ {
		ok, remaining, _ := b.take(start)
		require.True(t, ok, "request %d", i+1)
		assert.Equal(t, 2-i, remaining)
	}

	ok, remaining, resetAt := b.take(start)
	assert.False(t, ok)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, start.Add(3*time.Second), resetAt)

	// One second refills one token
	ok, _, _ = b.take(start.Add(time.Second))
	assert.True(t, ok)
}

func TestTokenBucket_NeverExceedsCapacity(t *testing.T) {
	start := time.Now()
	b := newTokenBucket(2, 10, start)

	_, remaining, resetAt := b.take(start.Add(time.Hour))
	assert.Equal(t, 1, remaining)
	assert.True(t, resetAt.After(start.Add(time.Hour)))
}

func TestLimiter_DefaultLimit(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 5, DefaultWindow: time.Minute})

	for i := 0; i < 5; i++ {
		ok, info := l.Allow("10.0.0.1", "/jobs", "GET")
		require.True(t, ok)
		assert.Equal(t, 5, info.Limit)
	}

	ok, info := l.Allow("10.0.0.1", "/jobs", "GET")
	assert.False(t, ok)
	assert.Equal(t, 0, info.Remaining)
	assert.InDelta(t, 12.0, info.RetryAfter.Seconds(), 0.01)

	// Other clients have their own buckets
	ok, _ = l.Allow("10.0.0.2", "/jobs", "GET")
	assert.True(t, ok)

	clock.Advance(13 * time.Second)
	ok, _ = l.Allow("10.0.0.1", "/jobs", "GET")
	assert.True(t, ok)
}

func TestLimiter_LoginIsStrict(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})

	allowed := 0
	for i := 0; i < 20; i++ {
		if ok, _ := l.Allow("1.2.3.4", "/auth/login", "POST"); ok {
			allowed++
		}
	}
	assert.Equal(t, 5, allowed)

	// A different route is unaffected
	ok, _ := l.Allow("1.2.3.4", "/auth/session", "GET")
	assert.True(t, ok)
}

func TestLimiter_PatternSharesBucketAcrossIDs(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled: true,
		EndpointConfigs: []EndpointConfig{
			{Pattern: "/jobs/*/applications", Method: "POST", Limit: 2, Window: time.Hour},
		},
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	})

	ok, _ := l.Allow("c", "/jobs/1/applications", "POST")
	assert.True(t, ok)
	ok, _ = l.Allow("c", "/jobs/2/applications", "POST")
	assert.True(t, ok)
	ok, _ = l.Allow("c", "/jobs/3/applications", "POST")
	assert.False(t, ok)
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:         true,
		DefaultLimit:    1,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})

	for i := 0; i < 50; i++ {
		ok, info := l.Allow("c", "/health", "GET")
		require.True(t, ok)
		assert.Equal(t, 0, info.Limit)
	}
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"good": true},
		Blacklist:     map[string]bool{"bad": true},
	})

	for i := 0; i < 10; i++ {
		ok, _ := l.Allow("good", "/jobs", "GET")
		assert.True(t, ok)
	}

	ok, _ := l.Allow("bad", "/jobs", "GET")
	assert.False(t, ok)
}

func TestLimiter_Disabled(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: false})
	for i := 0; i < 10; i++ {
		ok, _ := l.Allow("c", "/auth/login", "POST")
		assert.True(t, ok)
	}
}

func TestLimiter_Cleanup(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		IdleTTL:       time.Minute,
	})

	l.Allow("old", "/jobs", "GET")
	clock.Advance(2 * time.Minute)
	l.Allow("fresh", "/jobs", "GET")

	l.cleanup()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.buckets, 1)
	_, ok := l.buckets["fresh:GET:*"]
	assert.True(t, ok)
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Hour})

	var allowed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if ok, _ := l.Allow("c", "/jobs", "GET"); ok {
					allowed.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(100), allowed.Load())
}

func TestLimiter_StopTwice(t *testing.T) {
	l := NewLimiter(nil)
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		name    string
		path    string
		method  string
		pattern string
	}{
		{"login", "/auth/login", "POST", "/auth/login"},
		{"application", "/jobs/3/applications", "POST", "/jobs/*/applications"},
		{"offer beats prefix", "/candidates/app_1/offer", "POST", "/candidates/*/offer"},
		{"prefix for other writes", "/candidates/app_1/advance", "POST", "/candidates/"},
		{"prefix for PUT", "/candidates/app_1/score", "PUT", "/candidates/"},
		{"health", "/health", "GET", "/health"},
		{"no match for reads", "/candidates", "GET", ""},
		{"wrong method", "/auth/login", "GET", ""},
		{"empty wildcard segment", "/jobs//applications", "POST", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.pattern == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.pattern, got.Pattern)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_ENABLED", "false")
		cfg := LoadConfig()
		assert.False(t, cfg.Enabled)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_ENABLED", "")
		t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
		t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
		t.Setenv("RATE_LIMIT_WHITELIST", "127.0.0.1, ::1,")

		cfg := LoadConfig()
		assert.True(t, cfg.Enabled)
		assert.Equal(t, 42, cfg.DefaultLimit)
		assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
		assert.Equal(t, map[string]bool{"127.0.0.1": true, "::1": true}, cfg.Whitelist)
		assert.NotEmpty(t, cfg.EndpointConfigs)
	})
}
