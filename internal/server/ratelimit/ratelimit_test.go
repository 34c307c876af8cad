package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucket_Take(t *testing.T) {
	bucket := newTokenBucket(10, 1.0)

	for i := 0; i < 10; i++ {
		allowed, remaining, _ := bucket.take()
		assert.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 9-i, remaining)
	}

	allowed, remaining, reset := bucket.take()
	assert.False(t, allowed, "11th request should be denied")
	assert.Equal(t, 0, remaining)
	assert.True(t, reset.After(time.Now()), "reset time should be in the future")
}

func TestTokenBucket_Refill(t *testing.T) {
	bucket := newTokenBucket(10, 1.0)
	for i := 0; i < 10; i++ {
		bucket.take()
	}

	time.Sleep(1100 * time.Millisecond)

	allowed, _, _ := bucket.take()
	assert.True(t, allowed, "one token refills after a second")
	allowed, _, _ = bucket.take()
	assert.False(t, allowed)
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/builder", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/builder", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Positive(t, info.RetryAfter)

	allowed, _ = limiter.Allow("127.0.0.2", "/builder", "GET")
	assert.True(t, allowed, "clients have separate buckets")
}

func TestLimiter_DefaultBucketSharedAcrossPaths(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 2, DefaultWindow: time.Minute})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("c", "/builder/experience/a", "DELETE")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("c", "/builder/experience/b", "DELETE")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("c", "/builder/experience/c", "DELETE")
	assert.False(t, allowed, "IDs in the path must not reset the allowance")
}

func TestLimiter_WhitelistBlacklistDisabled(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/builder", "GET")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}

	allowed, _ := limiter.Allow("192.168.1.1", "/builder", "GET")
	assert.False(t, allowed)

	disabled := NewLimiter(&Config{Enabled: false})
	defer disabled.Stop()
	for i := 0; i < 50; i++ {
		allowed, _ := disabled.Allow("127.0.0.1", "/builder", "GET")
		require.True(t, allowed)
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/builder/export", Method: "POST", Limit: 5, Window: time.Hour, Burst: 2},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		allowed, info := limiter.Allow("c", "/builder/export", "POST")
		require.True(t, allowed)
		assert.Equal(t, 5, info.Limit)
	}
	allowed, _ := limiter.Allow("c", "/builder/export", "POST")
	assert.False(t, allowed, "burst exhausted")

	allowed, info := limiter.Allow("c", "/builder", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 20; i++ {
		allowed, _ := limiter.Allow("c", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Minute})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("127.0.0.1", "/builder", "GET"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowedCount)
}

func TestLimiter_EvictIdle(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/builder", "GET")
	}
	require.Equal(t, 5, limiter.Len())

	limiter.evictIdle(time.Now().Add(-time.Hour))
	assert.Equal(t, 5, limiter.Len(), "recent buckets survive")

	limiter.evictIdle(time.Now().Add(time.Second))
	assert.Equal(t, 0, limiter.Len())
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()
	defer limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/builder", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(10, 20)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 600, cfg.DefaultLimit)
	assert.Equal(t, 20, cfg.DefaultBurst)
	assert.NotEmpty(t, cfg.EndpointConfigs)

	assert.False(t, NewConfig(0, 20).Enabled)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/builder/", Method: "POST", Limit: 1},
		{Path: "/builder/export/", Method: "POST", Limit: 2},
		{Path: "/builder/export", Method: "POST", Limit: 3},
	}

	assert.Equal(t, 3, MatchEndpoint("/builder/export", "POST", configs).Limit, "exact match wins")
	assert.Equal(t, 2, MatchEndpoint("/builder/export/stream", "POST", configs).Limit, "longest prefix wins")
	assert.Equal(t, 1, MatchEndpoint("/builder/skills", "POST", configs).Limit)
	assert.Nil(t, MatchEndpoint("/builder/skills", "GET", configs))
	assert.Equal(t, 0, MatchEndpoint("/health", "GET", configs).Limit)
}

func TestParseIPList(t *testing.T) {
	assert.Equal(t, map[string]bool{"1.1.1.1": true, "2.2.2.2": true}, ParseIPList(" 1.1.1.1 , ,2.2.2.2"))
	assert.Empty(t, ParseIPList(""))
}
