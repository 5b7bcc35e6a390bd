package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(config *Config) *Limiter {
	// CleanupInterval left zero so no background goroutine runs in tests.
	return NewLimiter(config)
}

func TestAllow_BurstThenDeny(t *testing.T) {
	limiter := newTestLimiter(&Config{
		Enabled: true,
		EndpointConfigs: []EndpointConfig{
			{Path: "/enhance", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
		},
	})

	allowed, _ := limiter.Allow("client-1", "/enhance", "POST")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("client-1", "/enhance", "POST")
	assert.True(t, allowed)

	// Burst of 2 exhausted; refill over an hour is far too slow to matter here.
	allowed, info := limiter.Allow("client-1", "/enhance", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 10, info.Limit)
	assert.Zero(t, info.Remaining)
	assert.Positive(t, info.RetryAfter)
}

func TestAllow_ClientsHaveSeparateBuckets(t *testing.T) {
	limiter := newTestLimiter(&Config{
		Enabled: true,
		EndpointConfigs: []EndpointConfig{
			{Path: "/enhance", Method: "POST", Limit: 10, Window: time.Hour, Burst: 1},
		},
	})

	allowed, _ := limiter.Allow("client-1", "/enhance", "POST")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("client-1", "/enhance", "POST")
	require.False(t, allowed)

	allowed, _ = limiter.Allow("client-2", "/enhance", "POST")
	assert.True(t, allowed)
}

func TestAllow_DisabledLimiterAlwaysAllows(t *testing.T) {
	limiter := newTestLimiter(&Config{Enabled: false})

	for range 100 {
		allowed, _ := limiter.Allow("client-1", "/enhance", "POST")
		assert.True(t, allowed)
	}
}

func TestAllow_WhitelistBypassesLimits(t *testing.T) {
	limiter := newTestLimiter(&Config{
		Enabled:   true,
		Whitelist: map[string]bool{"trusted": true},
		EndpointConfigs: []EndpointConfig{
			{Path: "/enhance", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1},
		},
	})

	for range 10 {
		allowed, _ := limiter.Allow("trusted", "/enhance", "POST")
		assert.True(t, allowed)
	}
}

func TestAllow_BlacklistAlwaysDenies(t *testing.T) {
	limiter := newTestLimiter(&Config{
		Enabled:   true,
		Blacklist: map[string]bool{"banned": true},
	})

	allowed, info := limiter.Allow("banned", "/health", "GET")

	assert.False(t, allowed)
	assert.False(t, info.Allowed)
}

func TestAllow_HealthEndpointIsUnlimited(t *testing.T) {
	limiter := newTestLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour})

	for range 50 {
		allowed, _ := limiter.Allow("client-1", "/health", "GET")
		assert.True(t, allowed)
	}
}

func TestAllow_UnknownEndpointUsesDefaults(t *testing.T) {
	limiter := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  2,
		DefaultWindow: time.Hour,
	})

	allowed, _ := limiter.Allow("client-1", "/metrics", "GET")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("client-1", "/metrics", "GET")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("client-1", "/metrics", "GET")
	assert.False(t, allowed)
}

func TestEvictIdle_DropsStaleBuckets(t *testing.T) {
	limiter := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})

	limiter.Allow("client-1", "/metrics", "GET")
	require.Len(t, limiter.buckets, 1)

	// A cutoff in the future makes the fresh bucket look idle.
	limiter.evictIdle(time.Now().Add(time.Minute))

	assert.Empty(t, limiter.buckets)
}

func TestMatchEndpoint_ExactBeforePrefix(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/runs/", Method: "GET", Limit: 5},
		{Path: "/runs/latest", Method: "GET", Limit: 50},
	}

	match := MatchEndpoint("/runs/latest", "GET", configs)
	require.NotNil(t, match)
	assert.Equal(t, 50, match.Limit)

	match = MatchEndpoint("/runs/abc123", "GET", configs)
	require.NotNil(t, match)
	assert.Equal(t, 5, match.Limit)
}

func TestMatchEndpoint_MethodMustMatch(t *testing.T) {
	configs := []EndpointConfig{{Path: "/enhance", Method: "POST", Limit: 10}}

	assert.Nil(t, MatchEndpoint("/enhance", "GET", configs))
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	config := LoadConfig()

	assert.False(t, config.Enabled)
}

func TestLoadConfig_DefaultsAndLists(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	config := LoadConfig()

	assert.True(t, config.Enabled)
	assert.Equal(t, 1000, config.DefaultLimit)
	assert.Equal(t, time.Minute, config.DefaultWindow)
	assert.True(t, config.Whitelist["10.0.0.1"])
	assert.True(t, config.Whitelist["10.0.0.2"])
	assert.NotEmpty(t, config.EndpointConfigs)
}
