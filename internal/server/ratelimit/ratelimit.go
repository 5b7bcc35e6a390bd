// Package ratelimit provides per-client request throttling using a token
// bucket per client and endpoint.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket with lazy refill. Access is guarded by the
// owning Limiter's mutex.
type bucket struct {
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	lastAccess time.Time
}

func (b *bucket) refill(now time.Time) {
	b.tokens += now.Sub(b.lastRefill).Seconds() * b.refillRate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now
}

// Info describes the rate limit state reported back to the client.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter throttles requests per client and endpoint.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	config  *Config
	stop    chan struct{}
	ticker  *time.Ticker
}

// NewLimiter creates a limiter over the given configuration. Pass nil for a
// permissive default. A background goroutine evicts idle buckets until Stop
// is called.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.ticker = time.NewTicker(config.CleanupInterval)
		l.stop = make(chan struct{})
		go l.cleanupLoop()
	}

	return l
}

// Allow reports whether a request from clientID to the given endpoint may
// proceed, consuming a token when it does.
func (l *Limiter) Allow(clientID, endpoint, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	endpointConfig := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if endpointConfig == nil {
		endpointConfig = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
		}
	}
	if endpointConfig.Limit <= 0 {
		// Unlimited endpoint, e.g. health checks.
		return true, Info{Allowed: true}
	}

	now := time.Now()
	key := clientID + ":" + method + " " + endpoint

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		capacity := endpointConfig.Burst
		if capacity <= 0 {
			capacity = endpointConfig.Limit
		}
		b = &bucket{
			capacity:   float64(capacity),
			refillRate: float64(endpointConfig.Limit) / endpointConfig.Window.Seconds(),
			tokens:     float64(capacity),
			lastRefill: now,
		}
		l.buckets[key] = b
	}
	b.lastAccess = now

	b.refill(now)
	allowed := b.tokens >= 1.0
	if allowed {
		b.tokens -= 1.0
	}

	resetTime := now
	if b.tokens < b.capacity {
		secondsUntilFull := (b.capacity - b.tokens) / b.refillRate
		resetTime = now.Add(time.Duration(secondsUntilFull * float64(time.Second)))
	}

	info := Info{
		Allowed:   allowed,
		Limit:     endpointConfig.Limit,
		Remaining: int(b.tokens),
		ResetTime: resetTime,
	}
	if !allowed {
		info.RetryAfter = max(time.Until(resetTime), 0)
	}
	return allowed, info
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.ticker.C:
			l.evictIdle(time.Now().Add(-1 * time.Hour))
		case <-l.stop:
			return
		}
	}
}

// evictIdle drops buckets not touched since the cutoff.
func (l *Limiter) evictIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastAccess.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop terminates the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.ticker != nil {
		l.ticker.Stop()
	}
	if l.stop != nil {
		close(l.stop)
	}
}
