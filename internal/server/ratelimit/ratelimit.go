// Package ratelimit provides per-client token-bucket rate limiting for the
// careerdoc API. Authentication endpoints get tight limits to slow down
// credential stuffing; builder endpoints get moderate limits because each
// request may invoke the generation backend.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// Rule assigns a limit to every path sharing a prefix. A Limit of 0 exempts
// the prefix entirely.
type Rule struct {
	PathPrefix string
	Limit      int           // requests per Window
	Window     time.Duration
}

// Info describes the rate-limit state returned with every decision.
type Info struct {
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// DefaultRules returns the endpoint rules used by the careerdoc server.
func DefaultRules() []Rule {
	return []Rule{
		{PathPrefix: "/auth/", Limit: 10, Window: time.Minute},
		{PathPrefix: "/builder/", Limit: 30, Window: time.Minute},
		{PathPrefix: "/health", Limit: 0},
	}
}

// Limiter manages one token bucket per client+rule pair.
type Limiter struct {
	defaultLimit  int
	defaultWindow time.Duration
	rules         []Rule

	mu         sync.Mutex
	buckets    map[string]*bucket
	lastAccess map[string]time.Time

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
}

type bucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
}

// NewLimiter creates a limiter with a global default of defaultLimit requests
// per defaultWindow and the given per-endpoint rules.
func NewLimiter(defaultLimit int, defaultWindow time.Duration, rules []Rule) *Limiter {
	l := &Limiter{
		defaultLimit:  defaultLimit,
		defaultWindow: defaultWindow,
		rules:         rules,
		buckets:       make(map[string]*bucket),
		lastAccess:    make(map[string]time.Time),
		cleanupTicker: time.NewTicker(5 * time.Minute),
		cleanupStop:   make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow reports whether a request from clientID to path may proceed.
func (l *Limiter) Allow(clientID, path string) (bool, Info) {
	limit, window, ruleKey := l.match(path)
	if limit <= 0 {
		return true, Info{}
	}

	key := clientID + ":" + ruleKey

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{
			capacity:   limit,
			refillRate: float64(limit) / window.Seconds(),
			tokens:     float64(limit),
			lastRefill: time.Now(),
		}
		l.buckets[key] = b
	}
	l.lastAccess[key] = time.Now()

	b.refill()
	allowed := false
	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		allowed = true
	}

	info := Info{
		Limit:     limit,
		Remaining: int(b.tokens),
		ResetTime: b.fullAt(),
	}
	if !allowed {
		info.RetryAfter = max(time.Until(b.nextTokenAt()), 0)
	}
	return allowed, info
}

// Stop terminates the background bucket cleanup.
func (l *Limiter) Stop() {
	l.cleanupTicker.Stop()
	close(l.cleanupStop)
}

// match returns the limit, window and bucket-key suffix for a path. The first
// matching rule wins; unmatched paths fall back to the global default.
func (l *Limiter) match(path string) (limit int, window time.Duration, ruleKey string) {
	for _, r := range l.rules {
		if strings.HasPrefix(path, r.PathPrefix) {
			return r.Limit, r.Window, r.PathPrefix
		}
	}
	return l.defaultLimit, l.defaultWindow, "*"
}

func (b *bucket) refill() {
	now := time.Now()
	b.tokens = min(float64(b.capacity), b.tokens+now.Sub(b.lastRefill).Seconds()*b.refillRate)
	b.lastRefill = now
}

func (b *bucket) fullAt() time.Time {
	if b.tokens >= float64(b.capacity) {
		return b.lastRefill
	}
	missing := float64(b.capacity) - b.tokens
	return b.lastRefill.Add(time.Duration(missing / b.refillRate * float64(time.Second)))
}

func (b *bucket) nextTokenAt() time.Time {
	if b.tokens >= 1.0 {
		return b.lastRefill
	}
	missing := 1.0 - b.tokens
	return b.lastRefill.Add(time.Duration(missing / b.refillRate * float64(time.Second)))
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.dropStale()
		case <-l.cleanupStop:
			return
		}
	}
}

// dropStale removes buckets idle for over an hour.
func (l *Limiter) dropStale() {
	cutoff := time.Now().Add(-time.Hour)
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, last := range l.lastAccess {
		if last.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.lastAccess, key)
		}
	}
}
