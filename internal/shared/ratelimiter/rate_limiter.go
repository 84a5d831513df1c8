// Package ratelimiter paces outbound calls to external APIs.
package ratelimiter

import (
	"log/slog"
	"sync"
	"time"
)

// RateLimiterInterface limits the frequency of operations such as
// external API calls.
type RateLimiterInterface interface {
	WaitIfNeeded()
}

// RateLimiter allows up to limit calls per interval, blocking callers
// past the limit until the window resets.
type RateLimiter struct {
	limit    int
	interval time.Duration

	mu        sync.Mutex
	count     int
	lastReset time.Time
}

// NewRateLimiter creates a new RateLimiter instance.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
	}
}

// WaitIfNeeded counts one call and sleeps until the next window when
// the current one is exhausted.
func (rl *RateLimiter) WaitIfNeeded() {
	rl.mu.Lock()

	now := time.Now()
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	rl.count++
	if rl.count <= rl.limit {
		rl.mu.Unlock()
		return
	}

	sleep := rl.interval - now.Sub(rl.lastReset)
	rl.count = 1
	rl.lastReset = now.Add(sleep)
	rl.mu.Unlock()

	if sleep > 0 {
		slog.Warn("rate limit reached, pausing outbound calls", "limit", rl.limit, "sleep", sleep)
		time.Sleep(sleep)
	}
}
