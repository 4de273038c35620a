// Package ratelimiter provides a simple fixed-window limiter for
// outbound calls to external services.
package ratelimiter

import (
	"log/slog"
	"sync"
	"time"
)

// Limiter throttles the frequency of an operation.
type Limiter interface {
	WaitIfNeeded()
}

// RateLimiter allows up to limit calls per interval and blocks the
// caller until the window resets once the budget is spent. Safe for
// concurrent use; worker goroutines share one instance per target.
type RateLimiter struct {
	limit    int
	interval time.Duration

	mu        sync.Mutex
	count     int
	lastReset time.Time
}

// Compile-time check that RateLimiter implements Limiter.
var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiter creates a new RateLimiter instance.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
	}
}

// WaitIfNeeded consumes one slot of the current window, sleeping until
// the window resets when the budget is exhausted.
func (rl *RateLimiter) WaitIfNeeded() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	rl.count++
	if rl.count > rl.limit {
		sleep := rl.interval - now.Sub(rl.lastReset)
		if sleep > 0 {
			slog.Warn("rate limit reached, waiting", "limit", rl.limit, "sleep", sleep)
			time.Sleep(sleep)
		}
		rl.count = 1
		rl.lastReset = time.Now()
	}
}
