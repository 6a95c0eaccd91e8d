package ratelimiter

import (
	"log/slog"
	"sync"
	"time"
)

// RateLimiterInterface limits the frequency of operations such as broker
// API calls.
type RateLimiterInterface interface {
	WaitIfNeeded()
}

// RateLimiter limits the frequency of operations such as broker API calls.
// It is safe for concurrent use.
type RateLimiter struct {
	mu        sync.Mutex
	limit     int           // max calls per interval
	interval  time.Duration // window length
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

// WaitIfNeeded checks whether the rate limit has been reached and blocks
// until the window resets if it has.
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
			slog.Warn("rate limit hit, sleeping", "limit", rl.limit, "sleep", sleep)
			time.Sleep(sleep)
		}
		rl.count = 1
		rl.lastReset = time.Now()
	}
}
