package api

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const rateLimiterIdleTTL = 30 * time.Minute

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter keeps one token bucket per key. Buckets idle for longer than
// rateLimiterIdleTTL are dropped on the next call.
type rateLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	entries map[string]*rateLimiterEntry
	now     func() time.Time
}

func newRateLimiter(perMinute int, burst int) *rateLimiter {
	if perMinute <= 0 {
		perMinute = 6
	}
	if burst <= 0 {
		burst = 1
	}
	return &rateLimiter{
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   burst,
		entries: make(map[string]*rateLimiterEntry),
		now:     time.Now,
	}
}

func (limiter *rateLimiter) allow(key string) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	now := limiter.now()
	limiter.pruneLocked(now)

	entry, ok := limiter.entries[key]
	if !ok {
		entry = &rateLimiterEntry{limiter: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.entries[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

func (limiter *rateLimiter) pruneLocked(now time.Time) {
	for key, entry := range limiter.entries {
		if now.Sub(entry.lastSeen) > rateLimiterIdleTTL {
			delete(limiter.entries, key)
		}
	}
}
