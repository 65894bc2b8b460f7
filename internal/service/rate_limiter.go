package service

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter implements per-host dispatch throttling
type RateLimiter struct {
	mu sync.Mutex

	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

// NewRateLimiter creates a limiter allowing perMinute dispatches per host
// with the given burst. A non-positive perMinute disables limiting.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limit:    limit,
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// CheckHost takes one token for host, returning ErrRateLimitExceeded when
// none is available
func (rl *RateLimiter) CheckHost(host string) error {
	return rl.checkHostAt(host, time.Now())
}

func (rl *RateLimiter) checkHostAt(host string, now time.Time) error {
	rl.mu.Lock()
	l, ok := rl.limiters[host]
	if !ok {
		l = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[host] = l
	}
	rl.mu.Unlock()

	if !l.AllowN(now, 1) {
		return ErrRateLimitExceeded
	}
	return nil
}
