package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// sweepInterval is how often idle client buckets are dropped.
const sweepInterval = time.Minute

// RateLimiter hands out one token bucket per client key. Buckets that have
// refilled completely are dropped on the next sweep; a fresh bucket behaves
// the same, so the map only holds clients that are currently throttled or
// recently active.
type RateLimiter struct {
	mu        sync.Mutex
	limits    map[string]*rate.Limiter
	every     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter allows perSecond steady requests with the given burst per key.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limits:    make(map[string]*rate.Limiter),
		every:     rate.Limit(perSecond),
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// getLimiter gets or creates a limiter for the given key.
func (rl *RateLimiter) getLimiter(key string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) >= sweepInterval {
		rl.sweepLocked(now)
	}

	if limiter, ok := rl.limits[key]; ok {
		return limiter
	}

	limiter := rate.NewLimiter(rl.every, rl.burst)
	rl.limits[key] = limiter
	return limiter
}

// Allow checks if a request is allowed for the given key.
func (rl *RateLimiter) Allow(key string) bool {
	now := rl.now()
	return rl.getLimiter(key, now).AllowN(now, 1)
}

func (rl *RateLimiter) sweepLocked(now time.Time) {
	for key, limiter := range rl.limits {
		if limiter.TokensAt(now) >= float64(rl.burst) {
			delete(rl.limits, key)
		}
	}
	rl.lastSweep = now
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limits)
}

// clientKey identifies the caller by IP. RealIP has already rewritten
// RemoteAddr when a proxy header was present.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
