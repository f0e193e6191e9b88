package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// cleanupInterval bounds how long idle client limiters are retained.
const cleanupInterval = time.Hour

// KeyFunc extracts the rate-limit key (usually the client IP) from a request.
type KeyFunc func(r *http.Request) string

// RateLimiter enforces a per-key requests-per-minute budget.
type RateLimiter struct {
	limit rate.Limit
	burst int
	key   KeyFunc
	now   func() time.Time

	mu          sync.Mutex
	limiters    map[string]*rate.Limiter
	lastCleanup time.Time
}

// NewRateLimiter allows perMinute requests per key, refilled evenly, with
// a burst of the full minute's budget.
func NewRateLimiter(perMinute int, key KeyFunc) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &RateLimiter{
		limit:       rate.Every(time.Minute / time.Duration(perMinute)),
		burst:       perMinute,
		key:         key,
		now:         time.Now,
		limiters:    make(map[string]*rate.Limiter),
		lastCleanup: time.Now(),
	}
}

func (l *RateLimiter) limiterFor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Drop every limiter periodically to bound memory.
	if l.now().Sub(l.lastCleanup) > cleanupInterval {
		l.limiters = make(map[string]*rate.Limiter)
		l.lastCleanup = l.now()
	}

	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = limiter
	}
	return limiter
}

// Allow reports whether a request for key may proceed.
func (l *RateLimiter) Allow(key string) bool {
	return l.limiterFor(key).AllowN(l.now(), 1)
}

// Middleware rejects over-budget requests with 429 {"error":"rate_limited"}.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(l.key(r)) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "60")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate_limited"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
