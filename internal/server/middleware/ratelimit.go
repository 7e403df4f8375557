package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimit limits requests per client address. limit is requests per
// second; 0 disables limiting. Limiters are cached per host with a TTL;
// expired entries are swept whenever a new limiter is created, so one-off
// hosts do not accumulate.
func RateLimit(limit float64, burst int) func(http.Handler) http.Handler {
	limiters := sync.Map{} // host -> *cachedLimiter

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			limiter := getOrCreateLimiter(&limiters, host, limit, burst, 5*time.Minute)
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type cachedLimiter struct {
	limiter   *rate.Limiter
	expiresAt time.Time
}

func getOrCreateLimiter(limiters *sync.Map, host string, limit float64, burst int, ttl time.Duration) *rate.Limiter {
	now := time.Now()
	if cached, ok := limiters.Load(host); ok {
		c := cached.(*cachedLimiter)
		if now.Before(c.expiresAt) {
			return c.limiter
		}
		// expired, need to create new
	}

	// Creating a limiter is the slow path already, so use it to drop every
	// expired entry.
	limiters.Range(func(key, value any) bool {
		if now.After(value.(*cachedLimiter).expiresAt) {
			limiters.Delete(key)
		}
		return true
	})

	if burst <= 0 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(limit), burst)
	limiters.Store(host, &cachedLimiter{
		limiter:   limiter,
		expiresAt: now.Add(ttl),
	})
	return limiter
}
