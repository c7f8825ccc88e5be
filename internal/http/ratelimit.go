package http

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// rateLimiter is a fixed-window per-IP limiter for the analyze route. The
// analysis endpoint is the only paid, slow call in the system, so it gets a
// budget per client instead of the open door every other route has.
type rateLimiter struct {
	mu                sync.Mutex
	clients           map[string]*clientWindow
	requestsPerMinute int
}

type clientWindow struct {
	windowStart time.Time
	requests    int
}

func newRateLimiter(requestsPerMinute int) *rateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 6
	}
	return &rateLimiter{
		clients:           make(map[string]*clientWindow),
		requestsPerMinute: requestsPerMinute,
	}
}

// Allow checks if a request from the given client should be allowed.
func (rl *rateLimiter) Allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.pruneLocked(now)

	client, exists := rl.clients[clientIP]
	if !exists || now.Sub(client.windowStart) > time.Minute {
		rl.clients[clientIP] = &clientWindow{windowStart: now, requests: 1}
		return true
	}

	client.requests++
	return client.requests <= rl.requestsPerMinute
}

// pruneLocked drops windows stale for more than two minutes, keeping the map
// bounded without a cleanup goroutine.
func (rl *rateLimiter) pruneLocked(now time.Time) {
	for ip, client := range rl.clients {
		if now.Sub(client.windowStart) > 2*time.Minute {
			delete(rl.clients, ip)
		}
	}
}

// Handler wraps a route with the limiter.
func (rl *rateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// RemoteAddr is host:port for direct connections and a bare IP once
		// the RealIP middleware has rewritten it.
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !rl.Allow(ip) {
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "analysis rate limit exceeded, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}
