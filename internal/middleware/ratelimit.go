package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"
)

// rateWindow is the fixed window over which requests are counted.
const rateWindow = time.Minute

type clientWindow struct {
	count       int
	windowStart time.Time
}

// RateLimiter caps requests per client IP in a fixed window. A limit of 0
// disables it.
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	clients map[string]*clientWindow
}

func NewRateLimiter(limit int) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		clients: make(map[string]*clientWindow),
	}
}

// Middleware rejects requests over the limit with 429 and the standard
// error body. Stale windows are pruned in place as clients come back.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		ip := clientIP(r)
		now := time.Now()

		rl.mu.Lock()
		state, exists := rl.clients[ip]
		if !exists || now.Sub(state.windowStart) > rateWindow {
			rl.clients[ip] = &clientWindow{count: 1, windowStart: now}
			rl.mu.Unlock()
			next.ServeHTTP(w, r)
			return
		}

		if state.count >= rl.limit {
			rl.mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{"error": "Too many requests"})
			return
		}

		state.count++
		rl.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// clientIP prefers the forwarded address set by the front proxy.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
