package http

import (
	"sync"
	"time"
)

// rateLimiter is a fixed-window per-client limiter, used to slow down
// credential guessing on the login endpoint.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	limit   int
	window  time.Duration
}

type clientWindow struct {
	start    time.Time
	requests int
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		clients: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
	}
	go func() {
		for range time.Tick(window) {
			rl.cleanStale()
		}
	}()
	return rl
}

// Allow reports whether a request from clientIP fits the current window.
func (rl *rateLimiter) Allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	c, ok := rl.clients[clientIP]
	if !ok || now.Sub(c.start) > rl.window {
		rl.clients[clientIP] = &clientWindow{start: now, requests: 1}
		return true
	}

	c.requests++
	return c.requests <= rl.limit
}

// cleanStale drops windows older than the limit window.
func (rl *rateLimiter) cleanStale() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for ip, c := range rl.clients {
		if now.Sub(c.start) > rl.window {
			delete(rl.clients, ip)
		}
	}
}
