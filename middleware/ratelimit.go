package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"finance-tracker/api/logger"
)

// RateLimiter is an in-memory fixed-window limiter keyed by authenticated
// user. It protects the mutating endpoints and is checked before any state
// change so a denied request has no partial effect.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window

	limit  int
	period time.Duration
}

type window struct {
	start    time.Time
	requests int
}

func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		period:  period,
	}
}

// Allow reports whether another request from key fits in the current window.
func (rl *RateLimiter) Allow(key string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, exists := rl.clients[key]
	if !exists || now.Sub(w.start) > rl.period {
		rl.clients[key] = &window{start: now, requests: 1}
		return true
	}
	if w.requests >= rl.limit {
		return false
	}
	w.requests++
	return true
}

// Sweep drops windows that ended before cutoff. Called periodically from
// main so the map does not grow with every user ever seen.
func (rl *RateLimiter) Sweep(cutoff time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, w := range rl.clients {
		if w.start.Add(rl.period).Before(cutoff) {
			delete(rl.clients, key)
		}
	}
}

// Middleware keys the limiter by the authenticated subject, falling back to
// client IP for requests that have not passed Auth.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if claims := Claims(c); claims != nil {
			key = claims.Sub
		}

		if !rl.Allow(key, time.Now()) {
			logger.Get().Warn("rate limit exceeded", zap.String("key", key))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			c.Abort()
			return
		}
		c.Next()
	}
}
