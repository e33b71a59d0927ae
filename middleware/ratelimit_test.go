package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	now := time.Now()

	for i := 0; i < 3; i++ {
		if !rl.Allow("user-1", now) {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("user-1", now) {
		t.Error("fourth request inside the window should be denied")
	}
	if !rl.Allow("user-2", now) {
		t.Error("other users are limited independently")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	now := time.Now()

	if !rl.Allow("user-1", now) {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("user-1", now.Add(30*time.Second)) {
		t.Error("second request inside the window should be denied")
	}
	if !rl.Allow("user-1", now.Add(2*time.Minute)) {
		t.Error("request after the window should be allowed again")
	}
}

func TestRateLimiterSweep(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)
	now := time.Now()

	rl.Allow("stale", now.Add(-time.Hour))
	rl.Allow("fresh", now)
	rl.Sweep(now)

	rl.mu.Lock()
	_, staleKept := rl.clients["stale"]
	_, freshKept := rl.clients["fresh"]
	rl.mu.Unlock()

	if staleKept {
		t.Error("stale window should be swept")
	}
	if !freshKept {
		t.Error("fresh window should survive the sweep")
	}
}
