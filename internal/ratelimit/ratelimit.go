package ratelimit

import (
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// Limiter is a fixed-window per-key admission gate. It allows bursts of up
// to twice the configured rate across a window boundary, which is acceptable
// for low-volume endpoints like registration.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	max     int
	size    time.Duration
}

func New(maxRequests int, windowSize time.Duration) *Limiter {
	return &Limiter{
		windows: make(map[string]*window),
		max:     maxRequests,
		size:    windowSize,
	}
}

// Allow reports whether a request for key is admitted. A request arriving
// exactly at the reset time starts a new window.
func (l *Limiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		l.windows[key] = &window{count: 1, resetAt: now.Add(l.size)}
		return true
	}
	if w.count < l.max {
		w.count++
		return true
	}
	return false
}
