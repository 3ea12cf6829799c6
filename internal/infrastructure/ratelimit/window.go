// Package ratelimit provides fixed-window request counting keyed by an
// arbitrary string, typically a user identifier.
package ratelimit

import (
	"sync"
	"time"
)

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

type bucket struct {
	count   int
	resetAt time.Time
}

// Window counts events per key inside a fixed window. The first event after
// the window expires starts a fresh one; rejected events consume no budget.
type Window struct {
	mu      sync.Mutex
	clock   Clock
	buckets map[string]*bucket
}

// NewWindow creates a Window using the given clock.
func NewWindow(clock Clock) *Window {
	return &Window{
		clock:   clock,
		buckets: make(map[string]*bucket),
	}
}

// Allow reports whether another event fits in key's current window.
func (w *Window) Allow(key string, limit int, window time.Duration) bool {
	now := w.clock.Now()

	w.mu.Lock()
	defer w.mu.Unlock()

	b, ok := w.buckets[key]
	if !ok || !now.Before(b.resetAt) {
		b = &bucket{resetAt: now.Add(window)}
		w.buckets[key] = b
	}

	if b.count >= limit {
		return false
	}
	b.count++
	return true
}

// Cleanup drops buckets whose window has expired. Callers run it
// periodically to bound memory on long-lived processes.
func (w *Window) Cleanup() {
	now := w.clock.Now()

	w.mu.Lock()
	defer w.mu.Unlock()

	for key, b := range w.buckets {
		if !now.Before(b.resetAt) {
			delete(w.buckets, key)
		}
	}
}
