// Package testutil provides shared test helpers.
package testutil

import (
	"sync"
	"time"
)

// FixedClock is a deterministic clock for tests; its Now method satisfies
// the operations layer's Clock seam.
//
// It returns a pinned instant and can be advanced explicitly, so entries
// added by a test carry predictable, distinct timestamps regardless of the
// wall clock.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock pinned to t.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{now: t}
}

// Now returns the pinned instant.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the pinned instant forward by d and returns the new value.
func (c *FixedClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// Set pins the clock to a specific instant.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
