// Package pause implements non-blocking pause counters. Releasing more
// than is held panics rather than clamping at zero.
//
// The container this package serves is single-threaded and cooperative:
// every operation runs to completion before the next one starts, so there
// is never anyone to block on, and the pause count is never bounded by a
// fixed capacity the way a semaphore's weight is. What's kept from
// golang.org/x/sync/semaphore.Weighted is its acquire/release/available
// accounting shape (renamed Acquire/Release/Count/Paused here); the
// blocking ctx-cancellable Acquire and the bounded capacity are both
// dropped, since neither has anything to serve in this model.
package pause

import "fmt"

// Counter tracks how many callers currently want some activity paused.
// The zero value is unpaused.
type Counter struct {
	n int
}

// Acquire adds weight to the pause count.
func (c *Counter) Acquire(weight int) {
	if weight < 0 {
		panic(fmt.Sprintf("pause: negative acquire weight %d", weight))
	}
	c.n += weight
}

// Release removes weight from the pause count. Releasing more than is
// currently held is a contract violation.
func (c *Counter) Release(weight int) {
	if weight < 0 {
		panic(fmt.Sprintf("pause: negative release weight %d", weight))
	}
	if weight > c.n {
		panic(fmt.Sprintf("pause: release(%d) exceeds held weight %d", weight, c.n))
	}
	c.n -= weight
}

// Count returns the current pause weight. A value greater than zero means
// paused.
func (c *Counter) Count() int {
	return c.n
}

// Paused reports whether the counter currently holds any weight.
func (c *Counter) Paused() bool {
	return c.n > 0
}
