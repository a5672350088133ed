// Package sema provides a counting signal: a semaphore whose count starts at
// zero, where Post makes one unit available and Wait blocks until it can take
// one. It replaces a process-shared POSIX semaphore for goroutines.
package sema

import (
	"context"
	"math"

	"golang.org/x/sync/semaphore"
)

// capacity bounds the number of outstanding posts. The whole capacity is held
// by the signal itself from construction, so the count visible to waiters
// starts at zero and every Post releases one unit of it.
const capacity = math.MaxInt32

// Signal is a counting signal. Waiters are woken in FIFO order.
// The zero value is not usable; create one with New.
type Signal struct {
	w *semaphore.Weighted
}

// New returns a Signal with a count of zero.
func New() *Signal {
	w := semaphore.NewWeighted(capacity)
	if !w.TryAcquire(capacity) {
		panic("sema: fresh semaphore refused its own capacity")
	}
	return &Signal{w: w}
}

// Post increments the count, waking one waiter if any. It never blocks.
// Posting more than capacity units that are never waited for panics.
func (s *Signal) Post() {
	s.w.Release(1)
}

// PostN posts n times.
func (s *Signal) PostN(n int) {
	if n <= 0 {
		return
	}
	s.w.Release(int64(n))
}

// Wait blocks until the count is positive, then decrements it.
func (s *Signal) Wait() {
	// Acquire only fails when the context is done, which Background never is.
	_ = s.w.Acquire(context.Background(), 1)
}
