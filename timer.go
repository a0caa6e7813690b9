package stperf

import (
	"time"
)

// Timer drives one scope's start/stop pair. A Timer may be reused for
// sequential activations of the same call site (start, stop, start again);
// for recursive or otherwise overlapping activations use Scope or Func,
// which allocate a fresh Timer per activation.
type Timer struct {
	name  string
	start time.Time
}

// NewTimer returns a handle for a named scope without starting it.
func NewTimer(name string) *Timer {
	return &Timer{name: name}
}

// Start records the start timestamp and opens the scope on the calling
// goroutine's stack. time.Now carries the monotonic clock reading, so the
// later elapsed computation is immune to wall-clock adjustments.
func (t *Timer) Start() {
	t.start = time.Now()
	registry.Push()
}

// Stop closes the scope and stamps its node with the elapsed time and the
// timer's name. Stopping with no open scope, e.g. after a concurrent
// ResetAll, is a no-op, as is stopping a timer that was never started.
func (t *Timer) Stop() {
	if t.start.IsZero() {
		return
	}
	elapsed := time.Since(t.start)
	if elapsed < 0 {
		elapsed = 0
	}
	registry.Pop(t.name, uint64(elapsed))
}
