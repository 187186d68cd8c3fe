// Package debounce implements a cancellable delayed action with a single
// pending slot.
package debounce

import (
	"sync"
	"time"
)

// Dispatcher runs a fired action. It lets the owner of the runner move the
// action onto its own event loop, or under its own lock.
type Dispatcher func(fn func())

// Runner delays an action until no new request arrived for the configured
// delay. A new request cancels and replaces the pending one.
type Runner struct {
	mu       sync.Mutex
	delay    time.Duration
	timer    *time.Timer
	seq      uint64
	pending  bool
	dispatch Dispatcher
}

// New creates a runner. A nil dispatch runs actions on the timer goroutine.
func New(delay time.Duration, dispatch Dispatcher) *Runner {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}

	return &Runner{
		delay:    delay,
		dispatch: dispatch,
	}
}

// Run schedules fn, replacing any pending action.
func (r *Runner) Run(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked()
	r.seq++
	seq := r.seq
	r.pending = true
	r.timer = time.AfterFunc(r.delay, func() {
		r.dispatch(func() {
			if r.take(seq) {
				fn()
			}
		})
	})
}

// Cancel drops the pending action, if any. An action whose timer already
// fired but which has not been dispatched yet is dropped too.
func (r *Runner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
	r.seq++
}

// IsPending reports if an action is waiting to run.
func (r *Runner) IsPending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

// take claims the slot for the action scheduled as seq. It fails when the
// action was cancelled or replaced in the meantime.
func (r *Runner) take(seq uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if seq != r.seq || !r.pending {
		return false
	}
	r.pending = false
	r.timer = nil
	return true
}

func (r *Runner) stopLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.pending = false
}
