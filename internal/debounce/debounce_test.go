package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunnerKeepsLastRequest(t *testing.T) {
	r := New(50*time.Millisecond, nil)

	var calls atomic.Int32
	var last atomic.Int32
	done := make(chan struct{}, 4)

	for i := 1; i <= 3; i++ {
		v := int32(i)
		r.Run(func() {
			calls.Add(1)
			last.Store(v)
			done <- struct{}{}
		})
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("action never ran")
	}

	// leave room for a wrongly scheduled extra run.
	time.Sleep(120 * time.Millisecond)

	if calls.Load() != 1 {
		t.Errorf("action ran %d times, want 1", calls.Load())
	}
	if last.Load() != 3 {
		t.Errorf("ran request %d, want 3", last.Load())
	}
	if r.IsPending() {
		t.Error("runner should be idle")
	}
}

func TestRunnerCancel(t *testing.T) {
	r := New(30*time.Millisecond, nil)

	var calls atomic.Int32
	r.Run(func() { calls.Add(1) })
	if !r.IsPending() {
		t.Fatal("expected a pending action")
	}
	r.Cancel()

	time.Sleep(100 * time.Millisecond)
	if calls.Load() != 0 {
		t.Errorf("cancelled action ran %d times", calls.Load())
	}

	// cancel on an idle runner is a no-op.
	r.Cancel()
}

func TestRunnerCancelAfterFire(t *testing.T) {
	// The dispatcher blocks on the owner's lock, like a controller would.
	var owner sync.Mutex
	r := New(10*time.Millisecond, func(fn func()) {
		owner.Lock()
		defer owner.Unlock()
		fn()
	})

	var calls atomic.Int32
	owner.Lock()
	r.Run(func() { calls.Add(1) })
	// let the timer fire while the owner holds the lock, then cancel.
	time.Sleep(50 * time.Millisecond)
	r.Cancel()
	owner.Unlock()

	time.Sleep(50 * time.Millisecond)
	if calls.Load() != 0 {
		t.Errorf("action cancelled after firing still ran %d times", calls.Load())
	}
}
