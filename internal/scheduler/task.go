// Package scheduler provides a cancellable, supersedable delayed task.
package scheduler

import (
	"sync"
	"time"
)

// Task runs fn once after a delay. Scheduling again before it fires replaces the
// pending run; at most one run is pending at a time. fn runs on its own goroutine.
type Task struct {
	fn func()

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	stopped bool
	running sync.WaitGroup
}

// NewTask creates an idle Task for fn.
func NewTask(fn func()) *Task {
	return &Task{fn: fn}
}

// Schedule arms the task to run after delay, superseding any pending run. It does
// nothing once the task is stopped.
func (t *Task) Schedule(delay time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}
	t.cancelLocked()

	t.gen++
	gen := t.gen
	t.running.Add(1)
	t.timer = time.AfterFunc(delay, func() { t.fire(gen) })
}

// Cancel drops the pending run and reports whether there was one.
func (t *Task) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelLocked()
}

// Pending reports whether a run is scheduled.
func (t *Task) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

// Stop cancels any pending run, disables the task and waits for a run in progress
// to return. It must not be called from fn.
func (t *Task) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.cancelLocked()
	t.mu.Unlock()

	t.running.Wait()
}

func (t *Task) cancelLocked() bool {
	if t.timer == nil {
		return false
	}
	if t.timer.Stop() {
		t.running.Done()
	}
	t.timer = nil
	t.gen++
	return true
}

func (t *Task) fire(gen uint64) {
	defer t.running.Done()

	t.mu.Lock()
	if t.stopped || gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	t.mu.Unlock()

	t.fn()
}
