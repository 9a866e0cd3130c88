// Package debounce collapses bursts of calls into a single call made once
// the burst has gone quiet.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delays fn until wait has passed without another [Debouncer.Call].
// Each call replaces the pending argument, so fn sees the last one.
type Debouncer[T any] struct {
	wait time.Duration
	fn   func(T)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending bool
	arg     T
	stopped bool
}

// New returns a Debouncer that runs fn after wait of inactivity.
func New[T any](wait time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{
		wait: wait,
		fn:   fn,
	}
}

// Call schedules fn with arg, cancelling any call still pending.
func (d *Debouncer[T]) Call(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.gen++
	d.arg = arg
	d.pending = true

	if d.timer != nil {
		d.timer.Stop()
	}

	gen := d.gen
	d.timer = time.AfterFunc(d.wait, func() { d.fire(gen) })
}

// Flush runs the pending call now, if there is one.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.fireLocked(d.gen)
}

// Stop drops any pending call. Later calls are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
}

// Pending reports whether a call is waiting to run.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.pending
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	d.fireLocked(gen)
}

// fireLocked must be called with d.mu held and releases it before
// running fn. A timer that lost the race with a newer Call sees a stale
// generation and does nothing.
func (d *Debouncer[T]) fireLocked(gen uint64) {
	if !d.pending || gen != d.gen {
		d.mu.Unlock()
		return
	}

	arg := d.arg
	d.pending = false
	var zero T
	d.arg = zero
	d.mu.Unlock()

	d.fn(arg)
}
