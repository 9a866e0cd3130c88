// Package batch runs a group of dashboard operations with bounded
// concurrency and collects their errors.
package batch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrShutdown is recorded for work started after [Queue.Shutdown].
var ErrShutdown = errors.New("batch queue shut down")

// WorkFunc is the signature for queued work.
type WorkFunc func(ctx context.Context) error

// Queue manages a batch of concurrent operations.
type Queue struct {
	wg       sync.WaitGroup
	mu       sync.Mutex
	sem      chan struct{}
	shutdown atomic.Bool
	errs     []error
}

// NewQueue creates a Queue with the given concurrency limit.
// If maxConcurrent <= 0, concurrency is unlimited.
func NewQueue(maxConcurrent int) *Queue {
	q := &Queue{}
	if maxConcurrent > 0 {
		q.sem = make(chan struct{}, maxConcurrent)
	}
	return q
}

// Wait blocks until all work in the queue completes.
// Returns all errors joined via errors.Join.
func (q *Queue) Wait() error {
	q.wg.Wait()

	q.mu.Lock()
	defer q.mu.Unlock()

	return errors.Join(q.errs...)
}

// Shutdown prevents work that has not started yet from executing.
func (q *Queue) Shutdown() {
	q.shutdown.Store(true)
}

// Go launches fn in a new goroutine managed by the queue
// and returns a Result for tracking it.
func (q *Queue) Go(ctx context.Context, fn WorkFunc) *Result {
	ctx, cancel := context.WithCancel(ctx)
	r := &Result{
		done:   make(chan struct{}),
		cancel: cancel,
	}

	q.wg.Add(1)
	go func() {
		defer func() {
			cancel()
			close(r.done)
			q.wg.Done()
		}()

		if q.sem != nil {
			select {
			case q.sem <- struct{}{}:
				defer func() {
					<-q.sem
				}()
			case <-ctx.Done():
				r.err = ctx.Err()
				q.recordErr(r.err)
				return
			}
		}

		if q.shutdown.Load() {
			r.err = ErrShutdown
			q.recordErr(r.err)
			return
		}

		r.err = fn(ctx)
		if r.err != nil {
			q.recordErr(r.err)
		}
	}()

	return r
}

func (q *Queue) recordErr(err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.errs = append(q.errs, err)
}

// Result represents an in-flight or completed operation.
type Result struct {
	done   chan struct{}
	err    error
	cancel context.CancelFunc
}

// Done returns a channel that is closed when the operation completes.
func (r *Result) Done() <-chan struct{} { return r.done }

// Err blocks until the operation completes and returns its error.
func (r *Result) Err() error {
	<-r.done
	return r.err
}

// Cancel cancels the operation's context.
func (r *Result) Cancel() {
	r.cancel()
}
