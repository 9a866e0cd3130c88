package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var (
	ErrInvalidConfig = errors.New("invalid limiter config")
	ErrContextEnded  = errors.New("limiter context ended")
)

// Limiter is a sliding-window log limiter. It records the time of every
// admitted call and admits a new one only while fewer than maxCalls
// recorded times fall inside the trailing window.
type Limiter struct {
	mu    sync.Mutex
	calls []time.Time // ascending admission times, all within window

	maxCalls int
	window   time.Duration

	clock   Clock
	logFn   func() *slog.Logger
	metrics MetricsCollector
}

// New returns a Limiter admitting at most maxCalls operations per window.
func New(maxCalls int, window time.Duration, optFns ...Option) (*Limiter, error) {
	if maxCalls <= 0 {
		return nil, fmt.Errorf("maxCalls[%d] must be positive: %w", maxCalls, ErrInvalidConfig)
	}
	if window <= 0 {
		return nil, fmt.Errorf("window[%s] must be positive: %w", window, ErrInvalidConfig)
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying limiter option: %w", err)
		}
	}

	l := &Limiter{
		calls:    make([]time.Time, 0, maxCalls),
		maxCalls: maxCalls,
		window:   window,
		clock:    realClock{},
		logFn:    func() *slog.Logger { return nil },
		metrics:  nopCollector{},
	}

	if opts.clock != nil {
		l.clock = opts.clock
	}
	if opts.logFn != nil {
		l.logFn = opts.logFn
	}
	if opts.metrics != nil {
		l.metrics = opts.metrics
	}

	return l, nil
}

// MaxCalls returns the number of admissions allowed per window.
func (l *Limiter) MaxCalls() int { return l.maxCalls }

// Window returns the length of the sliding window.
func (l *Limiter) Window() time.Duration { return l.window }

// Len reports how many admissions currently fall inside the window.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.prune(l.clock.Now())

	return len(l.calls)
}

// Allow admits a call only if it can proceed right now.
// It never waits.
func (l *Limiter) Allow() bool {
	_, ok := l.tryAdmit()
	if ok {
		l.metrics.Admitted(0)
	}

	return ok
}

// Wait blocks until the call is admitted or ctx ends. An admitted call
// is recorded in the window before Wait returns.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w early: %w", ErrContextEnded, err)
	}

	var (
		start  time.Time
		waited bool
	)

	for {
		wait, ok := l.tryAdmit()
		if ok {
			var d time.Duration
			if waited {
				d = l.clock.Now().Sub(start)
				if logger := l.logFn(); logger != nil {
					logger.Debug("limiter wait complete", "waited", d.String(), "max_calls", l.maxCalls, "window", l.window.String())
				}
			}
			l.metrics.Admitted(d)

			return nil
		}

		if !waited {
			waited = true
			start = l.clock.Now()
			l.metrics.Deferred()
			if logger := l.logFn(); logger != nil {
				logger.Debug("limiter window full", "wait", wait.String(), "max_calls", l.maxCalls, "window", l.window.String())
			}
		}

		select {
		case <-l.clock.After(wait):
		case <-ctx.Done():
			return fmt.Errorf("%w while waiting: %w", ErrContextEnded, ctx.Err())
		}
	}
}

// Call waits for admission and then runs fn, returning its error unchanged.
func (l *Limiter) Call(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := l.Wait(ctx); err != nil {
		return err
	}

	return fn(ctx)
}

// Do is the value-returning form of [Limiter.Call].
func Do[T any](ctx context.Context, l *Limiter, fn func(ctx context.Context) (T, error)) (T, error) {
	if err := l.Wait(ctx); err != nil {
		var zero T
		return zero, err
	}

	return fn(ctx)
}

// tryAdmit prunes the window and records now if there is room.
// Otherwise it returns how long until the earliest admission expires.
func (l *Limiter) tryAdmit() (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	l.prune(now)

	if len(l.calls) >= l.maxCalls {
		return l.calls[0].Add(l.window).Sub(now), false
	}

	l.calls = append(l.calls, now)

	return 0, true
}

// prune drops every admission with now - ts >= window.
// Must be called with l.mu held.
func (l *Limiter) prune(now time.Time) {
	i := 0
	for i < len(l.calls) && now.Sub(l.calls[i]) >= l.window {
		i++
	}

	if i > 0 {
		l.calls = append(l.calls[:0], l.calls[i:]...)
	}
}
