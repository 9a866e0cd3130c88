package ratelimit

import (
	"errors"
	"log/slog"
)

// Option is a functional option for [New].
type Option func(*options) error

type options struct {
	clock   Clock
	logFn   func() *slog.Logger
	metrics MetricsCollector
}

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c Clock) Option {
	return func(opts *options) error {
		if c == nil {
			return errors.New("clock must not be nil")
		}
		opts.clock = c
		return nil
	}
}

// WithLogger resolves the logger lazily on every wait, so the limiter can
// be built before its owner has settled on a logger. A nil-returning logFn
// disables logging.
func WithLogger(logFn func() *slog.Logger) Option {
	return func(opts *options) error {
		if logFn == nil {
			return errors.New("logger func must not be nil")
		}
		opts.logFn = logFn
		return nil
	}
}

// WithMetrics reports admissions and waits to the given collector.
func WithMetrics(m MetricsCollector) Option {
	return func(opts *options) error {
		if m == nil {
			return errors.New("metrics collector must not be nil")
		}
		opts.metrics = m
		return nil
	}
}
