// Package animate steps a counter from one value to another over a
// fixed duration, one frame at a time.
package animate

import (
	"context"
	"fmt"
	"math"
	"time"
)

// DefaultFrame is roughly one display refresh at 60Hz.
const DefaultFrame = 16 * time.Millisecond

// Option configures [Value].
type Option func(*options)

type options struct {
	frame time.Duration
}

// WithFrame sets the interval between frames.
func WithFrame(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.frame = d
		}
	}
}

// Value calls step once per frame with floor(progress*(end-start)+start),
// where progress runs from 0 to 1 over duration. The last value passed to
// step is always end. Value returns early if ctx ends.
func Value(ctx context.Context, start, end int, duration time.Duration, step func(int), optFns ...Option) error {
	opts := options{frame: DefaultFrame}
	for _, opt := range optFns {
		opt(&opts)
	}

	if duration <= 0 {
		step(end)
		return nil
	}

	ticker := time.NewTicker(opts.frame)
	defer ticker.Stop()

	began := time.Now()
	for {
		progress := math.Min(float64(time.Since(began))/float64(duration), 1)
		step(interpolate(start, end, progress))

		if progress >= 1 {
			return nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return fmt.Errorf("animation interrupted: %w", ctx.Err())
		}
	}
}

func interpolate(start, end int, progress float64) int {
	return int(math.Floor(progress*float64(end-start) + float64(start)))
}
