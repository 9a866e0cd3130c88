package throttle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

var (
	ErrMustNotBeZero = errors.New("must be greater than zero")
	ErrNilAdmitter   = errors.New("admitter must not be nil")
	ErrWaitingFailed = errors.New("limiter waiting failed")
	ErrContextEnded  = errors.New("throttle context ended")
)

// slowWait is the wait above which a request is logged as throttled.
const slowWait = time.Millisecond

// Admitter blocks until one more call may proceed. Both [rate.Limiter] and
// the sliding-window limiter in package ratelimit satisfy it.
type Admitter interface {
	Wait(ctx context.Context) error
}

// throttle is an http.RoundTripper, admitting each outbound
// call through an Admitter before passing it on.
type throttle struct {
	admitter Admitter
	next     http.RoundTripper
	logFn    func() *slog.Logger
}

// NewTokenBucket returns an Admitter backed by a [rate.Limiter].
func NewTokenBucket(rps, burst int) (Admitter, error) {
	if rps <= 0 || burst <= 0 {
		return nil, fmt.Errorf("rps[%d] and burst[%d] %w", rps, burst, ErrMustNotBeZero)
	}

	return rate.NewLimiter(rate.Limit(rps), burst), nil
}

// NewRoundTripper returns an http.RoundTripper that admits every outbound
// request through a. logFn lazily resolves the logger at request time,
// making option ordering irrelevant. A nil-returning logFn disables logging.
func NewRoundTripper(a Admitter, logFn func() *slog.Logger, next http.RoundTripper) (http.RoundTripper, error) {
	if a == nil {
		return nil, ErrNilAdmitter
	}
	if next == nil {
		next = http.DefaultTransport
	}
	if logFn == nil {
		logFn = func() *slog.Logger { return nil }
	}

	t := &throttle{
		admitter: a,
		next:     next,
		logFn:    logFn,
	}

	return t, nil
}

func (t *throttle) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w early: %w", ErrContextEnded, err)
	}

	start := time.Now()
	err := t.admitter.Wait(ctx)
	waited := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWaitingFailed, err)
	}

	if logger := t.logFn(); logger != nil && waited >= slowWait {
		logger.Info("throttle wait complete", "waited", waited.String(), "method", r.Method, "path", r.URL.Path)
	}

	if err := ctx.Err(); err != nil { // Check context hasn't expired again.
		return nil, fmt.Errorf("%w post-wait: %w", ErrContextEnded, err)
	}

	return t.next.RoundTrip(r)
}
