// Package throttle provides an [http.RoundTripper] that admits outbound
// HTTP requests through an [Admitter] before sending them.
//
// # Usage
//
// Wrap an existing transport with a shared sliding-window limiter:
//
//	lim, _ := ratelimit.New(5, 5*time.Second)
//	rt, err := throttle.NewRoundTripper(
//		lim,
//		func() *slog.Logger { return slog.Default() },
//		http.DefaultTransport,
//	)
//	httpClient := &http.Client{Transport: rt}
//
// or with a token bucket from [golang.org/x/time/rate]:
//
//	tb, _ := throttle.NewTokenBucket(10, 5)
//	rt, err := throttle.NewRoundTripper(tb, nil, http.DefaultTransport)
//
// When no admission is available, outbound requests block until one is
// or the request context is cancelled.
package throttle
