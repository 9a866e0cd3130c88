// Package ratelimit provides a sliding-window limiter that admits at most
// maxCalls operations within any trailing window.
//
// # Usage
//
// Construct one [Limiter] per upstream and pass it to every caller that
// shares the quota:
//
//	lim, err := ratelimit.New(5, 5*time.Second)
//	if err != nil { ... }
//
//	stats, err := ratelimit.Do(ctx, lim, func(ctx context.Context) (Stats, error) {
//		return api.Stats(ctx)
//	})
//
// When the window is full the caller is suspended until the earliest
// recorded admission leaves the window, after which admission is
// re-checked. The operation's own error is returned unchanged.
//
// A [Limiter] also satisfies the Admitter interface used by
// [github.com/adamwoolhether/jobdash/client/throttle], so it can guard an
// [net/http.RoundTripper] directly.
package ratelimit
