// Package client provides the JSON HTTP client used to call the dashboard
// backend, built on [net/http].
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options. Pass the
// sliding-window limiter that guards the backend explicitly:
//
//	lim, _ := ratelimit.New(5, 5*time.Second)
//	c, err := client.Build(
//		client.WithTimeout(10 * time.Second),
//		client.WithUserAgent("jobdash/1.0"),
//		client.WithLimiter(lim),
//	)
//
// # Making Requests
//
// Construct a [URL] and [Request], then execute with [Client.Do]:
//
//	u := client.URL("http", "localhost:5000", "/api/stats")
//	req, err := client.Request(ctx, u, http.MethodGet)
//	err = c.Do(req, http.StatusOK, client.WithDestination(&result))
//
// Any status other than the expected one is reported as an
// [*UnexpectedStatusError]; transport failures are returned wrapped.
//
// For the typed dashboard endpoints see
// [github.com/adamwoolhether/jobdash/dashboard].
package client
