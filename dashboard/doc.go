// Package dashboard is a typed client for the job application dashboard
// backend.
//
// Every endpoint the dashboard UI consumes has a method here: statistics,
// the filtered application list, status updates and their timeline, follow
// ups and the interview endpoints. Responses carry a success flag; a false
// flag or a non-200 status is reported as an *[APIError].
//
// Requests go through a [client.Client]. Build that client with
// [client.WithLimiter] to keep the whole API surface under one quota:
//
//	lim, _ := ratelimit.New(5, 5*time.Second)
//	c, _ := client.Build(client.WithLimiter(lim))
//	d, _ := dashboard.New(c, "http://localhost:5000")
//	apps, err := d.Applications(ctx, dashboard.Query{Status: dashboard.StatusInterview})
package dashboard
