package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/adamwoolhether/jobdash/client"
	"github.com/adamwoolhether/jobdash/validate"
)

// DefaultConcurrency bounds [Dashboard.BulkUpdateStatus].
const DefaultConcurrency = 4

// Dashboard calls the backend's JSON API.
type Dashboard struct {
	c           *client.Client
	base        *url.URL
	logger      *slog.Logger
	concurrency int
}

// Option configures a [Dashboard].
type Option func(*Dashboard) error

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dashboard) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		d.logger = logger
		return nil
	}
}

// WithConcurrency bounds how many bulk updates run at once.
func WithConcurrency(n int) Option {
	return func(d *Dashboard) error {
		if n <= 0 {
			return fmt.Errorf("concurrency[%d] must be positive", n)
		}
		d.concurrency = n
		return nil
	}
}

// New returns a Dashboard for the backend at baseURL.
func New(c *client.Client, baseURL string, optFns ...Option) (*Dashboard, error) {
	if c == nil {
		return nil, errors.New("client must not be nil")
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	if base.Path == "" {
		base.Path = "/"
	}

	d := &Dashboard{
		c:           c,
		base:        base,
		logger:      c.Logger(),
		concurrency: DefaultConcurrency,
	}

	for _, opt := range optFns {
		if err := opt(d); err != nil {
			return nil, fmt.Errorf("applying dashboard option: %w", err)
		}
	}

	return d, nil
}

// BaseURL returns the backend address.
func (d *Dashboard) BaseURL() *url.URL {
	u := *d.base
	return &u
}

// call performs one API request and decodes the response into a new T,
// which embeds envelope.
func call[T any](ctx context.Context, d *Dashboard, method string, path []string, query map[string]string, body any) (*T, error) {
	segs := make([]string, len(path))
	for i, p := range path {
		segs[i] = url.PathEscape(p)
	}
	u := d.base.JoinPath(segs...)

	if len(query) > 0 {
		q := u.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	var reqOpts []client.RequestOption
	if body != nil {
		reqOpts = append(reqOpts, client.WithPayload(body))
	}

	req, err := d.c.Request(ctx, u, method, reqOpts...)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", u.Path, err)
	}

	d.logger.Debug("api call", "method", method, "path", u.Path)

	dst := new(T)
	if err := d.c.Do(req, http.StatusOK, client.WithDestination(dst)); err != nil {
		var statusErr *client.UnexpectedStatusError
		if errors.As(err, &statusErr) {
			return nil, fromStatusError(statusErr)
		}
		return nil, fmt.Errorf("%s %s: %w", method, u.Path, err)
	}

	if e, ok := any(dst).(enveloped); ok && !e.result().Success {
		return nil, &APIError{
			StatusCode: http.StatusOK,
			Message:    e.result().text(),
			Err:        ErrRequestFailed,
		}
	}

	return dst, nil
}

func checkInput(kind string, v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("invalid %s: %w", kind, err)
	}
	return nil
}

func api(segs ...string) []string {
	return append([]string{"api"}, segs...)
}
