// Package jobdash wires the dashboard client stack together: one shared
// sliding-window limiter, an HTTP client that admits every request through
// it, and the dashboard API and UI helpers built on that client.
package jobdash

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/jobdash/client"
	"github.com/adamwoolhether/jobdash/clipboard"
	"github.com/adamwoolhether/jobdash/config"
	"github.com/adamwoolhether/jobdash/dashboard"
	"github.com/adamwoolhether/jobdash/logging"
	"github.com/adamwoolhether/jobdash/notify"
	"github.com/adamwoolhether/jobdash/ratelimit"
)

// NewClient instantiates a new *Client with the provided options.
// If not specified, a fresh http.Client over the default transport is used.
func NewClient(opts ...client.Option) (*client.Client, error) {
	return client.Build(opts...)
}

// NewLimiter builds the API limiter described by cfg.
func NewLimiter(cfg config.RateLimit, optFns ...ratelimit.Option) (*ratelimit.Limiter, error) {
	return ratelimit.New(cfg.MaxCalls, cfg.Window, optFns...)
}

// App is a fully wired dashboard client.
type App struct {
	Config    config.Config
	Logger    *slog.Logger
	Limiter   *ratelimit.Limiter
	Client    *client.Client
	Dashboard *dashboard.Dashboard
	Filter    *dashboard.Filter
	Notifier  *notify.Center
	Clipboard *clipboard.Copier

	metrics  *ratelimit.PrometheusMetricsCollector
	registry prometheus.Registerer
	closer   io.Closer
}

// Option customises [New].
type Option func(*appOpts)

type appOpts struct {
	logOut    io.Writer
	termOut   io.Writer
	registry  prometheus.Registerer
	tracer    trace.Tracer
	onToast   func(notify.Toast)
	clip      clipboard.Writer
	clientOps []client.Option
}

// WithLogOutput sets where logs go when no log file is configured.
func WithLogOutput(w io.Writer) Option {
	return func(o *appOpts) { o.logOut = w }
}

// WithTerminal sets the terminal used for the OSC 52 clipboard fallback.
func WithTerminal(w io.Writer) Option {
	return func(o *appOpts) { o.termOut = w }
}

// WithRegisterer registers the limiter metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *appOpts) { o.registry = reg }
}

// WithTracer records a span around every API call.
func WithTracer(t trace.Tracer) Option {
	return func(o *appOpts) { o.tracer = t }
}

// WithToastSink receives every notification as it is shown.
func WithToastSink(fn func(notify.Toast)) Option {
	return func(o *appOpts) { o.onToast = fn }
}

// WithClipboardWriter replaces the system clipboard. The OSC 52 fallback
// is kept.
func WithClipboardWriter(w clipboard.Writer) Option {
	return func(o *appOpts) { o.clip = w }
}

// WithClientOptions appends options to the HTTP client build.
func WithClientOptions(opts ...client.Option) Option {
	return func(o *appOpts) { o.clientOps = append(o.clientOps, opts...) }
}

// New builds an App from cfg.
func New(cfg config.Config, optFns ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := appOpts{logOut: os.Stderr, termOut: os.Stdout}
	for _, opt := range optFns {
		opt(&opts)
	}

	logger, closer, err := logging.New(cfg.Logging, opts.logOut)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	app := &App{
		Config:   cfg,
		Logger:   logger,
		registry: opts.registry,
		closer:   closer,
	}

	limOpts := []ratelimit.Option{ratelimit.WithLogger(func() *slog.Logger { return app.Logger })}
	if opts.registry != nil {
		app.metrics = ratelimit.NewPrometheusMetricsCollector(cfg.Metrics.Namespace, "api")
		if err := app.metrics.Register(opts.registry); err != nil {
			_ = closer.Close()
			return nil, fmt.Errorf("registering limiter metrics: %w", err)
		}
		limOpts = append(limOpts, ratelimit.WithMetrics(app.metrics))
	}

	app.Limiter, err = NewLimiter(cfg.RateLimit, limOpts...)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("building limiter: %w", err)
	}

	clientOpts := []client.Option{
		client.WithTimeout(cfg.Timeout),
		client.WithUserAgent(cfg.UserAgent),
		client.WithRequestID(),
		client.WithLogger(logger),
		client.WithLimiter(app.Limiter),
	}
	if cfg.Throttle.RPS > 0 {
		clientOpts = append(clientOpts, client.WithThrottle(cfg.Throttle.RPS, cfg.Throttle.Burst))
	}
	if opts.tracer != nil {
		clientOpts = append(clientOpts, client.WithTracer(opts.tracer))
	}
	clientOpts = append(clientOpts, opts.clientOps...)

	app.Client, err = NewClient(clientOpts...)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("building client: %w", err)
	}

	app.Dashboard, err = dashboard.New(app.Client, cfg.BaseURL,
		dashboard.WithLogger(logger),
		dashboard.WithConcurrency(cfg.Concurrency),
	)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("building dashboard: %w", err)
	}

	var notifyOpts []notify.Option
	notifyOpts = append(notifyOpts, notify.WithLogger(logger))
	if opts.onToast != nil {
		notifyOpts = append(notifyOpts, notify.WithSink(opts.onToast))
	}
	app.Notifier = notify.NewCenter(notifyOpts...)
	clipOpts := []clipboard.Option{
		clipboard.WithNotifier(app.Notifier),
		clipboard.WithLogger(logger),
	}
	if opts.clip != nil {
		clipOpts = append(clipOpts, clipboard.WithPrimary(opts.clip))
	}
	app.Clipboard = clipboard.New(opts.termOut, clipOpts...)
	app.Filter = dashboard.NewFilter(cfg.SearchDelay)

	logger.Debug("jobdash ready",
		"base_url", cfg.BaseURL,
		"max_calls", cfg.RateLimit.MaxCalls,
		"window", cfg.RateLimit.Window.String(),
	)

	return app, nil
}

// Close releases the log file, clears notifications and unregisters metrics.
func (a *App) Close() error {
	if a.Notifier != nil {
		a.Notifier.Clear()
	}
	if a.metrics != nil && a.registry != nil {
		a.metrics.Unregister(a.registry)
	}

	var errs []error
	if a.closer != nil {
		errs = append(errs, a.closer.Close())
	}

	return errors.Join(errs...)
}
