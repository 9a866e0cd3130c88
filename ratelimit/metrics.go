package ratelimit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector receives limiter events.
type MetricsCollector interface {
	// Admitted is called once per admitted call with the time it spent waiting.
	Admitted(waited time.Duration)
	// Deferred is called once per call that found the window full.
	Deferred()
}

type nopCollector struct{}

func (nopCollector) Admitted(time.Duration) {}
func (nopCollector) Deferred()              {}

// PrometheusMetricsCollector is a Prometheus backed [MetricsCollector].
type PrometheusMetricsCollector struct {
	Admissions prometheus.Counter
	Deferrals  prometheus.Counter
	WaitTimes  prometheus.Histogram
}

// NewPrometheusMetricsCollector creates the limiter metrics under the given
// namespace. name distinguishes limiters that share a registry.
func NewPrometheusMetricsCollector(namespace, name string) *PrometheusMetricsCollector {
	labels := prometheus.Labels{"limiter": name}

	return &PrometheusMetricsCollector{
		Admissions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "ratelimit_admissions_total",
			Help:        "Number of calls admitted by the limiter.",
			ConstLabels: labels,
		}),
		Deferrals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "ratelimit_deferrals_total",
			Help:        "Number of calls that had to wait for the window to drain.",
			ConstLabels: labels,
		}),
		WaitTimes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "ratelimit_wait_seconds",
			Help:        "A histogram of time spent waiting for admission.",
			ConstLabels: labels,
			Buckets:     []float64{0, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// Register registers the metrics with reg.
func (p *PrometheusMetricsCollector) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{p.Admissions, p.Deferrals, p.WaitTimes} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}

	return nil
}

// Unregister removes the metrics from reg.
func (p *PrometheusMetricsCollector) Unregister(reg prometheus.Registerer) {
	reg.Unregister(p.Admissions)
	reg.Unregister(p.Deferrals)
	reg.Unregister(p.WaitTimes)
}

func (p *PrometheusMetricsCollector) Admitted(waited time.Duration) {
	p.Admissions.Inc()
	p.WaitTimes.Observe(waited.Seconds())
}

func (p *PrometheusMetricsCollector) Deferred() {
	p.Deferrals.Inc()
}
