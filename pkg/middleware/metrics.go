package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "shwimple").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "shwimple",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors for the preview server.
// Create one per registry; registering twice on the same registry panics.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	pagesRendered   *prometheus.CounterVec
	renderErrors    *prometheus.CounterVec
	reloadClients   prometheus.Gauge
}

// NewMetrics registers the collectors.
//
// Metrics collected:
//   - shwimple_requests_total: Counter of requests by route and status code
//   - shwimple_request_duration_seconds: Histogram of request duration by route
//   - shwimple_pages_rendered_total: Counter of rendered pages by page name
//   - shwimple_render_errors_total: Counter of render failures by page and error type
//   - shwimple_reload_clients: Gauge of connected live reload clients
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "requests_total",
			Help:        "Total number of HTTP requests served",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "code"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),

		pagesRendered: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pages_rendered_total",
			Help:        "Total number of pages rendered",
			ConstLabels: config.ConstLabels,
		}, []string{"page"}),

		renderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_errors_total",
			Help:        "Total number of page render failures",
			ConstLabels: config.ConstLabels,
		}, []string{"page", "error_type"}),

		reloadClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "reload_clients",
			Help:        "Number of connected live reload clients",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Prometheus creates middleware that records request counts and durations.
// Routes are labelled with their chi route pattern to keep cardinality low.
//
// Example:
//
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	r := chi.NewRouter()
//	r.Use(middleware.Prometheus(m))
//	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
func Prometheus(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			route := routePattern(r)
			m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
			m.requestsTotal.WithLabelValues(route, strconv.Itoa(rec.Status())).Inc()
		})
	}
}

// RecordRender records a page render outcome.
func (m *Metrics) RecordRender(page string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.renderErrors.WithLabelValues(page, categorizeError(err)).Inc()
		return
	}
	m.pagesRendered.WithLabelValues(page).Inc()
}

// ReloadClientConnected increments the live reload client gauge.
func (m *Metrics) ReloadClientConnected() {
	if m != nil {
		m.reloadClients.Inc()
	}
}

// ReloadClientDisconnected decrements the live reload client gauge.
func (m *Metrics) ReloadClientDisconnected() {
	if m != nil {
		m.reloadClients.Dec()
	}
}

// routePattern returns the matched chi pattern, or "unmatched".
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

// categorizeError returns a category for the error type.
// This prevents high-cardinality labels from error messages.
func categorizeError(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "not found"), strings.Contains(msg, "no such file"):
		return "not_found"
	case strings.Contains(msg, "yaml"), strings.Contains(msg, "syntax"):
		return "syntax"
	case strings.Contains(msg, "markdown"):
		return "markdown"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline"):
		return "timeout"
	default:
		return "internal"
	}
}
