// Package middleware provides observability middleware for the shwimple
// preview server.
//
// This package includes:
//   - OpenTelemetry request tracing
//   - Prometheus request and render metrics
//
// # OpenTelemetry Middleware
//
// The OpenTelemetry middleware starts a server span per request, extracts
// incoming trace headers, and names the span after the matched chi route:
//
//	r := chi.NewRouter()
//	r.Use(middleware.OpenTelemetry(
//	    middleware.WithTracerName("docs-preview"),
//	    middleware.WithRequestFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/metrics"
//	    }),
//	))
//
// Page handlers can open child spans with StartSpan and mark failures with
// RecordError.
//
// # Prometheus Metrics
//
// NewMetrics registers the collectors on a registry. Use one Metrics value
// per registry:
//
//   - shwimple_requests_total: Requests by route and status code
//   - shwimple_request_duration_seconds: Request duration histogram
//   - shwimple_pages_rendered_total: Successful page renders
//   - shwimple_render_errors_total: Failed page renders by error type
//   - shwimple_reload_clients: Connected live reload clients
//
// Wiring:
//
//	reg := prometheus.NewRegistry()
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	r.Use(middleware.Prometheus(m))
//	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package middleware
