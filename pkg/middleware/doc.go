// Package middleware provides net/http middleware for the markup preview
// server.
//
// This package includes:
//   - OpenTelemetry distributed tracing middleware
//   - Prometheus request and render metrics
//
// # OpenTelemetry Middleware
//
// The OpenTelemetry middleware traces every request, continuing traces
// propagated by the caller:
//
//	r := chi.NewRouter()
//	r.Use(middleware.OpenTelemetry(
//	    middleware.WithTracerName("docs-preview"),
//	    middleware.WithRequestFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/healthz"
//	    }),
//	))
//
// # Prometheus Metrics
//
// Metrics collects:
//   - markup_http_requests_total: requests by route, method and status code
//   - markup_http_request_duration_seconds: request duration histogram
//   - markup_renders_total: document renders by name and format
//   - markup_render_bytes: rendered document sizes
//   - markup_reload_clients: connected live-reload clients
//   - markup_reload_broadcasts_total: reload messages sent
//
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	r.Use(m.Middleware)
//	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package middleware
