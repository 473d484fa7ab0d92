// Package telemetry wires OpenTelemetry HTTP instrumentation for inbound routes and
// outbound backend calls. Without a configured TracerProvider the global no-op
// tracer is used, so instrumentation is always safe to install.
package telemetry

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewTracedHTTPClient returns an *http.Client whose transport propagates trace
// context to the backend. A nil base uses http.DefaultTransport.
func NewTracedHTTPClient(base http.RoundTripper, timeout time.Duration) *http.Client {
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{
		Transport: otelhttp.NewTransport(base,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return "backend " + r.Method + " " + r.URL.Path
			}),
		),
		Timeout: timeout,
	}
}

// TracingMiddleware creates a server span per request, skipping the excluded paths.
func TracingMiddleware(serviceName string, excludedPaths ...string) func(http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(excludedPaths))
	for _, p := range excludedPaths {
		skip[p] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, serviceName,
			otelhttp.WithFilter(func(r *http.Request) bool {
				_, excluded := skip[r.URL.Path]
				return !excluded
			}),
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	}
}
