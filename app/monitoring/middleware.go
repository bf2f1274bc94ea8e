package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMiddleware records request counts and latencies for every
// handler it wraps.
type PrometheusMiddleware struct {
	handler http.Handler
}

func (m *PrometheusMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/metrics" {
		// Skip collecting metrics from the metrics endpoint itself
		m.handler.ServeHTTP(w, r)
		return
	}

	timer := prometheus.NewTimer(HttpRequestDuration.WithLabelValues(path))
	HttpRequestsTotal.WithLabelValues(path).Inc()

	m.handler.ServeHTTP(w, r)

	timer.ObserveDuration()
}

// NewPrometheusMiddleware wraps a handler with request metrics collection.
func NewPrometheusMiddleware(handlerToWrap http.Handler) *PrometheusMiddleware {
	return &PrometheusMiddleware{handlerToWrap}
}
