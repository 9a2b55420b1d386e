package providers

import (
	"net/http"
	"time"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// knownEndpoints is the closed route set of the session engine. Anything
// else collapses into one label so probing paths cannot grow the metric
// cardinality.
var knownEndpoints = map[string]struct{}{
	"/login":        {},
	"/logout":       {},
	"/checkin":      {},
	"/checkout":     {},
	"/attendance":   {},
	"/tasks":        {},
	"/tasks/add":    {},
	"/tasks/toggle": {},
	"/logs":         {},
	"/items":        {},
	"/items/add":    {},
	"/items/status": {},
	"/week":         {},
	"/weekly":       {},
	"/summary":      {},
}

func endpointLabel(path string) string {
	if _, ok := knownEndpoints[path]; ok {
		return path
	}
	return "other"
}

func MetricsMiddleware(metrics MetricsProviderInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		duration := time.Since(start)
		endpoint := endpointLabel(r.URL.Path)
		metrics.IncRequestsTotal(endpoint, sw.status)
		metrics.ObserveRequestDuration(endpoint, duration)
	})
}
