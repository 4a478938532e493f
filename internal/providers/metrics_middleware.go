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

// knownEndpoints keeps the endpoint label bounded to the served surface;
// arbitrary request paths would otherwise mint a label value each.
var knownEndpoints = map[string]struct{}{
	"/games":          {},
	"/games/current":  {},
	"/games/upcoming": {},
	"/games/past":     {},
}

func normalizeEndpoint(path string) string {
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
		endpoint := normalizeEndpoint(r.URL.Path)
		metrics.IncRequestsTotal(endpoint, sw.status)
		metrics.ObserveRequestDuration(endpoint, duration)
	})
}
