package middleware

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shoutbox-backend/internal/monitoring"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RequestMetrics records a latency histogram sample and an access log
// line per request. Health and metrics probes are skipped to keep the
// series clean.
func RequestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shouldSkip(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		monitoring.HTTPRequestDuration.WithLabelValues(
			r.Method,
			r.URL.Path,
			strconv.Itoa(wrapped.statusCode),
		).Observe(duration.Seconds())

		log.Printf("%s %s -> %d (%s)", r.Method, r.URL.Path, wrapped.statusCode, duration)
	})
}

func shouldSkip(path string) bool {
	return strings.HasPrefix(path, "/health") ||
		strings.HasPrefix(path, "/metrics") ||
		path == "/favicon.ico"
}
