package middleware

import (
	"context"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/localcarpetfitter/sitemailer/pkg/metrics"
	"go.uber.org/zap"
)

// responseWriter wraps http.ResponseWriter to capture status code and response size
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusOK
	}
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

func (rw *responseWriter) status() int {
	if rw.statusCode == 0 {
		return http.StatusOK
	}
	return rw.statusCode
}

// WithMetrics wraps an HTTP handler with Prometheus metrics collection
func WithMetrics(endpoint string, m *metrics.Metrics, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Increment in-flight requests
		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		start := time.Now()

		// Wrap response writer to capture status and size
		rw := &responseWriter{ResponseWriter: w}

		handler(rw, r)

		duration := time.Since(start).Seconds()
		m.HTTPRequestsTotal.WithLabelValues(endpoint, r.Method, strconv.Itoa(rw.status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(endpoint, r.Method).Observe(duration)
		m.HTTPResponseSize.WithLabelValues(endpoint, r.Method).Observe(float64(rw.size))
	}
}

// WithTimeout attaches a deadline to the request context. Handlers pass the
// context to every blocking call and answer on their own when it expires, so
// nothing else writes to the response.
func WithTimeout(timeout time.Duration, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		handler(w, r.WithContext(ctx))
	}
}

// WithRecovery wraps HTTP handlers with panic recovery to prevent server crashes
func WithRecovery(logger *zap.Logger, m *metrics.Metrics, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if m != nil {
					m.PanicRecoveriesTotal.Inc()
				}
				logger.Error("panic recovered",
					zap.Any("error", err),
					zap.String("stack", string(debug.Stack())),
					zap.String("method", r.Method),
					zap.String("url", r.URL.String()),
					zap.String("request_id", RequestIDFromContext(r.Context())),
				)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		handler(w, r)
	}
}

// WithLogging wraps HTTP handlers with request/response logging
func WithLogging(logger *zap.Logger, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w}

		handler(rw, r)

		logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rw.status()),
			zap.Duration("duration", time.Since(start)),
			zap.Int("size", rw.size),
			zap.String("user_agent", r.UserAgent()),
			zap.String("request_id", RequestIDFromContext(r.Context())),
		)
	}
}

// Chain combines multiple middleware functions into one
func Chain(handler http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	// Apply middleware in reverse order so they execute in the order specified
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}
