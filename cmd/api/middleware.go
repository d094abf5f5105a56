package main

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Carole-Bou-Shakra/Quick-Shop/pkg/metrics"
)

// responseWriter captures the status code for logging and metrics.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func withObservability(log *slog.Logger, m *metrics.ServerMetrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()

		ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		handler := r.Method + " " + r.URL.Path

		m.Requests.WithLabelValues(handler, strconv.Itoa(ww.statusCode)).Inc()
		m.LatencyMS.WithLabelValues(handler).Observe(float64(elapsed.Milliseconds()))

		log.Info("http request",
			slog.String("request_id", requestID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.statusCode),
			slog.Duration("duration", elapsed),
			slog.String("ip", r.RemoteAddr),
		)
	})
}
