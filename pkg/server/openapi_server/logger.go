// SPDX-License-Identifier: MIT

package openapi_server

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logger logs every request of the route and records it in the metrics
func Logger(inner http.Handler, name string, logger *zap.Logger, metrics *Metrics) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		inner.ServeHTTP(recorder, r)

		duration := time.Since(start)
		metrics.observeRequest(r.Method, name, recorder.status, duration)
		logger.Info("request",
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.String("route", name),
			zap.Int("status", recorder.status),
			zap.Duration("duration", duration))
	})
}
