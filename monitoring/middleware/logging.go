package middleware

import (
	"context"
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type requestIDKey struct{}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// LoggingMiddleware tags each request with an id and logs its outcome.
type LoggingMiddleware struct {
	handler http.Handler
}

func (m *LoggingMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get("X-Request-Id")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set("X-Request-Id", requestID)
	r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, requestID))

	metrics := httpsnoop.CaptureMetrics(m.handler, w, r)

	entry := log.WithFields(log.Fields{
		"request_id": requestID,
		"method":     r.Method,
		"path":       r.URL.Path,
		"status":     metrics.Code,
		"duration":   metrics.Duration,
		"bytes":      metrics.Written,
	})
	if metrics.Code >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Info("Request served")
	}
}

func NewLoggingMiddleware(handlerToWrap http.Handler) *LoggingMiddleware {
	return &LoggingMiddleware{handlerToWrap}
}
