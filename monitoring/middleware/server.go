package middleware

import (
	"net/http"
	"strconv"
	"yatube/monitoring"

	"github.com/felixge/httpsnoop"
)

const unmatchedPath = "unmatched"

// ServerMiddleware records request metrics labelled by the matched route
// pattern. It must wrap the ServeMux directly so the pattern set on the
// request is visible after serving.
type ServerMiddleware struct {
	handler http.Handler
}

func (m *ServerMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// increment number of active connections
	monitoring.ActiveConnections.Inc()
	defer monitoring.ActiveConnections.Dec()

	metrics := httpsnoop.CaptureMetrics(m.handler, w, r)

	path := r.Pattern
	if path == "" {
		path = unmatchedPath
	}
	if path == "GET /metrics" {
		return
	}

	monitoring.HttpRequestsTotal.WithLabelValues(path, strconv.Itoa(metrics.Code)).Inc()
	monitoring.HttpRequestDuration.WithLabelValues(path).Observe(metrics.Duration.Seconds())
}

func NewServerMiddleware(handlerToWrap http.Handler) *ServerMiddleware {
	return &ServerMiddleware{handlerToWrap}
}
