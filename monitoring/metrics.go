package monitoring

import "github.com/prometheus/client_golang/prometheus"

var (
	HttpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "status"},
	)

	HttpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	ActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_connections",
			Help: "Number of active connections",
		},
	)

	PageCacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_cache_requests_total",
			Help: "Cached page lookups by result",
		},
		[]string{"result"},
	)

	LoginAttemptsThrottled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "login_attempts_throttled_total",
			Help: "Login attempts rejected by the rate limiter",
		},
	)

	StoredEntities = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stored_entities",
			Help: "Number of stored users, groups, posts, comments and follows",
		},
		[]string{"entity"},
	)

	MediaFilesRemoved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "media_files_removed_total",
			Help: "Uploaded images removed because no post references them",
		},
	)
)

func init() {
	prometheus.MustRegister(
		HttpRequestsTotal,
		HttpRequestDuration,
		ActiveConnections,
		PageCacheRequests,
		LoginAttemptsThrottled,
		StoredEntities,
		MediaFilesRemoved,
	)
}
