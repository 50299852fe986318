package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector holds HTTP request metrics for the service
type MetricsCollector struct {
	requestsTotal    *prometheus.CounterVec
	requestsInFlight prometheus.Gauge
	requestDuration  *prometheus.HistogramVec
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func NewMetricsCollector(reg prometheus.Registerer) *MetricsCollector {
	c := &MetricsCollector{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "exertrack_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "pattern", "status"}),
		requestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "exertrack_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "exertrack_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "pattern"}),
	}

	reg.MustRegister(c.requestsTotal, c.requestsInFlight, c.requestDuration)

	return c
}

// MetricsMiddleware records request count, duration and in-flight gauge.
// Requests are labeled with a normalized path to keep label cardinality bounded.
func MetricsMiddleware(c *MetricsCollector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			c.requestsInFlight.Inc()
			defer c.requestsInFlight.Dec()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			path := normalizePath(r.URL.Path)
			c.requestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
			c.requestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

// normalizePath collapses user ids so every user maps to one label value
func normalizePath(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) >= 4 && parts[1] == "api" && parts[2] == "users" && parts[3] != "" {
		parts[3] = "{id}"
	}
	return strings.Join(parts, "/")
}
