package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewMetricsCollector(registry)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewServer(MetricsMiddleware(collector)(h))
	defer srv.Close()

	for range 3 {
		resp, err := http.Get(srv.URL + "/api/users")
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	count := testutil.ToFloat64(collector.requestsTotal.WithLabelValues("GET", "/api/users", "200"))
	require.Equal(t, float64(3), count, "every request should be counted")

	inFlight := testutil.ToFloat64(collector.requestsInFlight)
	require.Equal(t, float64(0), inFlight, "gauge should drop back after requests finish")
}

func TestMetricsMiddleware_NormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"users collection", "/api/users", "/api/users"},
		{"user subresource", "/api/users/123e4567/logs", "/api/users/{id}/logs"},
		{"user exercises", "/api/users/abc/exercises", "/api/users/{id}/exercises"},
		{"unrelated path", "/healthz", "/healthz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, normalizePath(tt.path))
		})
	}
}
