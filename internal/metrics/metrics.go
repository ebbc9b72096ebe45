// Package metrics holds the Prometheus collectors of the web client.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Inbound page requests partitioned by method, route template and status code
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shortly_web_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shortly_web_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	httpInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shortly_web_http_inflight_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// Outbound calls to the backend API. Status 0 means no response was received.
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shortly_web_api_requests_total",
			Help: "Total number of backend API calls",
		},
		[]string{"method", "endpoint", "status"},
	)

	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shortly_web_api_request_duration_seconds",
			Help:    "Backend API call latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)
)

// RequestStarted marks an inbound request in flight. The returned func records its completion.
func RequestStarted() func(method, route string, status int) {
	start := time.Now()
	httpInFlight.Inc()
	return func(method, route string, status int) {
		httpInFlight.Dec()
		labels := prometheus.Labels{
			"method": method,
			"route":  route,
			"status": strconv.Itoa(status),
		}
		httpRequestsTotal.With(labels).Inc()
		httpRequestDuration.With(labels).Observe(time.Since(start).Seconds())
	}
}

// ObserveAPI has the shape of api.Observer
func ObserveAPI(method, endpoint string, status int, elapsed time.Duration) {
	labels := prometheus.Labels{
		"method":   method,
		"endpoint": endpoint,
		"status":   strconv.Itoa(status),
	}
	apiRequestsTotal.With(labels).Inc()
	apiRequestDuration.With(labels).Observe(elapsed.Seconds())
}

func Handler() http.Handler {
	return promhttp.Handler()
}
