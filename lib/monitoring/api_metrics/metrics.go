package api_metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ROUTE_DIMENSION  = "route"
	STATUS_DIMENSION = "status"
)

var RequestCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "api_requests_total",
		Help: "Total number of HTTP requests served by the API",
	},
	[]string{ROUTE_DIMENSION, STATUS_DIMENSION}, // status: HTTP status code as string
)

var RequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "api_request_duration_ms",
		Help:    "Time taken to serve HTTP requests in milliseconds",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 20000},
	},
	[]string{ROUTE_DIMENSION},
)

// Register registers all API-specific metrics with Prometheus
func Register() {
	prometheus.MustRegister(RequestCount)
	prometheus.MustRegister(RequestDuration)
}
