package monitoring

import (
	"fmt"
	"net/http"
	"strconv"

	"lolstreamsearch/lib/env"
	"lolstreamsearch/lib/monitoring/api_metrics"
	"lolstreamsearch/lib/monitoring/global_metrics"
	"lolstreamsearch/lib/monitoring/worker_metrics"
	"lolstreamsearch/lib/utils/logging"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var logger = logging.NewLogger("MONITORING")

func serveMetrics(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		addr := fmt.Sprintf(":%d", port)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Fatal("PROMETHEUS_SERVER_ERROR", err, map[string]any{
				logging.PORT: port,
			})
		}
	}()
}

func loadMetricsPort(port string) (int, bool) {
	if port == "" {
		return 0, false
	}
	metricsPort, err := strconv.Atoi(port)
	if err != nil {
		logger.Warn("INVALID_METRICS_PORT", err, map[string]any{
			logging.PORT: port,
		})
		return 0, false
	}
	return metricsPort, true
}

// RegisterAPIMetrics registers API metrics and starts the metrics server
func RegisterAPIMetrics() {
	global_metrics.RegisterGlobalMetrics()
	api_metrics.Register()

	if metricsPort, ok := loadMetricsPort(env.APIMetricsPort); ok {
		serveMetrics(metricsPort)
	}
}

// RegisterWorkerMetrics registers queue worker metrics and starts the metrics server
func RegisterWorkerMetrics(portOverride string) {
	global_metrics.RegisterGlobalMetrics()
	worker_metrics.Register()

	port := portOverride
	if port == "" {
		port = env.WorkerMetricsPort
	}

	if metricsPort, ok := loadMetricsPort(port); ok {
		serveMetrics(metricsPort)
	}
}
