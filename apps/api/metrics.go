package main

import (
	"errors"
	"strconv"
	"time"

	"lolstreamsearch/lib/monitoring/api_metrics"
)

// metricsEvent represents a metrics event to be processed asynchronously
type metricsEvent struct {
	route    string
	status   int
	duration time.Duration
}

var metricsChan = make(chan metricsEvent, 10000)

func metricsWorker() {
	for event := range metricsChan {
		api_metrics.RequestCount.WithLabelValues(event.route, strconv.Itoa(event.status)).Inc()
		api_metrics.RequestDuration.WithLabelValues(event.route).Observe(float64(event.duration.Milliseconds()))
	}
}

func recordRequest(route string, status int, duration time.Duration) {
	select {
	case metricsChan <- metricsEvent{route: route, status: status, duration: duration}:
	default:
		// Drop rather than block the request
		logger.Warn("METRICS_CHANNEL_FULL", errors.New("unable to record api metrics"), nil)
	}
}
