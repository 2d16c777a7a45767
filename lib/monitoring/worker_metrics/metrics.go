package worker_metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const QUEUE_NAME_DIMENSION = "queue_name"

var QueueWorkerCount = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "queue_worker_count",
		Help: "Current number of active workers per queue topic",
	},
	[]string{QUEUE_NAME_DIMENSION},
)

var QueueMessagesProcessed = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "queue_messages_processed_total",
		Help: "Total number of messages processed by queue workers",
	},
	[]string{QUEUE_NAME_DIMENSION, "status"}, // status: "success", "error"
)

var QueueMessageProcessingDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "queue_message_processing_duration_seconds",
		Help:    "Time taken to process a message",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	},
	[]string{QUEUE_NAME_DIMENSION},
)

var QueueDepth = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "queue_depth",
		Help: "Messages waiting in the queue at the last scaling check",
	},
	[]string{QUEUE_NAME_DIMENSION},
)

var QueueScalingDecisions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "queue_scaling_decisions_total",
		Help: "Scaling actions taken per queue",
	},
	[]string{QUEUE_NAME_DIMENSION, "direction"},
)

// Register registers all queue worker metrics with Prometheus
func Register() {
	prometheus.MustRegister(QueueWorkerCount)
	prometheus.MustRegister(QueueMessagesProcessed)
	prometheus.MustRegister(QueueMessageProcessingDuration)
	prometheus.MustRegister(QueueDepth)
	prometheus.MustRegister(QueueScalingDecisions)
}
