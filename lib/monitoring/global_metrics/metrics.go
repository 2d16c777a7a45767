package global_metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ENDPOINT_DIMENSION = "endpoint"
	STATUS_DIMENSION   = "status"
	SOURCE_DIMENSION   = "source"
	OUTCOME_DIMENSION  = "outcome"
)

var latencyBuckets = []float64{10, 20, 50, 100, 150, 200, 250, 300, 500, 750, 1000, 1500, 2000, 5000, 10000}

// RiotRequest observes Riot API request latency in milliseconds.
// endpoint: "account", "match_list", "match"; status: HTTP status code or "transport_error"
var RiotRequest = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "riot_api_request_ms",
		Buckets: latencyBuckets,
	},
	[]string{ENDPOINT_DIMENSION, STATUS_DIMENSION},
)

var RiotRateLimiterWait = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "riot_rate_limiter_wait_ms",
		Help:    "Time spent waiting on the Riot API rate limiters in milliseconds",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 30000},
	},
)

var YouTubeRequest = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "youtube_api_request_ms",
		Buckets: latencyBuckets,
	},
	[]string{STATUS_DIMENSION},
)

// DDragonCatalogFetch counts Data Dragon loads. kind: "items", "runes"; status: "fetched", "snapshot", "error"
var DDragonCatalogFetch = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ddragon_catalog_fetch_total",
	},
	[]string{"kind", STATUS_DIMENSION},
)

// MatchResolution counts pipeline runs. source: "opgg", "video"; outcome: "success" or the failing stage
var MatchResolution = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "match_resolution_total",
	},
	[]string{SOURCE_DIMENSION, OUTCOME_DIMENSION},
)

var MatchResolutionDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "match_resolution_duration_ms",
		Buckets: latencyBuckets,
	},
	[]string{SOURCE_DIMENSION},
)

var PUUIDCacheLookups = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "puuid_cache_lookups_total",
	},
	[]string{"result"}, // result: "hit", "miss", "error"
)

// RegisterGlobalMetrics registers all metrics that can be exported by any app
func RegisterGlobalMetrics() {
	prometheus.MustRegister(RiotRequest)
	prometheus.MustRegister(RiotRateLimiterWait)
	prometheus.MustRegister(YouTubeRequest)
	prometheus.MustRegister(DDragonCatalogFetch)
	prometheus.MustRegister(MatchResolution)
	prometheus.MustRegister(MatchResolutionDuration)
	prometheus.MustRegister(PUUIDCacheLookups)
}
