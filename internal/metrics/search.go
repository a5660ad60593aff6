package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval pipeline Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hermes",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"status"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hermes",
			Name:      "search_duration_seconds",
			Help:      "End-to-end search duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"stage"}, // "total", "retrieve", "rerank"
	)

	QueryCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hermes",
			Name:      "query_cache_total",
			Help:      "Query cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	RerankRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hermes",
			Name:      "rerank_requests_total",
			Help:      "Total number of rerank requests",
		},
		[]string{"status"},
	)

	IngestDocumentsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hermes",
			Name:      "ingest_documents_total",
			Help:      "Total number of ingested documents",
		},
	)

	IngestChunksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hermes",
			Name:      "ingest_chunks_total",
			Help:      "Total number of ingested chunks",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers retrieval collectors. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(QueryCacheTotal)
	prometheus.MustRegister(RerankRequestsTotal)
	prometheus.MustRegister(IngestDocumentsTotal)
	prometheus.MustRegister(IngestChunksTotal)
	searchMetricsRegistered = true
}
