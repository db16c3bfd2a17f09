package metrics

import "github.com/prometheus/client_golang/prometheus"

// Embedding and search Prometheus metrics.
var (
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arama",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"provider", "model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "arama",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	EmbeddingErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arama",
			Name:      "embedding_errors_total",
			Help:      "Total embedding errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arama",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arama",
			Name:      "search_requests_total",
			Help:      "Total number of search pipeline runs",
		},
		[]string{"outcome"}, // "ok" / "empty" / "fallback" / "error"
	)

	SearchCandidatesReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "arama",
			Name:      "search_candidates_returned",
			Help:      "Number of results returned per search after reranking",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20},
		},
	)
)

var metricsRegistered bool

// RegisterPipelineMetrics registers embedding and search metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if metricsRegistered {
		return
	}
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	prometheus.MustRegister(EmbeddingErrorsTotal)
	prometheus.MustRegister(EmbeddingCacheTotal)
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchCandidatesReturned)
	metricsRegistered = true
}
