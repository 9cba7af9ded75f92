package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sitesearch",
			Name:      "searches_total",
			Help:      "Total number of widget runs by outcome",
		},
		[]string{"outcome"}, // "prompt" / "results" / "no_results" / "unavailable"
	)

	IndexLoadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "sitesearch",
			Name:      "index_load_duration_seconds",
			Help:      "Index retrieval duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	ResultsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "sitesearch",
			Name:      "results_returned",
			Help:      "Number of ranked results rendered per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)
)

func init() {
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(IndexLoadDuration)
	prometheus.MustRegister(ResultsReturned)
}
