package inventory

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	fetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scwinv",
			Subsystem: "inventory",
			Name:      "fetches_total",
			Help:      "Total number of per-zone fetches by source class and result status.",
		},
		[]string{"source", "status"},
	)
	fetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "scwinv",
			Subsystem: "inventory",
			Name:      "aggregation_duration_seconds",
			Help:      "Duration of full inventory aggregations in seconds.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
	)
	hostsFound = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "scwinv",
			Subsystem: "inventory",
			Name:      "last_run_hosts",
			Help:      "Number of hosts found per source class in the most recent aggregation.",
		},
		[]string{"source"},
	)
	cacheResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scwinv",
			Subsystem: "inventory",
			Name:      "cache_results_total",
			Help:      "Cache layer outcomes by result (hit, miss, bypass, disabled).",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(fetchTotal, fetchDuration, hostsFound, cacheResults)
}
