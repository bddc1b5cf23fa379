// Package metrics holds the Prometheus instrumentation for serve mode.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	ChecksTotal   *prometheus.CounterVec
	CacheHits     prometheus.Counter
	CheckDuration prometheus.Histogram
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ChecksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "domnix_checks_total",
			Help: "Total number of domain checks served, by resulting status",
		}, []string{"status"}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "domnix_check_cache_hits_total",
			Help: "Total number of checks answered from the result cache",
		}),
		CheckDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "domnix_check_duration_seconds",
			Help:    "Duration of uncached domain checks",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
