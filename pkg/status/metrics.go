package status

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultOK      = "ok"
	resultError   = "error"
	resultTimeout = "timeout"
)

var (
	registerOnce sync.Once

	memberChecks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "console",
		Subsystem: "status",
		Name:      "member_checks_total",
		Help:      "Per-member status checks by result",
	}, []string{"result"})

	aggregationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "console",
		Subsystem: "status",
		Name:      "aggregation_duration_seconds",
		Help:      "Wall time of one full status aggregation",
		Buckets:   prometheus.DefBuckets,
	})
)

// RegisterMetrics registers the package collectors into the default
// Prometheus registry (idempotent).
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(memberChecks)
		prometheus.MustRegister(aggregationDuration)
	})
}
