package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics counts how often repositories had to leave the remote store.
type StoreMetrics struct {
	Fallbacks       *prometheus.CounterVec
	FallbackFailure *prometheus.CounterVec
}

func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	m := &StoreMetrics{
		Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "radiology",
			Subsystem: "store",
			Name:      "fallback_total",
			Help:      "Remote store calls that failed and were served by the local store.",
		}, []string{"repository", "operation"}),
		FallbackFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "radiology",
			Subsystem: "store",
			Name:      "fallback_failed_total",
			Help:      "Calls that failed on both the remote and the local store.",
		}, []string{"repository", "operation"}),
	}
	if reg != nil {
		reg.MustRegister(m.Fallbacks, m.FallbackFailure)
	}
	return m
}
