package extract

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	extractDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "entityd",
			Subsystem: "extract",
			Name:      "duration_seconds",
			Help:      "Duration of model invocations plus response mapping",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"backend"},
	)

	extractFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "entityd",
			Subsystem: "extract",
			Name:      "failures_total",
			Help:      "Extractions that ended in an error or panic",
		},
		[]string{"backend", "kind"},
	)

	entitiesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "entityd",
			Name:      "entities_total",
			Help:      "Entities returned to callers, by label",
		},
		[]string{"label"},
	)
)

func init() {
	prometheus.MustRegister(extractDuration, extractFailures, entitiesTotal)
}
