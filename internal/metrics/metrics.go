package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"netdiag/internal/domain"
)

const (
	OutcomeHealthy  = "healthy"
	OutcomeDegraded = "degraded"
	OutcomeAborted  = "aborted"
)

var (
	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "netdiag",
			Name:      "runs_total",
			Help:      "Diagnostic runs handled, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	runDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "netdiag",
			Name:      "run_seconds",
			Help:      "Full diagnostic run duration in seconds.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 45},
		},
	)

	layerFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "netdiag",
			Name:      "layer_failures_total",
			Help:      "Probe failures partitioned by OSI layer.",
		},
		[]string{"layer"},
	)
)

// Register attaches the collectors to the supplied registerer.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{runsTotal, runDurationSeconds, layerFailuresTotal} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveRun records one completed (or aborted) diagnostic run.
func ObserveRun(duration time.Duration, rs domain.Results, aborted bool) {
	outcome := OutcomeHealthy
	if aborted {
		outcome = OutcomeAborted
	} else if rs.Failed().Len() > 0 {
		outcome = OutcomeDegraded
	}
	runsTotal.WithLabelValues(outcome).Inc()
	runDurationSeconds.Observe(duration.Seconds())
	for _, r := range rs {
		if !r.Passed {
			layerFailuresTotal.WithLabelValues(r.Label).Inc()
		}
	}
}
