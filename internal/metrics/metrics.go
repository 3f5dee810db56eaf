// Package metrics holds the Prometheus collectors for the makerspace server.
// Everything registers on the default registry through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeInserted  = "inserted"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
	OutcomeError     = "error"

	OutcomeOK            = "ok"
	OutcomeInvalidRange  = "invalid_range"
	OutcomeTooManyEvents = "too_many_events"
)

var (
	accessEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "makerspace_access_events_total",
		Help: "Door access log ingests by outcome",
	}, []string{"outcome"}) // outcome=inserted|duplicate|rejected|error

	hoursComputationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "makerspace_volunteer_hours_computations_total",
		Help: "Volunteer hour computations by outcome",
	}, []string{"outcome"}) // outcome=ok|invalid_range|too_many_events|error

	sessionsPerComputation = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "makerspace_volunteer_sessions_per_computation",
		Help:    "Number of sessions reconstructed per successful computation",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
	})

	accessLogPrunedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "makerspace_access_log_pruned_total",
		Help: "Access log rows removed by retention pruning",
	})
)

func IncAccessEvent(outcome string) {
	accessEventsTotal.WithLabelValues(outcome).Inc()
}

func IncHoursComputation(outcome string) {
	hoursComputationsTotal.WithLabelValues(outcome).Inc()
}

func ObserveSessions(n int) {
	sessionsPerComputation.Observe(float64(n))
}

func AddPruned(n int64) {
	if n > 0 {
		accessLogPrunedTotal.Add(float64(n))
	}
}
