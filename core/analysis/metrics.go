package analysis

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	analysesTotal    *prometheus.CounterVec
	analysisFailures *prometheus.CounterVec
	issuesTotal      *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec
	loadCostGauge    prometheus.Gauge
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, *prometheus.CounterVec, *prometheus.CounterVec, *prometheus.HistogramVec, prometheus.Gauge) {
	total := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyses_total",
			Help: "Number of completed analyses",
		},
		[]string{"kind"},
	)
	failures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_failures_total",
			Help: "Number of analyses rejected with a hard error",
		},
		[]string{"kind"},
	)
	issues := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validation_issues_total",
			Help: "Number of validation findings produced by analyses",
		},
		[]string{"kind"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analysis_duration_seconds",
			Help:    "Time spent running one analysis",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
	cost := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "load_redistribution_cost",
			Help: "Cost of the current load redistribution",
		},
	)
	return total, failures, issues, duration, cost
}

func init() {
	analysesTotal, analysisFailures, issuesTotal, analysisDuration, loadCostGauge = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers analysis metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(analysesTotal, analysisFailures, issuesTotal, analysisDuration, loadCostGauge)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	analysesTotal, analysisFailures, issuesTotal, analysisDuration, loadCostGauge = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}

// ObserveLoadCost records the current redistribution cost. The move and reset
// handlers call it so the gauge tracks the working state, not only analyses.
func ObserveLoadCost(cost float64) {
	loadCostGauge.Set(cost)
}
