package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Calculations counts schedule computations by convention and outcome.
	Calculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_calculations_total",
			Help: "Number of amortization schedule calculations",
		},
		[]string{"convention", "status"},
	)

	// CalculationDuration observes how long one schedule computation takes.
	CalculationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "schedule_calculation_duration_seconds",
			Help:    "Duration of amortization schedule calculations",
			Buckets: prometheus.DefBuckets,
		},
	)

	// CacheRequests counts cache lookups by result.
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_cache_requests_total",
			Help: "Schedule cache lookups by result",
		},
		[]string{"result"},
	)

	// SkippedPartPayments counts malformed part payment entries dropped from
	// requests.
	SkippedPartPayments = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "schedule_skipped_part_payments_total",
			Help: "Malformed part payment entries skipped during request parsing",
		},
	)
)
