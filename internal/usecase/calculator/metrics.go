package calculator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	keysTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keypad_keys_total",
			Help: "Total number of keypad keys pressed",
		},
		[]string{"key"},
	)

	evaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keypad_evaluations_total",
			Help: "Total number of completed evaluations",
		},
		[]string{"operation"},
	)

	divisionByZeroTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "keypad_division_by_zero_total",
			Help: "Number of evaluations rejected because of division by zero",
		},
	)

	sessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "keypad_sessions_active",
			Help: "Number of open keypad sessions",
		},
	)
)
