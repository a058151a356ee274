// internal/httpserver/metrics.go
//
// Prometheus counters for gameplay events, exposed at /metrics.

package httpserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	guessesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillissue_guesses_total",
			Help: "Total number of scored guesses by result (win/miss)",
		},
		[]string{"result"},
	)
	lifelinesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillissue_lifeline_purchases_total",
			Help: "Total number of lifeline purchases by lifeline key",
		},
		[]string{"key"},
	)
)
