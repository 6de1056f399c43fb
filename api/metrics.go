/*
metrics.go - Prometheus instruments for the calculator adapter

PURPOSE:
  Counts what the adapter can see without looking inside the engine:
  tokens fed in, division-by-zero displays, recalls, live sessions.
  Exposed on /metrics via promhttp (see server.go).
*/
package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tokensTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "calc_tokens_total",
		Help: "Total raw input tokens fed into sessions.",
	})

	divisionsByZeroTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "calc_divisions_by_zero_total",
		Help: "Input batches that left a session in the division-by-zero state.",
	})

	recallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "calc_history_recalls_total",
		Help: "History entries recalled into a session.",
	})

	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "calc_sessions_active",
		Help: "Currently live calculator sessions.",
	})
)
