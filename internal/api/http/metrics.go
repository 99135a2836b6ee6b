package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transfersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swiftpay_transfers_total",
		Help: "Total transfer attempts, labeled by outcome",
	}, []string{"outcome"})

	depositsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swiftpay_deposits_total",
		Help: "Total deposit attempts, labeled by outcome",
	}, []string{"outcome"})

	requestTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swiftpay_request_transitions_total",
		Help: "Total money-request status transitions, labeled by target status and outcome",
	}, []string{"status", "outcome"})

	transferDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "swiftpay_transfer_duration_seconds",
		Help:    "Latency distribution of the transfer path, including the database transaction",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	})
)

func outcomeLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
