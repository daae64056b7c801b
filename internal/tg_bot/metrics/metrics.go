// Package metrics holds the Prometheus collectors of the bot.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	prometheus.MustRegister(
		updatesTotal,
		relayCallsTotal,
		relayLatency,
		relayInFlight,
		sendErrorsTotal,
	)
}

var (
	updatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Incoming text messages by dispatch action.",
		},
		[]string{"action"},
	)

	relayCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_relay_calls_total",
			Help: "Generative model calls by model, outcome and failure kind.",
		},
		[]string{"model", "status", "kind"},
	)

	relayLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bot_relay_latency_seconds",
			Help:    "Generative model call latency.",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
		},
		[]string{"model", "status"},
	)

	relayInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bot_relay_in_flight",
			Help: "Generative model calls currently running.",
		},
	)

	sendErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_send_errors_total",
			Help: "Messages that failed to be delivered to Telegram.",
		},
	)
)

// UpdateHandled counts one dispatched message.
func UpdateHandled(action string) {
	updatesTotal.WithLabelValues(action).Inc()
}

// ObserveRelay records the outcome of a generative call.
func ObserveRelay(model, status, kind string, elapsed time.Duration) {
	relayCallsTotal.WithLabelValues(model, status, kind).Inc()
	relayLatency.WithLabelValues(model, status).Observe(elapsed.Seconds())
}

// RelayStarted marks a generative call as running and returns the func that marks it done.
func RelayStarted() func() {
	relayInFlight.Inc()
	return relayInFlight.Dec
}

// SendFailed counts one undelivered message.
func SendFailed() {
	sendErrorsTotal.Inc()
}
