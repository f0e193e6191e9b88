package agent

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Turn outcomes recorded in guide_turns_total.
const (
	OutcomeCrisis   = "crisis"
	OutcomeOffTopic = "off_topic"
	OutcomeAnswered = "answered"
	OutcomeDegraded = "degraded"
	OutcomeError    = "error"
)

// Metrics holds the orchestrator's Prometheus collectors.
type Metrics struct {
	turns           *prometheus.CounterVec
	gatewayDuration prometheus.Histogram
	gatewayFailures *prometheus.CounterVec
	storeFailures   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "guide_turns_total",
			Help: "Conversation turns by outcome.",
		}, []string{"outcome"}),
		gatewayDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "guide_gateway_duration_seconds",
			Help:    "Latency of LLM gateway calls.",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 12, 20},
		}),
		gatewayFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "guide_gateway_failures_total",
			Help: "LLM gateway failures by reason.",
		}, []string{"reason"}),
		storeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "guide_store_failures_total",
			Help: "Memory store failures by operation.",
		}, []string{"op"}),
	}
	if reg != nil {
		reg.MustRegister(m.turns, m.gatewayDuration, m.gatewayFailures, m.storeFailures)
	}
	return m
}

func (m *Metrics) turn(outcome string) {
	m.turns.WithLabelValues(outcome).Inc()
}

func (m *Metrics) gatewayCall(d time.Duration, err error) {
	m.gatewayDuration.Observe(d.Seconds())
	if err == nil {
		return
	}
	m.gatewayFailures.WithLabelValues(gatewayFailureReason(err)).Inc()
}

func (m *Metrics) malformed() {
	m.gatewayFailures.WithLabelValues("malformed").Inc()
}

func (m *Metrics) storeFailure(op string) {
	m.storeFailures.WithLabelValues(op).Inc()
}

func gatewayFailureReason(err error) string {
	if errors.Is(err, ErrGatewayTimeout) {
		return "timeout"
	}
	return "unavailable"
}
