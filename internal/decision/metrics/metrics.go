package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the decision module.
type Metrics struct {
	// Decision outcomes by outcome and country
	DecisionOutcome *prometheus.CounterVec

	// Requests refused before a decision, by catalogue error code
	DecisionErrors *prometheus.CounterVec

	// Engine evaluation latency
	EvaluateLatency prometheus.Histogram
}

// New creates a Metrics instance registered on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the decision metrics on reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DecisionOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "loanengine_decision_outcomes_total",
			Help: "Total loan decisions by outcome and country",
		}, []string{"outcome", "country"}), // outcome: "approved", "counter_offer", "rejected"

		DecisionErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "loanengine_decision_errors_total",
			Help: "Total loan requests refused with an error, by error code",
		}, []string{"code"}),

		EvaluateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "loanengine_decision_evaluate_duration_seconds",
			Help:    "Duration of loan decision evaluation",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
	}
}

// IncrementOutcome records a computed decision.
func (m *Metrics) IncrementOutcome(outcome, country string) {
	if m != nil {
		m.DecisionOutcome.WithLabelValues(outcome, country).Inc()
	}
}

// IncrementError records a refused request.
func (m *Metrics) IncrementError(code string) {
	if m != nil {
		m.DecisionErrors.WithLabelValues(code).Inc()
	}
}

// ObserveEvaluateLatency records the evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}
