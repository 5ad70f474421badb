package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RateLimitChecks      *prometheus.CounterVec
	RateLimitStoreErrors prometheus.Counter
	RateLimitDegraded    prometheus.Gauge
}

func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RateLimitChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "loanengine_ratelimit_checks_total",
			Help: "Total rate limit checks by result",
		}, []string{"result"}), // result: "allowed", "denied"
		RateLimitStoreErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "loanengine_ratelimit_store_errors_total",
			Help: "Total rate limit bucket store failures",
		}),
		RateLimitDegraded: factory.NewGauge(prometheus.GaugeOpts{
			Name: "loanengine_ratelimit_degraded",
			Help: "1 while the limiter runs on the in-memory fallback",
		}),
	}
}

func (m *Metrics) IncrementAllowed() {
	if m != nil {
		m.RateLimitChecks.WithLabelValues("allowed").Inc()
	}
}

func (m *Metrics) IncrementDenied() {
	if m != nil {
		m.RateLimitChecks.WithLabelValues("denied").Inc()
	}
}

func (m *Metrics) IncrementStoreErrors() {
	if m != nil {
		m.RateLimitStoreErrors.Inc()
	}
}

func (m *Metrics) SetDegraded(degraded bool) {
	if m == nil {
		return
	}
	if degraded {
		m.RateLimitDegraded.Set(1)
		return
	}
	m.RateLimitDegraded.Set(0)
}
