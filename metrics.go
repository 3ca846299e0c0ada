package jvmgetter

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts strategy attempts, failures by reason and modules visited by the fallback.
type Metrics struct {
	Attempts       *prometheus.CounterVec
	Failures       *prometheus.CounterVec
	ModulesVisited prometheus.Counter
}

// NewMetrics creates the counters and registers them on reg when it is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jvmgetter_strategy_attempts_total",
			Help: "Total number of resolution attempts per strategy",
		}, []string{"strategy"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jvmgetter_strategy_failures_total",
			Help: "Total number of failed resolution attempts per strategy and reason",
		}, []string{"strategy", "reason"}),
		ModulesVisited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jvmgetter_modules_visited_total",
			Help: "Total number of loaded modules inspected by the fallback strategy",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.Attempts,
			m.Failures,
			m.ModulesVisited,
		)
	}
	return m
}

func (m *Metrics) attempt(strategy string) {
	if m != nil {
		m.Attempts.WithLabelValues(strategy).Inc()
	}
}

func (m *Metrics) failure(strategy string, err error) {
	if m != nil {
		m.Failures.WithLabelValues(strategy, reason(err)).Inc()
	}
}

func (m *Metrics) visited() {
	if m != nil {
		m.ModulesVisited.Inc()
	}
}
