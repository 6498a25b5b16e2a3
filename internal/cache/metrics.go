package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts cache lookups per backend.
type Metrics struct {
	Lookups *prometheus.CounterVec
	Errors  *prometheus.CounterVec
}

// NewMetrics registers cache metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "everypolitician_cache_lookups_total",
			Help: "Cache lookups by backend and result (hit or miss)",
		}, []string{"backend", "result"}),
		Errors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "everypolitician_cache_errors_total",
			Help: "Cache backend failures by backend and operation",
		}, []string{"backend", "op"}),
	}
}

func (m *Metrics) hit(backend string) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(backend, "hit").Inc()
}

func (m *Metrics) miss(backend string) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(backend, "miss").Inc()
}

func (m *Metrics) failed(backend, op string) {
	if m == nil {
		return
	}
	m.Errors.WithLabelValues(backend, op).Inc()
}
