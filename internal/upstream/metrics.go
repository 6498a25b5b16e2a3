package upstream

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks upstream fetch latency and retries.
type Metrics struct {
	FetchDuration *prometheus.HistogramVec
	Retries       *prometheus.CounterVec
	Collapsed     prometheus.Counter
}

// NewMetrics registers upstream metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "everypolitician_upstream_fetch_duration_seconds",
			Help:    "Latency of upstream fetches by endpoint and outcome",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint", "outcome"}),
		Retries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "everypolitician_upstream_retries_total",
			Help: "Retried upstream requests by endpoint",
		}, []string{"endpoint"}),
		Collapsed: factory.NewCounter(prometheus.CounterOpts{
			Name: "everypolitician_upstream_collapsed_total",
			Help: "Fetches served by joining an identical in-flight request",
		}),
	}
}

func (m *Metrics) observeFetch(endpoint string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = string(GetCategory(err))
	}
	m.FetchDuration.WithLabelValues(endpoint, outcome).Observe(elapsed.Seconds())
}

func (m *Metrics) incRetry(endpoint string) {
	if m == nil {
		return
	}
	m.Retries.WithLabelValues(endpoint).Inc()
}

func (m *Metrics) incCollapsed() {
	if m == nil {
		return
	}
	m.Collapsed.Inc()
}
