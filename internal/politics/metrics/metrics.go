package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for entity browsing.
type Metrics struct {
	// Load latency by phase: "entity", "relations", "total"
	LoadLatency *prometheus.HistogramVec

	// Number of relationship fetches issued per entity load
	RelationFanout prometheus.Histogram

	// Model (re)builds by result
	ModelBuilds *prometheus.CounterVec
}

// New registers the politics metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the metrics with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LoadLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "everypolitician_entity_load_duration_seconds",
			Help:    "Duration of entity page loads by phase",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"phase"}),

		RelationFanout: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "everypolitician_entity_relation_fetches",
			Help:    "Relationship fetches issued per entity load",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32},
		}),

		ModelBuilds: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "everypolitician_model_builds_total",
			Help: "Schema model builds by result",
		}, []string{"result"}), // result: "ok", "error", "stale"
	}
}

// ObserveLoadLatency records the duration of a load phase.
func (m *Metrics) ObserveLoadLatency(phase string, d time.Duration) {
	if m != nil {
		m.LoadLatency.WithLabelValues(phase).Observe(d.Seconds())
	}
}

// ObserveRelationFanout records how many relationship fetches a load issued.
func (m *Metrics) ObserveRelationFanout(n int) {
	if m != nil {
		m.RelationFanout.Observe(float64(n))
	}
}

// IncrementModelBuild records a model build outcome.
func (m *Metrics) IncrementModelBuild(result string) {
	if m != nil {
		m.ModelBuilds.WithLabelValues(result).Inc()
	}
}
