package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records stage timings on a private registry
type Metrics struct {
	registry *prometheus.Registry

	stageDuration *prometheus.HistogramVec
	stageFailures *prometheus.CounterVec
}

// NewMetrics creates the stage metrics
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		stageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "spralpkg_stage_duration_seconds",
				Help:    "Duration of recipe stages in seconds",
				Buckets: []float64{0.01, 0.1, 1, 5, 30, 120, 600, 1800},
			},
			[]string{"stage"},
		),
		stageFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spralpkg_stage_failures_total",
				Help: "Total number of failed recipe stages",
			},
			[]string{"stage"},
		),
	}
}

func (m *Metrics) observe(stage string, d time.Duration, err error) {
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		m.stageFailures.WithLabelValues(stage).Inc()
	}
}

// Gatherer exposes the registry
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteFile writes the metrics in the node-exporter textfile format
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
