package tracker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"resilience-go/pkg/failure"
)

// Metrics exports tracker activity as prometheus collectors.
type Metrics struct {
	failuresTotal *prometheus.CounterVec
	retriesTotal  prometheus.Counter
	logSize       prometheus.Gauge
}

// NewWithMetrics creates a Tracker whose activity is registered on reg.
func NewWithMetrics(reg prometheus.Registerer) *Tracker {
	t := New()
	t.metrics = newMetrics(reg)
	return t
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		failuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resilience_failures_total",
				Help: "Total observed failures by category",
			},
			[]string{"category"},
		),
		retriesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "resilience_retries_total",
				Help: "Total retry attempts scheduled",
			},
		),
		logSize: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "resilience_error_log_size",
				Help: "Current number of entries in the failure log",
			},
		),
	}
}

func (m *Metrics) observeFailure(c failure.Category, logSize int) {
	m.failuresTotal.WithLabelValues(c.String()).Inc()
	m.logSize.Set(float64(logSize))
}

func (m *Metrics) observeRetry() {
	m.retriesTotal.Inc()
}

func (m *Metrics) setLogSize(n int) {
	m.logSize.Set(float64(n))
}
