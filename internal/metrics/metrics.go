// Package metrics collects import progress as Prometheus metrics.
package metrics

import (
	"fmt"
	"time"

	"github.com/huangsam/elimu/internal/contract"
	"github.com/huangsam/elimu/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "elimu"

// Collector records import metrics on its own registry.
type Collector struct {
	registry *prometheus.Registry

	ImportRowsTotal      *prometheus.CounterVec
	ImportDuration       *prometheus.HistogramVec
	IDsGeneratedTotal    prometheus.Counter
	ImportRunsTotal      *prometheus.CounterVec
	LastImportTimeSecond *prometheus.GaugeVec
}

var _ contract.ImportObserver = &Collector{} // Compile-time check

// NewCollector creates a collector with a private registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Collector{
		registry: reg,

		ImportRowsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "import_rows_total",
				Help:      "Total number of imported rows by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),

		ImportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "import_duration_seconds",
				Help:      "Wall time of import runs in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
			},
			[]string{"kind"},
		),

		IDsGeneratedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ids_generated_total",
				Help:      "Total number of generated student identifiers",
			},
		),

		ImportRunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "import_runs_total",
				Help:      "Total number of finished import runs by kind",
			},
			[]string{"kind"},
		),

		LastImportTimeSecond: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_import_timestamp_seconds",
				Help:      "Unix time of the last finished import run by kind",
			},
			[]string{"kind"},
		),
	}
}

// Registry exposes the collector's registry for gathering.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RowApplied implements contract.ImportObserver.
func (c *Collector) RowApplied(kind schema.ImportKind, outcome schema.RowOutcome) {
	c.ImportRowsTotal.WithLabelValues(string(kind), string(outcome)).Inc()
}

// IDGenerated implements contract.ImportObserver.
func (c *Collector) IDGenerated() {
	c.IDsGeneratedTotal.Inc()
}

// RunFinished implements contract.ImportObserver.
func (c *Collector) RunFinished(kind schema.ImportKind, elapsed time.Duration) {
	c.ImportDuration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
	c.ImportRunsTotal.WithLabelValues(string(kind)).Inc()
	c.LastImportTimeSecond.WithLabelValues(string(kind)).SetToCurrentTime()
}

// WriteTextfile writes every metric to path in the text exposition format
// read by the node exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
