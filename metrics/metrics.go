// Package metrics exposes Prometheus counters for league sync runs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/stokaro/leaguesync/rowstore"
)

const namespace = "leaguesync"

// Metrics holds the collectors of one run. It implements writer.Recorder.
type Metrics struct {
	// Counters
	RowsWritten *prometheus.CounterVec
	Fetches     *prometheus.CounterVec

	// Histograms
	FetchDuration prometheus.Histogram

	// Gauges
	LastSuccess prometheus.Gauge

	registry *prometheus.Registry
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.RowsWritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_written_total",
			Help:      "Rows written by table and outcome",
		},
		[]string{"table", "outcome"},
	)
	m.Fetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "API requests by result",
		},
		[]string{"result"},
	)
	m.FetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of API requests",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)
	m.LastSuccess = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that wrote without failures",
		},
	)

	m.registry.MustRegister(m.RowsWritten, m.Fetches, m.FetchDuration, m.LastSuccess)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Record counts one row write.
func (m *Metrics) Record(table string, outcome rowstore.Outcome) {
	m.RowsWritten.WithLabelValues(table, string(outcome)).Inc()
}

// ObserveFetch records an API request.
func (m *Metrics) ObserveFetch(d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Fetches.WithLabelValues(result).Inc()
	m.FetchDuration.Observe(d.Seconds())
}

// MarkSuccess sets the last success gauge to t.
func (m *Metrics) MarkSuccess(t time.Time) {
	m.LastSuccess.Set(float64(t.Unix()))
}

// WriteTextfile writes every metric to path in the text exposition format,
// for the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
