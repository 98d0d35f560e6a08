// Package metrics defines the Prometheus collectors the service exports at /-/metrics.
package metrics

import (
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation result labels.
const (
	ResultOK          = "ok"
	ResultInvalid     = "invalid"
	ResultNotFound    = "not_found"
	ResultUnavailable = "unavailable"
	ResultCanceled    = "canceled"
	ResultError       = "error"
)

// Metrics holds the note service collectors.
type Metrics struct {
	NoteOps        *prometheus.CounterVec
	NoteOpDuration *prometheus.HistogramVec
	NotesListed    prometheus.Gauge

	reg       prometheus.Registerer
	namespace string
}

// New creates and registers the note collectors with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh
// prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		NoteOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "notes",
				Name:      "operations_total",
				Help:      "Total number of note operations by result",
			},
			[]string{"operation", "result"},
		),
		NoteOpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "notes",
				Name:      "operation_duration_seconds",
				Help:      "Note operation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		NotesListed: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "notes",
				Name:      "last_listed_count",
				Help:      "Number of notes returned by the most recent list",
			},
		),
		reg:       reg,
		namespace: namespace,
	}
}

// ObserveNoteOp records one completed note operation.
func (m *Metrics) ObserveNoteOp(operation, result string, elapsed time.Duration) {
	m.NoteOps.WithLabelValues(operation, result).Inc()
	m.NoteOpDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// RegisterDBStats exports connection pool statistics for db. The stats are
// read at scrape time.
func (m *Metrics) RegisterDBStats(db *sql.DB) error {
	return m.reg.Register(collectors.NewDBStatsCollector(db, m.namespace))
}
