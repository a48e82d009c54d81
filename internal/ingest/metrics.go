package ingest

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "exam_portal"

// Metrics exports batch writer activity to Prometheus. It implements batch.Observer.
type Metrics struct {
	chunksCommitted  *prometheus.CounterVec
	chunksSkipped    *prometheus.CounterVec
	chunksFailed     *prometheus.CounterVec
	recordsDropped   *prometheus.CounterVec
	recordsProcessed *prometheus.CounterVec
	opsCommitted     *prometheus.CounterVec
	commitDuration   *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	labels := []string{"collection"}
	m := &Metrics{
		chunksCommitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_committed_total",
			Help:      "Chunks committed to the document store.",
		}, labels),
		chunksSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_skipped_total",
			Help:      "Chunks without an eligible record.",
		}, labels),
		chunksFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_failed_total",
			Help:      "Chunks whose commit returned an error.",
		}, labels),
		recordsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_dropped_total",
			Help:      "Records skipped because their identity key was empty.",
		}, labels),
		recordsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_processed_total",
			Help:      "Records in completed chunks.",
		}, labels),
		opsCommitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_committed_total",
			Help:      "Upserts and deletes applied by committed chunks.",
		}, labels),
		commitDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "commit_duration_seconds",
			Help:      "Duration of successful chunk commits.",
			Buckets:   prometheus.DefBuckets,
		}, labels),
	}

	reg.MustRegister(
		m.chunksCommitted,
		m.chunksSkipped,
		m.chunksFailed,
		m.recordsDropped,
		m.recordsProcessed,
		m.opsCommitted,
		m.commitDuration,
	)
	return m
}

func (m *Metrics) ChunkCommitted(collection string, ops int, took time.Duration) {
	m.chunksCommitted.WithLabelValues(collection).Inc()
	m.opsCommitted.WithLabelValues(collection).Add(float64(ops))
	m.commitDuration.WithLabelValues(collection).Observe(took.Seconds())
}

func (m *Metrics) ChunkSkipped(collection string) {
	m.chunksSkipped.WithLabelValues(collection).Inc()
}

func (m *Metrics) ChunkFailed(collection string) {
	m.chunksFailed.WithLabelValues(collection).Inc()
}

func (m *Metrics) RecordsDropped(collection string, n int) {
	m.recordsDropped.WithLabelValues(collection).Add(float64(n))
}

func (m *Metrics) RecordsProcessed(collection string, n int) {
	m.recordsProcessed.WithLabelValues(collection).Add(float64(n))
}
