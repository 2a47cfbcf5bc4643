package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Collection state metrics
	DocumentsTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "driftdb_documents_total",
			Help: "Total number of documents by collection",
		},
		[]string{"collection"},
	)

	ListenersTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "driftdb_listeners_total",
			Help: "Total number of registered listeners by collection",
		},
		[]string{"collection"},
	)

	ClockLogical = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "driftdb_clock_logical",
			Help: "Current logical counter of a collection's HLC",
		},
		[]string{"collection"},
	)

	// Mutation operation metrics
	OperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "driftdb_operations_total",
			Help: "Total number of collection operations by kind and outcome",
		},
		[]string{"op", "outcome"},
	)

	InsertDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "driftdb_insert_duration_seconds",
			Help:    "Time taken to validate, tick, and persist an insert",
			Buckets: prometheus.DefBuckets,
		},
	)

	UpdateDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "driftdb_update_duration_seconds",
			Help:    "Time taken to re-tick, merge, and persist an update",
			Buckets: prometheus.DefBuckets,
		},
	)

	MergeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "driftdb_merge_duration_seconds",
			Help:    "Time taken to apply one incoming document through merge_document",
			Buckets: prometheus.DefBuckets,
		},
	)

	MergedDocumentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "driftdb_merged_documents_total",
			Help: "Total number of documents processed by merge, by whether a local copy already existed",
		},
		[]string{"existed"},
	)

	// Hash / digest metrics
	HashObjectDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "driftdb_hash_object_duration_seconds",
			Help:    "Time taken to canonicalize and hash a document's fields",
			Buckets: prometheus.DefBuckets,
		},
	)

	DigestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "driftdb_digest_duration_seconds",
			Help:    "Time taken to compute a collection's root and bucket hashes",
			Buckets: prometheus.DefBuckets,
		},
	)

	BucketsCompared = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "driftdb_buckets_compared_total",
			Help: "Total number of bucket hashes compared during anti-entropy",
		},
	)

	BucketsMismatchedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "driftdb_buckets_mismatched_total",
			Help: "Total number of bucket hashes found to differ during anti-entropy",
		},
	)

	// Storage adapter metrics
	StorageOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "driftdb_storage_operations_total",
			Help: "Total number of storage adapter calls by operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	StorageOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "driftdb_storage_operation_duration_seconds",
			Help:    "Storage adapter call duration in seconds, by operation",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(DocumentsTotal)
	prometheus.MustRegister(ListenersTotal)
	prometheus.MustRegister(ClockLogical)
	prometheus.MustRegister(OperationsTotal)
	prometheus.MustRegister(InsertDuration)
	prometheus.MustRegister(UpdateDuration)
	prometheus.MustRegister(MergeDuration)
	prometheus.MustRegister(MergedDocumentsTotal)
	prometheus.MustRegister(HashObjectDuration)
	prometheus.MustRegister(DigestDuration)
	prometheus.MustRegister(BucketsCompared)
	prometheus.MustRegister(BucketsMismatchedTotal)
	prometheus.MustRegister(StorageOperationsTotal)
	prometheus.MustRegister(StorageOperationDuration)
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	duration := time.Since(t.start).Seconds()
	histogram.Observe(duration)
}

// ObserveDurationVec records the duration to a histogram vec with labels.
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	duration := time.Since(t.start).Seconds()
	histogram.WithLabelValues(labels...).Observe(duration)
}

// Duration returns the elapsed time since timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
