/*
Package metrics defines and registers driftdb's Prometheus metrics and
a small health/readiness checker, exposed over HTTP for scraping.

# Metric families

Collection state (gauges, labeled by collection name):

  - driftdb_documents_total
  - driftdb_listeners_total
  - driftdb_clock_logical

Mutation operations:

  - driftdb_operations_total{op,outcome}
  - driftdb_insert_duration_seconds / driftdb_update_duration_seconds / driftdb_merge_duration_seconds
  - driftdb_merged_documents_total{existed}

Anti-entropy digests:

  - driftdb_hash_object_duration_seconds
  - driftdb_digest_duration_seconds
  - driftdb_buckets_compared_total / driftdb_buckets_mismatched_total

Storage adapter calls:

  - driftdb_storage_operations_total{op,outcome}
  - driftdb_storage_operation_duration_seconds{op}

# Usage

	timer := metrics.NewTimer()
	_, err := coll.Insert(id, data)
	timer.ObserveDuration(metrics.InsertDuration)
	metrics.OperationsTotal.WithLabelValues("insert", outcome(err)).Inc()

	http.Handle("/metrics", metrics.Handler())

# Collector

Collector polls one or more *collection.Collection values on a ticker
and republishes their document/listener/clock counts as gauges, the
way a process with several open collections surfaces aggregate state
without each collection pushing its own metrics inline:

	collector := metrics.NewCollector(users, orders)
	collector.Start()
	defer collector.Stop()

# Health

HealthChecker tracks whichever named components callers register (the
serve command registers the storage adapter and each collection) as
healthy/unhealthy and serves /health, /ready, and /live over HTTP, in the same shape many of Prometheus's own exporters use.
*/
package metrics
