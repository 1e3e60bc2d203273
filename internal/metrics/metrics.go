package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var initOnce sync.Once

// Sweep metrics
var (
	// FilesRemovedTotal tracks total files removed
	FilesRemovedTotal prometheus.Counter

	// DirsRemovedTotal tracks total directories removed recursively
	DirsRemovedTotal prometheus.Counter

	// NotFoundTotal tracks targets that were already absent
	NotFoundTotal prometheus.Counter

	// ErrorsTotal tracks delete attempts that failed
	ErrorsTotal prometheus.Counter

	// BytesFreedTotal tracks total bytes freed across all sweeps
	BytesFreedTotal prometheus.Counter

	// SweepDuration tracks how long sweep cycles take
	SweepDuration prometheus.Histogram

	// SweepLastRunTimestamp records Unix timestamp of the last sweep
	SweepLastRunTimestamp prometheus.Gauge
)

// Init initializes and registers all metrics with Prometheus
// This function is safe to call multiple times (uses sync.Once)
func Init() {
	initOnce.Do(func() {
		FilesRemovedTotal = NewCounter(
			"pathsweep_files_removed_total",
			"Total number of files removed.",
		)
		DirsRemovedTotal = NewCounter(
			"pathsweep_directories_removed_total",
			"Total number of directories removed recursively.",
		)
		NotFoundTotal = NewCounter(
			"pathsweep_targets_not_found_total",
			"Total number of targets that were already absent.",
		)
		ErrorsTotal = NewCounter(
			"pathsweep_errors_total",
			"Total number of delete attempts that failed.",
		)
		BytesFreedTotal = NewBytesCounter(
			"pathsweep_bytes_freed_total",
			"Total bytes freed.",
		)
		SweepDuration = NewDurationHistogram(
			"pathsweep_sweep_duration_seconds",
			"Duration of sweep cycles in seconds.",
		)
		SweepLastRunTimestamp = NewGauge(
			"pathsweep_last_run_timestamp",
			"Timestamp of the last sweep run (Unix epoch seconds).",
		)

		prometheus.MustRegister(
			FilesRemovedTotal,
			DirsRemovedTotal,
			NotFoundTotal,
			ErrorsTotal,
			BytesFreedTotal,
			SweepDuration,
			SweepLastRunTimestamp,
		)

		// Zero value so the gauge appears in /metrics before the first run
		SweepLastRunTimestamp.Set(0)
	})
}
