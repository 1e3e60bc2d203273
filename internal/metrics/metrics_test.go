package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// TestMetricsInit verifies that Init() is idempotent and registers metrics
func TestMetricsInit(t *testing.T) {
	// Call Init multiple times - should be idempotent via sync.Once
	Init()
	Init()
	Init()

	if FilesRemovedTotal == nil {
		t.Error("FilesRemovedTotal should be initialized")
	}
	if DirsRemovedTotal == nil {
		t.Error("DirsRemovedTotal should be initialized")
	}
	if NotFoundTotal == nil {
		t.Error("NotFoundTotal should be initialized")
	}
	if ErrorsTotal == nil {
		t.Error("ErrorsTotal should be initialized")
	}
	if BytesFreedTotal == nil {
		t.Error("BytesFreedTotal should be initialized")
	}
	if SweepDuration == nil {
		t.Error("SweepDuration should be initialized")
	}
	if SweepLastRunTimestamp == nil {
		t.Error("SweepLastRunTimestamp should be initialized")
	}

	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	expectedMetrics := []string{
		"pathsweep_files_removed_total",
		"pathsweep_directories_removed_total",
		"pathsweep_targets_not_found_total",
		"pathsweep_errors_total",
		"pathsweep_bytes_freed_total",
		"pathsweep_sweep_duration_seconds",
		"pathsweep_last_run_timestamp",
	}

	foundMetrics := make(map[string]bool)
	for _, mf := range mfs {
		foundMetrics[*mf.Name] = true
	}

	for _, expected := range expectedMetrics {
		if !foundMetrics[expected] {
			t.Errorf("Expected metric %s not registered", expected)
		}
	}
}
