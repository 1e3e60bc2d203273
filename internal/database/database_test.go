package database

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDatabaseCreation verifies database file creation and initialization
func TestDatabaseCreation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := NewSweepDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close database: %v", err)
		}
	}()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("Database file not created at %s", dbPath)
	}

	if err := db.RecordSweep("REMOVED", "/test/path", "file", 1024, ""); err != nil {
		t.Fatalf("Failed to record test sweep: %v", err)
	}
}

// TestWALModeEnabled verifies that WAL mode is properly configured
func TestWALModeEnabled(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_wal.db")

	db, err := NewSweepDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close database: %v", err)
		}
	}()

	var journalMode string
	if err := db.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("Failed to query journal mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("Expected journal_mode=wal, got %s", journalMode)
	}
}

// TestRecordAndQuery verifies records round-trip through the query helpers
func TestRecordAndQuery(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_query.db")

	db, err := NewSweepDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	records := []struct {
		action     string
		path       string
		objectType string
		size       int64
		errMsg     string
	}{
		{"REMOVED", "/tmp/a.txt", "file", 1024, ""},
		{"NOT_FOUND", "/tmp/b.txt", "file", 0, ""},
		{"ERROR", "/tmp/c.txt", "file", 0, "permission denied"},
		{"REMOVED", "/tmp/proj", "directory", 4096, ""},
	}
	for _, r := range records {
		if err := db.RecordSweep(r.action, r.path, r.objectType, r.size, r.errMsg); err != nil {
			t.Fatalf("Failed to record sweep for %s: %v", r.path, err)
		}
	}

	recent, err := db.GetRecentSweeps(10)
	if err != nil {
		t.Fatalf("GetRecentSweeps failed: %v", err)
	}
	if len(recent) != 4 {
		t.Errorf("Expected 4 recent records, got %d", len(recent))
	}

	errored, err := db.GetSweepsByAction("ERROR")
	if err != nil {
		t.Fatalf("GetSweepsByAction failed: %v", err)
	}
	if len(errored) != 1 {
		t.Fatalf("Expected 1 ERROR record, got %d", len(errored))
	}
	if errored[0].Path != "/tmp/c.txt" {
		t.Errorf("Expected path /tmp/c.txt, got %s", errored[0].Path)
	}
	if errored[0].ErrorMessage != "permission denied" {
		t.Errorf("Expected error message preserved, got %q", errored[0].ErrorMessage)
	}

	matched, err := db.GetSweepsByPath("/tmp/%")
	if err != nil {
		t.Fatalf("GetSweepsByPath failed: %v", err)
	}
	if len(matched) != 4 {
		t.Errorf("Expected 4 records matching /tmp/%%, got %d", len(matched))
	}
}

// TestStatsAggregation verifies per-action counts and byte totals
func TestStatsAggregation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_stats.db")

	db, err := NewSweepDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	if err := db.RecordSweep("REMOVED", "/tmp/a.txt", "file", 100, ""); err != nil {
		t.Fatalf("Failed to record: %v", err)
	}
	if err := db.RecordSweep("REMOVED", "/tmp/b.txt", "file", 200, ""); err != nil {
		t.Fatalf("Failed to record: %v", err)
	}
	if err := db.RecordSweep("NOT_FOUND", "/tmp/c.txt", "file", 0, ""); err != nil {
		t.Fatalf("Failed to record: %v", err)
	}

	stats, err := db.GetStats(30)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}

	byAction := make(map[string]ActionStat)
	for _, s := range stats {
		byAction[s.Action] = s
	}

	if got := byAction["REMOVED"]; got.Count != 2 || got.Bytes != 300 {
		t.Errorf("REMOVED stats = count %d bytes %d, expected 2/300", got.Count, got.Bytes)
	}
	if got := byAction["NOT_FOUND"]; got.Count != 1 {
		t.Errorf("NOT_FOUND stats = count %d, expected 1", got.Count)
	}
}
