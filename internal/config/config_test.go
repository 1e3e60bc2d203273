package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
targets:
  - /data/projects/zion/compile_test.zig
  - /data/projects/zion/test_search.zig
directory: /data/projects/zion/test-project
safety:
  allowed_roots:
    - /data/projects/zion
database_path: /tmp/sweeps.db
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Targets) != 2 {
		t.Errorf("Expected 2 targets, got %d", len(cfg.Targets))
	}
	if cfg.Targets[0] != "/data/projects/zion/compile_test.zig" {
		t.Errorf("Unexpected first target: %s", cfg.Targets[0])
	}
	if cfg.Directory != "/data/projects/zion/test-project" {
		t.Errorf("Unexpected directory: %s", cfg.Directory)
	}
	if len(cfg.Safety.AllowedRoots) != 1 {
		t.Errorf("Expected 1 allowed root, got %d", len(cfg.Safety.AllowedRoots))
	}
}

func TestDefaultsApplied(t *testing.T) {
	path := writeConfig(t, `
targets:
  - /tmp/a.txt
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.IntervalMinutes != 15 {
		t.Errorf("Expected default interval 15, got %d", cfg.IntervalMinutes)
	}
	if cfg.Prometheus.Port != 9191 {
		t.Errorf("Expected default prometheus port 9191, got %d", cfg.Prometheus.Port)
	}
	if cfg.Logging.RotationDays != 30 {
		t.Errorf("Expected default rotation 30, got %d", cfg.Logging.RotationDays)
	}
	if cfg.DatabasePath != "/var/lib/path-sweep/sweeps.db" {
		t.Errorf("Unexpected default database path: %s", cfg.DatabasePath)
	}
}

func TestRejectsEmptyTargets(t *testing.T) {
	path := writeConfig(t, `
interval_minutes: 5
`)

	if _, err := Load(path); err == nil {
		t.Error("Expected error for config without targets, got nil")
	}
}

func TestRejectsRelativePaths(t *testing.T) {
	path := writeConfig(t, `
targets:
  - relative/path.txt
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected error for relative target path, got nil")
	}
	if !strings.Contains(err.Error(), "absolute") {
		t.Errorf("Expected absolute-path error, got: %v", err)
	}
}

func TestRejectsDuplicateTargets(t *testing.T) {
	path := writeConfig(t, `
targets:
  - /tmp/a.txt
  - /tmp/sub/../a.txt
`)

	if _, err := Load(path); err == nil {
		t.Error("Expected error for duplicate target after cleaning, got nil")
	}
}

func TestTargetOrderPreserved(t *testing.T) {
	path := writeConfig(t, `
targets:
  - /tmp/z.txt
  - /tmp/a.txt
  - /tmp/m.txt
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []string{"/tmp/z.txt", "/tmp/a.txt", "/tmp/m.txt"}
	for i, w := range want {
		if cfg.Targets[i] != w {
			t.Errorf("Target %d: expected %s, got %s", i, w, cfg.Targets[i])
		}
	}
}

func TestDirectoryOnlyConfig(t *testing.T) {
	path := writeConfig(t, `
directory: /tmp/proj
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Directory != "/tmp/proj" {
		t.Errorf("Unexpected directory: %s", cfg.Directory)
	}
}
