package safety

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestProtectedPathBlocking verifies protected paths are blocked
func TestProtectedPathBlocking(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"root slash", "/", true},
		{"etc", "/etc", true},
		{"etc subdir", "/etc/ssh", true},
		{"bin", "/bin", true},
		{"bin file", "/bin/bash", true},
		{"usr", "/usr", true},
		{"boot", "/boot", true},
		{"lib", "/lib", true},
		{"lib64", "/lib64", true},
		{"sbin", "/sbin", true},
		{"pathsweep config", "/etc/path-sweep", true},
		{"pathsweep config file", "/etc/path-sweep/config.yaml", true},
		{"pathsweep db", "/var/lib/path-sweep", true},
		{"pathsweep db file", "/var/lib/path-sweep/sweeps.db", true},
		{"tmp allowed", "/tmp", false},
		{"tmp file", "/tmp/file.txt", false},
		{"home user", "/home/user", false},
	}

	protected := defaultProtected(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsProtectedPath(tt.path, protected)
			if result != tt.expected {
				t.Errorf("IsProtectedPath(%s) = %v, expected %v", tt.path, result, tt.expected)
			}
		})
	}
}

// TestAllowedRootEnforcement verifies paths are restricted to allowed roots
func TestAllowedRootEnforcement(t *testing.T) {
	allowed := []string{"/tmp/allowed", "/data/sweep"}

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"inside allowed tmp", "/tmp/allowed/file.txt", true},
		{"inside allowed data", "/data/sweep/old.log", true},
		{"allowed root exact", "/tmp/allowed", true},
		{"outside allowed", "/tmp/notallowed/file.txt", false},
		{"parent of allowed", "/tmp", false},
		{"completely different", "/home/user/file.txt", false},
		{"root", "/", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsWithinAllowedRoots(tt.path, allowed)
			if result != tt.expected {
				t.Errorf("IsWithinAllowedRoots(%s) = %v, expected %v", tt.path, result, tt.expected)
			}
		})
	}
}

// TestTraversalDetection verifies ".." segments are detected
func TestTraversalDetection(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"normal path", "/tmp/file.txt", false},
		{"dotdot parent", "/tmp/../etc/passwd", true},
		{"dotdot at start", "../etc/passwd", true},
		{"dotdot at end", "/tmp/..", true},
		{"single dot ok", "/tmp/./file", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DetectTraversal(tt.path)
			if result != tt.expected {
				t.Errorf("DetectTraversal(%s) = %v, expected %v", tt.path, result, tt.expected)
			}
		})
	}
}

// TestValidateTargetWithoutRoots verifies that an empty allowed-roots
// list skips containment but still blocks protected paths.
func TestValidateTargetWithoutRoots(t *testing.T) {
	v := NewValidator(nil, nil)

	if err := v.ValidateTarget("/etc/passwd"); !errors.Is(err, ErrProtectedPath) {
		t.Errorf("ValidateTarget(/etc/passwd) = %v, expected ErrProtectedPath", err)
	}
	if err := v.ValidateTarget("/tmp/../etc/passwd"); err == nil {
		t.Error("ValidateTarget with traversal expected error, got nil")
	}
	if err := v.ValidateTarget("/tmp/anything.txt"); err != nil {
		t.Errorf("ValidateTarget(/tmp/anything.txt) unexpected error: %v", err)
	}
}

// TestValidateTargetWithRoots verifies containment when roots are set
func TestValidateTargetWithRoots(t *testing.T) {
	tmpDir := t.TempDir()
	v := NewValidator([]string{tmpDir}, nil)

	inside := filepath.Join(tmpDir, "junk.txt")
	if err := os.WriteFile(inside, []byte("junk"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if err := v.ValidateTarget(inside); err != nil {
		t.Errorf("ValidateTarget(%s) unexpected error: %v", inside, err)
	}
	if err := v.ValidateTarget("/home/user/file.txt"); !errors.Is(err, ErrOutsideAllowed) {
		t.Errorf("ValidateTarget outside roots = %v, expected ErrOutsideAllowed", err)
	}
	// Absent paths inside the roots pass; the delete attempt reports on its own
	if err := v.ValidateTarget(filepath.Join(tmpDir, "nonexistent")); err != nil {
		t.Errorf("ValidateTarget on absent path unexpected error: %v", err)
	}
}

// TestSymlinkEscapeDetection verifies symlinks escaping allowed roots are detected
func TestSymlinkEscapeDetection(t *testing.T) {
	tmpDir := t.TempDir()
	allowedDir := filepath.Join(tmpDir, "allowed")
	outsideDir := filepath.Join(tmpDir, "outside")

	if err := os.MkdirAll(allowedDir, 0755); err != nil {
		t.Fatalf("Failed to create allowed dir: %v", err)
	}
	if err := os.MkdirAll(outsideDir, 0755); err != nil {
		t.Fatalf("Failed to create outside dir: %v", err)
	}

	outsideFile := filepath.Join(outsideDir, "target.txt")
	if err := os.WriteFile(outsideFile, []byte("outside"), 0644); err != nil {
		t.Fatalf("Failed to create outside file: %v", err)
	}

	escapeLink := filepath.Join(allowedDir, "link_to_outside")
	if err := os.Symlink(outsideFile, escapeLink); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}

	insideFile := filepath.Join(allowedDir, "inside.txt")
	if err := os.WriteFile(insideFile, []byte("inside"), 0644); err != nil {
		t.Fatalf("Failed to create inside file: %v", err)
	}
	safeLink := filepath.Join(allowedDir, "safe_link")
	if err := os.Symlink(insideFile, safeLink); err != nil {
		t.Fatalf("Failed to create safe symlink: %v", err)
	}

	v := NewValidator([]string{allowedDir}, nil)

	if err := v.ValidateTarget(escapeLink); !errors.Is(err, ErrSymlinkEscape) {
		t.Errorf("ValidateTarget(%s) = %v, expected ErrSymlinkEscape", escapeLink, err)
	}
	if err := v.ValidateTarget(safeLink); err != nil {
		t.Errorf("ValidateTarget(%s) unexpected error: %v", safeLink, err)
	}
}
