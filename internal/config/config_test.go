package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".nxgraphrc.yml", `version: 1
defaults:
  max_depth: 6
  max_paths: 50
  project: web
`)

	cfg, err := LoadProjectConfig(dir, "")
	if err != nil {
		t.Fatalf("LoadProjectConfig() error: %v", err)
	}
	if cfg == nil {
		t.Fatal("config should be loaded")
	}

	if got := cfg.MaxDepth(10); got != 6 {
		t.Errorf("MaxDepth = %d, want 6", got)
	}
	if got := cfg.MaxPaths(100); got != 50 {
		t.Errorf("MaxPaths = %d, want 50", got)
	}
	if got := cfg.MaxCycles(100); got != 100 {
		t.Errorf("MaxCycles fallback = %d, want 100", got)
	}
	if got := cfg.Project(""); got != "web" {
		t.Errorf("Project = %q, want web", got)
	}
}

func TestLoadProjectConfigAbsent(t *testing.T) {
	cfg, err := LoadProjectConfig(t.TempDir(), "")
	if err != nil {
		t.Fatalf("LoadProjectConfig() error: %v", err)
	}
	if cfg != nil {
		t.Errorf("config = %+v, want nil when absent", cfg)
	}

	// A nil config falls back everywhere.
	if got := cfg.MaxDepth(10); got != 10 {
		t.Errorf("nil MaxDepth = %d, want 10", got)
	}
}

func TestLoadProjectConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad version", "version: 9\n"},
		{"negative bound", "defaults:\n  max_depth: -1\n"},
		{"unknown project", "defaults:\n  project: desktop\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, ".nxgraphrc.yml", tt.content)
			if _, err := LoadProjectConfig(dir, ""); err == nil {
				t.Error("invalid config should fail to load")
			}
		})
	}
}

func TestLoadProjectConfigExplicitPath(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "custom.yml", "defaults:\n  max_cycles: 7\n")

	cfg, err := LoadProjectConfig(t.TempDir(), filepath.Join(dir, "custom.yml"))
	if err != nil {
		t.Fatalf("LoadProjectConfig() error: %v", err)
	}
	if got := cfg.MaxCycles(100); got != 7 {
		t.Errorf("MaxCycles = %d, want 7", got)
	}
}
