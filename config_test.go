package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegionOverlayMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()
	grid, rules, err := LoadRegionOverlay("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grid) != len(DefaultGridFactorTable()) {
		t.Fatal("expected default grid table")
	}
	if len(rules) != len(DefaultLocationRules()) {
		t.Fatal("expected default location rules")
	}
}

func TestLoadRegionOverlayAppliesOverrides(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.yaml")
	content := "gridFactors:\n  CN-EC: 0.5\nlocations:\n  - substrings: [\"Testville\"]\n    region: CN-EC\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write overlay failed: %v", err)
	}

	grid, rules, err := LoadRegionOverlay(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grid["CN-EC"] != 0.5 {
		t.Fatalf("expected overridden grid factor 0.5, got %v", grid["CN-EC"])
	}
	if len(rules) != 1 {
		t.Fatalf("expected overlay to replace location rules, got %d", len(rules))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataDir == "" || cfg.APIAddr == "" {
		t.Fatal("expected non-empty defaults")
	}
}
