package config

import (
	"path/filepath"
	"testing"
)

func TestThresholdDefaults(t *testing.T) {
	t.Setenv("DATA_PATH", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := Thresholds{
		LabelMinSamples:      3,
		AgingLabelMinSamples: 2,
		TrendMinSamples:      3,
		TopLabels:            3,
		OldestLimit:          15,
	}
	if cfg.Thresholds != want {
		t.Errorf("Thresholds = %+v, want %+v", cfg.Thresholds, want)
	}
}

func TestThresholdOverrides(t *testing.T) {
	t.Setenv("DATA_PATH", t.TempDir())
	t.Setenv("LABEL_MIN_SAMPLES", "5")
	t.Setenv("OLDEST_ISSUE_LIMIT", "30")
	t.Setenv("GITHUB_EVENT_CONCURRENCY", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Thresholds.LabelMinSamples != 5 {
		t.Errorf("LabelMinSamples = %d, want 5", cfg.Thresholds.LabelMinSamples)
	}
	if cfg.Thresholds.OldestLimit != 30 {
		t.Errorf("OldestLimit = %d, want 30", cfg.Thresholds.OldestLimit)
	}
	if cfg.GitHub.EventConcurrency != 8 {
		t.Errorf("EventConcurrency = %d, want 8", cfg.GitHub.EventConcurrency)
	}
}

func TestInvalidIntFallsBack(t *testing.T) {
	t.Setenv("DATA_PATH", t.TempDir())
	t.Setenv("LABEL_MIN_SAMPLES", "zero")
	t.Setenv("TREND_MIN_SAMPLES", "-1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Thresholds.LabelMinSamples != 3 {
		t.Errorf("LabelMinSamples = %d, want fallback 3", cfg.Thresholds.LabelMinSamples)
	}
	if cfg.Thresholds.TrendMinSamples != 3 {
		t.Errorf("TrendMinSamples = %d, want fallback 3 for non-positive value", cfg.Thresholds.TrendMinSamples)
	}
}

func TestSnapshotPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_PATH", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := filepath.Join(dir, "snapshots", "acme_app.jsonl")
	if got := cfg.SnapshotPath("acme", "app"); got != want {
		t.Errorf("SnapshotPath = %q, want %q", got, want)
	}
}
