package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Classification.MinSubtitleConfidence != 0.90 {
		t.Errorf("min_subtitle_confidence = %v", cfg.Classification.MinSubtitleConfidence)
	}
	if cfg.Sync.WarningMisalignedRatio != 0.10 {
		t.Errorf("warning_misaligned_ratio = %v", cfg.Sync.WarningMisalignedRatio)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Error("missing file reported as existing")
	}
	if resolved == "" {
		t.Error("resolved path empty")
	}
	if cfg.Classification.SimultaneityWindowSeconds != 0.35 {
		t.Errorf("default not applied: %v", cfg.Classification.SimultaneityWindowSeconds)
	}
}

func TestLoadOverridesAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subsight.toml")
	content := `
[classification]
min_subtitle_confidence = 0.75

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Error("existing file reported as missing")
	}
	if cfg.Classification.MinSubtitleConfidence != 0.75 {
		t.Errorf("override lost: %v", cfg.Classification.MinSubtitleConfidence)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("logging not normalized: %+v", cfg.Logging)
	}
	// Untouched sections keep defaults.
	if cfg.Sync.SyncedThreshold != 0.8 {
		t.Errorf("sync default lost: %v", cfg.Sync.SyncedThreshold)
	}
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subsight.toml")
	content := `
[classification]
min_subtitle_confidence = 1.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := Load(path); err == nil {
		t.Error("out-of-range threshold accepted")
	}
}

func TestSpellingValidation(t *testing.T) {
	cfg := Default()
	cfg.Spelling.Enabled = true
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	cfg.Spelling.APIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Error("enabled spelling without api key accepted")
	}
	cfg.Spelling.APIKey = "key"
	cfg.Spelling.BaseURL = "https://example.test/spellcheck"
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid spelling config rejected: %v", err)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[classification]") {
		t.Error("sample missing classification section")
	}
}

func TestDatabaseAndLockPaths(t *testing.T) {
	cfg := Default()
	cfg.Paths.DataDir = "/tmp/subsight-test"
	if cfg.DatabasePath() != "/tmp/subsight-test/subsight.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath())
	}
	if cfg.LockPath() != "/tmp/subsight-test/subsight.lock" {
		t.Errorf("LockPath = %q", cfg.LockPath())
	}
}
