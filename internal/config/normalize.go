package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeThresholds()
	c.normalizeSpelling()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeThresholds() {
	defaults := Default()
	if c.Classification.MinSubtitleConfidence <= 0 {
		c.Classification.MinSubtitleConfidence = defaults.Classification.MinSubtitleConfidence
	}
	if c.Classification.SimultaneityWindowSeconds <= 0 {
		c.Classification.SimultaneityWindowSeconds = defaults.Classification.SimultaneityWindowSeconds
	}
	if c.Classification.MergeBBoxOverlap <= 0 {
		c.Classification.MergeBBoxOverlap = defaults.Classification.MergeBBoxOverlap
	}
	if c.Classification.MergeMaxGapSeconds <= 0 {
		c.Classification.MergeMaxGapSeconds = defaults.Classification.MergeMaxGapSeconds
	}
	if c.Sync.SyncedThreshold <= 0 {
		c.Sync.SyncedThreshold = defaults.Sync.SyncedThreshold
	}
	if c.Sync.LikelySyncedThreshold <= 0 {
		c.Sync.LikelySyncedThreshold = defaults.Sync.LikelySyncedThreshold
	}
	if c.Sync.DuplicateOverlapThreshold <= 0 {
		c.Sync.DuplicateOverlapThreshold = defaults.Sync.DuplicateOverlapThreshold
	}
	if c.Sync.WarningMisalignedRatio <= 0 {
		c.Sync.WarningMisalignedRatio = defaults.Sync.WarningMisalignedRatio
	}
	if c.Mismatch.ToleranceSeconds <= 0 {
		c.Mismatch.ToleranceSeconds = defaults.Mismatch.ToleranceSeconds
	}
}

func (c *Config) normalizeSpelling() {
	c.Spelling.APIKey = strings.TrimSpace(c.Spelling.APIKey)
	if c.Spelling.APIKey == "" {
		if value, ok := os.LookupEnv("SPELLCHECK_API_KEY"); ok {
			c.Spelling.APIKey = strings.TrimSpace(value)
		}
	}
	c.Spelling.BaseURL = strings.TrimSpace(c.Spelling.BaseURL)
	if c.Spelling.TimeoutSeconds <= 0 {
		c.Spelling.TimeoutSeconds = defaultSpellingTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
