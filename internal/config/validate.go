package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateClassification(); err != nil {
		return err
	}
	if err := c.validateSync(); err != nil {
		return err
	}
	if err := c.validateMismatch(); err != nil {
		return err
	}
	return c.validateSpelling()
}

func (c *Config) validateClassification() error {
	if err := ensureRatioMap(map[string]float64{
		"classification.min_subtitle_confidence": c.Classification.MinSubtitleConfidence,
		"classification.merge_bbox_overlap":      c.Classification.MergeBBoxOverlap,
	}); err != nil {
		return err
	}
	if c.Classification.SimultaneityWindowSeconds <= 0 {
		return errors.New("classification.simultaneity_window_seconds must be positive")
	}
	if c.Classification.MergeMaxGapSeconds <= 0 {
		return errors.New("classification.merge_max_gap_seconds must be positive")
	}
	return nil
}

func (c *Config) validateSync() error {
	if err := ensureRatioMap(map[string]float64{
		"sync.synced_threshold":            c.Sync.SyncedThreshold,
		"sync.likely_synced_threshold":     c.Sync.LikelySyncedThreshold,
		"sync.duplicate_overlap_threshold": c.Sync.DuplicateOverlapThreshold,
		"sync.warning_misaligned_ratio":    c.Sync.WarningMisalignedRatio,
	}); err != nil {
		return err
	}
	if c.Sync.LikelySyncedThreshold > c.Sync.SyncedThreshold {
		return errors.New("sync.likely_synced_threshold must not exceed sync.synced_threshold")
	}
	return nil
}

func (c *Config) validateMismatch() error {
	if c.Mismatch.ToleranceSeconds <= 0 {
		return errors.New("mismatch.tolerance_seconds must be positive")
	}
	return nil
}

func (c *Config) validateSpelling() error {
	if !c.Spelling.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Spelling.APIKey) == "" {
		return errors.New("spelling.api_key must be set when spelling.enabled is true (or set SPELLCHECK_API_KEY)")
	}
	if strings.TrimSpace(c.Spelling.BaseURL) == "" {
		return errors.New("spelling.base_url must be set when spelling.enabled is true")
	}
	return nil
}

func ensureRatioMap(values map[string]float64) error {
	for key, value := range values {
		if value <= 0 || value > 1 {
			return fmt.Errorf("%s must be between 0 and 1", key)
		}
	}
	return nil
}
