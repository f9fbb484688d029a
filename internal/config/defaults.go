package config

import (
	"subsight/internal/ocr"
	"subsight/internal/syncreport"
	"subsight/internal/transcript"
)

const (
	defaultDataDir                = "~/.local/share/subsight"
	defaultLogDir                 = "~/.local/share/subsight/logs"
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
	defaultSpellingTimeoutSeconds = 30
)

// Default returns a Config populated with repository defaults. Threshold
// defaults come from the owning packages so there is a single definition of
// each constant.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Classification: Classification{
			MinSubtitleConfidence:     ocr.DefaultMinSubtitleConfidence,
			SimultaneityWindowSeconds: ocr.DefaultSimultaneityWindow,
			MergeBBoxOverlap:          ocr.DefaultMergeOverlapThreshold,
			MergeMaxGapSeconds:        ocr.DefaultMergeMaxGapSeconds,
		},
		Sync: Sync{
			SyncedThreshold:           syncreport.DefaultSyncedThreshold,
			LikelySyncedThreshold:     syncreport.DefaultLikelySyncedThreshold,
			DuplicateOverlapThreshold: syncreport.DefaultDuplicateOverlapThreshold,
			WarningMisalignedRatio:    syncreport.DefaultWarningMisalignedRatio,
		},
		Mismatch: Mismatch{
			ToleranceSeconds: transcript.DefaultToleranceSeconds,
		},
		Spelling: Spelling{
			TimeoutSeconds: defaultSpellingTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
