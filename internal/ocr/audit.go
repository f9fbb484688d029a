package ocr

import (
	"encoding/json"

	"subsight/internal/spelling"
)

// StructuralClass is a detection's structural role on screen.
type StructuralClass string

// Structural classifications, in hint-priority order: a partial sequence
// outranks a fixed-text flag, which outranks a subtitle flag.
const (
	ClassSubtitle   StructuralClass = "subtitle"
	ClassFixed      StructuralClass = "fixed"
	ClassSequential StructuralClass = "sequential"
	ClassUnknown    StructuralClass = "unknown"
)

// FilterReason is the single canonical reason attached to each audit row by
// the subtitle inclusion filter.
type FilterReason string

// Filter reasons. Exactly one applies per row.
const (
	ReasonIncluded        FilterReason = "included_in_final_subtitles"
	ReasonPartialSequence FilterReason = "excluded_partial_sequence"
	ReasonNotSubtitle     FilterReason = "excluded_not_subtitle"
	ReasonLowConfidence   FilterReason = "excluded_low_confidence"
	ReasonMatchesFixed    FilterReason = "excluded_matches_fixed_text"
)

// SpellingStatus is the per-row spelling verdict.
type SpellingStatus string

// Spelling statuses. Excluded rows are always not_checked.
const (
	SpellingNotChecked  SpellingStatus = "not_checked"
	SpellingNoError     SpellingStatus = "no_error"
	SpellingErrDetected SpellingStatus = "error_detected"
	SpellingErrFiltered SpellingStatus = "error_filtered_out"
)

// AuditRow is the finalized, ordered, reason-coded record for one detection.
// Rows are value types; every normalization pass builds a fresh slice.
type AuditRow struct {
	Order       int    `json:"order"`
	DetectionID string `json:"detection_id"`

	Text       string   `json:"text"`
	StartTime  float64  `json:"start_time"`
	EndTime    float64  `json:"end_time"`
	BBoxTop    *float64 `json:"bbox_top"`
	BBoxLeft   *float64 `json:"bbox_left"`
	Confidence *float64 `json:"confidence"`

	RepeatCount    int    `json:"repeat_count"`
	ScoreSubtitle  int    `json:"score_subtitle"`
	ScoreFixed     int    `json:"score_fixed"`
	DecisionReason string `json:"decision_reason"`

	StructuralClassification StructuralClass `json:"structural_classification"`
	SemanticTags             []string        `json:"semantic_tags"`

	IncludedInFinalSubtitles bool         `json:"included_in_final_subtitles"`
	CheckedInSpelling        bool         `json:"checked_in_spelling"`
	SubtitleFilterReason     FilterReason `json:"subtitle_filter_reason"`

	SpellingStatus         SpellingStatus    `json:"spelling_status"`
	SpellingRawMatchCount  int               `json:"spelling_raw_match_count"`
	SpellingKeptMatchCount int               `json:"spelling_kept_match_count"`
	SpellingRawMatches     []spelling.Match  `json:"spelling_raw_matches"`
	SpellingKeptMatches    []spelling.Match  `json:"spelling_kept_matches"`
	SpellingDebug          []json.RawMessage `json:"spelling_debug"`
}

// Key returns the row's derived key for correlation with raw detections.
func (r AuditRow) Key() string {
	return DerivedKey(r.Text, r.StartTime, r.EndTime)
}

// structuralClassFor derives the structural role from boolean hints. The
// check order matters: partial-sequence and fixed-text both override a
// simultaneous subtitle flag.
func structuralClassFor(d Detection) StructuralClass {
	switch {
	case d.IsPartialSequence:
		return ClassSequential
	case d.IsFixedText:
		return ClassFixed
	case d.IsSubtitle:
		return ClassSubtitle
	default:
		return ClassUnknown
	}
}
