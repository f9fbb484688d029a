package ocr

import (
	"encoding/json"

	"subsight/internal/spelling"
)

// applyInclusionFilter is the single source of truth for inclusion. It runs
// on every pass regardless of which path produced the rows: an earlier stage
// (or upstream service) that marked a row included while its confidence
// fails the gate is downgraded here, and the inclusion flag is recomputed
// from the final reason so the two can never disagree.
func applyInclusionFilter(rows []AuditRow, minConfidence float64) []AuditRow {
	filtered := append([]AuditRow(nil), rows...)
	for i := range filtered {
		row := &filtered[i]

		if row.SubtitleFilterReason == ReasonIncluded && confidenceValue(row.Confidence) < minConfidence {
			row.SubtitleFilterReason = ReasonLowConfidence
		}
		row.IncludedInFinalSubtitles = row.SubtitleFilterReason == ReasonIncluded
		row.CheckedInSpelling = row.IncludedInFinalSubtitles

		applyRowDefaults(row)
	}
	return filtered
}

// applyRowDefaults substitutes the stated defaults for fields a legacy or
// partial upstream payload may have omitted, so consumers never see empty
// enums or nil slices.
func applyRowDefaults(row *AuditRow) {
	if row.DecisionReason == "" {
		row.DecisionReason = "unknown"
	}
	if row.StructuralClassification == "" {
		row.StructuralClassification = ClassUnknown
	}
	if row.SubtitleFilterReason == "" {
		row.SubtitleFilterReason = ReasonNotSubtitle
	}
	if row.SemanticTags == nil {
		row.SemanticTags = []string{}
	}
	if row.SpellingRawMatches == nil {
		row.SpellingRawMatches = []spelling.Match{}
	}
	if row.SpellingKeptMatches == nil {
		row.SpellingKeptMatches = []spelling.Match{}
	}
	if row.SpellingDebug == nil {
		row.SpellingDebug = []json.RawMessage{}
	}
}
