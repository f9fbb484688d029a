package ocr

import (
	"encoding/json"
	"fmt"

	"subsight/internal/spelling"
	"subsight/internal/textutil"
)

// buildFallbackRows synthesizes audit rows from boolean detection hints when
// the upstream payload carried none. Rows come out in the payload's original
// order; the ordering engine renumbers them afterwards.
func buildFallbackRows(p Payload, minConfidence float64) []AuditRow {
	filteredKeys := make(map[string]struct{}, len(p.FilteredSubtitles))
	for _, d := range p.FilteredSubtitles {
		filteredKeys[d.Key()] = struct{}{}
	}

	fixedTexts := make(map[string]struct{})
	for _, d := range p.ClassifiedDetections {
		if !d.IsFixedText {
			continue
		}
		if text := textutil.Normalize(d.Text); text != "" {
			fixedTexts[text] = struct{}{}
		}
	}

	rows := make([]AuditRow, 0, len(p.ClassifiedDetections))
	for index, d := range p.ClassifiedDetections {
		confident := confidenceValue(d.Confidence) >= minConfidence

		normalizedText := textutil.Normalize(d.Text)
		matchesFixed := false
		if normalizedText != "" {
			_, matchesFixed = fixedTexts[normalizedText]
		}

		includedByRules := d.IsSubtitle && !d.IsPartialSequence && confident && !matchesFixed

		// When upstream supplied its own filtered set, membership is
		// required on top of the rules; an empty set means upstream did
		// not distinguish filtering and the rules stand alone.
		included := includedByRules
		if len(filteredKeys) > 0 {
			_, inSet := filteredKeys[d.Key()]
			included = inSet && includedByRules
		}

		var reason FilterReason
		switch {
		case d.IsPartialSequence:
			reason = ReasonPartialSequence
		case !d.IsSubtitle:
			reason = ReasonNotSubtitle
		case !confident:
			reason = ReasonLowConfidence
		case matchesFixed:
			reason = ReasonMatchesFixed
		case included:
			reason = ReasonIncluded
		default:
			// Rules passed but the upstream filtered set disagreed; the
			// only remaining upstream motive is a fixed-text collision it
			// saw and we cannot reconstruct.
			reason = ReasonMatchesFixed
		}

		status := SpellingNotChecked
		if included {
			status = SpellingNoError
		}

		row := AuditRow{
			Order:                    index + 1,
			DetectionID:              fmt.Sprintf("legacy_%d", index),
			Text:                     d.Text,
			StartTime:                d.StartTime,
			EndTime:                  d.EndTime,
			Confidence:               d.Confidence,
			DecisionReason:           "legacy_fallback",
			StructuralClassification: structuralClassFor(d),
			SemanticTags:             append([]string(nil), d.SemanticTags...),
			IncludedInFinalSubtitles: included,
			CheckedInSpelling:        included,
			SubtitleFilterReason:     reason,
			SpellingStatus:           status,
			SpellingRawMatches:       []spelling.Match{},
			SpellingKeptMatches:      []spelling.Match{},
			SpellingDebug:            []json.RawMessage{},
		}
		if row.SemanticTags == nil {
			row.SemanticTags = []string{}
		}
		if d.BBox != nil {
			top, left := d.BBox.Top, d.BBox.Left
			row.BBoxTop, row.BBoxLeft = &top, &left
		}
		rows = append(rows, row)
	}
	return rows
}
