package ocr

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"subsight/internal/spelling"
)

// ClassifyOptions extends the pipeline options with the local classification
// knobs. Zero values fall back to the package defaults; a zero VideoDuration
// is inferred from the latest detection end time.
type ClassifyOptions struct {
	Options
	MergeOverlapThreshold float64
	MergeMaxGapSeconds    float64
	VideoDuration         float64
}

// ClassifyRaw reproduces the full upstream classification locally from a raw
// video-intelligence OCR document: extract, merge partial sequences, score
// subtitle-versus-fixed, tag semantics, order, filter, spell-check the final
// subtitles through checker, and normalize into the audit response. A nil
// checker skips spell-checking; included rows then report no_error.
func ClassifyRaw(ctx context.Context, rawPayload []byte, checker spelling.Checker, opts ClassifyOptions) (Result, error) {
	opts.Options = opts.Options.withDefaults()

	raw, err := ExtractDetections(rawPayload)
	if err != nil {
		return Result{}, err
	}

	merged := MergePartialSequences(raw, opts.MergeOverlapThreshold, opts.MergeMaxGapSeconds)

	duration := opts.VideoDuration
	if duration <= 0 {
		for _, det := range merged {
			duration = max(duration, det.EndTime)
		}
	}

	classified := ClassifySubtitleVsFixed(merged, duration)
	classified = ClassifySemanticTags(classified)
	sort.SliceStable(classified, func(i, j int) bool {
		a, b := classified[i], classified[j]
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		if a.EndTime != b.EndTime {
			return a.EndTime < b.EndTime
		}
		return strings.ToLower(a.Text) < strings.ToLower(b.Text)
	})
	for i := range classified {
		classified[i].DetectionID = fmt.Sprintf("det_%04d", i)
	}

	filtered := BuildFilteredSubtitles(classified, opts.MinSubtitleConfidence)
	filteredIDs := make(map[string]struct{}, len(filtered))
	for _, det := range filtered {
		filteredIDs[det.DetectionID] = struct{}{}
	}

	var fixedTexts []string
	for _, det := range classified {
		if det.IsFixedText {
			fixedTexts = append(fixedTexts, det.Text)
		}
	}

	checkedIDs := make(map[string]struct{})
	rawMatches := make(map[string][]spelling.Match)
	keptMatches := make(map[string][]spelling.Match)
	totalRaw, totalKept := 0, 0
	if checker != nil {
		for _, det := range filtered {
			matches, err := checker.Check(ctx, det.Text)
			if err != nil {
				return Result{}, fmt.Errorf("checking spelling for detection %s: %w", det.DetectionID, err)
			}
			checkedIDs[det.DetectionID] = struct{}{}
			kept := spelling.Filter(matches, fixedTexts)
			rawMatches[det.DetectionID] = matches
			keptMatches[det.DetectionID] = kept
			totalRaw += len(matches)
			totalKept += len(kept)
		}
	}

	rows := buildClassifiedRows(classified, filteredIDs, checkedIDs, rawMatches, keptMatches, opts.MinSubtitleConfidence)

	counts := Counts{
		Raw:                 len(raw),
		Merged:              len(merged),
		FilteredSubtitles:   len(filtered),
		SpellingChecked:     len(checkedIDs),
		SpellingRawMatches:  totalRaw,
		SpellingKeptMatches: totalKept,
	}
	for _, det := range classified {
		if det.IsSubtitle {
			counts.Subtitle++
		}
		if det.IsFixedText {
			counts.Fixed++
		}
		if det.IsPartialSequence {
			counts.Partial++
		}
		for _, tag := range det.SemanticTags {
			switch tag {
			case TagBrandName:
				counts.BrandName++
			case TagProperName:
				counts.ProperName++
			}
		}
	}
	for _, row := range rows {
		switch row.SpellingStatus {
		case SpellingErrDetected:
			counts.SpellingWithError++
		case SpellingErrFiltered:
			counts.SpellingFilteredOut++
		case SpellingNoError:
			counts.SpellingNoError++
		}
	}

	payload := Payload{
		Status:           "ok",
		Mode:             "classify_ocr_payload",
		Counts:           counts,
		hasRawCount:      true,
		hasFilteredCount: true,
		RawDetections:    raw,
		AuditRows:        rows,
	}
	return Normalize(payload, opts.Options), nil
}

// buildClassifiedRows turns fully classified detections into audit rows,
// assigning the canonical filter reason and spelling status per detection.
func buildClassifiedRows(
	classified []Detection,
	filteredIDs, checkedIDs map[string]struct{},
	rawMatches, keptMatches map[string][]spelling.Match,
	minConfidence float64,
) []AuditRow {
	rows := make([]AuditRow, 0, len(classified))
	for index, det := range classified {
		_, included := filteredIDs[det.DetectionID]
		_, checked := checkedIDs[det.DetectionID]

		var reason FilterReason
		switch {
		case det.IsPartialSequence:
			reason = ReasonPartialSequence
		case !det.IsSubtitle:
			reason = ReasonNotSubtitle
		case confidenceValue(det.Confidence) < minConfidence:
			reason = ReasonLowConfidence
		case !included:
			reason = ReasonMatchesFixed
		default:
			reason = ReasonIncluded
		}

		rawList := rawMatches[det.DetectionID]
		keptList := keptMatches[det.DetectionID]
		var status SpellingStatus
		switch {
		case !checked:
			status = SpellingNotChecked
		case len(rawList) == 0:
			status = SpellingNoError
		case len(keptList) > 0:
			status = SpellingErrDetected
		default:
			status = SpellingErrFiltered
		}

		box := det.box()
		top, left := box.Top, box.Left
		row := AuditRow{
			Order:                    index + 1,
			DetectionID:              det.DetectionID,
			Text:                     det.Text,
			StartTime:                det.StartTime,
			EndTime:                  det.EndTime,
			BBoxTop:                  &top,
			BBoxLeft:                 &left,
			Confidence:               det.Confidence,
			RepeatCount:              det.RepeatCount,
			ScoreSubtitle:            det.ScoreSubtitle,
			ScoreFixed:               det.ScoreFixed,
			DecisionReason:           det.DecisionReason,
			StructuralClassification: structuralClassFor(det),
			SemanticTags:             append([]string{}, det.SemanticTags...),
			IncludedInFinalSubtitles: included,
			CheckedInSpelling:        checked,
			SubtitleFilterReason:     reason,
			SpellingStatus:           status,
			SpellingRawMatchCount:    len(rawList),
			SpellingKeptMatchCount:   len(keptList),
			SpellingRawMatches:       append([]spelling.Match{}, rawList...),
			SpellingKeptMatches:      append([]spelling.Match{}, keptList...),
			SpellingDebug:            []json.RawMessage{},
		}
		rows = append(rows, row)
	}
	return rows
}
