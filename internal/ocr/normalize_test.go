package ocr

import (
	"encoding/json"
	"testing"
)

func TestNormalizeDowngradesLowConfidenceInclusion(t *testing.T) {
	// Upstream says included; confidence 0.4 says otherwise. The central
	// gate wins.
	p := Payload{
		AuditRows: []AuditRow{{
			DetectionID:              "det_0000",
			Text:                     "overconfident upstream",
			StartTime:                1,
			EndTime:                  2,
			Confidence:               fptr(0.4),
			SubtitleFilterReason:     ReasonIncluded,
			IncludedInFinalSubtitles: true,
			CheckedInSpelling:        true,
		}},
	}

	result := Normalize(p, Options{})
	row := result.AuditRows[0]
	if row.SubtitleFilterReason != ReasonLowConfidence {
		t.Errorf("reason = %s, want %s", row.SubtitleFilterReason, ReasonLowConfidence)
	}
	if row.IncludedInFinalSubtitles || row.CheckedInSpelling {
		t.Errorf("row still included: %+v", row)
	}
	if row.SpellingStatus != SpellingNotChecked {
		t.Errorf("spelling status = %s, want %s", row.SpellingStatus, SpellingNotChecked)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	p := Payload{
		ClassifiedDetections: []Detection{
			{Text: "BRAND", StartTime: 1.05, EndTime: 1.95, Confidence: fptr(0.95), IsFixedText: true,
				BBox: &BBox{Top: 0.05, Left: 0.1, Bottom: 0.1, Right: 0.3}},
			{Text: "Hello there", StartTime: 1.0, EndTime: 2.0, Confidence: fptr(0.95), IsSubtitle: true,
				BBox: &BBox{Top: 0.8, Left: 0.1, Bottom: 0.9, Right: 0.6}},
			{Text: "Ho", StartTime: 3.0, EndTime: 3.2, Confidence: fptr(0.99), IsSubtitle: true, IsPartialSequence: true},
			{Text: "faint", StartTime: 5.0, EndTime: 6.0, Confidence: fptr(0.3), IsSubtitle: true},
		},
	}

	first := Normalize(p, Options{})
	second := Normalize(Payload{
		RawDetections: first.RawDetections,
		AuditRows:     first.AuditRows,
	}, Options{})

	if len(first.AuditRows) != len(second.AuditRows) {
		t.Fatalf("row count changed: %d vs %d", len(first.AuditRows), len(second.AuditRows))
	}
	for i := range first.AuditRows {
		a, b := first.AuditRows[i], second.AuditRows[i]
		if a.Order != b.Order ||
			a.StructuralClassification != b.StructuralClassification ||
			a.IncludedInFinalSubtitles != b.IncludedInFinalSubtitles ||
			a.SubtitleFilterReason != b.SubtitleFilterReason {
			t.Errorf("row %d changed on second pass:\nfirst:  %+v\nsecond: %+v", i, a, b)
		}
	}
}

func TestNormalizePositionBackfill(t *testing.T) {
	p := Payload{
		RawDetections: []Detection{
			{Text: "  Hello There ", StartTime: 1.0, EndTime: 2.0,
				BBox: &BBox{Top: 0.82, Left: 0.12, Bottom: 0.9, Right: 0.5}},
		},
		AuditRows: []AuditRow{{
			DetectionID:          "det_0000",
			Text:                 "hello there",
			StartTime:            1.0,
			EndTime:              2.0,
			Confidence:           fptr(0.95),
			SubtitleFilterReason: ReasonIncluded,
		}},
	}

	result := Normalize(p, Options{})
	row := result.AuditRows[0]
	if row.BBoxTop == nil || *row.BBoxTop != 0.82 {
		t.Errorf("bbox_top not backfilled: %v", row.BBoxTop)
	}
	if row.BBoxLeft == nil || *row.BBoxLeft != 0.12 {
		t.Errorf("bbox_left not backfilled: %v", row.BBoxLeft)
	}
}

func TestNormalizeBackfillKeepsExistingPosition(t *testing.T) {
	p := Payload{
		RawDetections: []Detection{
			{Text: "line", StartTime: 1, EndTime: 2, BBox: &BBox{Top: 0.1, Left: 0.1, Bottom: 0.2, Right: 0.2}},
		},
		AuditRows: []AuditRow{{
			Text: "line", StartTime: 1, EndTime: 2,
			BBoxTop: fptr(0.7), SubtitleFilterReason: ReasonNotSubtitle,
		}},
	}

	result := Normalize(p, Options{})
	if *result.AuditRows[0].BBoxTop != 0.7 {
		t.Errorf("existing position overwritten: %v", *result.AuditRows[0].BBoxTop)
	}
}

func TestNormalizeCountsReconciliation(t *testing.T) {
	p := Payload{
		RawDetections: []Detection{
			{Text: "a", StartTime: 0, EndTime: 1},
			{Text: "b", StartTime: 1, EndTime: 2},
			{Text: "c", StartTime: 2, EndTime: 3},
		},
		AuditRows: []AuditRow{
			{Text: "a", StartTime: 0, EndTime: 1, Confidence: fptr(0.95), SubtitleFilterReason: ReasonIncluded},
			{Text: "b", StartTime: 1, EndTime: 2, SubtitleFilterReason: ReasonNotSubtitle},
		},
	}

	result := Normalize(p, Options{})
	if result.Counts.Raw != 3 {
		t.Errorf("counts.raw = %d, want 3", result.Counts.Raw)
	}
	if result.Counts.FilteredSubtitles != 1 {
		t.Errorf("counts.filtered_subtitles = %d, want 1", result.Counts.FilteredSubtitles)
	}
}

func TestNormalizePreservesExplicitCounts(t *testing.T) {
	data := []byte(`{
		"counts": {"raw": 0, "filtered_subtitles": 0, "merged": 7},
		"raw_detections": [{"text": "a", "start_time": 0, "end_time": 1}],
		"audit_rows": [{"text": "a", "start_time": 0, "end_time": 1,
			"confidence": 0.95, "subtitle_filter_reason": "included_in_final_subtitles"}]
	}`)
	p, err := ParsePayload(data)
	if err != nil {
		t.Fatalf("ParsePayload: %v", err)
	}

	result := Normalize(p, Options{})
	// Explicit zeros are upstream statements, not gaps.
	if result.Counts.Raw != 0 || result.Counts.FilteredSubtitles != 0 {
		t.Errorf("explicit zero counts overwritten: %+v", result.Counts)
	}
	if result.Counts.Merged != 7 {
		t.Errorf("counts.merged = %d, want 7", result.Counts.Merged)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	result := Normalize(Payload{}, Options{})
	if result.Status != "ok" {
		t.Errorf("status = %q", result.Status)
	}
	if result.Mode != "classify_ocr_payload" {
		t.Errorf("mode = %q", result.Mode)
	}
	if result.RawDetections == nil || result.AuditRows == nil {
		t.Error("detection and row slices must be non-nil")
	}
}

func TestNormalizeRowDefaults(t *testing.T) {
	p := Payload{
		AuditRows: []AuditRow{{Text: "bare", StartTime: 0, EndTime: 1}},
	}

	result := Normalize(p, Options{})
	row := result.AuditRows[0]
	if row.DecisionReason != "unknown" {
		t.Errorf("decision_reason = %q", row.DecisionReason)
	}
	if row.StructuralClassification != ClassUnknown {
		t.Errorf("structural_classification = %q", row.StructuralClassification)
	}
	if row.SemanticTags == nil || row.SpellingRawMatches == nil || row.SpellingKeptMatches == nil || row.SpellingDebug == nil {
		t.Error("nil slices survived normalization")
	}

	// The serialized row must carry empty arrays, not nulls.
	encoded, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{"semantic_tags", "spelling_raw_matches", "spelling_kept_matches", "spelling_debug"} {
		var decoded map[string]json.RawMessage
		if err := json.Unmarshal(encoded, &decoded); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if string(decoded[field]) == "null" {
			t.Errorf("%s serialized as null", field)
		}
	}
}

func TestFinalSubtitleCues(t *testing.T) {
	rows := []AuditRow{
		{Order: 1, Text: "first", StartTime: 0, EndTime: 1, IncludedInFinalSubtitles: true},
		{Order: 2, Text: "overlay", StartTime: 0, EndTime: 1},
		{Order: 3, Text: "second", StartTime: 2, EndTime: 3, IncludedInFinalSubtitles: true},
	}

	cues := FinalSubtitleCues(rows)
	if len(cues) != 2 {
		t.Fatalf("got %d cues, want 2", len(cues))
	}
	if cues[0].Text != "first" || cues[1].Text != "second" {
		t.Errorf("cues = %+v", cues)
	}
}
