package ocr

import "testing"

func TestClassifySubtitleVsFixedBottomPhrase(t *testing.T) {
	detections := []Detection{
		det("So, reality check!", 10.0, 12.5, BBox{Top: 0.82, Left: 0.2, Bottom: 0.9, Right: 0.8}),
	}

	classified := ClassifySubtitleVsFixed(detections, 600)
	d := classified[0]
	if !d.IsSubtitle || d.IsFixedText {
		t.Errorf("bottom phrase not classified as subtitle: %+v", d)
	}
	if d.DecisionReason != "subtitle_score_higher" {
		t.Errorf("decision_reason = %q", d.DecisionReason)
	}
	// position +3, duration +2, word count +1
	if d.ScoreSubtitle != 6 {
		t.Errorf("score_subtitle = %d, want 6", d.ScoreSubtitle)
	}
}

func TestClassifySubtitleVsFixedPersistentTopOverlay(t *testing.T) {
	detections := []Detection{
		det("BRAND", 0.0, 300.0, BBox{Top: 0.02, Left: 0.05, Bottom: 0.08, Right: 0.2}),
	}

	classified := ClassifySubtitleVsFixed(detections, 600)
	d := classified[0]
	if !d.IsFixedText || d.IsSubtitle {
		t.Errorf("persistent top overlay not classified as fixed: %+v", d)
	}
	if d.DecisionReason != "fixed_score_higher" {
		t.Errorf("decision_reason = %q", d.DecisionReason)
	}
}

func TestClassifySubtitleVsFixedRepetition(t *testing.T) {
	box := BBox{Top: 0.45, Left: 0.4, Bottom: 0.55, Right: 0.6}
	detections := []Detection{
		det("canal 7", 10, 11, box),
		det("Canal 7", 20, 21, box),
		det("canal 7 ", 30, 31, box),
		det("CANAL 7", 40, 41, box),
	}

	classified := ClassifySubtitleVsFixed(detections, 600)
	for i, d := range classified {
		if d.RepeatCount != 3 {
			t.Errorf("detection %d repeat_count = %d, want 3", i, d.RepeatCount)
		}
		if !d.IsFixedText {
			t.Errorf("detection %d not classified as fixed: %+v", i, d)
		}
	}
}

func TestClassifySubtitleVsFixedTie(t *testing.T) {
	// Mid-screen, odd duration, three lowercase words: subtitle word count
	// +1 is the only score, so the subtitle side wins; strip it by using
	// two lowercase words for a genuine 0-0 tie.
	detections := []Detection{
		det("mid screen", 10, 30, BBox{Top: 0.45, Left: 0.4, Bottom: 0.55, Right: 0.6}),
	}

	classified := ClassifySubtitleVsFixed(detections, 600)
	d := classified[0]
	if d.IsSubtitle || d.IsFixedText {
		t.Errorf("tie produced a classification: %+v", d)
	}
	if d.DecisionReason != "score_tie_unknown" {
		t.Errorf("decision_reason = %q", d.DecisionReason)
	}
}

func TestBuildFilteredSubtitles(t *testing.T) {
	detections := []Detection{
		{Text: "Real subtitle", IsSubtitle: true, Confidence: fptr(0.95)},
		{Text: "Ho", IsSubtitle: true, IsPartialSequence: true, Confidence: fptr(0.95)},
		{Text: "faint", IsSubtitle: true, Confidence: fptr(0.5)},
		{Text: "BRAND", IsFixedText: true, Confidence: fptr(0.99)},
		{Text: "brand ", IsSubtitle: true, Confidence: fptr(0.99)},
	}

	filtered := BuildFilteredSubtitles(detections, DefaultMinSubtitleConfidence)
	if len(filtered) != 1 {
		t.Fatalf("got %d filtered subtitles, want 1: %+v", len(filtered), filtered)
	}
	if filtered[0].Text != "Real subtitle" {
		t.Errorf("kept %q", filtered[0].Text)
	}
}
