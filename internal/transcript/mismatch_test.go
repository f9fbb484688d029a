package transcript

import "testing"

func TestDetectMismatchesContained(t *testing.T) {
	subtitles := []Cue{
		{StartTime: 0, EndTime: 2, Text: "So, reality check!"},
	}
	transcriptions := []Segment{
		{Text: "so reality check", StartTime: 0.1, EndTime: 1.9},
	}

	mismatches := DetectMismatches(subtitles, transcriptions, DefaultToleranceSeconds)
	if len(mismatches) != 0 {
		t.Errorf("contained transcript flagged: %+v", mismatches)
	}
}

func TestDetectMismatchesMissingWindow(t *testing.T) {
	subtitles := []Cue{
		{StartTime: 0, EndTime: 1, Text: "hello"},
	}
	transcriptions := []Segment{
		{Text: "way later speech", StartTime: 30, EndTime: 32},
	}

	mismatches := DetectMismatches(subtitles, transcriptions, DefaultToleranceSeconds)
	if len(mismatches) != 1 {
		t.Fatalf("got %d mismatches, want 1", len(mismatches))
	}
	if mismatches[0].Severity != SeverityHigh || mismatches[0].MismatchType != MismatchMissingWindow {
		t.Errorf("wrong mismatch classification: %+v", mismatches[0])
	}
}

func TestDetectMismatchesNotContained(t *testing.T) {
	subtitles := []Cue{
		{StartTime: 0, EndTime: 2, Text: "completely different words"},
	}
	transcriptions := []Segment{
		{Text: "so reality check", StartTime: 0.5, EndTime: 1.5},
	}

	mismatches := DetectMismatches(subtitles, transcriptions, DefaultToleranceSeconds)
	if len(mismatches) != 1 {
		t.Fatalf("got %d mismatches, want 1", len(mismatches))
	}
	if mismatches[0].Severity != SeverityMedium || mismatches[0].MismatchType != MismatchNotContained {
		t.Errorf("wrong mismatch classification: %+v", mismatches[0])
	}
	if mismatches[0].SubtitleText != "completely different words" {
		t.Errorf("subtitle context = %q", mismatches[0].SubtitleText)
	}
}

func TestDetectMismatchesNumberSpelling(t *testing.T) {
	subtitles := []Cue{
		{StartTime: 0, EndTime: 2, Text: "50 percent off"},
	}
	transcriptions := []Segment{
		{Text: "fifty percent off", StartTime: 0, EndTime: 2},
	}

	mismatches := DetectMismatches(subtitles, transcriptions, DefaultToleranceSeconds)
	if len(mismatches) != 0 {
		t.Errorf("number spelling difference flagged: %+v", mismatches)
	}
}

func TestDetectMismatchesJoinsNearbySubtitles(t *testing.T) {
	subtitles := []Cue{
		{StartTime: 0, EndTime: 1, Text: "the cat"},
		{StartTime: 1, EndTime: 2, Text: "sat down"},
	}
	transcriptions := []Segment{
		{Text: "the cat sat down", StartTime: 0, EndTime: 2},
	}

	mismatches := DetectMismatches(subtitles, transcriptions, DefaultToleranceSeconds)
	if len(mismatches) != 0 {
		t.Errorf("joined-window transcript flagged: %+v", mismatches)
	}
}
