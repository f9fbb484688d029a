package transcript

import (
	"sort"
	"strings"

	"subsight/internal/textutil"
)

// DefaultToleranceSeconds is the window around a transcription cue within
// which subtitles are considered "nearby" for mismatch checks.
const DefaultToleranceSeconds = 1.5

// Mismatch severities.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
)

// Mismatch types.
const (
	MismatchMissingWindow = "missing_subtitle_window"
	MismatchNotContained  = "transcript_not_contained_in_subtitles"
)

// Mismatch flags a transcription cue whose spoken text is not covered by the
// subtitles displayed around its time window.
type Mismatch struct {
	SubtitleText      string  `json:"subtitle_text"`
	TranscriptionText string  `json:"transcription_text"`
	StartTime         float64 `json:"start_time"`
	EndTime           float64 `json:"end_time"`
	Severity          string  `json:"severity"`
	MismatchType      string  `json:"mismatch_type"`
}

// DetectMismatches compares each transcription cue against the subtitles
// within ±tolerance seconds of its window. A cue with no nearby subtitle at
// all is a high-severity mismatch; a cue whose normalized text is not
// contained in the joined nearby subtitle text is medium severity. The
// containment check ignores case, punctuation, spacing, and number spelling.
func DetectMismatches(subtitles []Cue, transcriptions []Segment, tolerance float64) []Mismatch {
	if tolerance <= 0 {
		tolerance = DefaultToleranceSeconds
	}

	var mismatches []Mismatch
	for _, segment := range transcriptions {
		nearby := make([]Cue, 0, 4)
		for _, subtitle := range subtitles {
			if subtitle.StartTime <= segment.EndTime+tolerance && subtitle.EndTime >= segment.StartTime-tolerance {
				nearby = append(nearby, subtitle)
			}
		}

		if len(nearby) == 0 {
			mismatches = append(mismatches, Mismatch{
				SubtitleText:      "[no nearby subtitle]",
				TranscriptionText: segment.Text,
				StartTime:         segment.StartTime,
				EndTime:           segment.EndTime,
				Severity:          SeverityHigh,
				MismatchType:      MismatchMissingWindow,
			})
			continue
		}

		sort.SliceStable(nearby, func(i, j int) bool {
			if nearby[i].StartTime != nearby[j].StartTime {
				return nearby[i].StartTime < nearby[j].StartTime
			}
			return nearby[i].EndTime < nearby[j].EndTime
		})

		parts := make([]string, 0, len(nearby))
		for _, subtitle := range nearby {
			if subtitle.Text != "" {
				parts = append(parts, subtitle.Text)
			}
		}
		joined := strings.Join(parts, " ")

		normalizedSubtitles := textutil.NormalizeContains(joined)
		normalizedTranscript := textutil.NormalizeContains(segment.Text)
		if normalizedTranscript == "" || !strings.Contains(normalizedSubtitles, normalizedTranscript) {
			subtitleText := joined
			if subtitleText == "" {
				subtitleText = "[no nearby subtitle text]"
			}
			mismatches = append(mismatches, Mismatch{
				SubtitleText:      subtitleText,
				TranscriptionText: segment.Text,
				StartTime:         segment.StartTime,
				EndTime:           segment.EndTime,
				Severity:          SeverityMedium,
				MismatchType:      MismatchNotContained,
			})
		}
	}

	return mismatches
}
