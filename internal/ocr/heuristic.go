package ocr

import (
	"strings"
	"unicode"

	"subsight/internal/textutil"
)

// Repetition heuristic: texts must sit almost exactly on top of each other
// to count as the same persistent overlay.
const (
	repetitionOverlapThreshold = 0.85
	repetitionFixedCount       = 3
)

// ClassifySubtitleVsFixed scores each detection as subtitle-like or
// fixed-overlay-like and sets the boolean hints from whichever score wins.
// The heuristics: subtitles live in the bottom third of the frame, show for
// 0.5–8 seconds, and tend to be full phrases; fixed text hugs the top edge,
// persists for a large share of the video, repeats at the same position, and
// is often a short capitalized label. Scores, repeat counts, and the
// decision reason are recorded on each detection for the audit trail.
func ClassifySubtitleVsFixed(detections []Detection, videoDuration float64) []Detection {
	classified := append([]Detection(nil), detections...)

	normalized := make([]string, len(classified))
	for i, det := range classified {
		normalized[i] = textutil.Normalize(det.Text)
	}

	for i := range classified {
		det := &classified[i]
		box := det.box()
		scoreSubtitle, scoreFixed := 0, 0

		verticalCenter := (box.Top + box.Bottom) / 2
		if verticalCenter > 0.70 {
			scoreSubtitle += 3
		} else if verticalCenter < 0.15 {
			scoreFixed += 3
		}

		duration := det.EndTime - det.StartTime
		if duration >= 0.5 && duration <= 8.0 {
			scoreSubtitle += 2
		} else if videoDuration > 0 && duration > videoDuration*0.3 {
			scoreFixed += 4
		}

		wordCount := len(strings.Fields(det.Text))
		if wordCount >= 3 {
			scoreSubtitle++
		} else if wordCount <= 2 && startsUpper(det.Text) {
			scoreFixed++
		}

		repeats := 0
		for j := range classified {
			if j == i || normalized[j] != normalized[i] {
				continue
			}
			if bboxOverlap(classified[j].box(), box) >= repetitionOverlapThreshold {
				repeats++
			}
		}
		if repeats >= repetitionFixedCount {
			scoreFixed += 4
		}

		det.IsSubtitle = scoreSubtitle > scoreFixed
		det.IsFixedText = scoreFixed > scoreSubtitle
		det.RepeatCount = repeats
		det.ScoreSubtitle = scoreSubtitle
		det.ScoreFixed = scoreFixed
		switch {
		case scoreSubtitle > scoreFixed:
			det.DecisionReason = "subtitle_score_higher"
		case scoreFixed > scoreSubtitle:
			det.DecisionReason = "fixed_score_higher"
		default:
			det.DecisionReason = "score_tie_unknown"
		}
	}
	return classified
}

// BuildFilteredSubtitles applies the inclusion rules directly to classified
// detections: subtitle-flagged, not a partial sequence, confident, and not
// colliding with any fixed overlay's text.
func BuildFilteredSubtitles(detections []Detection, minConfidence float64) []Detection {
	fixedTexts := make(map[string]struct{})
	for _, det := range detections {
		if det.IsFixedText {
			fixedTexts[textutil.Normalize(det.Text)] = struct{}{}
		}
	}

	filtered := []Detection{}
	for _, det := range detections {
		if !det.IsSubtitle || det.IsPartialSequence {
			continue
		}
		if confidenceValue(det.Confidence) < minConfidence {
			continue
		}
		if _, collides := fixedTexts[textutil.Normalize(det.Text)]; collides {
			continue
		}
		filtered = append(filtered, det)
	}
	return filtered
}

func startsUpper(text string) bool {
	for _, r := range text {
		return unicode.IsUpper(r)
	}
	return false
}
