package ocr

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Default partial-sequence merge knobs.
const (
	DefaultMergeOverlapThreshold = 0.6
	DefaultMergeMaxGapSeconds    = 1.0
)

// MergePartialSequences collapses detections that are partial renderings of
// the same text at the same screen position, like the "H", "Ho", "Horizonte"
// trail a typewriter animation leaves in OCR output. Detections are grouped
// by bounding-box overlap, each group is walked in time order, and runs
// where consecutive texts are prefixes of each other within maxGap seconds
// merge into one detection carrying the longest text and the combined time
// window. A merged run of more than one member is flagged as a partial
// sequence.
func MergePartialSequences(detections []Detection, overlapThreshold, maxGap float64) []Detection {
	if overlapThreshold <= 0 {
		overlapThreshold = DefaultMergeOverlapThreshold
	}
	if maxGap <= 0 {
		maxGap = DefaultMergeMaxGapSeconds
	}
	if len(detections) == 0 {
		return []Detection{}
	}

	merged := []Detection{}
	for _, group := range spatialGroups(detections, overlapThreshold) {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].StartTime < group[j].StartTime
		})

		sequence := []Detection{group[0]}
		for _, det := range group[1:] {
			prev := sequence[len(sequence)-1]
			if isPrefixPair(prev.Text, det.Text) && det.StartTime-prev.EndTime < maxGap {
				sequence = append(sequence, det)
				continue
			}
			merged = append(merged, resolveSequence(sequence))
			sequence = []Detection{det}
		}
		merged = append(merged, resolveSequence(sequence))
	}
	return merged
}

// spatialGroups greedily buckets detections by overlap against each bucket's
// seed detection.
func spatialGroups(detections []Detection, overlapThreshold float64) [][]Detection {
	groups := [][]Detection{}
	assigned := make([]bool, len(detections))

	for i, det := range detections {
		if assigned[i] {
			continue
		}
		group := []Detection{det}
		assigned[i] = true
		for j := i + 1; j < len(detections); j++ {
			if assigned[j] {
				continue
			}
			if bboxOverlap(det.box(), detections[j].box()) > overlapThreshold {
				group = append(group, detections[j])
				assigned[j] = true
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// isPrefixPair covers both growing ("Ho" → "Hor") and shrinking
// ("Horizonte" → "Hor") animations.
func isPrefixPair(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}

// resolveSequence collapses one prefix run into a single detection: the
// longest member's text, confidence, and box over the run's full window.
func resolveSequence(sequence []Detection) Detection {
	longest := sequence[0]
	for _, det := range sequence[1:] {
		if utf8.RuneCountInString(det.Text) > utf8.RuneCountInString(longest.Text) {
			longest = det
		}
	}

	resolved := Detection{
		Text:       longest.Text,
		StartTime:  sequence[0].StartTime,
		EndTime:    sequence[len(sequence)-1].EndTime,
		Confidence: longest.Confidence,
		BBox:       longest.BBox,
	}
	if len(sequence) > 1 {
		resolved.IsPartialSequence = true
		members := make([]string, len(sequence))
		for i, det := range sequence {
			members[i] = det.Text
		}
		resolved.PartialMembers = members
	}
	return resolved
}

// bboxOverlap is intersection-over-union of two normalized boxes; zero when
// either box is degenerate.
func bboxOverlap(a, b BBox) float64 {
	xOverlap := max(0, min(a.Right, b.Right)-max(a.Left, b.Left))
	yOverlap := max(0, min(a.Bottom, b.Bottom)-max(a.Top, b.Top))
	intersection := xOverlap * yOverlap

	areaA := (a.Right - a.Left) * (a.Bottom - a.Top)
	areaB := (b.Right - b.Left) * (b.Bottom - b.Top)
	if areaA == 0 || areaB == 0 {
		return 0
	}
	union := areaA + areaB - intersection
	if union <= 0 {
		return 0
	}
	return intersection / union
}
