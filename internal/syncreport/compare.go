package syncreport

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"subsight/internal/textutil"
	"subsight/internal/transcript"
)

// Default comparison thresholds.
const (
	DefaultSyncedThreshold           = 0.8
	DefaultLikelySyncedThreshold     = 0.5
	DefaultDuplicateOverlapThreshold = 0.8
	DefaultWarningMisalignedRatio    = 0.10
)

// Options carries the comparison thresholds. Zero values fall back to the
// package defaults.
type Options struct {
	// SyncedThreshold is the minimum word-overlap ratio for SYNCED.
	SyncedThreshold float64
	// LikelySyncedThreshold is the minimum ratio for LIKELY_SYNCED.
	LikelySyncedThreshold float64
	// DuplicateOverlapThreshold is the mutual ratio above which two
	// time-overlapping subtitles count as duplicates.
	DuplicateOverlapThreshold float64
	// WarningMisalignedRatio is the misaligned fraction up to which the
	// overall status stays WARNING instead of BAD.
	WarningMisalignedRatio float64
}

func (o Options) withDefaults() Options {
	if o.SyncedThreshold <= 0 {
		o.SyncedThreshold = DefaultSyncedThreshold
	}
	if o.LikelySyncedThreshold <= 0 {
		o.LikelySyncedThreshold = DefaultLikelySyncedThreshold
	}
	if o.DuplicateOverlapThreshold <= 0 {
		o.DuplicateOverlapThreshold = DefaultDuplicateOverlapThreshold
	}
	if o.WarningMisalignedRatio <= 0 {
		o.WarningMisalignedRatio = DefaultWarningMisalignedRatio
	}
	return o
}

// Compare builds the sync report for the final subtitle cues against the
// time-ordered transcription cue list.
func Compare(subtitles []transcript.Cue, transcriptions []transcript.Segment, opts Options) *Report {
	opts = opts.withDefaults()

	details := make([]Detail, 0, len(subtitles))
	var ratioSum float64
	var synced, likely, misaligned int

	for index, subtitle := range subtitles {
		detail := matchSubtitle(index, subtitle, transcriptions, opts)
		ratioSum += detail.WordOverlapRatio
		switch detail.Status {
		case StatusSynced:
			synced++
		case StatusLikelySynced:
			likely++
		default:
			misaligned++
		}
		details = append(details, detail)
	}

	duplicates := detectDuplicates(subtitles, opts.DuplicateOverlapThreshold)

	avgRatio := 0.0
	if len(details) > 0 {
		avgRatio = ratioSum / float64(len(details))
	}

	summary := Summary{
		TotalSubtitles:      len(subtitles),
		Synced:              synced,
		LikelySynced:        likely,
		Misaligned:          misaligned,
		DuplicatesFound:     len(duplicates),
		AvgWordOverlapRatio: avgRatio,
	}
	summary.OverallSyncStatus = overallStatus(summary, opts.WarningMisalignedRatio)

	return &Report{Summary: summary, Details: details, Duplicates: duplicates}
}

// matchSubtitle finds the best time-overlapping transcription cue for one
// subtitle and classifies the pair.
func matchSubtitle(index int, subtitle transcript.Cue, transcriptions []transcript.Segment, opts Options) Detail {
	subtitleWords := textutil.Words(subtitle.Text)
	subtitleLower := strings.ToLower(subtitle.Text)

	bestRatio := -1.0
	bestDistance := 0
	bestText := ""
	found := false

	for _, segment := range transcriptions {
		if !windowsOverlap(subtitle.StartTime, subtitle.EndTime, segment.StartTime, segment.EndTime) {
			continue
		}
		ratio := textutil.WordOverlapRatio(subtitleWords, textutil.Words(segment.Text))
		distance := textutil.Levenshtein(subtitleLower, strings.ToLower(segment.Text))
		if ratio > bestRatio || (ratio == bestRatio && distance < bestDistance) {
			bestRatio = ratio
			bestDistance = distance
			bestText = segment.Text
			found = true
		}
	}

	detail := Detail{
		SubtitleIndex:       index,
		SubtitleTimeSeconds: [2]float64{subtitle.StartTime, subtitle.EndTime},
		SubtitleText:        subtitle.Text,
		Issues:              []string{},
	}

	if !found {
		detail.WordOverlapRatio = 0
		detail.EditDistance = utf8.RuneCountInString(subtitle.Text)
		detail.Status = StatusMisaligned
		detail.Issues = append(detail.Issues, "no time-overlapping transcription found")
		return detail
	}

	detail.MatchedTranscriptionText = bestText
	detail.WordOverlapRatio = bestRatio
	detail.EditDistance = bestDistance

	switch {
	case bestRatio >= opts.SyncedThreshold:
		detail.Status = StatusSynced
	case bestRatio >= opts.LikelySyncedThreshold:
		detail.Status = StatusLikelySynced
	default:
		detail.Status = StatusMisaligned
	}

	if bestRatio < opts.LikelySyncedThreshold {
		detail.Issues = append(detail.Issues,
			fmt.Sprintf("word overlap %.3f below %.2f", bestRatio, opts.LikelySyncedThreshold))
	}
	longer := utf8.RuneCountInString(subtitleLower)
	if other := utf8.RuneCountInString(bestText); other > longer {
		longer = other
	}
	if longer > 0 && float64(bestDistance) > float64(longer)/2 {
		detail.Issues = append(detail.Issues,
			fmt.Sprintf("edit distance %d exceeds half of longer text (%d chars)", bestDistance, longer))
	}

	return detail
}

// detectDuplicates reports every pair (i<j) of subtitles whose windows
// overlap and whose mutual word-overlap ratio exceeds the threshold.
func detectDuplicates(subtitles []transcript.Cue, threshold float64) []Duplicate {
	duplicates := []Duplicate{}
	for i := 0; i < len(subtitles); i++ {
		for j := i + 1; j < len(subtitles); j++ {
			a, b := subtitles[i], subtitles[j]
			if !windowsOverlap(a.StartTime, a.EndTime, b.StartTime, b.EndTime) {
				continue
			}
			ratio := textutil.WordOverlapRatio(textutil.Words(a.Text), textutil.Words(b.Text))
			if ratio <= threshold {
				continue
			}
			duplicates = append(duplicates, Duplicate{
				SubtitleIndices:        [2]int{i, j},
				OverlappingTimeSeconds: [2]float64{max(a.StartTime, b.StartTime), min(a.EndTime, b.EndTime)},
				Texts:                  [2]string{a.Text, b.Text},
			})
		}
	}
	return duplicates
}

// overallStatus rolls the summary into GOOD, WARNING, or BAD. Misalignment
// up to warningRatio of all cues (with no duplicates) or duplicates alone
// (with no misalignment) downgrade to WARNING; anything worse is BAD.
func overallStatus(summary Summary, warningRatio float64) Overall {
	if summary.Misaligned == 0 && summary.DuplicatesFound == 0 {
		return OverallGood
	}
	if summary.TotalSubtitles > 0 {
		misalignedRatio := float64(summary.Misaligned) / float64(summary.TotalSubtitles)
		if summary.DuplicatesFound == 0 && misalignedRatio <= warningRatio {
			return OverallWarning
		}
	}
	if summary.DuplicatesFound > 0 && summary.Misaligned == 0 {
		return OverallWarning
	}
	return OverallBad
}

// windowsOverlap reports whether two time windows share any instant.
// Boundaries are inclusive so instantaneous cues can still match.
func windowsOverlap(aStart, aEnd, bStart, bEnd float64) bool {
	return bStart <= aEnd && bEnd >= aStart
}

