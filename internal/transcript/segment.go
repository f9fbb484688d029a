package transcript

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
)

// Segment is one normalized transcription cue.
type Segment struct {
	Text       string   `json:"text"`
	StartTime  float64  `json:"start_time"`
	EndTime    float64  `json:"end_time"`
	Speaker    string   `json:"speaker,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Cue is one finalized subtitle cue, as emitted by the classification
// pipeline and consumed by sync and mismatch comparison.
type Cue struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Text      string  `json:"text"`
}

// RawSegment tolerates the upstream timestamp shapes before normalization.
type RawSegment struct {
	Text       string   `json:"text"`
	StartTime  FlexTime `json:"start_time"`
	EndTime    FlexTime `json:"end_time"`
	Speaker    string   `json:"speaker"`
	Confidence *float64 `json:"confidence"`
}

// FlexTime is a timestamp that unmarshals from a number, a numeric string,
// a suffixed-seconds string ("12.3s"), an MM:SS or HH:MM:SS timecode, or a
// protobuf-style {"seconds": n, "nanos": n} object. Unparseable or absent
// values leave the time unset.
type FlexTime struct {
	Seconds float64
	Set     bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *FlexTime) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	var number float64
	if err := json.Unmarshal(data, &number); err == nil {
		t.Seconds = number
		t.Set = true
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		if seconds, ok := parseTimeString(text); ok {
			t.Seconds = seconds
			t.Set = true
		}
		return nil
	}

	var duration struct {
		Seconds float64 `json:"seconds"`
		Nanos   float64 `json:"nanos"`
	}
	if err := json.Unmarshal(data, &duration); err == nil {
		t.Seconds = duration.Seconds + duration.Nanos/1e9
		t.Set = true
		return nil
	}

	return nil
}

// parseTimeString handles "12.3", "12.3s", "MM:SS(.sss)" and "HH:MM:SS(.sss)".
func parseTimeString(value string) (float64, bool) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return 0, false
	}

	if strings.HasSuffix(raw, "s") && !strings.Contains(raw, ":") {
		if seconds, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(raw, "s")), 64); err == nil {
			return seconds, true
		}
	}

	if seconds, err := strconv.ParseFloat(raw, 64); err == nil {
		return seconds, true
	}

	if strings.Contains(raw, ":") {
		parts := strings.Split(raw, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return 0, false
		}
		total := 0.0
		for _, part := range parts {
			component, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return 0, false
			}
			total = total*60 + component
		}
		return total, true
	}

	return 0, false
}

// ParseSegments decodes a transcription cue list and normalizes it.
func ParseSegments(data []byte, logger *slog.Logger) ([]Segment, error) {
	var raw []RawSegment
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode transcription segments: %w", err)
	}
	return NormalizeSegments(raw, logger), nil
}

// NormalizeSegments sanitizes upstream cues: empty texts are dropped, cues
// with no usable timestamp at all are skipped, a missing start or end is
// filled from its counterpart, reversed windows are swapped, and negative
// times clamp to zero. The result is sorted by (start, end).
func NormalizeSegments(raw []RawSegment, logger *slog.Logger) []Segment {
	if logger == nil {
		logger = slog.Default()
	}

	segments := make([]Segment, 0, len(raw))
	invalid := 0
	for _, segment := range raw {
		text := strings.TrimSpace(segment.Text)
		if text == "" {
			continue
		}

		start, end := segment.StartTime, segment.EndTime
		if !start.Set && !end.Set {
			invalid++
			continue
		}
		if !start.Set {
			start = end
		}
		if !end.Set {
			end = start
		}

		startSeconds := max(0, start.Seconds)
		endSeconds := max(0, end.Seconds)
		if endSeconds < startSeconds {
			startSeconds, endSeconds = endSeconds, startSeconds
		}

		segments = append(segments, Segment{
			Text:       text,
			StartTime:  startSeconds,
			EndTime:    endSeconds,
			Speaker:    segment.Speaker,
			Confidence: segment.Confidence,
		})
	}

	if invalid > 0 {
		logger.Warn("skipped transcription segments with invalid timestamps", "skipped", invalid)
	}

	sort.SliceStable(segments, func(i, j int) bool {
		if segments[i].StartTime != segments[j].StartTime {
			return segments[i].StartTime < segments[j].StartTime
		}
		return segments[i].EndTime < segments[j].EndTime
	})
	return segments
}
