package ocr

import (
	"fmt"

	"subsight/internal/textutil"
)

// BBox is a normalized screen rectangle; all fields are fractions of the
// frame in [0,1].
type BBox struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Right  float64 `json:"right"`
}

// fullFrame is the box assumed when a detection carries no position.
var fullFrame = BBox{Top: 0, Left: 0, Bottom: 1, Right: 1}

// Detection is one OCR text occurrence. Classification fields (the boolean
// hints, scores, tags, and id) are filled in by the local classification
// path or arrive pre-populated from the upstream service.
type Detection struct {
	Text       string   `json:"text"`
	StartTime  float64  `json:"start_time"`
	EndTime    float64  `json:"end_time"`
	Confidence *float64 `json:"confidence,omitempty"`
	BBox       *BBox    `json:"bbox,omitempty"`

	IsSubtitle        bool `json:"is_subtitle,omitempty"`
	IsFixedText       bool `json:"is_fixed_text,omitempty"`
	IsPartialSequence bool `json:"is_partial_sequence,omitempty"`

	DetectionID    string   `json:"detection_id,omitempty"`
	RepeatCount    int      `json:"repeat_count,omitempty"`
	ScoreSubtitle  int      `json:"score_subtitle,omitempty"`
	ScoreFixed     int      `json:"score_fixed,omitempty"`
	DecisionReason string   `json:"decision_reason,omitempty"`
	SemanticTags   []string `json:"semantic_tags,omitempty"`
	PartialMembers []string `json:"partial_members,omitempty"`
}

// DerivedKey correlates detections across independently shaped payloads.
// Text is normalized so cosmetic whitespace and case differences between a
// raw detection and its classified counterpart still match; times are
// truncated to millisecond precision for the same reason.
func DerivedKey(text string, start, end float64) string {
	return fmt.Sprintf("%s|%.3f|%.3f", textutil.Normalize(text), start, end)
}

// Key returns the detection's derived key.
func (d Detection) Key() string {
	return DerivedKey(d.Text, d.StartTime, d.EndTime)
}

// box returns the detection's bounding box, assuming the full frame when
// the source sent none.
func (d Detection) box() BBox {
	if d.BBox != nil {
		return *d.BBox
	}
	return fullFrame
}

// confidenceValue treats a missing confidence as zero so it always fails
// threshold checks.
func confidenceValue(c *float64) float64 {
	if c == nil {
		return 0
	}
	return *c
}
