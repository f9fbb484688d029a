package ocr

import (
	"encoding/json"
	"fmt"

	"subsight/internal/transcript"
)

// Video-intelligence document shapes. Time offsets arrive in whatever form
// the serializer chose: float seconds, "12.3s" strings, or protobuf-style
// {seconds, nanos} objects. FlexTime absorbs all of them.
type viDocument struct {
	AnnotationResults []viAnnotation `json:"annotation_results"`
}

type viAnnotation struct {
	TextAnnotations []viTextAnnotation `json:"text_annotations"`
}

type viTextAnnotation struct {
	Text     string      `json:"text"`
	Segments []viSegment `json:"segments"`
}

type viSegment struct {
	Segment    viRange   `json:"segment"`
	Confidence float64   `json:"confidence"`
	Frames     []viFrame `json:"frames"`
}

type viRange struct {
	StartTimeOffset transcript.FlexTime `json:"start_time_offset"`
	EndTimeOffset   transcript.FlexTime `json:"end_time_offset"`
}

type viFrame struct {
	RotatedBoundingBox viRotatedBox `json:"rotated_bounding_box"`
}

type viRotatedBox struct {
	Vertices []viVertex `json:"vertices"`
}

type viVertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ExtractDetections flattens a raw video-intelligence OCR document into one
// detection per text segment. A {"raw_response": {...}} wrapper (the shape
// stored alongside archived runs) is unwrapped transparently. Segments with
// empty text are dropped; segments without frame vertices get the full-frame
// box so downstream heuristics still have a position to reason about.
func ExtractDetections(data []byte) ([]Detection, error) {
	var wrapper struct {
		RawResponse json.RawMessage `json:"raw_response"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && len(wrapper.RawResponse) > 0 && wrapper.RawResponse[0] == '{' {
		data = wrapper.RawResponse
	}

	var doc viDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding video-intelligence document: %w", err)
	}

	detections := []Detection{}
	for _, annotation := range doc.AnnotationResults {
		for _, textAnnotation := range annotation.TextAnnotations {
			if textAnnotation.Text == "" {
				continue
			}
			for _, segment := range textAnnotation.Segments {
				confidence := segment.Confidence
				box := segmentBox(segment.Frames)
				detections = append(detections, Detection{
					Text:       textAnnotation.Text,
					StartTime:  segment.Segment.StartTimeOffset.Seconds,
					EndTime:    segment.Segment.EndTimeOffset.Seconds,
					Confidence: &confidence,
					BBox:       &box,
				})
			}
		}
	}
	return detections, nil
}

// segmentBox derives the axis-aligned box from the first frame's rotated
// bounding box vertices.
func segmentBox(frames []viFrame) BBox {
	if len(frames) == 0 {
		return fullFrame
	}
	vertices := frames[0].RotatedBoundingBox.Vertices
	if len(vertices) == 0 {
		return fullFrame
	}
	box := BBox{
		Top:    vertices[0].Y,
		Left:   vertices[0].X,
		Bottom: vertices[0].Y,
		Right:  vertices[0].X,
	}
	for _, v := range vertices[1:] {
		box.Top = min(box.Top, v.Y)
		box.Left = min(box.Left, v.X)
		box.Bottom = max(box.Bottom, v.Y)
		box.Right = max(box.Right, v.X)
	}
	return box
}
