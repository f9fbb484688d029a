package ocr

import (
	"math"
	"testing"
)

const viDoc = `{
	"annotation_results": [{
		"text_annotations": [
			{
				"text": "Hello there",
				"segments": [{
					"segment": {
						"start_time_offset": "1.5s",
						"end_time_offset": {"seconds": 3, "nanos": 250000000}
					},
					"confidence": 0.97,
					"frames": [{
						"rotated_bounding_box": {
							"vertices": [
								{"x": 0.2, "y": 0.85},
								{"x": 0.8, "y": 0.85},
								{"x": 0.8, "y": 0.92},
								{"x": 0.2, "y": 0.92}
							]
						}
					}]
				}]
			},
			{
				"text": "No frames",
				"segments": [{
					"segment": {"start_time_offset": 4.0, "end_time_offset": 5.0},
					"confidence": 0.9
				}]
			},
			{
				"text": "",
				"segments": [{
					"segment": {"start_time_offset": 6.0, "end_time_offset": 7.0}
				}]
			}
		]
	}]
}`

func TestExtractDetections(t *testing.T) {
	detections, err := ExtractDetections([]byte(viDoc))
	if err != nil {
		t.Fatalf("ExtractDetections: %v", err)
	}
	if len(detections) != 2 {
		t.Fatalf("got %d detections, want 2: %+v", len(detections), detections)
	}

	first := detections[0]
	if first.Text != "Hello there" {
		t.Errorf("text = %q", first.Text)
	}
	if first.StartTime != 1.5 || math.Abs(first.EndTime-3.25) > 1e-9 {
		t.Errorf("window = [%v, %v], want [1.5, 3.25]", first.StartTime, first.EndTime)
	}
	if first.Confidence == nil || *first.Confidence != 0.97 {
		t.Errorf("confidence = %v", first.Confidence)
	}
	want := BBox{Top: 0.85, Left: 0.2, Bottom: 0.92, Right: 0.8}
	if first.BBox == nil || *first.BBox != want {
		t.Errorf("bbox = %+v, want %+v", first.BBox, want)
	}

	second := detections[1]
	if second.BBox == nil || *second.BBox != fullFrame {
		t.Errorf("frameless detection bbox = %+v, want full frame", second.BBox)
	}
}

func TestExtractDetectionsRawResponseWrapper(t *testing.T) {
	wrapped := []byte(`{"raw_response": ` + viDoc + `}`)
	detections, err := ExtractDetections(wrapped)
	if err != nil {
		t.Fatalf("ExtractDetections: %v", err)
	}
	if len(detections) != 2 {
		t.Errorf("got %d detections through wrapper, want 2", len(detections))
	}
}

func TestExtractDetectionsEmptyDocument(t *testing.T) {
	detections, err := ExtractDetections([]byte(`{}`))
	if err != nil {
		t.Fatalf("ExtractDetections: %v", err)
	}
	if len(detections) != 0 {
		t.Errorf("got %d detections from empty document", len(detections))
	}
}

func TestExtractDetectionsMalformed(t *testing.T) {
	if _, err := ExtractDetections([]byte(`{"annotation_results": "nope"`)); err == nil {
		t.Error("malformed document accepted")
	}
}
