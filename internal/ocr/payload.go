package ocr

import (
	"encoding/json"
	"fmt"

	"subsight/internal/syncreport"
)

// Counts is the aggregate summary of one classification run. Every field is
// always populated; absent upstream values become zero (or the reconciled
// defaults for Raw and FilteredSubtitles).
type Counts struct {
	Raw               int `json:"raw"`
	Merged            int `json:"merged"`
	Subtitle          int `json:"subtitle"`
	Fixed             int `json:"fixed"`
	Partial           int `json:"partial"`
	FilteredSubtitles int `json:"filtered_subtitles"`
	BrandName         int `json:"brand_name"`
	ProperName        int `json:"proper_name"`

	SpellingChecked     int `json:"spelling_checked"`
	SpellingRawMatches  int `json:"spelling_raw_matches"`
	SpellingKeptMatches int `json:"spelling_kept_matches"`
	SpellingWithError   int `json:"spelling_with_error"`
	SpellingFilteredOut int `json:"spelling_filtered_out"`
	SpellingNoError     int `json:"spelling_no_error"`
}

// Payload is the canonical form of an upstream classification response.
// All three historical shapes collapse into it: the modern shape fills
// AuditRows, the legacy shapes fill ClassifiedDetections (and sometimes
// FilteredSubtitles) instead.
type Payload struct {
	Status string
	Mode   string
	Counts Counts

	// hasRawCount and hasFilteredCount record whether the upstream counts
	// object carried those fields, so reconciliation only fills true gaps.
	hasRawCount      bool
	hasFilteredCount bool

	RawDetections        []Detection
	AuditRows            []AuditRow
	ClassifiedDetections []Detection
	FilteredSubtitles    []Detection

	SyncReport *syncreport.Report
}

// Result is the normalized classification response.
type Result struct {
	Status        string             `json:"status"`
	Mode          string             `json:"mode"`
	Counts        Counts             `json:"counts"`
	RawDetections []Detection        `json:"raw_detections"`
	AuditRows     []AuditRow         `json:"audit_rows"`
	SyncReport    *syncreport.Report `json:"sync_report,omitempty"`
}

// wireCounts mirrors Counts with pointer fields so an absent count is
// distinguishable from an explicit zero.
type wireCounts struct {
	Raw               *int `json:"raw"`
	Merged            *int `json:"merged"`
	Subtitle          *int `json:"subtitle"`
	Fixed             *int `json:"fixed"`
	Partial           *int `json:"partial"`
	FilteredSubtitles *int `json:"filtered_subtitles"`
	BrandName         *int `json:"brand_name"`
	ProperName        *int `json:"proper_name"`

	SpellingChecked     *int `json:"spelling_checked"`
	SpellingRawMatches  *int `json:"spelling_raw_matches"`
	SpellingKeptMatches *int `json:"spelling_kept_matches"`
	SpellingWithError   *int `json:"spelling_with_error"`
	SpellingFilteredOut *int `json:"spelling_filtered_out"`
	SpellingNoError     *int `json:"spelling_no_error"`
}

type wirePayload struct {
	Status               string             `json:"status"`
	Mode                 string             `json:"mode"`
	Counts               *wireCounts        `json:"counts"`
	RawDetections        []Detection        `json:"raw_detections"`
	AuditRows            []AuditRow         `json:"audit_rows"`
	ClassifiedDetections []Detection        `json:"classified_detections"`
	FilteredSubtitles    []Detection        `json:"filtered_subtitles"`
	SyncReport           *syncreport.Report `json:"sync_report"`
}

// ParsePayload decodes any of the historical response shapes into the
// canonical Payload. This is the only place shape polymorphism lives.
func ParsePayload(data []byte) (Payload, error) {
	var wire wirePayload
	if err := json.Unmarshal(data, &wire); err != nil {
		return Payload{}, fmt.Errorf("decoding classification payload: %w", err)
	}

	p := Payload{
		Status:               wire.Status,
		Mode:                 wire.Mode,
		RawDetections:        wire.RawDetections,
		AuditRows:            wire.AuditRows,
		ClassifiedDetections: wire.ClassifiedDetections,
		FilteredSubtitles:    wire.FilteredSubtitles,
		SyncReport:           wire.SyncReport,
	}
	if wire.Counts != nil {
		p.Counts = wire.Counts.toCounts()
		p.hasRawCount = wire.Counts.Raw != nil
		p.hasFilteredCount = wire.Counts.FilteredSubtitles != nil
	}
	return p, nil
}

func (w wireCounts) toCounts() Counts {
	intOr := func(v *int) int {
		if v == nil {
			return 0
		}
		return *v
	}
	return Counts{
		Raw:                 intOr(w.Raw),
		Merged:              intOr(w.Merged),
		Subtitle:            intOr(w.Subtitle),
		Fixed:               intOr(w.Fixed),
		Partial:             intOr(w.Partial),
		FilteredSubtitles:   intOr(w.FilteredSubtitles),
		BrandName:           intOr(w.BrandName),
		ProperName:          intOr(w.ProperName),
		SpellingChecked:     intOr(w.SpellingChecked),
		SpellingRawMatches:  intOr(w.SpellingRawMatches),
		SpellingKeptMatches: intOr(w.SpellingKeptMatches),
		SpellingWithError:   intOr(w.SpellingWithError),
		SpellingFilteredOut: intOr(w.SpellingFilteredOut),
		SpellingNoError:     intOr(w.SpellingNoError),
	}
}
