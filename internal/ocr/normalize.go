package ocr

import (
	"io"
	"log/slog"

	"subsight/internal/transcript"
)

// Default pipeline thresholds. The config layer overrides these; the
// pipeline itself never hardcodes them past Options.
const (
	DefaultMinSubtitleConfidence = 0.90
	DefaultSimultaneityWindow    = 0.35
)

// Options carries the injected pipeline thresholds. Zero values fall back
// to the package defaults; a nil Logger discards observability output.
type Options struct {
	// MinSubtitleConfidence is the inclusion gate; rows below it are never
	// part of the final subtitle stream.
	MinSubtitleConfidence float64
	// SimultaneityWindow bounds |Δstart| and |Δend| for two rows to count
	// as visually simultaneous during ordering.
	SimultaneityWindow float64
	Logger             *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.MinSubtitleConfidence <= 0 {
		o.MinSubtitleConfidence = DefaultMinSubtitleConfidence
	}
	if o.SimultaneityWindow <= 0 {
		o.SimultaneityWindow = DefaultSimultaneityWindow
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// Normalize runs the full classification pipeline over one payload:
// fallback classification when upstream sent no audit rows, position
// backfill from raw detections, deterministic ordering, the central
// inclusion filter, spelling reconciliation, and counts reconciliation.
// The input payload is not modified; running the output back through
// yields identical classifications.
func Normalize(p Payload, opts Options) Result {
	opts = opts.withDefaults()

	rows := p.AuditRows
	if len(rows) == 0 {
		rows = buildFallbackRows(p, opts.MinSubtitleConfidence)
		opts.Logger.Debug("synthesized audit rows from detection hints",
			"classified", len(p.ClassifiedDetections),
			"upstream_filtered", len(p.FilteredSubtitles))
	}

	rows = backfillPositions(rows, p.RawDetections, opts.Logger)
	rows = sortRows(rows, opts.SimultaneityWindow)
	rows = applyInclusionFilter(rows, opts.MinSubtitleConfidence)
	rows = reconcileSpelling(rows)

	raw := p.RawDetections
	if raw == nil {
		raw = []Detection{}
	}

	result := Result{
		Status:        p.Status,
		Mode:          p.Mode,
		Counts:        reconcileCounts(p, rows),
		RawDetections: raw,
		AuditRows:     rows,
		SyncReport:    p.SyncReport,
	}
	if result.Status == "" {
		result.Status = "ok"
	}
	if result.Mode == "" {
		result.Mode = "classify_ocr_payload"
	}
	return result
}

// backfillPositions repairs rows that arrived with classification flags but
// no positional metadata by copying the bbox top/left of the first raw
// detection sharing the row's derived key.
func backfillPositions(rows []AuditRow, raw []Detection, logger *slog.Logger) []AuditRow {
	if len(raw) == 0 {
		return rows
	}

	type position struct {
		top, left *float64
	}
	byKey := make(map[string]position, len(raw))
	for _, det := range raw {
		key := det.Key()
		if _, exists := byKey[key]; exists {
			// OCR data is noisy enough to produce key collisions; the
			// first occurrence wins and the rest are only logged.
			logger.Debug("duplicate derived key in raw detections", "key", key)
			continue
		}
		pos := position{}
		if det.BBox != nil {
			top, left := det.BBox.Top, det.BBox.Left
			pos.top, pos.left = &top, &left
		}
		byKey[key] = pos
	}

	filled := append([]AuditRow(nil), rows...)
	for i := range filled {
		row := &filled[i]
		if row.BBoxTop != nil || row.BBoxLeft != nil {
			continue
		}
		pos, ok := byKey[row.Key()]
		if !ok {
			continue
		}
		row.BBoxTop, row.BBoxLeft = pos.top, pos.left
	}
	return filled
}

// reconcileCounts fills the count fields the upstream payload omitted. Raw
// and FilteredSubtitles get real derived defaults; everything else already
// defaulted to zero at parse time.
func reconcileCounts(p Payload, rows []AuditRow) Counts {
	counts := p.Counts
	if !p.hasRawCount {
		counts.Raw = len(p.RawDetections)
	}
	if !p.hasFilteredCount {
		counts.FilteredSubtitles = includedCount(rows)
	}
	return counts
}

func includedCount(rows []AuditRow) int {
	n := 0
	for _, row := range rows {
		if row.IncludedInFinalSubtitles {
			n++
		}
	}
	return n
}

// FinalSubtitleCues projects the included audit rows, already in
// presentation order, into the cue list consumed by the sync comparator and
// mismatch detector.
func FinalSubtitleCues(rows []AuditRow) []transcript.Cue {
	cues := make([]transcript.Cue, 0, len(rows))
	for _, row := range rows {
		if !row.IncludedInFinalSubtitles {
			continue
		}
		cues = append(cues, transcript.Cue{
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
			Text:      row.Text,
		})
	}
	return cues
}
