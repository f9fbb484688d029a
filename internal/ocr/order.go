package ocr

import (
	"math"
	"sort"
	"strings"
)

// sortRows imposes the deterministic presentation order and assigns dense
// 1..N order values. Position outranks time only for rows whose windows are
// close enough on both ends to read as a single frame; otherwise OCR noise
// in the timestamps would jumble unrelated captions.
func sortRows(rows []AuditRow, simultaneityWindow float64) []AuditRow {
	sorted := append([]AuditRow(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareRows(sorted[i], sorted[j], simultaneityWindow) < 0
	})
	for i := range sorted {
		sorted[i].Order = i + 1
	}
	return sorted
}

func compareRows(a, b AuditRow, window float64) int {
	aTop, bTop := positionOrInf(a.BBoxTop), positionOrInf(b.BBoxTop)
	aLeft, bLeft := positionOrInf(a.BBoxLeft), positionOrInf(b.BBoxLeft)

	startsClose := math.Abs(a.StartTime-b.StartTime) <= window
	endsClose := math.Abs(a.EndTime-b.EndTime) <= window
	if startsClose && endsClose {
		if c := compareFloats(aTop, bTop); c != 0 {
			return c
		}
		if c := compareFloats(aLeft, bLeft); c != 0 {
			return c
		}
	}

	if c := compareFloats(a.StartTime, b.StartTime); c != 0 {
		return c
	}
	if c := compareFloats(a.EndTime, b.EndTime); c != 0 {
		return c
	}
	if c := compareFloats(aTop, bTop); c != 0 {
		return c
	}
	if c := compareFloats(aLeft, bLeft); c != 0 {
		return c
	}
	if c := strings.Compare(strings.ToLower(a.Text), strings.ToLower(b.Text)); c != 0 {
		return c
	}
	return strings.Compare(a.Text, b.Text)
}

// positionOrInf sorts rows without a known position after every row that has
// one.
func positionOrInf(v *float64) float64 {
	if v == nil {
		return math.Inf(1)
	}
	return *v
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
