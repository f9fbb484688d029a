package ocr

import "testing"

func fptr(v float64) *float64 { return &v }

func TestSortRowsSimultaneousUsesPosition(t *testing.T) {
	// A subtitle at the bottom and a brand overlay at the top share one
	// frame; the overlay reads first despite its later start time.
	rows := []AuditRow{
		{Text: "Hello", StartTime: 1.0, EndTime: 2.0, BBoxTop: fptr(0.8), BBoxLeft: fptr(0.1)},
		{Text: "BRAND", StartTime: 1.05, EndTime: 1.95, BBoxTop: fptr(0.05), BBoxLeft: fptr(0.1)},
	}

	sorted := sortRows(rows, DefaultSimultaneityWindow)
	if sorted[0].Text != "BRAND" || sorted[1].Text != "Hello" {
		t.Errorf("wrong order: %q then %q", sorted[0].Text, sorted[1].Text)
	}
	if sorted[0].Order != 1 || sorted[1].Order != 2 {
		t.Errorf("orders = %d, %d", sorted[0].Order, sorted[1].Order)
	}
}

func TestSortRowsNonSimultaneousIgnoresPosition(t *testing.T) {
	rows := []AuditRow{
		{Text: "later", StartTime: 5.0, EndTime: 6.0, BBoxTop: fptr(0.05)},
		{Text: "earlier", StartTime: 1.0, EndTime: 2.0, BBoxTop: fptr(0.9)},
	}

	sorted := sortRows(rows, DefaultSimultaneityWindow)
	if sorted[0].Text != "earlier" {
		t.Errorf("chronology lost: first row %q", sorted[0].Text)
	}
}

func TestSortRowsMissingPositionSortsLast(t *testing.T) {
	rows := []AuditRow{
		{Text: "nowhere", StartTime: 1.0, EndTime: 2.0},
		{Text: "placed", StartTime: 1.0, EndTime: 2.0, BBoxTop: fptr(0.9), BBoxLeft: fptr(0.9)},
	}

	sorted := sortRows(rows, DefaultSimultaneityWindow)
	if sorted[0].Text != "placed" {
		t.Errorf("row without position sorted before positioned row")
	}
}

func TestSortRowsTextTiebreakCaseInsensitive(t *testing.T) {
	rows := []AuditRow{
		{Text: "Zebra", StartTime: 1, EndTime: 2, BBoxTop: fptr(0.5), BBoxLeft: fptr(0.5)},
		{Text: "apple", StartTime: 1, EndTime: 2, BBoxTop: fptr(0.5), BBoxLeft: fptr(0.5)},
	}

	sorted := sortRows(rows, DefaultSimultaneityWindow)
	if sorted[0].Text != "apple" {
		t.Errorf("tiebreak not case-insensitive: first row %q", sorted[0].Text)
	}
}

func TestSortRowsDeterministic(t *testing.T) {
	rows := []AuditRow{
		{Text: "c", StartTime: 3, EndTime: 4},
		{Text: "a", StartTime: 1, EndTime: 2, BBoxTop: fptr(0.2)},
		{Text: "b", StartTime: 1, EndTime: 2, BBoxTop: fptr(0.1)},
		{Text: "d", StartTime: 1, EndTime: 2},
	}

	first := sortRows(rows, DefaultSimultaneityWindow)
	second := sortRows(first, DefaultSimultaneityWindow)

	seen := make(map[int]bool)
	for i := range first {
		if first[i].Text != second[i].Text {
			t.Fatalf("order unstable at %d: %q vs %q", i, first[i].Text, second[i].Text)
		}
		if seen[second[i].Order] {
			t.Fatalf("duplicate order %d", second[i].Order)
		}
		seen[second[i].Order] = true
	}
}
