package ocr

import "testing"

func TestReconcileSpelling(t *testing.T) {
	tests := []struct {
		name string
		row  AuditRow
		want SpellingStatus
	}{
		{
			"excluded row forced to not_checked",
			AuditRow{CheckedInSpelling: false, SpellingStatus: SpellingErrDetected},
			SpellingNotChecked,
		},
		{
			"kept matches mean error_detected",
			AuditRow{CheckedInSpelling: true, SpellingStatus: SpellingNotChecked,
				SpellingRawMatchCount: 2, SpellingKeptMatchCount: 1},
			SpellingErrDetected,
		},
		{
			"raw-only matches mean error_filtered_out",
			AuditRow{CheckedInSpelling: true, SpellingStatus: SpellingNotChecked,
				SpellingRawMatchCount: 2},
			SpellingErrFiltered,
		},
		{
			"no matches mean no_error",
			AuditRow{CheckedInSpelling: true, SpellingStatus: SpellingNotChecked},
			SpellingNoError,
		},
		{
			"explicit upstream verdict preserved",
			AuditRow{CheckedInSpelling: true, SpellingStatus: SpellingErrFiltered,
				SpellingKeptMatchCount: 3},
			SpellingErrFiltered,
		},
		{
			"empty status treated as a gap",
			AuditRow{CheckedInSpelling: true, SpellingRawMatchCount: 1},
			SpellingErrFiltered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := reconcileSpelling([]AuditRow{tt.row})
			if out[0].SpellingStatus != tt.want {
				t.Errorf("status = %s, want %s", out[0].SpellingStatus, tt.want)
			}
		})
	}
}
