package ocr

// reconcileSpelling derives per-row spelling statuses from match counts.
// Spelling is meaningless on excluded rows, so those are forced back to
// not_checked. On included rows the reconciler only fills gaps: an explicit
// upstream verdict is preserved, while a not_checked row whose inclusion
// just became (or stayed) true gets a status derived from its counts.
func reconcileSpelling(rows []AuditRow) []AuditRow {
	reconciled := append([]AuditRow(nil), rows...)
	for i := range reconciled {
		row := &reconciled[i]

		if !row.CheckedInSpelling {
			row.SpellingStatus = SpellingNotChecked
			continue
		}
		if row.SpellingStatus != SpellingNotChecked && row.SpellingStatus != "" {
			continue
		}
		switch {
		case row.SpellingKeptMatchCount > 0:
			row.SpellingStatus = SpellingErrDetected
		case row.SpellingRawMatchCount > 0:
			row.SpellingStatus = SpellingErrFiltered
		default:
			row.SpellingStatus = SpellingNoError
		}
	}
	return reconciled
}
