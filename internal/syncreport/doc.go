// Package syncreport judges whether the OCR-derived subtitle stream matches
// the spoken transcription.
//
// Each final subtitle cue is aligned against the time-overlapping
// transcription cue with the highest word-overlap ratio (Jaccard over
// lowercased token sets, Levenshtein distance as the tiebreak) and
// classified as SYNCED, LIKELY_SYNCED, or MISALIGNED. Overlapping subtitle
// pairs with near-identical text are reported as duplicates. The summary
// rolls everything up into an overall GOOD/WARNING/BAD verdict.
package syncreport
