// Package ocr classifies on-screen text detections into an ordered,
// reason-coded audit trail and derives the final subtitle stream from it.
//
// The pipeline is a pure batch computation: parse one of the historical
// payload shapes into a canonical form, synthesize audit rows from boolean
// hints when the upstream classifier sent none, backfill missing screen
// positions from the raw detection list, impose a deterministic presentation
// order, enforce the subtitle confidence gate, and reconcile per-row spelling
// verdicts. Each pass produces a fresh snapshot; feeding a pass's output back
// in yields identical classifications.
//
// The package also carries the local classification path: flattening a raw
// video-intelligence OCR document into detections, merging animated partial
// text sequences, scoring subtitle-versus-fixed-text heuristics, and tagging
// proper names and brand text, so a full audit can be reproduced without the
// upstream service.
package ocr
