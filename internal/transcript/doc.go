// Package transcript models transcription cues produced by the external
// speech-to-text service and the subtitle cues compared against them.
//
// Upstream timestamps arrive in several shapes (floats, "12.3s" strings,
// MM:SS timecodes, protobuf-style {seconds,nanos} objects); parsing accepts
// all of them and normalization repairs missing or reversed windows so the
// rest of the pipeline can assume clean, time-ordered cues.
//
// The package also implements subtitle/transcription mismatch detection: a
// transcription cue whose text does not appear in the subtitles shown near
// its time window is flagged for review.
package transcript
