// Package textutil provides the text primitives shared by the OCR
// classification and sync comparison pipelines.
//
// OCR output is noisy: curly quotes, fullwidth characters, inconsistent
// casing and spacing. Every cross-referencing key and every textual
// comparison in the pipeline goes through the normalization functions here
// so that "Acme Corp " and "acme corp" refer to the same on-screen text.
//
// The package also provides whitespace tokenization, a Jaccard word-overlap
// ratio, and Levenshtein edit distance for subtitle/transcription scoring.
package textutil
