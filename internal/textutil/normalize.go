package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespacePattern  = regexp.MustCompile(`\s+`)
	punctuationPattern = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
)

// numberWords maps spelled-out numbers to digits for comparison purposes.
// Subtitles frequently spell numbers that the transcription renders as
// digits (or vice versa); both forms must compare equal.
var numberWords = map[string]string{
	"zero": "0", "one": "1", "two": "2", "three": "3", "four": "4",
	"five": "5", "six": "6", "seven": "7", "eight": "8", "nine": "9",
	"ten": "10", "eleven": "11", "twelve": "12", "thirteen": "13",
	"fourteen": "14", "fifteen": "15", "sixteen": "16", "seventeen": "17",
	"eighteen": "18", "nineteen": "19", "twenty": "20", "twenties": "20s",
	"thirty": "30", "thirties": "30s", "forty": "40", "forties": "40s",
	"fifty": "50", "fifties": "50s", "sixty": "60", "seventy": "70",
	"eighty": "80", "ninety": "90", "hundred": "100", "thousand": "1000",
}

// Normalize canonicalizes OCR text for use in derived keys and text-identity
// sets: NFKC fold, trim, lowercase, collapse internal whitespace.
func Normalize(text string) string {
	value := norm.NFKC.String(text)
	value = strings.ToLower(strings.TrimSpace(value))
	return whitespacePattern.ReplaceAllString(value, " ")
}

// NormalizeComparable prepares text for cross-source comparison: Normalize,
// strip punctuation, and unify spelled-out numbers with digits.
func NormalizeComparable(text string) string {
	value := punctuationPattern.ReplaceAllString(Normalize(text), "")
	fields := strings.Fields(value)
	for i, field := range fields {
		if digit, ok := numberWords[field]; ok {
			fields[i] = digit
		}
	}
	return strings.Join(fields, " ")
}

// NormalizeContains is NormalizeComparable with all spacing removed, for
// strict substring checks that must ignore word-boundary differences.
func NormalizeContains(text string) string {
	return strings.ReplaceAll(NormalizeComparable(text), " ", "")
}
