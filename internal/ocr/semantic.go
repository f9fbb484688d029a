package ocr

import (
	"regexp"
	"strings"
	"unicode"

	"subsight/internal/textutil"
)

// Semantic tags. Tagged detections are counted separately and exempted from
// spelling complaints (a brand name is not a typo).
const (
	TagProperName = "proper_name"
	TagBrandName  = "brand_name"
)

var (
	nameTokenPattern = regexp.MustCompile(`[A-Za-z][A-Za-z'\-]*`)
	nonLetterPattern = regexp.MustCompile(`[^A-Za-z]`)
)

// ClassifySemanticTags annotates each detection with duplicate-free semantic
// tags derived from its text shape and repetition across the whole set.
func ClassifySemanticTags(detections []Detection) []Detection {
	tagged := append([]Detection(nil), detections...)

	textCounts := make(map[string]int, len(tagged))
	for _, det := range tagged {
		if norm := textutil.Normalize(det.Text); norm != "" {
			textCounts[norm]++
		}
	}

	for i := range tagged {
		det := &tagged[i]
		repeats := textCounts[textutil.Normalize(det.Text)]

		tags := []string{}
		if looksLikeProperName(det.Text) {
			tags = append(tags, TagProperName)
		}
		if looksLikeBrand(det.Text) ||
			(det.IsFixedText && repeats >= 2) ||
			(det.IsFixedText && len(strings.Fields(det.Text)) <= 3 && startsUpper(det.Text)) {
			tags = append(tags, TagBrandName)
		}
		det.SemanticTags = tags
	}
	return tagged
}

// looksLikeProperName matches short runs of capitalized words ("Ana Maria
// Braga") while rejecting all-caps acronyms longer than one letter.
func looksLikeProperName(text string) bool {
	tokens := nameTokenPattern.FindAllString(text, -1)
	if len(tokens) < 2 || len(tokens) > 4 {
		return false
	}
	for _, token := range tokens {
		if !unicode.IsUpper(rune(token[0])) {
			return false
		}
		if len(token) > 1 && token == strings.ToUpper(token) {
			return false
		}
	}
	return true
}

// looksLikeBrand flags text whose letters are at least 80% uppercase.
func looksLikeBrand(text string) bool {
	letters := nonLetterPattern.ReplaceAllString(text, "")
	if len(letters) < 3 {
		return false
	}
	upper := 0
	for _, r := range letters {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return float64(upper)/float64(len(letters)) >= 0.8
}
