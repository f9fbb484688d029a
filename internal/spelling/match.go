package spelling

import (
	"context"
	"regexp"
	"strings"
)

// Match is one spelling suggestion for a token inside a subtitle text.
type Match struct {
	OriginalText   string `json:"original_text"`
	SuggestedText  string `json:"suggested_text"`
	RuleID         string `json:"rule_id"`
	HasReplacement bool   `json:"has_replacement"`
}

// Checker is the external spell-checking provider. Implementations return
// every candidate match for the given text; false-positive filtering happens
// afterwards in Filter.
type Checker interface {
	Check(ctx context.Context, text string) ([]Match, error)
}

var (
	tokenStripPattern   = regexp.MustCompile(`[^\w\s]`)
	prepareStripPattern = regexp.MustCompile(`[^\w\s']`)
	prepareSpacePattern = regexp.MustCompile(`\s+`)
)

// NewMatch builds a Match, deriving HasReplacement from the normalized token
// comparison: a suggestion that only changes case or punctuation is not an
// actionable replacement.
func NewMatch(original, suggested, ruleID string) Match {
	if suggested == "" {
		suggested = original
	}
	originalNorm := normalizeToken(original)
	suggestedNorm := normalizeToken(suggested)
	return Match{
		OriginalText:   original,
		SuggestedText:  suggested,
		RuleID:         ruleID,
		HasReplacement: originalNorm != "" && suggestedNorm != "" && originalNorm != suggestedNorm,
	}
}

// PrepareText readies subtitle text for a provider request. Apostrophes are
// preserved so contractions like "I've" do not become false positives, curly
// apostrophes are unified, all other punctuation becomes whitespace.
func PrepareText(text string) string {
	if text == "" {
		return ""
	}
	value := strings.ReplaceAll(text, "’", "'")
	value = prepareStripPattern.ReplaceAllString(value, " ")
	return strings.TrimSpace(prepareSpacePattern.ReplaceAllString(value, " "))
}

// normalizeToken strips punctuation and case for typo comparison.
func normalizeToken(text string) string {
	return strings.ToLower(strings.TrimSpace(tokenStripPattern.ReplaceAllString(text, "")))
}
