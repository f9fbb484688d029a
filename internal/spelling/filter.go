package spelling

import "strings"

// Filter removes false positives from raw provider matches: matches with no
// actionable replacement, matches against known fixed/brand text, and
// suggestions that differ from the original only in case or punctuation.
// fixedTexts is the set of on-screen texts classified as fixed (brand)
// overlays; a "typo" that is really a brand name is not an error.
func Filter(matches []Match, fixedTexts []string) []Match {
	brandNames := make(map[string]struct{}, len(fixedTexts))
	for _, text := range fixedTexts {
		brandNames[strings.ToLower(text)] = struct{}{}
	}

	kept := make([]Match, 0, len(matches))
	for _, match := range matches {
		if !match.HasReplacement {
			continue
		}
		if _, ok := brandNames[strings.ToLower(match.OriginalText)]; ok {
			continue
		}
		if normalizeToken(match.OriginalText) == normalizeToken(match.SuggestedText) {
			continue
		}
		kept = append(kept, match)
	}
	return kept
}
