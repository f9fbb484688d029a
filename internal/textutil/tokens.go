package textutil

import "strings"

// Words splits text into lowercase whitespace-delimited tokens. Unlike a
// search tokenizer it keeps short words: "I" and "a" carry signal when
// comparing a three-word subtitle against a three-word transcription cue.
func Words(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// WordOverlapRatio computes the Jaccard ratio |intersection|/|union| over
// the unique-token sets of a and b. Token order and multiplicity are
// irrelevant. Returns 0 when either side is empty.
func WordOverlapRatio(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := make(map[string]struct{}, len(a))
	for _, token := range a {
		setA[token] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, token := range b {
		setB[token] = struct{}{}
	}
	intersection := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
