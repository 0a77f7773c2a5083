package study

import "strings"

// RecallResult is the outcome of checking a typed answer. Answer carries
// the authoritative definition so an incorrect attempt can surface it.
type RecallResult struct {
	Correct bool
	Answer  string
}

// CheckRecall compares the typed answer to the card's definition after
// trimming and lowercasing both. A single exact string form is
// authoritative; there is no partial credit or fuzzy matching.
func CheckRecall(input, correctDefinition string) RecallResult {
	normalize := func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return RecallResult{
		Correct: normalize(input) == normalize(correctDefinition),
		Answer:  correctDefinition,
	}
}
