package learning

import "strings"

// SimilarityThreshold is the minimum score (exclusive) for an example to count as similar.
const SimilarityThreshold = 0.3

func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// countShared counts the words of a that also occur in b, keeping repeats.
func countShared(a []string, inB map[string]bool) int {
	n := 0
	for _, w := range a {
		if inB[w] {
			n++
		}
	}
	return n
}

// Similarity is the shared-word count over the distinct-word union of both
// prompts. Repeated words are not collapsed in the shared count; the smaller
// of the two directional counts is used so the score stays symmetric, and the
// result is capped at 1.
func Similarity(a, b string) float64 {
	wa, wb := tokenize(a), tokenize(b)

	setA := make(map[string]bool, len(wa))
	for _, w := range wa {
		setA[w] = true
	}
	setB := make(map[string]bool, len(wb))
	union := make(map[string]bool, len(wa)+len(wb))
	for _, w := range wa {
		union[w] = true
	}
	for _, w := range wb {
		setB[w] = true
		union[w] = true
	}

	if len(union) == 0 {
		return 0
	}

	shared := min(countShared(wa, setB), countShared(wb, setA))
	score := float64(shared) / float64(len(union))
	if score > 1 {
		return 1
	}
	return score
}
