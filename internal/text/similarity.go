package text

import "strings"

const (
	// tokenOverlapRatio is the share of the smaller token set that must
	// appear in the other comment for a token-overlap match.
	tokenOverlapRatio = 0.6
	// maxLengthGap keeps token overlap from pairing an unrelated long and
	// short comment.
	maxLengthGap = 5
	// minTokenLength drops stop-word-sized tokens from the overlap check.
	minTokenLength = 2
)

// AreSimilar reports whether two normalized comments describe the same theme.
// Either substring containment or sufficient token overlap suffices.
func AreSimilar(a, b string) bool {
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return tokenOverlapMatch(a, b)
}

func tokenOverlapMatch(a, b string) bool {
	// Lengths are compared with whitespace stripped so phrasing alone does
	// not push two wordings of the same theme past the gap.
	diff := compactLength(a) - compactLength(b)
	if diff < 0 {
		diff = -diff
	}
	if diff > maxLengthGap {
		return false
	}

	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return false
	}

	overlap := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			overlap++
		}
	}

	minSize := len(setA)
	if len(setB) < minSize {
		minSize = len(setB)
	}
	return float64(overlap) >= tokenOverlapRatio*float64(minSize)
}

func compactLength(s string) int {
	n := 0
	for _, r := range s {
		if r != ' ' && r != '\t' {
			n++
		}
	}
	return n
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		if len([]rune(tok)) > minTokenLength {
			set[tok] = struct{}{}
		}
	}
	return set
}
