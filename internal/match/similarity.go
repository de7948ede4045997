// Package match implements the fuzzy matching and relevance ranking engine.
package match

import "strings"

// Similarity computes normalized edit-distance similarity between two strings.
// The comparison is case-insensitive and the result is always in [0,1]: 1.0 for
// identical strings, otherwise (len(longer)-editDistance)/len(longer). Two
// empty strings also score 1.0.
func Similarity(a, b string) float64 {
	s1 := strings.ToLower(a)
	s2 := strings.ToLower(b)

	if s1 == s2 {
		return 1
	}

	longer, shorter := s1, s2
	if len(s2) > len(s1) {
		longer, shorter = s2, s1
	}
	if len(longer) == 0 {
		return 1.0
	}

	distance := editDistance(longer, shorter)
	return float64(len(longer)-distance) / float64(len(longer))
}

// editDistance computes the Levenshtein distance with the classic single-row
// dynamic program. Insertion, deletion and substitution each cost 1; there is
// no transposition discount. Space is O(len(s2)), so callers pass the shorter
// string second.
func editDistance(s1, s2 string) int {
	costs := make([]int, len(s2)+1)
	for j := range costs {
		costs[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		lastValue := i
		for j := 1; j <= len(s2); j++ {
			newValue := costs[j-1]
			if s1[i-1] != s2[j-1] {
				newValue = min(min(newValue, lastValue), costs[j]) + 1
			}
			costs[j-1] = lastValue
			lastValue = newValue
		}
		costs[len(s2)] = lastValue
	}

	return costs[len(s2)]
}
