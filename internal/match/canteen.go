package match

import (
	"sort"
	"strings"

	"github.com/campushq/campus-assistant/internal/store"
)

// menuCues mark a query as asking for the whole menu.
var menuCues = []string{
	"menu", "show all", "all items", "list all", "what do you have",
	"canteen items", "food menu",
}

// detailCues mark a query as asking about one concrete item.
var detailCues = []string{
	"price", "cost", "availability", "available", "in stock",
	"vegetarian", "vegan", "calories", "how much",
}

// IsMenuRequest reports whether the query asks for the full canteen menu.
func IsMenuRequest(query string) bool {
	q := strings.ToLower(query)
	for _, cue := range menuCues {
		if strings.Contains(q, cue) {
			return true
		}
	}
	return false
}

// IsSpecificItemQuery reports whether the query asks about a single item's
// details such as price, availability or calories.
func IsSpecificItemQuery(query string) bool {
	q := strings.ToLower(query)
	for _, cue := range detailCues {
		if strings.Contains(q, cue) {
			return true
		}
	}
	return false
}

// FindCanteenMatches narrows a candidate set to the best matching items using
// an exact/contains/similarity cascade. Specific item queries return only the
// single best match so a price question never gets the entire menu back.
func FindCanteenMatches(query string, items []store.Record, limit int) []ScoredRecord {
	if strings.TrimSpace(query) == "" || len(items) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = 5
	}

	q := strings.ToLower(query)
	scored := make([]ScoredRecord, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		name := strings.ToLower(item.First("name", "itemName"))
		desc := strings.ToLower(item.Str("description"))

		var score float64
		switch {
		case name != "" && name == q:
			score = 1.0
		case name != "" && strings.Contains(name, q):
			score = 0.95
		case len(name) > 2 && strings.Contains(q, name):
			score = 0.85
		default:
			if name != "" {
				score = Similarity(q, name)
			}
			if desc != "" {
				if ds := Similarity(q, desc); ds > score {
					score = ds
				}
			}
		}

		scored = append(scored, ScoredRecord{Record: item, Score: score})
	}

	resultLimit := 1
	if IsMenuRequest(query) || containsToken(q, "all") {
		resultLimit = limit
	}

	results := make([]ScoredRecord, 0, len(scored))
	for _, sr := range scored {
		if sr.Score > 0.3 {
			results = append(results, sr)
		}
	}
	sortByScore(results)
	results = truncate(results, resultLimit)

	// No confident match: fall back to substring matching on the item name.
	if len(results) == 0 {
		var tokens []string
		for _, tok := range ExtractKeywords(query) {
			if len(tok) > 2 {
				tokens = append(tokens, tok)
			}
		}
		for _, item := range items {
			if item == nil {
				continue
			}
			name := strings.ToLower(item.First("name", "itemName"))
			if name == "" {
				continue
			}
			for _, tok := range tokens {
				if strings.Contains(name, tok) {
					results = append(results, ScoredRecord{Record: item})
					break
				}
			}
			if len(results) >= resultLimit {
				break
			}
		}
	}

	return results
}

// CanteenStrategy applies the canteen exact-match cascade for specific item
// queries before the generic ranked matcher runs.
type CanteenStrategy struct{}

// Match narrows items when the query targets one concrete item.
func (s *CanteenStrategy) Match(query string, records []store.Record) ([]ScoredRecord, bool) {
	if !IsSpecificItemQuery(query) {
		return nil, false
	}
	matches := FindCanteenMatches(query, records, 5)
	if len(matches) == 0 {
		return nil, false
	}
	return matches, true
}

// containsToken reports whether q contains word as a whole token.
func containsToken(q, word string) bool {
	for _, tok := range ExtractKeywords(q) {
		if tok == word {
			return true
		}
	}
	return false
}

// sortByScore orders results by descending score, preserving input order on
// ties.
func sortByScore(results []ScoredRecord) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
