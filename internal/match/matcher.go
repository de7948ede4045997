package match

import (
	"sort"
	"strings"

	"github.com/campushq/campus-assistant/internal/store"
)

// ScoredRecord wraps a record with a transient match confidence. Scores are
// created during matching, consumed by the response assembler, and never
// persisted.
type ScoredRecord struct {
	Record store.Record
	Score  float64
}

// Strategy overrides the generic ranked matching for a category. It returns
// scored results and true when it produced a decision; false defers to the
// generic matcher.
type Strategy interface {
	Match(query string, records []store.Record) ([]ScoredRecord, bool)
}

// Params configures one category's matcher.
type Params struct {
	Category store.Category
	// LabelFields are the record fields holding the primary label, in
	// alias priority order.
	LabelFields []string
	// ListingCues flip the matcher into general mode. Multi-word cues are
	// matched as substrings, single words as whole tokens.
	ListingCues []string
	// General mode: low threshold, effectively unbounded limit.
	GeneralThreshold float64
	GeneralLimit     int
	// Specific mode: higher threshold, small category-dependent limit.
	SpecificThreshold float64
	SpecificLimit     int
	// Strategy, when set, is consulted first in specific mode.
	Strategy Strategy
}

// Matcher ranks a category's records against a free-text query.
type Matcher struct {
	params Params
}

// NewMatcher creates a matcher, filling in default thresholds and limits.
func NewMatcher(params Params) *Matcher {
	if params.GeneralThreshold <= 0 {
		params.GeneralThreshold = 0.1
	}
	if params.GeneralLimit <= 0 {
		params.GeneralLimit = 100
	}
	if params.SpecificThreshold <= 0 {
		params.SpecificThreshold = 0.3
	}
	if params.SpecificLimit <= 0 {
		params.SpecificLimit = 1
	}
	if len(params.ListingCues) == 0 {
		params.ListingCues = []string{"all", "list", "show all"}
	}
	if len(params.LabelFields) == 0 && params.Category != "" {
		params.LabelFields = store.LabelFields(params.Category)
	}
	return &Matcher{params: params}
}

// ForCategory returns the canonical matcher for a category.
func ForCategory(cat store.Category) *Matcher {
	switch cat {
	case store.CategoryEvents:
		return NewMatcher(Params{
			Category:          cat,
			SpecificThreshold: 0.2,
			SpecificLimit:     5, // multiple events may partially match
			Strategy:          &EventStrategy{},
		})
	case store.CategoryClubs:
		return NewMatcher(Params{
			Category:          cat,
			SpecificThreshold: 0.3,
			SpecificLimit:     1,
		})
	case store.CategoryFacilities:
		return NewMatcher(Params{
			Category:          cat,
			SpecificThreshold: 0.3,
			SpecificLimit:     1,
		})
	case store.CategoryFAQs:
		return NewMatcher(Params{
			Category:          cat,
			SpecificThreshold: 0.3,
			SpecificLimit:     3,
		})
	case store.CategoryAcademicInfo:
		return NewMatcher(Params{
			Category:          cat,
			SpecificThreshold: 0.25,
			SpecificLimit:     3,
		})
	case store.CategoryCanteenItems:
		return NewMatcher(Params{
			Category:          cat,
			ListingCues:       []string{"all", "list", "show all", "menu"},
			SpecificThreshold: 0.3,
			SpecificLimit:     1,
			Strategy:          &CanteenStrategy{},
		})
	default:
		return NewMatcher(Params{Category: cat})
	}
}

// Match ranks records against the query, deciding between a single best match
// and a full listing.
func (m *Matcher) Match(query string, records []store.Record) []ScoredRecord {
	if strings.TrimSpace(query) == "" || len(records) == 0 {
		return nil
	}

	general := m.IsListingQuery(query)
	threshold := m.params.SpecificThreshold
	limit := m.params.SpecificLimit
	if general {
		threshold = m.params.GeneralThreshold
		limit = m.params.GeneralLimit
	}

	if !general && m.params.Strategy != nil {
		if results, ok := m.params.Strategy.Match(query, records); ok {
			return truncate(results, limit)
		}
	}

	scored := m.rank(query, records, threshold)
	scored = truncate(scored, limit)

	// Guarantee an obvious substring match is never reported as "not found".
	if len(scored) == 0 {
		scored = m.labelFallback(query, records, limit)
	}
	return scored
}

// IsListingQuery reports whether the query asks for the category's full
// contents rather than one specific entity.
func (m *Matcher) IsListingQuery(query string) bool {
	q := strings.ToLower(query)
	tokens := ExtractKeywords(query)
	for _, cue := range m.params.ListingCues {
		if strings.Contains(cue, " ") {
			if strings.Contains(q, cue) {
				return true
			}
			continue
		}
		for _, tok := range tokens {
			if tok == cue {
				return true
			}
		}
	}
	return false
}

// rank accumulates similarity scores over every string field of every record.
// Records that fail to yield a single comparable field simply score zero; a
// malformed record never aborts the category.
func (m *Matcher) rank(query string, records []store.Record, threshold float64) []ScoredRecord {
	keywords := ExtractKeywords(query)
	if len(keywords) == 0 {
		return nil
	}

	scored := make([]ScoredRecord, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		var score float64
		for _, value := range rec.StringFields() {
			for _, kw := range keywords {
				if sim := Similarity(kw, value); sim > threshold {
					score += sim
				}
			}
		}
		if score > 0 {
			scored = append(scored, ScoredRecord{Record: rec, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// labelFallback runs a plain token-containment pass over the label fields.
// Matches carry a zero score: present, but unranked.
func (m *Matcher) labelFallback(query string, records []store.Record, limit int) []ScoredRecord {
	var tokens []string
	for _, tok := range ExtractKeywords(query) {
		if len(tok) > 2 {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return nil
	}

	var matches []ScoredRecord
	for _, rec := range records {
		if rec == nil {
			continue
		}
		label := strings.ToLower(rec.First(m.params.LabelFields...))
		if label == "" {
			continue
		}
		for _, tok := range tokens {
			if strings.Contains(label, tok) {
				matches = append(matches, ScoredRecord{Record: rec})
				break
			}
		}
		if len(matches) >= limit {
			break
		}
	}
	return matches
}

// truncate caps results to limit.
func truncate(results []ScoredRecord, limit int) []ScoredRecord {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
