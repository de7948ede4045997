package match

import (
	"strings"

	"github.com/campushq/campus-assistant/internal/store"
)

// eventStopWords are filler words ignored when testing whether a query names
// an event.
var eventStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true,
	"tell": true, "me": true, "about": true, "what": true, "when": true,
	"where": true, "of": true, "for": true, "in": true, "on": true,
	"at": true, "to": true,
}

// FindEventMatch resolves a query to a single event by name. Event names are
// proper nouns, so exact and containment matching outperform fuzzy scoring:
// the cascade tries exact name equality, then all significant query words
// contained in the name, then similarity above 0.5, in that priority order.
func FindEventMatch(query string, events []store.Record) (ScoredRecord, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(events) == 0 {
		return ScoredRecord{}, false
	}

	// Exact name equality.
	for _, ev := range events {
		if ev == nil {
			continue
		}
		name := strings.ToLower(store.Label(store.CategoryEvents, ev))
		if name != "" && name == q {
			return ScoredRecord{Record: ev, Score: 1.0}, true
		}
	}

	// Every significant query word contained in the name.
	words := significantWords(q)
	if len(words) > 0 {
		for _, ev := range events {
			if ev == nil {
				continue
			}
			name := strings.ToLower(store.Label(store.CategoryEvents, ev))
			if name == "" {
				continue
			}
			contained := true
			for _, w := range words {
				if !strings.Contains(name, w) {
					contained = false
					break
				}
			}
			if contained {
				return ScoredRecord{Record: ev, Score: 0.9}, true
			}
		}
	}

	// Fuzzy last: whole-query similarity against the name.
	var best ScoredRecord
	for _, ev := range events {
		if ev == nil {
			continue
		}
		name := store.Label(store.CategoryEvents, ev)
		if name == "" {
			continue
		}
		if sim := Similarity(q, name); sim > 0.5 && sim > best.Score {
			best = ScoredRecord{Record: ev, Score: sim}
		}
	}
	if best.Record != nil {
		return best, true
	}

	return ScoredRecord{}, false
}

// significantWords filters the query down to non-stopword tokens longer than
// two characters.
func significantWords(q string) []string {
	var words []string
	for _, tok := range ExtractKeywords(q) {
		if len(tok) > 2 && !eventStopWords[tok] {
			words = append(words, tok)
		}
	}
	return words
}

// EventStrategy tries the event name cascade before generic ranked matching.
type EventStrategy struct{}

// Match resolves specific event queries to their single best event.
func (s *EventStrategy) Match(query string, records []store.Record) ([]ScoredRecord, bool) {
	if best, ok := FindEventMatch(query, records); ok {
		return []ScoredRecord{best}, true
	}
	return nil, false
}
