// Package contextual retrieves the campus records relevant to a free-form
// question, used to ground AI answers in stored data.
package contextual

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/campushq/campus-assistant/internal/observability"
	"github.com/campushq/campus-assistant/internal/store"
)

// stopWords are filler words excluded from topic keyword extraction.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "you": true,
	"what": true, "when": true, "where": true, "which": true, "who": true,
	"how": true, "can": true, "could": true, "would": true, "should": true,
	"tell": true, "about": true, "with": true, "have": true, "does": true,
	"this": true, "that": true, "there": true, "their": true, "your": true,
	"any": true, "all": true, "please": true, "want": true, "know": true,
	"need": true, "get": true, "give": true, "show": true, "find": true,
	"will": true, "was": true, "his": true, "her": true, "its": true,
	"our": true, "out": true, "has": true, "had": true, "but": true,
	"not": true, "into": true, "from": true,
}

// categoryIndicators maps each category to the topic terms that mark a query
// as relevant to it.
var categoryIndicators = map[store.Category][]string{
	store.CategoryEvents:       {"event", "events", "fest", "festival", "workshop", "seminar", "competition", "hackathon"},
	store.CategoryClubs:        {"club", "clubs", "society", "societies", "team", "group"},
	store.CategoryFacilities:   {"facility", "facilities", "library", "lab", "gym", "hostel", "auditorium", "cafeteria", "sports"},
	store.CategoryAcademicInfo: {"academic", "exam", "exams", "semester", "course", "courses", "registration", "grade", "grades", "schedule"},
	store.CategoryCanteenItems: {"canteen", "food", "menu", "meal", "snack", "breakfast", "lunch", "dinner", "coffee", "tea", "price"},
}

// Options tunes the retriever.
type Options struct {
	PerCategoryLimit int // Max records per category in the context, default 5.
	MaxKeywords      int // Max extracted topic keywords, default 5.
	MaxConcurrent    int // Max concurrent category fetches, default 3.
	Broad            bool // Include every category regardless of indicators.
}

// Retriever collects records relevant to a query from the data store.
type Retriever struct {
	store store.Store
	log   *observability.Logger
	opts  Options
}

// NewRetriever creates a retriever over the given store.
func NewRetriever(s store.Store, log *observability.Logger, opts Options) *Retriever {
	if opts.PerCategoryLimit <= 0 {
		opts.PerCategoryLimit = 5
	}
	if opts.MaxKeywords <= 0 {
		opts.MaxKeywords = 5
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 3
	}
	if log == nil {
		log = observability.DefaultLogger()
	}
	return &Retriever{store: s, log: log.WithOperation("context_retrieval"), opts: opts}
}

// Broad reports whether the retriever fetches every category instead of the
// indicator-selected ones.
func (r *Retriever) Broad() bool {
	return r.opts.Broad
}

// TopicKeywords extracts the significant topic words from a query: lowercase,
// letters and digits only, longer than 2 runes, stop words removed, capped.
func TopicKeywords(query string, maxKeywords int) []string {
	words := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	keywords := make([]string, 0, maxKeywords)
	for _, w := range words {
		if len(w) <= 2 || stopWords[w] {
			continue
		}
		keywords = append(keywords, w)
		if len(keywords) >= maxKeywords {
			break
		}
	}
	return keywords
}

// relevantCategories selects the categories whose indicator terms overlap the
// query keywords. Matching is bidirectional containment so "event" matches
// "events" and vice versa. FAQs are always included: they answer questions
// from every topic area.
func (r *Retriever) relevantCategories(keywords []string) []store.Category {
	cats := []store.Category{store.CategoryFAQs}

	if r.opts.Broad {
		for _, cat := range store.AllCategories {
			if cat != store.CategoryFAQs {
				cats = append(cats, cat)
			}
		}
		return cats
	}

	for _, cat := range store.AllCategories {
		indicators, ok := categoryIndicators[cat]
		if !ok {
			continue
		}
		for _, kw := range keywords {
			if matchesAny(kw, indicators) {
				cats = append(cats, cat)
				break
			}
		}
	}
	return cats
}

func matchesAny(kw string, indicators []string) bool {
	for _, ind := range indicators {
		if strings.Contains(kw, ind) || strings.Contains(ind, kw) {
			return true
		}
	}
	return false
}

// Retrieve fetches the records relevant to the query, grouped by category.
// Categories are fetched concurrently with a bounded degree of parallelism.
// Within a category, records whose string fields mention a topic keyword come
// first; if none do, the first few records are included anyway so the model
// has something to ground on.
func (r *Retriever) Retrieve(ctx context.Context, query string) (map[store.Category][]store.Record, error) {
	keywords := TopicKeywords(query, r.opts.MaxKeywords)
	cats := r.relevantCategories(keywords)

	r.log.Debug().
		Strs("keywords", keywords).
		Int("categories", len(cats)).
		Msg("retrieving context")

	results := make(map[store.Category][]store.Record, len(cats))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.MaxConcurrent)

	for _, cat := range cats {
		g.Go(func() error {
			records, err := r.store.ListAll(gctx, cat)
			if err != nil {
				return fmt.Errorf("list %s: %w", cat, err)
			}

			selected := selectRelevant(records, keywords, r.opts.PerCategoryLimit)
			if len(selected) == 0 {
				return nil
			}

			mu.Lock()
			results[cat] = selected
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// selectRelevant picks up to limit records, preferring those whose string
// fields contain a topic keyword.
func selectRelevant(records []store.Record, keywords []string, limit int) []store.Record {
	if len(records) == 0 {
		return nil
	}

	selected := make([]store.Record, 0, limit)
	for _, rec := range records {
		if recordMentions(rec, keywords) {
			selected = append(selected, rec)
			if len(selected) >= limit {
				return selected
			}
		}
	}

	if len(selected) > 0 {
		return selected
	}

	if len(records) > limit {
		records = records[:limit]
	}
	return records
}

// recordMentions reports whether any string field of the record contains any
// of the keywords, case-insensitively.
func recordMentions(rec store.Record, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	for _, value := range rec.StringFields() {
		lower := strings.ToLower(value)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}
