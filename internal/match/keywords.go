package match

import (
	"strings"
	"unicode"

	"github.com/campushq/campus-assistant/internal/store"
)

// ExtractKeywords lowercases the query and splits it into alphanumeric word
// tokens. Order and duplicates are preserved; no stopwords are removed at this
// stage.
func ExtractKeywords(query string) []string {
	lowered := strings.ToLower(query)
	return strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Classifier decides which data categories are relevant to a query based on
// fixed per-category trigger vocabularies.
type Classifier struct {
	triggers map[store.Category][]string
}

// NewClassifier creates a classifier with the default trigger vocabularies.
func NewClassifier() *Classifier {
	return &Classifier{
		triggers: map[store.Category][]string{
			store.CategoryEvents: {
				"event", "events", "happening", "coming", "festival", "upcoming",
			},
			store.CategoryClubs: {
				"club", "clubs", "society", "group", "team",
			},
			store.CategoryFacilities: {
				"facility", "facilities", "library", "cafeteria", "sports",
				"lab", "gym", "where", "location", "place",
			},
			store.CategoryAcademicInfo: {
				"academic", "semester", "exam", "schedule", "grade", "course",
				"registration",
			},
			store.CategoryCanteenItems: {
				"food", "canteen", "menu", "eat", "lunch", "breakfast",
				"dinner", "coffee", "snack", "item", "price",
			},
			store.CategoryFAQs: {
				"faq", "faqs", "question", "questions",
			},
		},
	}
}

// Classify returns every category whose trigger vocabulary contains at least
// one of the keywords. Membership is an exact word test; a query can select
// multiple categories, or none.
func (c *Classifier) Classify(keywords []string) []store.Category {
	var selected []store.Category
	for _, cat := range store.AllCategories {
		if c.matchesCategory(cat, keywords) {
			selected = append(selected, cat)
		}
	}
	return selected
}

// matchesCategory reports whether any keyword exactly matches a trigger word.
func (c *Classifier) matchesCategory(cat store.Category, keywords []string) bool {
	for _, kw := range keywords {
		for _, trigger := range c.triggers[cat] {
			if kw == trigger {
				return true
			}
		}
	}
	return false
}

// Triggers returns the trigger vocabulary for a category.
func (c *Classifier) Triggers(cat store.Category) []string {
	return c.triggers[cat]
}
