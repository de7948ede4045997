package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campushq/campus-assistant/internal/store"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{
			name:     "simple sentence",
			query:    "What events are happening",
			expected: []string{"what", "events", "are", "happening"},
		},
		{
			name:     "punctuation stripped",
			query:    "What's the price of Veg Sandwich?",
			expected: []string{"what", "s", "the", "price", "of", "veg", "sandwich"},
		},
		{
			name:     "digits kept",
			query:    "computer lab 2",
			expected: []string{"computer", "lab", "2"},
		},
		{
			name:     "duplicates preserved",
			query:    "events events events",
			expected: []string{"events", "events", "events"},
		},
		{
			name:     "empty query",
			query:    "",
			expected: nil,
		},
		{
			name:     "only punctuation",
			query:    "?!,.",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractKeywords(tt.query)
			if tt.expected == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestClassifierClassify(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name     string
		query    string
		expected []store.Category
	}{
		{
			name:     "events query",
			query:    "what events are coming up",
			expected: []store.Category{store.CategoryEvents},
		},
		{
			name:     "clubs query",
			query:    "how do I join a club",
			expected: []store.Category{store.CategoryClubs},
		},
		{
			name:  "facilities and canteen",
			query: "where can I eat lunch",
			expected: []store.Category{
				store.CategoryFacilities,
				store.CategoryCanteenItems,
			},
		},
		{
			name:     "academic query",
			query:    "when does exam registration open",
			expected: []store.Category{store.CategoryAcademicInfo},
		},
		{
			name:     "no category matches",
			query:    "hello there",
			expected: nil,
		},
		{
			name:     "trigger must match whole word",
			query:    "preventing something", // contains "event" as substring only
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(ExtractKeywords(tt.query))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestClassifierTriggers(t *testing.T) {
	c := NewClassifier()
	assert.Contains(t, c.Triggers(store.CategoryCanteenItems), "menu")
	assert.Contains(t, c.Triggers(store.CategoryEvents), "festival")
	assert.Empty(t, c.Triggers(store.Category("bogus")))
}
