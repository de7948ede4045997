package contextual

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/campus-assistant/internal/store"
)

func TestTopicKeywords(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		max      int
		expected []string
	}{
		{
			name:     "stop words removed",
			query:    "tell me about the coding club",
			max:      5,
			expected: []string{"coding", "club"},
		},
		{
			name:     "short words removed",
			query:    "is it in an ac lab",
			max:      5,
			expected: []string{"lab"},
		},
		{
			name:     "cap respected",
			query:    "events clubs facilities canteen library gym sports",
			max:      3,
			expected: []string{"events", "clubs", "facilities"},
		},
		{
			name:     "punctuation and case",
			query:    "What's the EXAM schedule?",
			max:      5,
			expected: []string{"exam", "schedule"},
		},
		{
			name:     "empty query",
			query:    "",
			max:      5,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TopicKeywords(tt.query, tt.max))
		})
	}
}

func TestRelevantCategories(t *testing.T) {
	r := NewRetriever(store.NewMemoryStore(), nil, Options{})

	tests := []struct {
		name     string
		keywords []string
		expected []store.Category
	}{
		{
			name:     "faqs always included",
			keywords: []string{"something"},
			expected: []store.Category{store.CategoryFAQs},
		},
		{
			name:     "singular keyword matches plural indicator",
			keywords: []string{"event"},
			expected: []store.Category{store.CategoryFAQs, store.CategoryEvents},
		},
		{
			name:     "plural keyword matches singular indicator",
			keywords: []string{"exams"},
			expected: []store.Category{store.CategoryFAQs, store.CategoryAcademicInfo},
		},
		{
			name:     "multiple categories",
			keywords: []string{"food", "library"},
			expected: []store.Category{
				store.CategoryFAQs,
				store.CategoryFacilities,
				store.CategoryCanteenItems,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.relevantCategories(tt.keywords))
		})
	}
}

func TestRelevantCategoriesBroad(t *testing.T) {
	r := NewRetriever(store.NewMemoryStore(), nil, Options{Broad: true})

	cats := r.relevantCategories(nil)
	assert.Len(t, cats, len(store.AllCategories))
	assert.Equal(t, store.CategoryFAQs, cats[0])
}

func TestRetrieve(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	_, err := s.Add(ctx, store.CategoryEvents, store.Record{"title": "Freshers Day", "venue": "Main Auditorium"})
	require.NoError(t, err)
	_, err = s.Add(ctx, store.CategoryEvents, store.Record{"title": "Tech Fest 2026"})
	require.NoError(t, err)
	_, err = s.Add(ctx, store.CategoryFAQs, store.Record{"question": "How do I register for events?", "answer": "Portal."})
	require.NoError(t, err)

	r := NewRetriever(s, nil, Options{})

	results, err := r.Retrieve(ctx, "what events are happening")
	require.NoError(t, err)

	assert.Contains(t, results, store.CategoryEvents)
	assert.Contains(t, results, store.CategoryFAQs)
	assert.NotContains(t, results, store.CategoryClubs, "empty categories are omitted")
}

func TestRetrieveKeywordPreference(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	faqs := []store.Record{
		{"question": "How do I get my ID card?", "answer": "Visit the admin office."},
		{"question": "What are the library timings?", "answer": "8am to 10pm."},
		{"question": "Is hostel WiFi free?", "answer": "Yes."},
	}
	for _, rec := range faqs {
		_, err := s.Add(ctx, store.CategoryFAQs, rec)
		require.NoError(t, err)
	}

	r := NewRetriever(s, nil, Options{PerCategoryLimit: 1})

	results, err := r.Retrieve(ctx, "library timings")
	require.NoError(t, err)

	got := results[store.CategoryFAQs]
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Str("question"), "library", "keyword mentions must win the slot")
}

func TestSelectRelevantFallsBackToHead(t *testing.T) {
	records := []store.Record{
		{"name": "One"}, {"name": "Two"}, {"name": "Three"},
	}

	selected := selectRelevant(records, []string{"unrelated"}, 2)
	require.Len(t, selected, 2)
	assert.Equal(t, "One", selected[0].Str("name"))
}

func TestRecordMentions(t *testing.T) {
	rec := store.Record{"name": "Central Library", "hours": "8am-10pm"}

	assert.True(t, recordMentions(rec, []string{"library"}))
	assert.False(t, recordMentions(rec, []string{"canteen"}))
	assert.False(t, recordMentions(rec, nil))
}
