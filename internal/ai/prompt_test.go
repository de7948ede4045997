package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/campus-assistant/internal/store"
)

func TestBuildPrompt(t *testing.T) {
	t.Run("ungrounded", func(t *testing.T) {
		prompt := BuildPrompt("what events are happening", "")
		assert.Contains(t, prompt, "friendly campus assistant")
		assert.Contains(t, prompt, "what events are happening")
		assert.NotContains(t, prompt, "Campus data")
	})

	t.Run("grounded", func(t *testing.T) {
		prompt := BuildPrompt("when is freshers day", "EVENTS:\n- Freshers Day, date: 2026-09-12\n")
		assert.Contains(t, prompt, "ONLY the campus data below")
		assert.Contains(t, prompt, "Freshers Day")
		assert.Contains(t, prompt, "when is freshers day")
	})
}

func TestSerializeContext(t *testing.T) {
	results := map[store.Category][]store.Record{
		store.CategoryEvents: {
			{"title": "Freshers Day", "date": "2026-09-12", "venue": "Main Auditorium"},
		},
		store.CategoryFAQs: {
			{"question": "Where is the gym?", "answer": "North Campus."},
		},
		store.CategoryCanteenItems: {
			{"name": "Veg Sandwich", "price": 40, "availability": "available"},
		},
	}

	text := SerializeContext(results)

	assert.Contains(t, text, "EVENTS:\n- Freshers Day, date: 2026-09-12, venue: Main Auditorium")
	assert.Contains(t, text, "FAQS:\n- Q: Where is the gym?, A: North Campus.")
	assert.Contains(t, text, "CANTEEN MENU:\n- Veg Sandwich, price: 40, availability: available")

	// Categories render in the stable store order.
	require.Less(t, strings.Index(text, "EVENTS:"), strings.Index(text, "FAQS:"))
	require.Less(t, strings.Index(text, "FAQS:"), strings.Index(text, "CANTEEN MENU:"))
}

func TestSerializeContextSkipsEmpty(t *testing.T) {
	results := map[store.Category][]store.Record{
		store.CategoryClubs: {{"name": "Coding Club", "description": "Hackathons"}},
		store.CategoryFAQs:  nil,
	}

	text := SerializeContext(results)
	assert.Contains(t, text, "CLUBS:")
	assert.NotContains(t, text, "FAQS:")
}

func TestSerializeContextEmpty(t *testing.T) {
	assert.Empty(t, SerializeContext(nil))
	assert.Empty(t, SerializeContext(map[store.Category][]store.Record{}))
}

func TestSerializeRecordDropsUnsetFields(t *testing.T) {
	line := serializeRecord(store.CategoryFacilities, store.Record{"name": "Central Library"})
	assert.Equal(t, "Central Library", line)

	line = serializeRecord(store.CategoryFacilities, store.Record{
		"name": "Central Library", "hours": "8am-10pm",
	})
	assert.Equal(t, "Central Library, hours: 8am-10pm", line)
}
