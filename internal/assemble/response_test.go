package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/campus-assistant/internal/match"
	"github.com/campushq/campus-assistant/internal/store"
)

func TestAssembleBuildsSectionsPerQueriedCategory(t *testing.T) {
	results := map[store.Category][]match.ScoredRecord{
		store.CategoryEvents: {
			{Record: store.Record{"id": "ev-1", "title": "Freshers Day", "date": "2026-09-12", "venue": "Main Auditorium"}, Score: 1.0},
		},
		store.CategoryClubs: {
			{Record: store.Record{"id": "cl-1", "name": "Coding Club", "description": "Hackathons"}, Score: 0.8},
		},
	}
	queried := []store.Category{store.CategoryEvents, store.CategoryClubs}

	resp := Assemble("freshers day and coding club", results, queried)

	require.Len(t, resp.Sections, 2)
	assert.Equal(t, 2, resp.TotalResults)
	assert.Equal(t, "freshers day and coding club", resp.Query)
	assert.False(t, resp.Timestamp.IsZero())

	events := resp.Sections[0]
	assert.Equal(t, SectionEvents, events.Type)
	assert.Equal(t, "Upcoming Events (1 found)", events.Title)
	require.Len(t, events.Items, 1)

	ev, ok := events.Items[0].(EventItem)
	require.True(t, ok)
	assert.Equal(t, "Freshers Day", ev.Title)
	assert.Equal(t, "Main Auditorium", ev.Venue)
	assert.Equal(t, "upcoming", ev.Status) // defaulted when unset

	clubs := resp.Sections[1]
	assert.Equal(t, SectionClubs, clubs.Type)
	assert.Equal(t, "Campus Clubs (1 found)", clubs.Title)
}

func TestAssembleQueriedButEmptyCategory(t *testing.T) {
	results := map[store.Category][]match.ScoredRecord{
		store.CategoryCanteenItems: {
			{Record: store.Record{"id": "cn-1", "name": "Veg Sandwich", "price": 40, "vegetarian": true}, Score: 1.0},
		},
	}
	queried := []store.Category{store.CategoryEvents, store.CategoryCanteenItems}

	resp := Assemble("events and food", results, queried)

	require.Len(t, resp.Sections, 2)
	assert.Equal(t, 1, resp.TotalResults)

	empty := resp.Sections[0]
	assert.Equal(t, SectionEmpty, empty.Type)
	assert.Equal(t, "No Events Found", empty.Title)
	assert.NotEmpty(t, empty.Message)
	assert.Empty(t, empty.Items)
}

func TestAssembleNoResultsAtAll(t *testing.T) {
	queried := []store.Category{store.CategoryEvents, store.CategoryClubs}

	resp := Assemble("xyzzy", nil, queried)

	require.Len(t, resp.Sections, 1)
	assert.Equal(t, 0, resp.TotalResults)
	assert.Equal(t, SectionEmpty, resp.Sections[0].Type)
	assert.Equal(t, "No Results Found", resp.Sections[0].Title)
	assert.Contains(t, resp.Sections[0].Message, `"xyzzy"`)
}

func TestAssembleNoQueriedCategories(t *testing.T) {
	resp := Assemble("hello", nil, nil)

	require.Len(t, resp.Sections, 1)
	assert.Equal(t, "No Results Found", resp.Sections[0].Title)
}

func TestEventItemAliasCoalescing(t *testing.T) {
	rec := store.Record{
		"id":         "ev-2",
		"Event_Name": "Tech Fest 2026",
		"Date":       "2026-10-03",
		"Venue":      "Engineering Block",
		"Status":     "confirmed",
	}

	ev := eventItem(rec)
	assert.Equal(t, "Tech Fest 2026", ev.Title)
	assert.Equal(t, "2026-10-03", ev.Date)
	assert.Equal(t, "Engineering Block", ev.Venue)
	assert.Equal(t, "confirmed", ev.Status)
}

func TestCanteenItemProjection(t *testing.T) {
	rec := store.Record{
		"id":           "cn-2",
		"name":         "Masala Dosa",
		"price":        60,
		"availability": "available",
		"vegetarian":   true,
	}

	item := canteenItem(rec)
	assert.Equal(t, "Masala Dosa", item.Name)
	assert.Equal(t, 60, item.Price)
	assert.True(t, item.Vegetarian)
	assert.Nil(t, item.Calories)
}

func TestFacilityItemAmenities(t *testing.T) {
	// JSON decoding yields []interface{}, direct construction []string.
	tests := []struct {
		name     string
		input    interface{}
		expected []string
	}{
		{name: "string slice", input: []string{"wifi", "ac"}, expected: []string{"wifi", "ac"}},
		{name: "decoded json array", input: []interface{}{"wifi", "ac"}, expected: []string{"wifi", "ac"}},
		{name: "absent", input: nil, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := store.Record{"id": "fa-1", "name": "Central Library"}
			if tt.input != nil {
				rec["amenities"] = tt.input
			}
			item := facilityItem(rec)
			assert.Equal(t, tt.expected, item.Amenities)
		})
	}
}
