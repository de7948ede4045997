package store

import (
	"github.com/campushq/campus-assistant/internal/campuserr"
)

// fieldRules holds the write-time whitelist for one category.
type fieldRules struct {
	Required []string
	Optional []string
}

// writeRules defines the per-category required and optional fields enforced at
// write time. Unknown fields and missing required fields are both rejected.
var writeRules = map[Category]fieldRules{
	CategoryEvents: {
		Required: []string{"title"},
		Optional: []string{"name", "description", "date", "time", "venue", "organizer", "category", "capacity", "duration", "status"},
	},
	CategoryClubs: {
		Required: []string{"name"},
		Optional: []string{"description", "coordinator", "president", "contactEmail", "contactPhone", "meetingSchedule", "location", "memberCount", "category", "status"},
	},
	CategoryFacilities: {
		Required: []string{"name"},
		Optional: []string{"type", "location", "hours", "capacity", "amenities"},
	},
	CategoryFAQs: {
		Required: []string{"question", "answer"},
		Optional: []string{"category"},
	},
	CategoryAcademicInfo: {
		Required: []string{"title"},
		Optional: []string{"content"},
	},
	CategoryCanteenItems: {
		Required: []string{"name"},
		Optional: []string{"category", "price", "availability", "calories", "vegetarian", "description", "allergens"},
	},
}

// labelFields maps each category to the fields that can hold its primary label.
var labelFields = map[Category][]string{
	CategoryEvents:       {"title", "name", "Event_Name"},
	CategoryClubs:        {"name"},
	CategoryFacilities:   {"name"},
	CategoryFAQs:         {"question"},
	CategoryAcademicInfo: {"title"},
	CategoryCanteenItems: {"name", "itemName"},
}

// LabelFields returns the label field aliases for a category.
func LabelFields(category Category) []string {
	return labelFields[category]
}

// Label returns the primary label of a record in the given category.
func Label(category Category, rec Record) string {
	return rec.First(labelFields[category]...)
}

// ValidateWrite checks a record against the category whitelist. Every record
// must carry its required fields with non-empty values and may not carry any
// field outside the whitelist.
func ValidateWrite(category Category, rec Record) error {
	rules, ok := writeRules[category]
	if !ok {
		return campuserr.NewValidation("unknown category: %s", category)
	}

	if len(rec) == 0 {
		return campuserr.NewValidation("data is required")
	}

	for _, field := range rules.Required {
		v, present := rec[field]
		if !present || v == "" || v == nil {
			return campuserr.NewValidation("missing required field: %s", field)
		}
	}

	allowed := make(map[string]bool, len(rules.Required)+len(rules.Optional)+1)
	allowed["id"] = true // tolerated on round-trips, ignored on write
	for _, f := range rules.Required {
		allowed[f] = true
	}
	for _, f := range rules.Optional {
		allowed[f] = true
	}
	for field := range rec {
		if !allowed[field] {
			return campuserr.NewValidation("unknown field: %s", field)
		}
	}

	return nil
}
