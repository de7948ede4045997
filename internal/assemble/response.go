// Package assemble projects ranked match results into display-ready sections.
package assemble

import (
	"fmt"
	"time"

	"github.com/campushq/campus-assistant/internal/match"
	"github.com/campushq/campus-assistant/internal/store"
)

// SectionType identifies the kind of a response section.
type SectionType string

const (
	SectionEvents     SectionType = "events"
	SectionClubs      SectionType = "clubs"
	SectionFacilities SectionType = "facilities"
	SectionFAQs       SectionType = "faqs"
	SectionAcademic   SectionType = "academic"
	SectionCanteen    SectionType = "canteen"
	SectionEmpty      SectionType = "empty"
)

// Section is a typed, titled group of display-ready items of one category, or
// an empty placeholder with a friendly message.
type Section struct {
	Type    SectionType   `json:"type"`
	Title   string        `json:"title"`
	Message string        `json:"message,omitempty"`
	Items   []interface{} `json:"items,omitempty"`
}

// StructuredResponse is the assembled answer to one query.
type StructuredResponse struct {
	Query        string    `json:"query"`
	Sections     []Section `json:"sections"`
	TotalResults int       `json:"totalResults"`
	Timestamp    time.Time `json:"timestamp"`
}

// EventItem is a normalized event for display.
type EventItem struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	Venue       string      `json:"venue"`
	Organizer   string      `json:"organizer"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Capacity    interface{} `json:"capacity,omitempty"`
	Duration    string      `json:"duration"`
	Status      string      `json:"status"`
	Icon        string      `json:"icon"`
}

// ClubItem is a normalized club for display.
type ClubItem struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	MemberCount     interface{} `json:"memberCount,omitempty"`
	President       string      `json:"president"`
	Coordinator     string      `json:"coordinator"`
	ContactEmail    string      `json:"contactEmail"`
	ContactPhone    string      `json:"contactPhone"`
	MeetingSchedule string      `json:"meetingSchedule"`
	Location        string      `json:"location"`
	Category        string      `json:"category"`
	Status          string      `json:"status"`
	Icon            string      `json:"icon"`
}

// FacilityItem is a normalized facility for display.
type FacilityItem struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Type      string      `json:"type"`
	Location  string      `json:"location"`
	Hours     string      `json:"hours"`
	Capacity  interface{} `json:"capacity,omitempty"`
	Amenities []string    `json:"amenities"`
	Icon      string      `json:"icon"`
}

// FAQItem is a normalized FAQ for display.
type FAQItem struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
}

// AcademicItem is a normalized academic info entry for display.
type AcademicItem struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Icon    string `json:"icon"`
}

// CanteenDisplayItem is a normalized canteen item for display.
type CanteenDisplayItem struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Category     string      `json:"category"`
	Price        interface{} `json:"price,omitempty"`
	Availability string      `json:"availability"`
	Calories     interface{} `json:"calories,omitempty"`
	Vegetarian   bool        `json:"vegetarian"`
	Description  string      `json:"description"`
	Allergens    string      `json:"allergens"`
	Icon         string      `json:"icon"`
}

// emptyMessages are the per-category friendly messages for queried categories
// with no matches.
var emptyMessages = map[store.Category]struct {
	title   string
	message string
}{
	store.CategoryEvents:       {"No Events Found", "No upcoming events match your query. Check back soon!"},
	store.CategoryClubs:        {"No Clubs Found", "No clubs match your query. Visit the admin dashboard to add clubs!"},
	store.CategoryFacilities:   {"No Facilities Found", "No facilities match your query."},
	store.CategoryFAQs:         {"No FAQs Found", "No frequently asked questions match your query."},
	store.CategoryAcademicInfo: {"No Academic Info Found", "No academic information matches your query."},
	store.CategoryCanteenItems: {"No Food Items Found", "No food items match your query. Check the canteen menu!"},
}

// Assemble turns per-category match results into a structured response. It
// performs no scoring or matching of its own; it is a pure projection.
// Queried lists the categories the classifier actually selected: a queried
// category with zero matches yields an empty section, a category never
// queried yields no section at all.
func Assemble(query string, results map[store.Category][]match.ScoredRecord, queried []store.Category) *StructuredResponse {
	var sections []Section
	total := 0

	for _, cat := range queried {
		matches := results[cat]
		if len(matches) == 0 {
			em := emptyMessages[cat]
			sections = append(sections, Section{
				Type:    SectionEmpty,
				Title:   em.title,
				Message: em.message,
			})
			continue
		}

		section := buildSection(cat, matches)
		total += len(section.Items)
		sections = append(sections, section)
	}

	if total == 0 {
		sections = []Section{{
			Type:  SectionEmpty,
			Title: "No Results Found",
			Message: fmt.Sprintf(
				"I couldn't find information matching %q. Try asking about events, clubs, facilities, food items, or academic schedules.",
				query,
			),
		}}
	}

	return &StructuredResponse{
		Query:        query,
		Sections:     sections,
		TotalResults: total,
		Timestamp:    time.Now().UTC(),
	}
}

// buildSection projects one category's matches into a titled section.
func buildSection(cat store.Category, matches []match.ScoredRecord) Section {
	switch cat {
	case store.CategoryEvents:
		items := make([]interface{}, 0, len(matches))
		for _, sr := range matches {
			items = append(items, eventItem(sr.Record))
		}
		return Section{
			Type:  SectionEvents,
			Title: fmt.Sprintf("Upcoming Events (%d found)", len(items)),
			Items: items,
		}
	case store.CategoryClubs:
		items := make([]interface{}, 0, len(matches))
		for _, sr := range matches {
			items = append(items, clubItem(sr.Record))
		}
		return Section{
			Type:  SectionClubs,
			Title: fmt.Sprintf("Campus Clubs (%d found)", len(items)),
			Items: items,
		}
	case store.CategoryFacilities:
		items := make([]interface{}, 0, len(matches))
		for _, sr := range matches {
			items = append(items, facilityItem(sr.Record))
		}
		return Section{
			Type:  SectionFacilities,
			Title: fmt.Sprintf("Campus Facilities (%d found)", len(items)),
			Items: items,
		}
	case store.CategoryFAQs:
		items := make([]interface{}, 0, len(matches))
		for _, sr := range matches {
			items = append(items, faqItem(sr.Record))
		}
		return Section{
			Type:  SectionFAQs,
			Title: fmt.Sprintf("Frequently Asked Questions (%d found)", len(items)),
			Items: items,
		}
	case store.CategoryAcademicInfo:
		items := make([]interface{}, 0, len(matches))
		for _, sr := range matches {
			items = append(items, academicItem(sr.Record))
		}
		return Section{
			Type:  SectionAcademic,
			Title: fmt.Sprintf("Academic Information (%d found)", len(items)),
			Items: items,
		}
	case store.CategoryCanteenItems:
		items := make([]interface{}, 0, len(matches))
		for _, sr := range matches {
			items = append(items, canteenItem(sr.Record))
		}
		return Section{
			Type:  SectionCanteen,
			Title: fmt.Sprintf("Canteen Menu (%d found)", len(items)),
			Items: items,
		}
	default:
		return Section{Type: SectionEmpty, Title: "Unknown Category"}
	}
}

// eventItem normalizes an event record, coalescing legacy field aliases:
// first non-empty wins.
func eventItem(rec store.Record) EventItem {
	return EventItem{
		ID:          rec.ID(),
		Title:       rec.First("title", "Event_Name", "name"),
		Date:        rec.First("date", "Date"),
		Time:        rec.First("time", "Time"),
		Venue:       rec.First("venue", "Venue", "location"),
		Organizer:   rec.First("organizer", "Organizer"),
		Description: rec.Str("description"),
		Category:    rec.First("category", "Category"),
		Capacity:    firstValue(rec, "capacity", "Participants"),
		Duration:    rec.First("duration", "Duration_Hours"),
		Status:      statusOr(rec.First("status", "Status"), "upcoming"),
		Icon:        "🎉",
	}
}

func clubItem(rec store.Record) ClubItem {
	return ClubItem{
		ID:              rec.ID(),
		Name:            rec.Str("name"),
		Description:     rec.Str("description"),
		MemberCount:     firstValue(rec, "memberCount", "members"),
		President:       rec.First("president", "head"),
		Coordinator:     rec.Str("coordinator"),
		ContactEmail:    rec.First("contactEmail", "email"),
		ContactPhone:    rec.Str("contactPhone"),
		MeetingSchedule: rec.First("meetingSchedule", "meetingDay"),
		Location:        rec.Str("location"),
		Category:        rec.Str("category"),
		Status:          statusOr(rec.Str("status"), "Active"),
		Icon:            "🎓",
	}
}

func facilityItem(rec store.Record) FacilityItem {
	return FacilityItem{
		ID:        rec.ID(),
		Name:      rec.Str("name"),
		Type:      rec.Str("type"),
		Location:  rec.Str("location"),
		Hours:     rec.Str("hours"),
		Capacity:  firstValue(rec, "capacity"),
		Amenities: stringSlice(rec["amenities"]),
		Icon:      "📍",
	}
}

func faqItem(rec store.Record) FAQItem {
	return FAQItem{
		ID:       rec.ID(),
		Question: rec.Str("question"),
		Answer:   rec.Str("answer"),
		Category: rec.Str("category"),
		Icon:     "❓",
	}
}

func academicItem(rec store.Record) AcademicItem {
	return AcademicItem{
		ID:      rec.ID(),
		Title:   rec.Str("title"),
		Content: rec.Str("content"),
		Icon:    "📚",
	}
}

func canteenItem(rec store.Record) CanteenDisplayItem {
	vegetarian, _ := rec["vegetarian"].(bool)
	return CanteenDisplayItem{
		ID:           rec.ID(),
		Name:         rec.First("name", "itemName"),
		Category:     rec.Str("category"),
		Price:        firstValue(rec, "price"),
		Availability: rec.Str("availability"),
		Calories:     firstValue(rec, "calories"),
		Vegetarian:   vegetarian,
		Description:  rec.Str("description"),
		Allergens:    rec.Str("allergens"),
		Icon:         "🍽️",
	}
}

// firstValue returns the first present non-nil raw value among the keys,
// preserving numeric types for display.
func firstValue(rec store.Record, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := rec[k]; ok && v != nil && v != "" {
			return v
		}
	}
	return nil
}

// stringSlice coerces a decoded JSON array into a string slice.
func stringSlice(v interface{}) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// statusOr returns the status or a default when unset.
func statusOr(status, fallback string) string {
	if status == "" {
		return fallback
	}
	return status
}
