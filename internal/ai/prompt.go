package ai

import (
	"fmt"
	"strings"

	"github.com/campushq/campus-assistant/internal/store"
)

// BuildPrompt composes the final prompt for one generation call. With context
// the model is instructed to answer only from the supplied campus data and to
// say it does not know when the data does not cover the question.
func BuildPrompt(query, contextText string) string {
	if contextText == "" {
		return fmt.Sprintf(
			"You are a friendly campus assistant for a university. Answer the student's question conversationally and concisely.\n\nStudent question: %s",
			query,
		)
	}

	var b strings.Builder
	b.WriteString("You are a friendly campus assistant for a university. Answer the student's question using ONLY the campus data below. ")
	b.WriteString("If the data does not cover the question, say you don't have that information. Keep the answer concise and conversational.\n\n")
	b.WriteString("Campus data:\n")
	b.WriteString(contextText)
	b.WriteString("\n\nStudent question: ")
	b.WriteString(query)
	return b.String()
}

// sectionHeadings maps categories to the headings used when serializing
// retrieved records into prompt context.
var sectionHeadings = map[store.Category]string{
	store.CategoryEvents:       "EVENTS",
	store.CategoryClubs:        "CLUBS",
	store.CategoryFacilities:   "FACILITIES",
	store.CategoryFAQs:         "FAQS",
	store.CategoryAcademicInfo: "ACADEMIC INFO",
	store.CategoryCanteenItems: "CANTEEN MENU",
}

// SerializeContext renders retrieved records as plain text grouped under
// per-category headings, in the stable category order. Empty categories are
// skipped; an empty result overall yields an empty string.
func SerializeContext(results map[store.Category][]store.Record) string {
	var b strings.Builder

	for _, cat := range store.AllCategories {
		records := results[cat]
		if len(records) == 0 {
			continue
		}

		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionHeadings[cat])
		b.WriteString(":\n")

		for _, rec := range records {
			b.WriteString("- ")
			b.WriteString(serializeRecord(cat, rec))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// serializeRecord renders one record as a single context line using the
// fields students actually ask about.
func serializeRecord(cat store.Category, rec store.Record) string {
	switch cat {
	case store.CategoryEvents:
		return joinFields(
			rec.First("title", "Event_Name", "name"),
			labeled("date", rec.First("date", "Date")),
			labeled("time", rec.First("time", "Time")),
			labeled("venue", rec.First("venue", "Venue")),
			labeled("organizer", rec.First("organizer", "Organizer")),
		)
	case store.CategoryClubs:
		return joinFields(
			rec.Str("name"),
			rec.Str("description"),
			labeled("meets", rec.First("meetingSchedule", "meetingDay")),
			labeled("contact", rec.First("contactEmail", "email")),
		)
	case store.CategoryFacilities:
		return joinFields(
			rec.Str("name"),
			labeled("location", rec.Str("location")),
			labeled("hours", rec.Str("hours")),
		)
	case store.CategoryFAQs:
		return joinFields(
			"Q: "+rec.Str("question"),
			"A: "+rec.Str("answer"),
		)
	case store.CategoryAcademicInfo:
		return joinFields(rec.Str("title"), rec.Str("content"))
	case store.CategoryCanteenItems:
		return joinFields(
			rec.First("name", "itemName"),
			labeled("price", rec.Str("price")),
			labeled("availability", rec.Str("availability")),
		)
	default:
		return rec.Str("name")
	}
}

// labeled prefixes a value with its label, or returns empty when unset so
// joinFields drops it.
func labeled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}

// joinFields joins non-empty parts with commas.
func joinFields(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
