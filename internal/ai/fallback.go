package ai

import "strings"

// FallbackAnswer produces a rule-based conversational reply used when no
// generation backend is configured or every model failed. It keys off coarse
// intent words in the query and always returns non-empty text, so callers can
// degrade without surfacing an error to the student.
func FallbackAnswer(query string) string {
	q := strings.ToLower(query)

	switch {
	case containsAny(q, "hello", "hi ", "hey") || q == "hi":
		return "Hello! I'm your campus assistant. Ask me about events, clubs, facilities, the canteen menu, or academic schedules."
	case containsAny(q, "event", "happening", "festival"):
		return "Here's what I found about campus events. Check the event details below, or ask me about a specific event by name."
	case containsAny(q, "club", "society", "join"):
		return "Campus clubs are a great way to get involved. The details below cover meeting times and how to reach each club."
	case containsAny(q, "food", "canteen", "menu", "eat", "lunch", "breakfast", "dinner"):
		return "The canteen serves a range of items through the day. The menu details below include prices and availability."
	case containsAny(q, "library", "lab", "gym", "facility", "where", "location"):
		return "Campus facilities and their locations are listed below, including opening hours where available."
	case containsAny(q, "exam", "semester", "academic", "schedule", "registration", "grade"):
		return "Academic schedules and deadlines are listed below. For anything not covered, the registrar's office can help."
	case containsAny(q, "thank"):
		return "You're welcome! Let me know if there's anything else about campus you'd like to know."
	default:
		return "I can help with campus events, clubs, facilities, the canteen menu, and academic schedules. What would you like to know?"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
