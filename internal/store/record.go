// Package store provides the document store boundary for campus data.
package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/campushq/campus-assistant/internal/campuserr"
)

// Common errors
var (
	ErrNotFound        = campuserr.ErrNotFound
	ErrUnknownCategory = errors.New("unknown category")
)

// Category identifies one of the fixed campus data domains.
type Category string

const (
	CategoryEvents       Category = "events"
	CategoryClubs        Category = "clubs"
	CategoryFacilities   Category = "facilities"
	CategoryFAQs         Category = "faqs"
	CategoryAcademicInfo Category = "academic_info"
	CategoryCanteenItems Category = "canteen_items"
)

// AllCategories lists every queryable category in a stable order.
var AllCategories = []Category{
	CategoryEvents,
	CategoryClubs,
	CategoryFacilities,
	CategoryFAQs,
	CategoryAcademicInfo,
	CategoryCanteenItems,
}

// ValidCategory reports whether c names a known category.
func ValidCategory(c Category) bool {
	for _, cat := range AllCategories {
		if cat == c {
			return true
		}
	}
	return false
}

// Record is a single stored document belonging to exactly one category.
// Documents are schemaless maps so that matchers can scan every string-valued
// field and the assembler can coalesce legacy field aliases.
type Record map[string]interface{}

// ID returns the store-assigned identifier, or empty if unsaved.
func (r Record) ID() string {
	return r.Str("id")
}

// Str returns the value at key as a string. Non-string scalar values are
// formatted; missing keys and nested values yield the empty string so a
// malformed record can never abort a caller.
func (r Record) Str(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// First returns the first non-empty string value among the given keys.
func (r Record) First(keys ...string) string {
	for _, k := range keys {
		if s := r.Str(k); s != "" {
			return s
		}
	}
	return ""
}

// StringFields returns every directly string-valued field of the record.
// Non-string values are skipped rather than coerced; scoring only ever
// compares free text.
func (r Record) StringFields() map[string]string {
	fields := make(map[string]string, len(r))
	for k, v := range r {
		if s, ok := v.(string); ok && s != "" {
			fields[k] = s
		}
	}
	return fields
}

// Clone returns a shallow copy. Matchers operate on snapshots and must never
// mutate fetched records.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Conversation is one append-only transcript entry. It is write-only from the
// core's perspective: never updated or deleted.
type Conversation struct {
	ID          string      `json:"id"`
	UserMessage string      `json:"userMessage"`
	Response    interface{} `json:"response"`
	AIResponse  string      `json:"aiResponse"`
	RequesterID string      `json:"requesterId"`
	Timestamp   time.Time   `json:"timestamp"`
}

// Store is the data store collaborator contract. The core always fetches full
// category snapshots and filters in memory, since ranking needs full-text
// comparison.
type Store interface {
	// ListAll returns every record in a category.
	ListAll(ctx context.Context, category Category) ([]Record, error)
	// Get returns a single record by id.
	Get(ctx context.Context, category Category, id string) (Record, error)
	// Add validates and inserts a record, returning its assigned id.
	Add(ctx context.Context, category Category, rec Record) (string, error)
	// Update validates and replaces the mutable fields of a record.
	Update(ctx context.Context, category Category, id string, rec Record) error
	// Delete removes a record.
	Delete(ctx context.Context, category Category, id string) error
	// Search returns records whose string fields contain the query, case-insensitively.
	Search(ctx context.Context, category Category, query string) ([]Record, error)
	// AppendConversation appends one transcript entry.
	AppendConversation(ctx context.Context, conv *Conversation) (string, error)
	// ListConversations returns the most recent transcript entries for a requester.
	ListConversations(ctx context.Context, requesterID string, limit int) ([]Conversation, error)
	// PurgeConversations deletes transcript entries older than the cutoff,
	// returning how many were removed.
	PurgeConversations(ctx context.Context, olderThan time.Time) (int64, error)
	// Stats returns per-category document counts.
	Stats(ctx context.Context) (map[Category]int, error)
	// Close releases underlying resources.
	Close() error
}

// ParseCategory normalizes a category string coming from handlers or the CLI.
func ParseCategory(name string) (Category, error) {
	c := Category(name)
	if !ValidCategory(c) {
		return "", fmt.Errorf("%w: %s", ErrUnknownCategory, name)
	}
	return c, nil
}
