package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used by tests and the demo mode of the
// CLI. Safe for concurrent use.
type MemoryStore struct {
	mu            sync.RWMutex
	records       map[Category][]Record
	conversations []Conversation
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	records := make(map[Category][]Record, len(AllCategories))
	for _, cat := range AllCategories {
		records[cat] = nil
	}
	return &MemoryStore{records: records}
}

// ListAll returns a snapshot of every record in a category.
func (s *MemoryStore) ListAll(_ context.Context, category Category) ([]Record, error) {
	if !ValidCategory(category) {
		return nil, ErrUnknownCategory
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0, len(s.records[category]))
	for _, rec := range s.records[category] {
		out = append(out, rec.Clone())
	}
	return out, nil
}

// Get returns a single record by id.
func (s *MemoryStore) Get(_ context.Context, category Category, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records[category] {
		if rec.ID() == id {
			return rec.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

// Add validates and inserts a record.
func (s *MemoryStore) Add(_ context.Context, category Category, rec Record) (string, error) {
	if err := ValidateWrite(category, rec); err != nil {
		return "", err
	}

	stored := rec.Clone()
	stored["id"] = uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[category] = append(s.records[category], stored)
	return stored.ID(), nil
}

// Update validates and replaces a record.
func (s *MemoryStore) Update(_ context.Context, category Category, id string, rec Record) error {
	if err := ValidateWrite(category, rec); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.records[category] {
		if existing.ID() == id {
			updated := rec.Clone()
			updated["id"] = id
			s.records[category][i] = updated
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes a record.
func (s *MemoryStore) Delete(_ context.Context, category Category, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := s.records[category]
	for i, rec := range recs {
		if rec.ID() == id {
			s.records[category] = append(recs[:i], recs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Search returns records whose string fields contain the query.
func (s *MemoryStore) Search(ctx context.Context, category Category, query string) ([]Record, error) {
	records, err := s.ListAll(ctx, category)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	var matches []Record
	for _, rec := range records {
		for _, val := range rec.StringFields() {
			if strings.Contains(strings.ToLower(val), needle) {
				matches = append(matches, rec)
				break
			}
		}
	}
	return matches, nil
}

// AppendConversation appends one transcript entry.
func (s *MemoryStore) AppendConversation(_ context.Context, conv *Conversation) (string, error) {
	if conv.ID == "" {
		conv.ID = uuid.New().String()
	}
	if conv.Timestamp.IsZero() {
		conv.Timestamp = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations = append(s.conversations, *conv)
	return conv.ID, nil
}

// ListConversations returns the most recent transcript entries for a requester.
func (s *MemoryStore) ListConversations(_ context.Context, requesterID string, limit int) ([]Conversation, error) {
	if limit <= 0 {
		limit = 50
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var convs []Conversation
	for _, conv := range s.conversations {
		if conv.RequesterID == requesterID {
			convs = append(convs, conv)
		}
	}
	sort.Slice(convs, func(i, j int) bool {
		return convs[i].Timestamp.After(convs[j].Timestamp)
	})
	if len(convs) > limit {
		convs = convs[:limit]
	}
	return convs, nil
}

// PurgeConversations deletes transcript entries older than the cutoff.
func (s *MemoryStore) PurgeConversations(_ context.Context, olderThan time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.conversations[:0]
	var purged int64
	for _, conv := range s.conversations {
		if conv.Timestamp.Before(olderThan) {
			purged++
			continue
		}
		kept = append(kept, conv)
	}
	s.conversations = kept
	return purged, nil
}

// Stats returns per-category document counts.
func (s *MemoryStore) Stats(_ context.Context) (map[Category]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[Category]int, len(AllCategories))
	for _, cat := range AllCategories {
		stats[cat] = len(s.records[cat])
	}
	return stats, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// Ensure implementations satisfy interface.
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*SQLStore)(nil)
)
