package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSQLiteStore opens an in-memory SQLite store with the schema applied.
// A single connection keeps every statement on the same in-memory database.
func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	s := NewSQLStore(db)
	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

func TestSQLStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	id, err := s.Add(ctx, CategoryEvents, Record{
		"title": "Freshers Day",
		"date":  "2026-09-12",
		"venue": "Main Auditorium",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := s.Get(ctx, CategoryEvents, id)
	require.NoError(t, err)
	assert.Equal(t, "Freshers Day", got.Str("title"))
	assert.Equal(t, id, got.ID())

	err = s.Update(ctx, CategoryEvents, id, Record{
		"title": "Freshers Day",
		"venue": "Open Air Theatre",
	})
	require.NoError(t, err)

	got, err = s.Get(ctx, CategoryEvents, id)
	require.NoError(t, err)
	assert.Equal(t, "Open Air Theatre", got.Str("venue"))

	require.NoError(t, s.Delete(ctx, CategoryEvents, id))

	_, err = s.Get(ctx, CategoryEvents, id)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSQLStoreListAll(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	_, err := s.Add(ctx, CategoryClubs, Record{"name": "Coding Club"})
	require.NoError(t, err)
	_, err = s.Add(ctx, CategoryClubs, Record{"name": "Drama Club"})
	require.NoError(t, err)
	_, err = s.Add(ctx, CategoryFacilities, Record{"name": "Central Library"})
	require.NoError(t, err)

	clubs, err := s.ListAll(ctx, CategoryClubs)
	require.NoError(t, err)
	assert.Len(t, clubs, 2)
	for _, rec := range clubs {
		assert.NotEmpty(t, rec.ID())
	}

	_, err = s.ListAll(ctx, Category("parking"))
	assert.True(t, errors.Is(err, ErrUnknownCategory))
}

func TestSQLStoreAddRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	_, err := s.Add(ctx, CategoryFAQs, Record{"question": "Where is the gym?"})
	require.Error(t, err)

	records, err := s.ListAll(ctx, CategoryFAQs)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSQLStoreUpdateMissing(t *testing.T) {
	s := newSQLiteStore(t)

	err := s.Update(context.Background(), CategoryClubs, "missing", Record{"name": "Chess Club"})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSQLStoreDeleteMissing(t *testing.T) {
	s := newSQLiteStore(t)

	err := s.Delete(context.Background(), CategoryClubs, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSQLStoreSearch(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	_, err := s.Add(ctx, CategoryCanteenItems, Record{"name": "Veg Sandwich", "description": "Grilled with cheese"})
	require.NoError(t, err)
	_, err = s.Add(ctx, CategoryCanteenItems, Record{"name": "Filter Coffee"})
	require.NoError(t, err)

	matches, err := s.Search(ctx, CategoryCanteenItems, "cheese")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Veg Sandwich", matches[0].Str("name"))
}

func TestSQLStoreConversations(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	base := time.Now().UTC().Truncate(time.Second)
	for i, msg := range []string{"first", "second", "third"} {
		_, err := s.AppendConversation(ctx, &Conversation{
			UserMessage: msg,
			Response:    map[string]interface{}{"totalResults": i},
			AIResponse:  "answer",
			RequesterID: "user-1",
			Timestamp:   base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	convs, err := s.ListConversations(ctx, "user-1", 2)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, "third", convs[0].UserMessage, "newest first")
	assert.Equal(t, "second", convs[1].UserMessage)
	assert.NotNil(t, convs[0].Response, "response payload must round-trip")

	other, err := s.ListConversations(ctx, "user-2", 10)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSQLStorePurgeConversations(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	now := time.Now().UTC()
	_, err := s.AppendConversation(ctx, &Conversation{
		UserMessage: "old", RequesterID: "u", Timestamp: now.Add(-72 * time.Hour),
	})
	require.NoError(t, err)
	_, err = s.AppendConversation(ctx, &Conversation{
		UserMessage: "recent", RequesterID: "u", Timestamp: now,
	})
	require.NoError(t, err)

	purged, err := s.PurgeConversations(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	convs, err := s.ListConversations(ctx, "u", 10)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, "recent", convs[0].UserMessage)
}

func TestSQLStoreStats(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	_, err := s.Add(ctx, CategoryEvents, Record{"title": "Freshers Day"})
	require.NoError(t, err)
	_, err = s.Add(ctx, CategoryEvents, Record{"title": "Tech Fest 2026"})
	require.NoError(t, err)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats[CategoryEvents])
	assert.Equal(t, 0, stats[CategoryClubs])
	assert.Len(t, stats, len(AllCategories))
}

func TestEncodeDecodeRecord(t *testing.T) {
	rec := Record{"id": "abc", "name": "Coding Club", "memberCount": 40}

	data, err := encodeRecord(rec)
	require.NoError(t, err)
	assert.NotContains(t, data, `"id"`, "the id column is authoritative")

	decoded, err := decodeRecord("abc", data)
	require.NoError(t, err)
	assert.Equal(t, "abc", decoded.ID())
	assert.Equal(t, "Coding Club", decoded.Str("name"))
}
