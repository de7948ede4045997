package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DB represents a database connection interface.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// SQLStore implements Store on a relational database. Records are kept as JSON
// documents in a single table so the schemaless category payloads survive
// round-trips unchanged. Works with both sqlite and postgres; both drivers
// accept $N ordinal placeholders.
type SQLStore struct {
	db     DB
	closer func() error
}

// NewSQLStore creates a store over an open database connection.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, closer: db.Close}
}

// EnsureSchema creates the backing tables if they do not exist.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			collection TEXT NOT NULL,
			data TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_collection ON records (collection)`,
		`CREATE TABLE IF NOT EXISTS conversations (
			id TEXT PRIMARY KEY,
			user_message TEXT NOT NULL,
			response TEXT NOT NULL,
			ai_response TEXT NOT NULL,
			requester_id TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_requester ON conversations (requester_id, created_at)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// ListAll returns every record in a category, oldest first.
func (s *SQLStore) ListAll(ctx context.Context, category Category) ([]Record, error) {
	if !ValidCategory(category) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	query := `
		SELECT id, data FROM records
		WHERE collection = $1
		ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, string(category))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", category, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scan %s: %w", category, err)
		}
		rec, err := decodeRecord(id, data)
		if err != nil {
			// A corrupt document must not take down the whole category.
			continue
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Get returns a single record by id.
func (s *SQLStore) Get(ctx context.Context, category Category, id string) (Record, error) {
	query := `SELECT data FROM records WHERE collection = $1 AND id = $2`
	var data string
	err := s.db.QueryRowContext(ctx, query, string(category), id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", category, id, err)
	}
	return decodeRecord(id, data)
}

// Add validates and inserts a record, returning the assigned id.
func (s *SQLStore) Add(ctx context.Context, category Category, rec Record) (string, error) {
	if err := ValidateWrite(category, rec); err != nil {
		return "", err
	}

	id := uuid.New().String()
	data, err := encodeRecord(rec)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO records (id, collection, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := s.db.ExecContext(ctx, query, id, string(category), data, now, now); err != nil {
		return "", fmt.Errorf("add %s: %w", category, err)
	}
	return id, nil
}

// Update validates and replaces a record's document payload.
func (s *SQLStore) Update(ctx context.Context, category Category, id string, rec Record) error {
	if err := ValidateWrite(category, rec); err != nil {
		return err
	}

	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	query := `
		UPDATE records SET data = $1, updated_at = $2
		WHERE collection = $3 AND id = $4
	`
	res, err := s.db.ExecContext(ctx, query, data, time.Now().UTC(), string(category), id)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", category, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a record.
func (s *SQLStore) Delete(ctx context.Context, category Category, id string) error {
	query := `DELETE FROM records WHERE collection = $1 AND id = $2`
	res, err := s.db.ExecContext(ctx, query, string(category), id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", category, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Search returns records whose string fields contain the query. Filtering is
// in memory over the category snapshot; the store does not need server-side
// full-text search.
func (s *SQLStore) Search(ctx context.Context, category Category, query string) ([]Record, error) {
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
func (s *SQLStore) AppendConversation(ctx context.Context, conv *Conversation) (string, error) {
	if conv.ID == "" {
		conv.ID = uuid.New().String()
	}
	if conv.Timestamp.IsZero() {
		conv.Timestamp = time.Now().UTC()
	}

	response, err := json.Marshal(conv.Response)
	if err != nil {
		return "", fmt.Errorf("encode conversation response: %w", err)
	}

	query := `
		INSERT INTO conversations (id, user_message, response, ai_response, requester_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(ctx, query,
		conv.ID, conv.UserMessage, string(response), conv.AIResponse,
		conv.RequesterID, conv.Timestamp,
	)
	if err != nil {
		return "", fmt.Errorf("append conversation: %w", err)
	}
	return conv.ID, nil
}

// ListConversations returns the most recent transcript entries for a requester.
func (s *SQLStore) ListConversations(ctx context.Context, requesterID string, limit int) ([]Conversation, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, user_message, response, ai_response, requester_id, created_at
		FROM conversations
		WHERE requester_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, requesterID, limit)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var convs []Conversation
	for rows.Next() {
		var conv Conversation
		var response string
		if err := rows.Scan(&conv.ID, &conv.UserMessage, &response, &conv.AIResponse, &conv.RequesterID, &conv.Timestamp); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		var decoded interface{}
		if err := json.Unmarshal([]byte(response), &decoded); err == nil {
			conv.Response = decoded
		}
		convs = append(convs, conv)
	}
	return convs, rows.Err()
}

// PurgeConversations deletes transcript entries older than the cutoff.
func (s *SQLStore) PurgeConversations(ctx context.Context, olderThan time.Time) (int64, error) {
	query := `DELETE FROM conversations WHERE created_at < $1`
	res, err := s.db.ExecContext(ctx, query, olderThan.UTC())
	if err != nil {
		return 0, fmt.Errorf("purge conversations: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge conversations: %w", err)
	}
	return n, nil
}

// Stats returns per-category document counts.
func (s *SQLStore) Stats(ctx context.Context) (map[Category]int, error) {
	query := `SELECT collection, COUNT(*) FROM records GROUP BY collection`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Category]int, len(AllCategories))
	for _, cat := range AllCategories {
		stats[cat] = 0
	}
	for rows.Next() {
		var collection string
		var count int
		if err := rows.Scan(&collection, &count); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		stats[Category(collection)] = count
	}
	return stats, rows.Err()
}

// Close releases the database connection.
func (s *SQLStore) Close() error {
	if s.closer != nil {
		return s.closer()
	}
	return nil
}

// encodeRecord serializes a record without its transient id field.
func encodeRecord(rec Record) (string, error) {
	doc := rec.Clone()
	delete(doc, "id")
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}
	return string(data), nil
}

// decodeRecord deserializes a document and attaches its id.
func decodeRecord(id, data string) (Record, error) {
	var rec Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", id, err)
	}
	rec["id"] = id
	return rec, nil
}
