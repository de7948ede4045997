package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/campushq/campus-assistant/internal/store"
)

// SnapshotStore decorates a store.Store with cached category snapshots.
// Matching always works over full category listings, so ListAll is the hot
// path worth caching; writes invalidate the touched category.
type SnapshotStore struct {
	store.Store
	cache Client
	ttl   time.Duration
}

// NewSnapshotStore wraps a store with snapshot caching.
func NewSnapshotStore(s store.Store, cache Client, ttl time.Duration) *SnapshotStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SnapshotStore{Store: s, cache: cache, ttl: ttl}
}

// ListAll returns the cached category snapshot, falling back to the
// underlying store on a miss or any cache error.
func (s *SnapshotStore) ListAll(ctx context.Context, category store.Category) ([]store.Record, error) {
	key := snapshotKey(category)

	if data, err := s.cache.Get(ctx, key); err == nil {
		var records []store.Record
		if err := json.Unmarshal(data, &records); err == nil {
			return records, nil
		}
	} else if !errors.Is(err, ErrCacheMiss) {
		// A broken cache must not break reads.
		return s.Store.ListAll(ctx, category)
	}

	records, err := s.Store.ListAll(ctx, category)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(records); err == nil {
		_ = s.cache.Set(ctx, key, data, s.ttl)
	}
	return records, nil
}

// Add inserts a record and invalidates the category snapshot.
func (s *SnapshotStore) Add(ctx context.Context, category store.Category, rec store.Record) (string, error) {
	id, err := s.Store.Add(ctx, category, rec)
	if err == nil {
		_ = s.cache.Delete(ctx, snapshotKey(category))
	}
	return id, err
}

// Update replaces a record and invalidates the category snapshot.
func (s *SnapshotStore) Update(ctx context.Context, category store.Category, id string, rec store.Record) error {
	err := s.Store.Update(ctx, category, id, rec)
	if err == nil {
		_ = s.cache.Delete(ctx, snapshotKey(category))
	}
	return err
}

// Delete removes a record and invalidates the category snapshot.
func (s *SnapshotStore) Delete(ctx context.Context, category store.Category, id string) error {
	err := s.Store.Delete(ctx, category, id)
	if err == nil {
		_ = s.cache.Delete(ctx, snapshotKey(category))
	}
	return err
}

// Close releases both the cache and the underlying store.
func (s *SnapshotStore) Close() error {
	cacheErr := s.cache.Close()
	storeErr := s.Store.Close()
	if storeErr != nil {
		return storeErr
	}
	return cacheErr
}

func snapshotKey(category store.Category) string {
	return CacheKey("snapshot", string(category))
}
