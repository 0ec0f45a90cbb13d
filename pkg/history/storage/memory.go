package storage

import (
	"context"
	"sort"
	"sync"

	"mercator-hq/advent/pkg/history"
)

type memoryEntry struct {
	record *history.Record
	seq    uint64
}

// MemoryStorage implements history.Storage using an in-memory map.
// Records are lost when the process exits.
type MemoryStorage struct {
	records map[string]memoryEntry
	seq     uint64
	mu      sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[string]memoryEntry),
	}
}

// Store persists records to memory. A record whose ID already exists
// fails the whole call.
func (s *MemoryStorage) Store(ctx context.Context, records ...*history.Record) error {
	if err := ctx.Err(); err != nil {
		return history.NewStorageError("memory", "store", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, exists := s.records[r.ID]; exists {
			return history.NewStorageError("memory", "store", errDuplicateID(r.ID))
		}
		if _, dup := seen[r.ID]; dup {
			return history.NewStorageError("memory", "store", errDuplicateID(r.ID))
		}
		seen[r.ID] = struct{}{}
	}

	for _, r := range records {
		s.seq++
		recordCopy := *r
		s.records[r.ID] = memoryEntry{record: &recordCopy, seq: s.seq}
	}

	return nil
}

// Query retrieves records matching the query filters.
func (s *MemoryStorage) Query(ctx context.Context, query *history.Query) ([]*history.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, history.NewStorageError("memory", "query", err)
	}

	s.mu.RLock()
	matched := s.filter(query)
	s.mu.RUnlock()

	oldest := query != nil && query.Oldest
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.record.SolvedAt.Equal(b.record.SolvedAt) {
			if oldest {
				return a.record.SolvedAt.Before(b.record.SolvedAt)
			}
			return a.record.SolvedAt.After(b.record.SolvedAt)
		}
		if oldest {
			return a.seq < b.seq
		}
		return a.seq > b.seq
	})

	start, end := 0, len(matched)
	if query != nil {
		if query.Offset > 0 {
			start = min(query.Offset, len(matched))
		}
		if query.Limit > 0 && start+query.Limit < end {
			end = start + query.Limit
		}
	}

	results := make([]*history.Record, 0, end-start)
	for _, e := range matched[start:end] {
		recordCopy := *e.record
		results = append(results, &recordCopy)
	}

	return results, nil
}

// Count returns the number of records matching the query filters.
func (s *MemoryStorage) Count(ctx context.Context, query *history.Query) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, history.NewStorageError("memory", "count", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.filter(query))), nil
}

// Delete removes records matching the query filters.
func (s *MemoryStorage) Delete(ctx context.Context, query *history.Query) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, history.NewStorageError("memory", "delete", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, e := range s.records {
		if query.Matches(e.record) {
			delete(s.records, id)
			deleted++
		}
	}

	return deleted, nil
}

// Close is a no-op for in-memory storage.
func (s *MemoryStorage) Close() error {
	return nil
}

// filter must be called with s.mu held.
func (s *MemoryStorage) filter(query *history.Query) []memoryEntry {
	var matched []memoryEntry
	for _, e := range s.records {
		if query.Matches(e.record) {
			matched = append(matched, e)
		}
	}
	return matched
}
