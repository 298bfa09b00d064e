// Package store composes the ring buffer and the secondary indexes into the
// queryable telemetry window. It is the only shared mutable state in the
// system and the only place locking happens: writers hold the lock for the
// O(1) add, readers only for the snapshot copy. Filtering, sorting, and
// aggregation run outside the lock on the copied snapshot, so a query
// observes a consistent state without blocking ingestion for its duration.
package store

import (
	"sync"

	"github.com/tinytelemetry/lens/internal/aggregate"
	"github.com/tinytelemetry/lens/internal/index"
	"github.com/tinytelemetry/lens/internal/model"
	"github.com/tinytelemetry/lens/internal/query"
	"github.com/tinytelemetry/lens/internal/ring"
)

// Store is a bounded, queryable window over recent log entries. There is no
// process-wide instance; callers construct one per logical window and pass
// it where needed.
type Store struct {
	mu      sync.RWMutex
	buffer  *ring.Buffer
	indexes *index.Manager
}

// New creates a store retaining at most capacity entries.
func New(capacity int) (*Store, error) {
	buf, err := ring.New(capacity)
	if err != nil {
		return nil, err
	}
	return &Store{
		buffer:  buf,
		indexes: index.NewManager(),
	}, nil
}

// Add clones entry into the window, evicting the oldest entry when full.
// Eviction unindexes the evicted entry before the new one is indexed.
// Ingestion never blocks on capacity; the window is deliberately lossy.
func (s *Store) Add(entry model.LogEntry) {
	stored := entry.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, evicted := s.buffer.Add(stored); evicted {
		s.indexes.Update(&old, false)
	}
	s.indexes.Update(&stored, true)
}

// Query filters, sorts, and paginates the current window.
func (s *Store) Query(q model.LogQuery) (*model.QueryResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	entries := s.buffer.Snapshot()
	total := s.buffer.Len()
	s.mu.RUnlock()

	return query.Execute(entries, q, total), nil
}

// Aggregate groups the current window and computes per-group statistics.
func (s *Store) Aggregate(opts model.AggregationOptions) (*model.AggregationResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	entries := s.buffer.Snapshot()
	s.mu.RUnlock()

	return aggregate.Run(entries, opts), nil
}

// Len returns the number of retained entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buffer.Len()
}

// Cap returns the window capacity.
func (s *Store) Cap() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buffer.Cap()
}

// IndexValues returns the distinct values currently present for an indexed
// field (correlationId, source, level), or nil for any other name.
func (s *Store) IndexValues(field string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexes.Values(field)
}

// Clear empties the buffer and all indexes.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer.Clear()
	s.indexes.Clear()
}
