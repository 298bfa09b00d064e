// Package ring implements the fixed-capacity FIFO buffer backing the
// telemetry window store. Once full, each add overwrites the oldest entry.
package ring

import (
	"fmt"

	"github.com/tinytelemetry/lens/internal/model"
)

// Buffer is a preallocated circular buffer of log entries. It is not safe
// for concurrent use; the owning store serializes access.
type Buffer struct {
	entries []model.LogEntry
	head    int // oldest slot
	tail    int // next write slot
	count   int
}

// New creates a buffer that retains at most capacity entries.
func New(capacity int) (*Buffer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("ring: capacity must be positive, got %d", capacity)
	}
	return &Buffer{entries: make([]model.LogEntry, capacity)}, nil
}

// Add writes entry at the tail. When the buffer is full the oldest entry is
// overwritten and returned with evicted=true. O(1) regardless of fullness.
func (b *Buffer) Add(entry model.LogEntry) (old model.LogEntry, evicted bool) {
	if b.count == len(b.entries) {
		old = b.entries[b.head]
		evicted = true
		b.head = (b.head + 1) % len(b.entries)
	} else {
		b.count++
	}
	b.entries[b.tail] = entry
	b.tail = (b.tail + 1) % len(b.entries)
	return old, evicted
}

// Snapshot returns all live entries oldest to newest, independent of
// physical wraparound. The returned slice is a copy.
func (b *Buffer) Snapshot() []model.LogEntry {
	out := make([]model.LogEntry, 0, b.count)
	for i := 0; i < b.count; i++ {
		out = append(out, b.entries[(b.head+i)%len(b.entries)])
	}
	return out
}

// Len returns the number of live entries.
func (b *Buffer) Len() int { return b.count }

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int { return len(b.entries) }

// Clear resets the buffer and drops entry references so retained entries
// become collectable.
func (b *Buffer) Clear() {
	for i := range b.entries {
		b.entries[i] = model.LogEntry{}
	}
	b.head = 0
	b.tail = 0
	b.count = 0
}
