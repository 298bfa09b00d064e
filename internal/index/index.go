// Package index maintains reference-counted distinct-value sets for a few
// log entry fields, tracking the values currently represented in the buffer.
package index

import "github.com/tinytelemetry/lens/internal/model"

// Indexed field names.
const (
	FieldCorrelationID = "correlationId"
	FieldSource        = "source"
	FieldLevel         = "level"
)

// Fields lists all indexed field names.
var Fields = []string{FieldCorrelationID, FieldSource, FieldLevel}

// Manager tracks distinct values per indexed field. Counts are per-value
// references: a value shared by several buffered entries survives until the
// last of them is evicted. Not safe for concurrent use; the owning store
// serializes access.
type Manager struct {
	counts map[string]map[string]int
}

// NewManager creates an empty index manager.
func NewManager() *Manager {
	m := &Manager{counts: make(map[string]map[string]int, len(Fields))}
	for _, f := range Fields {
		m.counts[f] = make(map[string]int)
	}
	return m
}

// Update registers (add=true) or releases (add=false) the entry's indexed
// field values. Every buffer add must be paired with an add update, and
// every eviction with a release of the evicted entry.
func (m *Manager) Update(entry *model.LogEntry, add bool) {
	m.update(FieldCorrelationID, entry.CorrelationID, add)
	m.update(FieldSource, entry.Source, add)
	m.update(FieldLevel, entry.Level, add)
}

func (m *Manager) update(field, value string, add bool) {
	if value == "" {
		return
	}
	set := m.counts[field]
	if add {
		set[value]++
		return
	}
	if n, ok := set[value]; ok {
		if n <= 1 {
			delete(set, value)
		} else {
			set[value] = n - 1
		}
	}
}

// Values returns the distinct values currently present for field, or nil for
// an unindexed field name.
func (m *Manager) Values(field string) []string {
	set, ok := m.counts[field]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	return out
}

// Clear drops all indexed values.
func (m *Manager) Clear() {
	for _, f := range Fields {
		m.counts[f] = make(map[string]int)
	}
}
