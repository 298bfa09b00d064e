package query

import (
	"sort"
	"time"

	"github.com/tinytelemetry/lens/internal/model"
)

var levelRank = map[string]int{
	model.LevelTrace: 0,
	model.LevelDebug: 1,
	model.LevelInfo:  2,
	model.LevelWarn:  3,
	model.LevelError: 4,
	model.LevelFatal: 5,
}

// Execute filters, sorts, and paginates a window snapshot. totalCount is the
// physical entry count of the store the snapshot was taken from and is
// passed through unchanged. The snapshot must be in insertion order: the
// sort is stable, so entries with equal sort keys keep insertion order and
// pagination stays deterministic.
func Execute(entries []model.LogEntry, q model.LogQuery, totalCount int) *model.QueryResult {
	start := time.Now()

	p := newPredicate(q)
	filtered := make([]model.LogEntry, 0, len(entries))
	for i := range entries {
		if p.matches(&entries[i]) {
			filtered = append(filtered, entries[i])
		}
	}

	sortEntries(filtered, q.SortBy, q.SortOrder)

	limit := q.Limit
	if limit == 0 {
		limit = model.DefaultQueryLimit
	}
	offset := q.Offset

	lo := offset
	if lo > len(filtered) {
		lo = len(filtered)
	}
	// Clamp without computing lo+limit: the sum can overflow for huge
	// caller-supplied limits.
	hi := len(filtered)
	if limit < hi-lo {
		hi = lo + limit
	}
	page := make([]model.LogEntry, hi-lo)
	copy(page, filtered[lo:hi])

	return &model.QueryResult{
		Entries:       page,
		TotalCount:    totalCount,
		FilteredCount: len(filtered),
		HasMore:       hi < len(filtered),
		QueryTime:     time.Since(start),
		Facets:        generateFacets(filtered),
	}
}

// sortEntries orders entries by the requested key, default timestamp
// descending. Severity sorts by rank, not lexically. Entries missing a
// duration or memory sample sort as zero.
func sortEntries(entries []model.LogEntry, sortBy, sortOrder string) {
	if sortBy == "" {
		sortBy = model.SortByTimestamp
	}
	desc := sortOrder != model.SortAsc

	var less func(a, b *model.LogEntry) bool
	switch sortBy {
	case model.SortByLevel:
		less = func(a, b *model.LogEntry) bool {
			return levelRank[a.Level] < levelRank[b.Level]
		}
	case model.SortByDuration:
		less = func(a, b *model.LogEntry) bool {
			da, _ := a.Duration()
			db, _ := b.Duration()
			return da < db
		}
	case model.SortByMemory:
		less = func(a, b *model.LogEntry) bool {
			ma, _ := a.HeapUsed()
			mb, _ := b.HeapUsed()
			return ma < mb
		}
	default:
		less = func(a, b *model.LogEntry) bool {
			return a.Timestamp.Before(b.Timestamp)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if desc {
			return less(&entries[j], &entries[i])
		}
		return less(&entries[i], &entries[j])
	})
}
