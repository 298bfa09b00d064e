package model

import (
	"fmt"
	"regexp"
	"time"
)

// Sort fields accepted by LogQuery.SortBy.
const (
	SortByTimestamp = "timestamp"
	SortByLevel     = "level"
	SortByDuration  = "duration"
	SortByMemory    = "memory"
)

// Sort orders accepted by LogQuery.SortOrder.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// LogQuery is a set of independent optional filters plus pagination and sort.
// All specified filters combine with AND semantics; a zero-value query
// matches every entry.
type LogQuery struct {
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`

	Levels        []string `json:"levels,omitempty"`
	ExcludeLevels []string `json:"excludeLevels,omitempty"`

	MessageContains   string `json:"messageContains,omitempty"`
	MessageRegex      string `json:"messageRegex,omitempty"`
	MessageStartsWith string `json:"messageStartsWith,omitempty"`
	MessageEndsWith   string `json:"messageEndsWith,omitempty"`

	CorrelationIDs []string `json:"correlationIds,omitempty"`
	RequestIDs     []string `json:"requestIds,omitempty"`
	UserIDs        []string `json:"userIds,omitempty"`
	SessionIDs     []string `json:"sessionIds,omitempty"`

	Sources        []string `json:"sources,omitempty"`
	ExcludeSources []string `json:"excludeSources,omitempty"`

	Tags        []string `json:"tags,omitempty"`
	HasTags     *bool    `json:"hasTags,omitempty"`
	ExcludeTags []string `json:"excludeTags,omitempty"`

	MetadataKey    string `json:"metadataKey,omitempty"`
	MetadataValue  any    `json:"metadataValue,omitempty"`
	MetadataExists string `json:"metadataExists,omitempty"`

	DurationMin *float64 `json:"durationMin,omitempty"`
	DurationMax *float64 `json:"durationMax,omitempty"`
	// MemoryMinimum excludes entries whose recorded heap usage is below it.
	// The upstream producer called this memoryThreshold; the filter has
	// always been a floor, so the name now says so.
	MemoryMinimum *float64 `json:"memoryMinimum,omitempty"`

	HasErrors  *bool    `json:"hasErrors,omitempty"`
	ErrorTypes []string `json:"errorTypes,omitempty"`

	RequestMethods     []string `json:"requestMethods,omitempty"`
	RequestStatusCodes []int    `json:"requestStatusCodes,omitempty"`
	RequestDurationMin *float64 `json:"requestDurationMin,omitempty"`
	RequestDurationMax *float64 `json:"requestDurationMax,omitempty"`

	Offset    int    `json:"offset,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	SortBy    string `json:"sortBy,omitempty"`
	SortOrder string `json:"sortOrder,omitempty"`
}

// Validate checks the query once at the boundary: pagination bounds, sort
// enums, and regex syntax. A valid query never fails later in the pipeline.
func (q *LogQuery) Validate() error {
	if q.Offset < 0 {
		return fmt.Errorf("query: offset %d is negative", q.Offset)
	}
	if q.Limit < 0 {
		return fmt.Errorf("query: limit %d is negative", q.Limit)
	}
	switch q.SortBy {
	case "", SortByTimestamp, SortByLevel, SortByDuration, SortByMemory:
	default:
		return fmt.Errorf("query: unknown sortBy %q", q.SortBy)
	}
	switch q.SortOrder {
	case "", SortAsc, SortDesc:
	default:
		return fmt.Errorf("query: unknown sortOrder %q", q.SortOrder)
	}
	if q.MessageRegex != "" {
		if _, err := regexp.Compile(q.MessageRegex); err != nil {
			return fmt.Errorf("query: invalid messageRegex: %w", err)
		}
	}
	return nil
}

// Facets holds per-dimension counts computed over the filtered result set.
type Facets struct {
	Levels     map[string]int `json:"levels"`
	Sources    map[string]int `json:"sources"`
	Tags       map[string]int `json:"tags"`
	ErrorTypes map[string]int `json:"errorTypes"`
	Hours      map[string]int `json:"hours"`
}

// QueryResult is one page of matching entries plus counts and facets.
type QueryResult struct {
	Entries []LogEntry `json:"entries"`
	// TotalCount is every entry physically in the store, ignoring filters.
	TotalCount int `json:"totalCount"`
	// FilteredCount is the match count before pagination.
	FilteredCount int           `json:"filteredCount"`
	HasMore       bool          `json:"hasMore"`
	QueryTime     time.Duration `json:"queryTime"`
	Facets        Facets        `json:"facets"`
}
