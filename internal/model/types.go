package model

import "time"

// Severity levels, most verbose first.
const (
	LevelTrace = "TRACE"
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
	LevelFatal = "FATAL"
)

// Levels lists all known severity levels in ascending order.
var Levels = []string{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal}

// LogEntry represents a single log record retained by the window store.
// It is the canonical type for ingestion, storage, and query results.
// A stored entry is never mutated in place; the store clones entries on
// ingestion so callers cannot alter retained state through a held reference.
type LogEntry struct {
	Timestamp     time.Time        `json:"timestamp"`
	Level         string           `json:"level"`
	Message       string           `json:"message"`
	Source        string           `json:"source,omitempty"`
	CorrelationID string           `json:"correlationId,omitempty"`
	RequestID     string           `json:"requestId,omitempty"`
	UserID        string           `json:"userId,omitempty"`
	SessionID     string           `json:"sessionId,omitempty"`
	Tags          []string         `json:"tags,omitempty"`
	Metadata      map[string]any   `json:"metadata,omitempty"`
	Error         *ErrorInfo       `json:"error,omitempty"`
	Performance   *PerformanceInfo `json:"performance,omitempty"`
	Request       *RequestInfo     `json:"request,omitempty"`
}

// ErrorInfo describes an error attached to an entry.
type ErrorInfo struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// PerformanceInfo carries optional timing and memory measurements.
type PerformanceInfo struct {
	Duration *float64    `json:"duration,omitempty"` // milliseconds
	Memory   *MemoryInfo `json:"memory,omitempty"`
}

// MemoryInfo mirrors a process heap snapshot taken by the producer.
type MemoryInfo struct {
	HeapUsed  float64 `json:"heapUsed"`
	HeapTotal float64 `json:"heapTotal,omitempty"`
	RSS       float64 `json:"rss,omitempty"`
}

// RequestInfo carries optional HTTP request context.
type RequestInfo struct {
	Method     string   `json:"method,omitempty"`
	StatusCode *int     `json:"statusCode,omitempty"`
	Duration   *float64 `json:"duration,omitempty"` // milliseconds
}

// Clone returns a deep copy of the entry. Maps, slices, and nested structs
// are copied so the clone shares no mutable state with the original.
func (e *LogEntry) Clone() LogEntry {
	out := *e
	if len(e.Tags) > 0 {
		out.Tags = make([]string, len(e.Tags))
		copy(out.Tags, e.Tags)
	}
	if len(e.Metadata) > 0 {
		meta := make(map[string]any, len(e.Metadata))
		for k, v := range e.Metadata {
			meta[k] = cloneMetadataValue(v)
		}
		out.Metadata = meta
	}
	if e.Error != nil {
		errCopy := *e.Error
		out.Error = &errCopy
	}
	if e.Performance != nil {
		perf := *e.Performance
		if e.Performance.Duration != nil {
			d := *e.Performance.Duration
			perf.Duration = &d
		}
		if e.Performance.Memory != nil {
			mem := *e.Performance.Memory
			perf.Memory = &mem
		}
		out.Performance = &perf
	}
	if e.Request != nil {
		req := *e.Request
		if e.Request.StatusCode != nil {
			sc := *e.Request.StatusCode
			req.StatusCode = &sc
		}
		if e.Request.Duration != nil {
			d := *e.Request.Duration
			req.Duration = &d
		}
		out.Request = &req
	}
	return out
}

// cloneMetadataValue recursively copies the map and slice shapes produced by
// JSON decoding. Other value types are immutable and shared as-is.
func cloneMetadataValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneMetadataValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneMetadataValue(val)
		}
		return out
	default:
		return v
	}
}

// Duration returns the performance duration in milliseconds, if recorded.
func (e *LogEntry) Duration() (float64, bool) {
	if e.Performance == nil || e.Performance.Duration == nil {
		return 0, false
	}
	return *e.Performance.Duration, true
}

// HeapUsed returns the recorded heap usage, if any.
func (e *LogEntry) HeapUsed() (float64, bool) {
	if e.Performance == nil || e.Performance.Memory == nil {
		return 0, false
	}
	return e.Performance.Memory.HeapUsed, true
}
