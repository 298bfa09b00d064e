// Package query filters, sorts, and paginates window snapshots and provides
// the fluent query builder.
package query

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/tinytelemetry/lens/internal/model"
)

// predicate is the compiled form of a query's filter fields. Compiling once
// per query keeps regex work out of the per-entry hot path.
type predicate struct {
	q  model.LogQuery
	re *regexp.Regexp
}

func newPredicate(q model.LogQuery) predicate {
	p := predicate{q: q}
	if q.MessageRegex != "" {
		// Validated at the boundary; a nil re means the pattern was
		// rejected there and the filter matches nothing.
		p.re, _ = regexp.Compile(q.MessageRegex)
	}
	return p
}

// Matches reports whether entry satisfies every filter the query specifies.
// Absent query fields impose no constraint.
func Matches(entry *model.LogEntry, q model.LogQuery) bool {
	p := newPredicate(q)
	return p.matches(entry)
}

func (p *predicate) matches(e *model.LogEntry) bool {
	q := &p.q

	if q.StartTime != nil && e.Timestamp.Before(*q.StartTime) {
		return false
	}
	if q.EndTime != nil && e.Timestamp.After(*q.EndTime) {
		return false
	}

	if len(q.Levels) > 0 && !contains(q.Levels, e.Level) {
		return false
	}
	if len(q.ExcludeLevels) > 0 && contains(q.ExcludeLevels, e.Level) {
		return false
	}

	if q.MessageContains != "" && !strings.Contains(e.Message, q.MessageContains) {
		return false
	}
	if q.MessageRegex != "" && (p.re == nil || !p.re.MatchString(e.Message)) {
		return false
	}
	if q.MessageStartsWith != "" && !strings.HasPrefix(e.Message, q.MessageStartsWith) {
		return false
	}
	if q.MessageEndsWith != "" && !strings.HasSuffix(e.Message, q.MessageEndsWith) {
		return false
	}

	// A correlation filter requires the entry to carry a correlation id;
	// the other id filters are skipped when the entry lacks the field.
	if len(q.CorrelationIDs) > 0 && !contains(q.CorrelationIDs, e.CorrelationID) {
		return false
	}
	if len(q.RequestIDs) > 0 && e.RequestID != "" && !contains(q.RequestIDs, e.RequestID) {
		return false
	}
	if len(q.UserIDs) > 0 && e.UserID != "" && !contains(q.UserIDs, e.UserID) {
		return false
	}
	if len(q.SessionIDs) > 0 && e.SessionID != "" && !contains(q.SessionIDs, e.SessionID) {
		return false
	}

	// An entry without a source fails a sources filter but passes an
	// excludeSources filter.
	if len(q.Sources) > 0 && (e.Source == "" || !contains(q.Sources, e.Source)) {
		return false
	}
	if len(q.ExcludeSources) > 0 && e.Source != "" && contains(q.ExcludeSources, e.Source) {
		return false
	}

	if len(q.Tags) > 0 && !containsAny(e.Tags, q.Tags) {
		return false
	}
	if q.HasTags != nil && *q.HasTags != (len(e.Tags) > 0) {
		return false
	}
	if len(q.ExcludeTags) > 0 && containsAny(e.Tags, q.ExcludeTags) {
		return false
	}

	if q.MetadataKey != "" {
		v, ok := e.Metadata[q.MetadataKey]
		if !ok {
			return false
		}
		if q.MetadataValue != nil && !reflect.DeepEqual(v, q.MetadataValue) {
			return false
		}
	}
	if q.MetadataExists != "" {
		if _, ok := e.Metadata[q.MetadataExists]; !ok {
			return false
		}
	}

	// Duration bounds only constrain entries that recorded a duration.
	if d, ok := e.Duration(); ok {
		if q.DurationMin != nil && d < *q.DurationMin {
			return false
		}
		if q.DurationMax != nil && d > *q.DurationMax {
			return false
		}
	}
	// memoryMinimum is a floor: entries with a recorded heap usage below it
	// are excluded, entries without one pass.
	if q.MemoryMinimum != nil {
		if heap, ok := e.HeapUsed(); ok && heap < *q.MemoryMinimum {
			return false
		}
	}

	if q.HasErrors != nil && *q.HasErrors != (e.Error != nil) {
		return false
	}
	if len(q.ErrorTypes) > 0 && (e.Error == nil || !contains(q.ErrorTypes, e.Error.Type)) {
		return false
	}

	if e.Request != nil {
		if len(q.RequestMethods) > 0 && e.Request.Method != "" && !contains(q.RequestMethods, e.Request.Method) {
			return false
		}
		if len(q.RequestStatusCodes) > 0 && e.Request.StatusCode != nil && !containsInt(q.RequestStatusCodes, *e.Request.StatusCode) {
			return false
		}
		if e.Request.Duration != nil {
			if q.RequestDurationMin != nil && *e.Request.Duration < *q.RequestDurationMin {
				return false
			}
			if q.RequestDurationMax != nil && *e.Request.Duration > *q.RequestDurationMax {
				return false
			}
		}
	}

	return true
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsInt(set []int, v int) bool {
	for _, n := range set {
		if n == v {
			return true
		}
	}
	return false
}

// containsAny reports whether have and want share at least one element.
func containsAny(have, want []string) bool {
	for _, w := range want {
		if contains(have, w) {
			return true
		}
	}
	return false
}
