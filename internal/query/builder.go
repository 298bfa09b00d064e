package query

import (
	"time"

	"github.com/tinytelemetry/lens/internal/model"
)

// Runner executes a built query. *store.Store satisfies it.
type Runner interface {
	Query(model.LogQuery) (*model.QueryResult, error)
}

// Builder accumulates a LogQuery through chained setters. It records values
// without validating them; validation happens when the query runs.
type Builder struct {
	q model.LogQuery
}

// NewBuilder returns an empty query builder.
func NewBuilder() *Builder { return &Builder{} }

// TimeRange restricts matches to the inclusive [start, end] interval.
func (b *Builder) TimeRange(start, end time.Time) *Builder {
	b.q.StartTime = &start
	b.q.EndTime = &end
	return b
}

func (b *Builder) Levels(levels ...string) *Builder {
	b.q.Levels = levels
	return b
}

func (b *Builder) ExcludeLevels(levels ...string) *Builder {
	b.q.ExcludeLevels = levels
	return b
}

func (b *Builder) MessageContains(s string) *Builder {
	b.q.MessageContains = s
	return b
}

func (b *Builder) MessageRegex(pattern string) *Builder {
	b.q.MessageRegex = pattern
	return b
}

func (b *Builder) MessageStartsWith(s string) *Builder {
	b.q.MessageStartsWith = s
	return b
}

func (b *Builder) MessageEndsWith(s string) *Builder {
	b.q.MessageEndsWith = s
	return b
}

func (b *Builder) CorrelationIDs(ids ...string) *Builder {
	b.q.CorrelationIDs = ids
	return b
}

func (b *Builder) RequestIDs(ids ...string) *Builder {
	b.q.RequestIDs = ids
	return b
}

func (b *Builder) UserIDs(ids ...string) *Builder {
	b.q.UserIDs = ids
	return b
}

func (b *Builder) SessionIDs(ids ...string) *Builder {
	b.q.SessionIDs = ids
	return b
}

func (b *Builder) Sources(sources ...string) *Builder {
	b.q.Sources = sources
	return b
}

func (b *Builder) ExcludeSources(sources ...string) *Builder {
	b.q.ExcludeSources = sources
	return b
}

func (b *Builder) Tags(tags ...string) *Builder {
	b.q.Tags = tags
	return b
}

func (b *Builder) HasTags(has bool) *Builder {
	b.q.HasTags = &has
	return b
}

func (b *Builder) ExcludeTags(tags ...string) *Builder {
	b.q.ExcludeTags = tags
	return b
}

func (b *Builder) MetadataKey(key string) *Builder {
	b.q.MetadataKey = key
	return b
}

func (b *Builder) MetadataValue(key string, value any) *Builder {
	b.q.MetadataKey = key
	b.q.MetadataValue = value
	return b
}

func (b *Builder) MetadataExists(key string) *Builder {
	b.q.MetadataExists = key
	return b
}

func (b *Builder) DurationMin(ms float64) *Builder {
	b.q.DurationMin = &ms
	return b
}

func (b *Builder) DurationMax(ms float64) *Builder {
	b.q.DurationMax = &ms
	return b
}

func (b *Builder) MemoryMinimum(bytes float64) *Builder {
	b.q.MemoryMinimum = &bytes
	return b
}

func (b *Builder) HasErrors(has bool) *Builder {
	b.q.HasErrors = &has
	return b
}

func (b *Builder) ErrorTypes(types ...string) *Builder {
	b.q.ErrorTypes = types
	return b
}

func (b *Builder) RequestMethods(methods ...string) *Builder {
	b.q.RequestMethods = methods
	return b
}

func (b *Builder) RequestStatusCodes(codes ...int) *Builder {
	b.q.RequestStatusCodes = codes
	return b
}

func (b *Builder) RequestDurationMin(ms float64) *Builder {
	b.q.RequestDurationMin = &ms
	return b
}

func (b *Builder) RequestDurationMax(ms float64) *Builder {
	b.q.RequestDurationMax = &ms
	return b
}

func (b *Builder) Offset(n int) *Builder {
	b.q.Offset = n
	return b
}

func (b *Builder) Limit(n int) *Builder {
	b.q.Limit = n
	return b
}

func (b *Builder) SortBy(field, order string) *Builder {
	b.q.SortBy = field
	b.q.SortOrder = order
	return b
}

// Query returns an independent copy of the accumulated query. Mutating the
// builder afterwards does not affect the returned value.
func (b *Builder) Query() model.LogQuery {
	q := b.q
	q.Levels = copyStrings(b.q.Levels)
	q.ExcludeLevels = copyStrings(b.q.ExcludeLevels)
	q.CorrelationIDs = copyStrings(b.q.CorrelationIDs)
	q.RequestIDs = copyStrings(b.q.RequestIDs)
	q.UserIDs = copyStrings(b.q.UserIDs)
	q.SessionIDs = copyStrings(b.q.SessionIDs)
	q.Sources = copyStrings(b.q.Sources)
	q.ExcludeSources = copyStrings(b.q.ExcludeSources)
	q.Tags = copyStrings(b.q.Tags)
	q.ExcludeTags = copyStrings(b.q.ExcludeTags)
	q.ErrorTypes = copyStrings(b.q.ErrorTypes)
	q.RequestMethods = copyStrings(b.q.RequestMethods)
	if b.q.RequestStatusCodes != nil {
		q.RequestStatusCodes = make([]int, len(b.q.RequestStatusCodes))
		copy(q.RequestStatusCodes, b.q.RequestStatusCodes)
	}
	return q
}

// Execute runs the accumulated query against a store.
func (b *Builder) Execute(r Runner) (*model.QueryResult, error) {
	return r.Query(b.Query())
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
