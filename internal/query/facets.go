package query

import "github.com/tinytelemetry/lens/internal/model"

// generateFacets counts a (typically already filtered) entry set along five
// independent dimensions in one pass. An entry contributes to every bucket
// it qualifies for: one level, at most one source, one bucket per tag, at
// most one error type, and one truncated hour.
func generateFacets(entries []model.LogEntry) model.Facets {
	f := model.Facets{
		Levels:     make(map[string]int),
		Sources:    make(map[string]int),
		Tags:       make(map[string]int),
		ErrorTypes: make(map[string]int),
		Hours:      make(map[string]int),
	}
	for i := range entries {
		e := &entries[i]
		f.Levels[e.Level]++
		if e.Source != "" {
			f.Sources[e.Source]++
		}
		for _, tag := range e.Tags {
			f.Tags[tag]++
		}
		if e.Error != nil && e.Error.Type != "" {
			f.ErrorTypes[e.Error.Type]++
		}
		f.Hours[model.HourKey(e.Timestamp)]++
	}
	return f
}
