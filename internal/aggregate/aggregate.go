// Package aggregate groups window snapshots by one dimension and computes
// per-group statistics.
package aggregate

import (
	"time"

	"github.com/tinytelemetry/lens/internal/model"
)

// accumulator collects raw per-group observations before statistics are
// computed. Samples hold the first entries seen for the group, in encounter
// order, capped at model.MaxGroupSamples.
type accumulator struct {
	count      int
	durations  []float64
	heapUsed   []float64
	errorCount int
	samples    []model.LogEntry
}

// Run buckets entries by opts.GroupBy and computes the requested statistics
// per group. Options must already be validated; an optional inclusive time
// range is the only pre-filter applied here. The per-group count and
// sumDuration are always emitted; other statistics only when requested and
// when the group has applicable data.
func Run(entries []model.LogEntry, opts model.AggregationOptions) *model.AggregationResult {
	start := time.Now()

	groups := make(map[string]*accumulator)
	for i := range entries {
		e := &entries[i]
		if opts.TimeRange != nil {
			if e.Timestamp.Before(opts.TimeRange.StartTime) || e.Timestamp.After(opts.TimeRange.EndTime) {
				continue
			}
		}

		key := groupKey(e, opts.GroupBy)
		acc, ok := groups[key]
		if !ok {
			acc = &accumulator{}
			groups[key] = acc
		}

		acc.count++
		if d, ok := e.Duration(); ok {
			acc.durations = append(acc.durations, d)
		}
		if heap, ok := e.HeapUsed(); ok {
			acc.heapUsed = append(acc.heapUsed, heap)
		}
		if e.Error != nil {
			acc.errorCount++
		}
		if len(acc.samples) < model.MaxGroupSamples {
			acc.samples = append(acc.samples, *e)
		}
	}

	result := &model.AggregationResult{
		Groups:      make(map[string]*model.GroupStats, len(groups)),
		TotalGroups: len(groups),
	}
	for key, acc := range groups {
		result.Groups[key] = computeStats(acc, opts.Aggregations)
	}
	result.QueryTime = time.Since(start)
	return result
}

// groupKey derives the bucket key for one entry. Entries missing the grouped
// field fall back to a sentinel key rather than being dropped.
func groupKey(e *model.LogEntry, by model.GroupBy) string {
	switch by {
	case model.GroupByHour:
		return model.HourKey(e.Timestamp)
	case model.GroupByDay:
		return model.DayKey(e.Timestamp)
	case model.GroupByLevel:
		return e.Level
	case model.GroupBySource:
		if e.Source == "" {
			return model.GroupKeyUnknown
		}
		return e.Source
	case model.GroupByCorrelationID:
		if e.CorrelationID == "" {
			return model.GroupKeyNoCorrelation
		}
		return e.CorrelationID
	case model.GroupByErrorType:
		if e.Error == nil || e.Error.Type == "" {
			return model.GroupKeyNoError
		}
		return e.Error.Type
	default:
		// Unreachable for validated options.
		return model.GroupKeyUnknown
	}
}

func computeStats(acc *accumulator, requested []string) *model.GroupStats {
	stats := &model.GroupStats{Count: acc.count}

	var sum, max, min float64
	for i, d := range acc.durations {
		sum += d
		if i == 0 || d > max {
			max = d
		}
		if i == 0 || d < min {
			min = d
		}
	}
	stats.SumDuration = sum

	want := func(name string) bool {
		for _, r := range requested {
			if r == name {
				return true
			}
		}
		return false
	}

	if len(acc.durations) > 0 {
		if want(model.StatAvgDuration) {
			avg := sum / float64(len(acc.durations))
			stats.AvgDuration = &avg
		}
		if want(model.StatMaxDuration) {
			m := max
			stats.MaxDuration = &m
		}
		if want(model.StatMinDuration) {
			m := min
			stats.MinDuration = &m
		}
	}

	if want(model.StatErrorRate) && acc.count > 0 {
		rate := float64(acc.errorCount) / float64(acc.count)
		stats.ErrorRate = &rate
	}

	if want(model.StatMemoryUsage) && len(acc.heapUsed) > 0 {
		var hSum, hMax, hMin float64
		for i, h := range acc.heapUsed {
			hSum += h
			if i == 0 || h > hMax {
				hMax = h
			}
			if i == 0 || h < hMin {
				hMin = h
			}
		}
		stats.MemoryUsage = &model.MemoryStats{
			AvgHeapUsed: hSum / float64(len(acc.heapUsed)),
			MaxHeapUsed: hMax,
			MinHeapUsed: hMin,
		}
	}

	if want(model.StatSamples) {
		stats.Samples = acc.samples
	}

	return stats
}
