package model

import (
	"fmt"
	"time"
)

// GroupBy selects the dimension entries are bucketed under.
type GroupBy string

// Grouping dimensions.
const (
	GroupByHour          GroupBy = "hour"
	GroupByDay           GroupBy = "day"
	GroupByLevel         GroupBy = "level"
	GroupBySource        GroupBy = "source"
	GroupByCorrelationID GroupBy = "correlationId"
	GroupByErrorType     GroupBy = "errorType"
)

// Statistic names accepted in AggregationOptions.Aggregations.
// StatCount is informational only: the per-group count is always emitted.
// StatSamples attaches the first sample entries seen for each group.
const (
	StatCount       = "count"
	StatAvgDuration = "avgDuration"
	StatMaxDuration = "maxDuration"
	StatMinDuration = "minDuration"
	StatSumDuration = "sumDuration"
	StatErrorRate   = "errorRate"
	StatMemoryUsage = "memoryUsage"
	StatSamples     = "samples"
)

// Group key sentinels for entries missing the grouped field.
const (
	GroupKeyUnknown       = "unknown"
	GroupKeyNoCorrelation = "no-correlation"
	GroupKeyNoError       = "no-error"
)

// HourKey truncates a timestamp to the hour in UTC, RFC3339 formatted.
// Hour facets and hour grouping share this key format.
func HourKey(t time.Time) string {
	return t.UTC().Truncate(time.Hour).Format(time.RFC3339)
}

// DayKey truncates a timestamp to midnight UTC.
func DayKey(t time.Time) string {
	return t.UTC().Truncate(24 * time.Hour).Format("2006-01-02")
}

// TimeRange is an inclusive [Start, End] interval.
type TimeRange struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// AggregationOptions selects a grouping dimension, the statistics to compute
// per group, and an optional inclusive time-range pre-filter. No other query
// filters apply to aggregation.
type AggregationOptions struct {
	GroupBy      GroupBy    `json:"groupBy"`
	Aggregations []string   `json:"aggregations,omitempty"`
	TimeRange    *TimeRange `json:"timeRange,omitempty"`
}

// Validate rejects unknown grouping dimensions and statistic names.
func (o *AggregationOptions) Validate() error {
	switch o.GroupBy {
	case GroupByHour, GroupByDay, GroupByLevel, GroupBySource, GroupByCorrelationID, GroupByErrorType:
	default:
		return fmt.Errorf("aggregate: unknown groupBy %q", o.GroupBy)
	}
	for _, name := range o.Aggregations {
		switch name {
		case StatCount, StatAvgDuration, StatMaxDuration, StatMinDuration,
			StatSumDuration, StatErrorRate, StatMemoryUsage, StatSamples:
		default:
			return fmt.Errorf("aggregate: unknown aggregation %q", name)
		}
	}
	return nil
}

// MemoryStats summarizes heap-used samples within one group.
type MemoryStats struct {
	AvgHeapUsed float64 `json:"avgHeapUsed"`
	MaxHeapUsed float64 `json:"maxHeapUsed"`
	MinHeapUsed float64 `json:"minHeapUsed"`
}

// GroupStats holds the computed statistics for one group. Count and
// SumDuration are always present; the remaining fields are emitted only when
// requested and when the group has applicable data.
type GroupStats struct {
	Count       int          `json:"count"`
	SumDuration float64      `json:"sumDuration"`
	AvgDuration *float64     `json:"avgDuration,omitempty"`
	MaxDuration *float64     `json:"maxDuration,omitempty"`
	MinDuration *float64     `json:"minDuration,omitempty"`
	ErrorRate   *float64     `json:"errorRate,omitempty"`
	MemoryUsage *MemoryStats `json:"memoryUsage,omitempty"`
	Samples     []LogEntry   `json:"samples,omitempty"`
}

// AggregationResult maps group keys to their statistics.
type AggregationResult struct {
	Groups      map[string]*GroupStats `json:"groups"`
	TotalGroups int                    `json:"totalGroups"`
	QueryTime   time.Duration          `json:"queryTime"`
}
