package query

import (
	"testing"
	"time"

	"github.com/tinytelemetry/lens/internal/model"
)

func ptr[T any](v T) *T { return &v }

func sampleEntry() model.LogEntry {
	return model.LogEntry{
		Timestamp:     time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
		Level:         model.LevelError,
		Message:       "database connection refused",
		Source:        "api",
		CorrelationID: "corr-1",
		RequestID:     "req-1",
		UserID:        "user-1",
		SessionID:     "sess-1",
		Tags:          []string{"db", "retry"},
		Metadata:      map[string]any{"region": "eu-west", "attempt": float64(3)},
		Error:         &model.ErrorInfo{Message: "refused", Type: "ConnError"},
		Performance: &model.PerformanceInfo{
			Duration: ptr(125.0),
			Memory:   &model.MemoryInfo{HeapUsed: 2048},
		},
		Request: &model.RequestInfo{
			Method:     "GET",
			StatusCode: ptr(503),
			Duration:   ptr(140.0),
		},
	}
}

func TestEmptyQueryMatchesEverything(t *testing.T) {
	t.Parallel()
	e := sampleEntry()
	if !Matches(&e, model.LogQuery{}) {
		t.Error("empty query should match any entry")
	}
}

func TestFilterFields(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		query model.LogQuery
		want  bool
	}{
		{"time range inclusive start", model.LogQuery{StartTime: ptr(time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC))}, true},
		{"time range before start", model.LogQuery{StartTime: ptr(time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC))}, false},
		{"time range inclusive end", model.LogQuery{EndTime: ptr(time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC))}, true},
		{"time range after end", model.LogQuery{EndTime: ptr(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))}, false},

		{"level in set", model.LogQuery{Levels: []string{"ERROR", "FATAL"}}, true},
		{"level not in set", model.LogQuery{Levels: []string{"INFO"}}, false},
		{"level excluded", model.LogQuery{ExcludeLevels: []string{"ERROR"}}, false},
		{"level not excluded", model.LogQuery{ExcludeLevels: []string{"DEBUG"}}, true},

		{"message contains", model.LogQuery{MessageContains: "connection"}, true},
		{"message contains miss", model.LogQuery{MessageContains: "timeout"}, false},
		{"message regex", model.LogQuery{MessageRegex: `conn\w+ refused`}, true},
		{"message regex miss", model.LogQuery{MessageRegex: `^refused`}, false},
		{"message prefix", model.LogQuery{MessageStartsWith: "database"}, true},
		{"message prefix miss", model.LogQuery{MessageStartsWith: "connection"}, false},
		{"message suffix", model.LogQuery{MessageEndsWith: "refused"}, true},
		{"message suffix miss", model.LogQuery{MessageEndsWith: "database"}, false},

		{"correlation id in set", model.LogQuery{CorrelationIDs: []string{"corr-1"}}, true},
		{"correlation id miss", model.LogQuery{CorrelationIDs: []string{"corr-9"}}, false},
		{"request id in set", model.LogQuery{RequestIDs: []string{"req-1"}}, true},
		{"user id miss", model.LogQuery{UserIDs: []string{"user-9"}}, false},
		{"session id in set", model.LogQuery{SessionIDs: []string{"sess-1"}}, true},

		{"source in set", model.LogQuery{Sources: []string{"api", "db"}}, true},
		{"source miss", model.LogQuery{Sources: []string{"worker"}}, false},
		{"source excluded", model.LogQuery{ExcludeSources: []string{"api"}}, false},

		{"tag any-of", model.LogQuery{Tags: []string{"retry", "cache"}}, true},
		{"tag any-of miss", model.LogQuery{Tags: []string{"cache"}}, false},
		{"has tags true", model.LogQuery{HasTags: ptr(true)}, true},
		{"has tags false", model.LogQuery{HasTags: ptr(false)}, false},
		{"exclude tags hit", model.LogQuery{ExcludeTags: []string{"db"}}, false},
		{"exclude tags miss", model.LogQuery{ExcludeTags: []string{"cache"}}, true},

		{"metadata key present", model.LogQuery{MetadataKey: "region"}, true},
		{"metadata key absent", model.LogQuery{MetadataKey: "zone"}, false},
		{"metadata value match", model.LogQuery{MetadataKey: "region", MetadataValue: "eu-west"}, true},
		{"metadata value mismatch", model.LogQuery{MetadataKey: "region", MetadataValue: "us-east"}, false},
		{"metadata exists", model.LogQuery{MetadataExists: "attempt"}, true},
		{"metadata exists miss", model.LogQuery{MetadataExists: "zone"}, false},

		{"duration min pass", model.LogQuery{DurationMin: ptr(100.0)}, true},
		{"duration min fail", model.LogQuery{DurationMin: ptr(200.0)}, false},
		{"duration max pass", model.LogQuery{DurationMax: ptr(200.0)}, true},
		{"duration max fail", model.LogQuery{DurationMax: ptr(100.0)}, false},
		{"memory floor pass", model.LogQuery{MemoryMinimum: ptr(1024.0)}, true},
		{"memory floor fail", model.LogQuery{MemoryMinimum: ptr(4096.0)}, false},

		{"has errors true", model.LogQuery{HasErrors: ptr(true)}, true},
		{"has errors false", model.LogQuery{HasErrors: ptr(false)}, false},
		{"error type in set", model.LogQuery{ErrorTypes: []string{"ConnError"}}, true},
		{"error type miss", model.LogQuery{ErrorTypes: []string{"Timeout"}}, false},

		{"request method in set", model.LogQuery{RequestMethods: []string{"GET", "POST"}}, true},
		{"request method miss", model.LogQuery{RequestMethods: []string{"DELETE"}}, false},
		{"status code in set", model.LogQuery{RequestStatusCodes: []int{500, 503}}, true},
		{"status code miss", model.LogQuery{RequestStatusCodes: []int{200}}, false},
		{"request duration min pass", model.LogQuery{RequestDurationMin: ptr(100.0)}, true},
		{"request duration max fail", model.LogQuery{RequestDurationMax: ptr(100.0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := sampleEntry()
			if got := Matches(&e, tt.query); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAbsentEntryFieldSemantics(t *testing.T) {
	t.Parallel()
	bare := model.LogEntry{
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Level:     model.LevelInfo,
		Message:   "plain",
	}

	tests := []struct {
		name  string
		query model.LogQuery
		want  bool
	}{
		// A correlation filter requires the id; the other id filters skip.
		{"correlation required", model.LogQuery{CorrelationIDs: []string{"c"}}, false},
		{"request id skipped", model.LogQuery{RequestIDs: []string{"r"}}, true},
		{"user id skipped", model.LogQuery{UserIDs: []string{"u"}}, true},
		{"session id skipped", model.LogQuery{SessionIDs: []string{"s"}}, true},
		// Missing source fails sources, passes excludeSources.
		{"sources fail", model.LogQuery{Sources: []string{"api"}}, false},
		{"exclude sources pass", model.LogQuery{ExcludeSources: []string{"api"}}, true},
		// Missing measurements skip the bounds.
		{"duration bounds skipped", model.LogQuery{DurationMin: ptr(10.0), DurationMax: ptr(20.0)}, true},
		{"memory floor skipped", model.LogQuery{MemoryMinimum: ptr(1.0)}, true},
		// Missing request sub-fields skip those filters.
		{"request method skipped", model.LogQuery{RequestMethods: []string{"GET"}}, true},
		{"status code skipped", model.LogQuery{RequestStatusCodes: []int{200}}, true},
		// Error filters.
		{"has errors false matches", model.LogQuery{HasErrors: ptr(false)}, true},
		{"error types require error", model.LogQuery{ErrorTypes: []string{"E"}}, false},
		// No tags.
		{"has tags false matches", model.LogQuery{HasTags: ptr(false)}, true},
		{"exclude tags pass", model.LogQuery{ExcludeTags: []string{"x"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(&bare, tt.query); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestANDComposition(t *testing.T) {
	t.Parallel()
	e := sampleEntry()

	both := model.LogQuery{Levels: []string{"ERROR"}, Sources: []string{"api"}}
	if !Matches(&e, both) {
		t.Error("two independently true filters should match together")
	}

	flippedLevel := model.LogQuery{Levels: []string{"INFO"}, Sources: []string{"api"}}
	if Matches(&e, flippedLevel) {
		t.Error("flipping levels should break the combined match")
	}
	flippedSource := model.LogQuery{Levels: []string{"ERROR"}, Sources: []string{"worker"}}
	if Matches(&e, flippedSource) {
		t.Error("flipping sources should break the combined match")
	}
}
