package query

import (
	"reflect"
	"testing"
	"time"

	"github.com/tinytelemetry/lens/internal/model"
)

func TestBuilderRoundTrip(t *testing.T) {
	t.Parallel()
	got := NewBuilder().
		Levels(model.LevelError, model.LevelWarn).
		Limit(5).
		Query()

	want := model.LogQuery{
		Levels: []string{model.LevelError, model.LevelWarn},
		Limit:  5,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("built query = %+v, want %+v", got, want)
	}
}

func TestBuilderChainsAllSetters(t *testing.T) {
	t.Parallel()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	q := NewBuilder().
		TimeRange(start, end).
		ExcludeLevels(model.LevelTrace).
		MessageContains("timeout").
		MessageRegex(`\d+ms`).
		CorrelationIDs("c1", "c2").
		Sources("api").
		ExcludeSources("noise").
		Tags("slow").
		HasTags(true).
		MetadataValue("region", "eu").
		DurationMin(50).
		MemoryMinimum(1024).
		HasErrors(true).
		ErrorTypes("Timeout").
		RequestMethods("POST").
		RequestStatusCodes(502).
		RequestDurationMin(20).
		RequestDurationMax(900).
		SortBy(model.SortByDuration, model.SortDesc).
		Offset(10).
		Limit(20).
		Query()

	if q.StartTime == nil || !q.StartTime.Equal(start) || q.EndTime == nil || !q.EndTime.Equal(end) {
		t.Errorf("time range = %v..%v, want %v..%v", q.StartTime, q.EndTime, start, end)
	}
	if q.MetadataKey != "region" || q.MetadataValue != "eu" {
		t.Errorf("metadata filter = %q=%v", q.MetadataKey, q.MetadataValue)
	}
	if q.SortBy != model.SortByDuration || q.SortOrder != model.SortDesc {
		t.Errorf("sort = %s/%s", q.SortBy, q.SortOrder)
	}
	if q.Offset != 10 || q.Limit != 20 {
		t.Errorf("pagination = %d/%d", q.Offset, q.Limit)
	}
	if q.HasTags == nil || !*q.HasTags || q.HasErrors == nil || !*q.HasErrors {
		t.Error("boolean filters not recorded")
	}
	if q.RequestDurationMin == nil || *q.RequestDurationMin != 20 ||
		q.RequestDurationMax == nil || *q.RequestDurationMax != 900 {
		t.Errorf("request duration bounds = %v..%v, want 20..900", q.RequestDurationMin, q.RequestDurationMax)
	}
	if len(q.RequestMethods) != 1 || len(q.RequestStatusCodes) != 1 {
		t.Errorf("request filters = %v %v", q.RequestMethods, q.RequestStatusCodes)
	}
}

func TestQueryReturnsIndependentCopy(t *testing.T) {
	t.Parallel()
	b := NewBuilder().Levels(model.LevelError)
	first := b.Query()

	b.Levels(model.LevelInfo).Tags("extra")
	if first.Levels[0] != model.LevelError {
		t.Errorf("earlier copy mutated: %v", first.Levels)
	}
	if len(first.Tags) != 0 {
		t.Errorf("earlier copy gained tags: %v", first.Tags)
	}
}

// fakeRunner records the query it was asked to execute.
type fakeRunner struct {
	got model.LogQuery
}

func (f *fakeRunner) Query(q model.LogQuery) (*model.QueryResult, error) {
	f.got = q
	return &model.QueryResult{}, nil
}

func TestExecutePassesBuiltQuery(t *testing.T) {
	t.Parallel()
	r := &fakeRunner{}
	_, err := NewBuilder().Levels(model.LevelWarn).Limit(7).Execute(r)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(r.got.Levels) != 1 || r.got.Levels[0] != model.LevelWarn || r.got.Limit != 7 {
		t.Errorf("runner saw %+v", r.got)
	}
}
