package index

import (
	"sort"
	"testing"

	"github.com/tinytelemetry/lens/internal/model"
)

func TestUpdateAndValues(t *testing.T) {
	t.Parallel()
	m := NewManager()

	m.Update(&model.LogEntry{Level: "INFO", Source: "api", CorrelationID: "c1"}, true)
	m.Update(&model.LogEntry{Level: "ERROR", Source: "db", CorrelationID: "c2"}, true)

	levels := m.Values(FieldLevel)
	sort.Strings(levels)
	if len(levels) != 2 || levels[0] != "ERROR" || levels[1] != "INFO" {
		t.Errorf("levels = %v, want [ERROR INFO]", levels)
	}

	if got := m.Values("bogus"); got != nil {
		t.Errorf("Values(bogus) = %v, want nil", got)
	}
}

func TestSharedValueSurvivesOneRelease(t *testing.T) {
	t.Parallel()
	m := NewManager()

	a := &model.LogEntry{Level: "INFO", CorrelationID: "shared"}
	b := &model.LogEntry{Level: "WARN", CorrelationID: "shared"}
	m.Update(a, true)
	m.Update(b, true)

	// Evicting one holder must keep the value indexed for the other.
	m.Update(a, false)
	if got := m.Values(FieldCorrelationID); len(got) != 1 || got[0] != "shared" {
		t.Fatalf("correlation values = %v, want [shared]", got)
	}

	m.Update(b, false)
	if got := m.Values(FieldCorrelationID); len(got) != 0 {
		t.Errorf("correlation values = %v, want empty", got)
	}
}

func TestEmptyFieldsNotIndexed(t *testing.T) {
	t.Parallel()
	m := NewManager()
	m.Update(&model.LogEntry{Level: "INFO"}, true)

	if got := m.Values(FieldSource); len(got) != 0 {
		t.Errorf("sources = %v, want empty", got)
	}
	if got := m.Values(FieldCorrelationID); len(got) != 0 {
		t.Errorf("correlation ids = %v, want empty", got)
	}
}

func TestReleaseUnknownValueIsNoop(t *testing.T) {
	t.Parallel()
	m := NewManager()
	m.Update(&model.LogEntry{Level: "INFO", Source: "api"}, false)

	if got := m.Values(FieldSource); len(got) != 0 {
		t.Errorf("sources = %v, want empty", got)
	}
}

func TestClear(t *testing.T) {
	t.Parallel()
	m := NewManager()
	m.Update(&model.LogEntry{Level: "INFO", Source: "api", CorrelationID: "c1"}, true)

	m.Clear()
	for _, f := range Fields {
		if got := m.Values(f); len(got) != 0 {
			t.Errorf("Values(%s) after clear = %v, want empty", f, got)
		}
	}
}
