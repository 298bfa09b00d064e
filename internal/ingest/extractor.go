package ingest

import (
	"encoding/json"
	"time"

	"github.com/tinytelemetry/lens/internal/logparse"
	"github.com/tinytelemetry/lens/internal/model"
)

// ParseLine converts one raw log line into an entry. JSON lines are decoded
// field by field; anything else becomes a plain-text entry with the severity
// sniffed from the message. Returns false only for blank input.
func ParseLine(line string, now time.Time) (model.LogEntry, bool) {
	if line == "" {
		return model.LogEntry{}, false
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return model.LogEntry{
			Timestamp: now,
			Level:     logparse.FromText(line),
			Message:   line,
		}, true
	}
	return fromJSON(raw, now), true
}

// Top-level keys consumed by fromJSON; everything else folds into metadata.
var knownKeys = map[string]bool{
	"timestamp": true, "time": true, "ts": true,
	"level": true, "severity": true,
	"message": true, "msg": true,
	"source": true, "service": true,
	"correlationId": true, "requestId": true, "userId": true, "sessionId": true,
	"tags": true, "metadata": true,
	"error": true, "performance": true, "request": true,
}

func fromJSON(raw map[string]any, now time.Time) model.LogEntry {
	e := model.LogEntry{
		Timestamp: parseTimestamp(raw, now),
		Level:     parseLevel(raw),
		Message:   stringField(raw, "message", "msg"),
		Source:    stringField(raw, "source", "service"),
	}
	e.CorrelationID = stringField(raw, "correlationId")
	e.RequestID = stringField(raw, "requestId")
	e.UserID = stringField(raw, "userId")
	e.SessionID = stringField(raw, "sessionId")

	if tags, ok := raw["tags"].([]any); ok {
		for _, t := range tags {
			if s, ok := t.(string); ok {
				e.Tags = append(e.Tags, s)
			}
		}
	}

	meta := map[string]any{}
	if m, ok := raw["metadata"].(map[string]any); ok {
		for k, v := range m {
			meta[k] = v
		}
	}
	// Unrecognized producer fields are kept as metadata rather than dropped.
	for k, v := range raw {
		if !knownKeys[k] {
			meta[k] = v
		}
	}
	if len(meta) > 0 {
		e.Metadata = meta
	}

	e.Error = parseError(raw["error"])
	e.Performance = parsePerformance(raw["performance"])
	e.Request = parseRequest(raw["request"])
	return e
}

func stringField(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := raw[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func parseTimestamp(raw map[string]any, now time.Time) time.Time {
	for _, k := range []string{"timestamp", "time", "ts"} {
		switch v := raw[k].(type) {
		case string:
			if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
				return t
			}
		case float64:
			// Unix milliseconds, the pino convention.
			return time.UnixMilli(int64(v)).UTC()
		}
	}
	return now
}

func parseLevel(raw map[string]any) string {
	for _, k := range []string{"level", "severity"} {
		switch v := raw[k].(type) {
		case string:
			return logparse.Normalize(v)
		case float64:
			return logparse.FromNumeric(int(v))
		}
	}
	return model.LevelInfo
}

func parseError(v any) *model.ErrorInfo {
	switch err := v.(type) {
	case string:
		if err == "" {
			return nil
		}
		return &model.ErrorInfo{Message: err}
	case map[string]any:
		info := &model.ErrorInfo{
			Message: stringField(err, "message", "msg"),
			Type:    stringField(err, "type", "name"),
			Stack:   stringField(err, "stack"),
		}
		if info.Message == "" && info.Type == "" && info.Stack == "" {
			return nil
		}
		return info
	default:
		return nil
	}
}

func parsePerformance(v any) *model.PerformanceInfo {
	perf, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := &model.PerformanceInfo{}
	if d, ok := perf["duration"].(float64); ok {
		out.Duration = &d
	}
	if mem, ok := perf["memory"].(map[string]any); ok {
		m := &model.MemoryInfo{}
		if h, ok := mem["heapUsed"].(float64); ok {
			m.HeapUsed = h
		}
		if h, ok := mem["heapTotal"].(float64); ok {
			m.HeapTotal = h
		}
		if r, ok := mem["rss"].(float64); ok {
			m.RSS = r
		}
		out.Memory = m
	}
	if out.Duration == nil && out.Memory == nil {
		return nil
	}
	return out
}

func parseRequest(v any) *model.RequestInfo {
	req, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := &model.RequestInfo{Method: stringField(req, "method")}
	if c, ok := req["statusCode"].(float64); ok {
		code := int(c)
		out.StatusCode = &code
	}
	if d, ok := req["duration"].(float64); ok {
		out.Duration = &d
	}
	if out.Method == "" && out.StatusCode == nil && out.Duration == nil {
		return nil
	}
	return out
}
