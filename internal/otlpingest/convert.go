// Package otlpingest accepts OTLP logs over gRPC and HTTP and converts them
// into window store entries.
package otlpingest

import (
	"fmt"
	"time"

	"github.com/tinytelemetry/lens/internal/logparse"
	"github.com/tinytelemetry/lens/internal/model"
	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
)

// Attribute keys promoted to first-class entry fields. Everything else ends
// up in entry metadata.
const (
	attrCorrelationID = "correlation.id"
	attrRequestID     = "request.id"
	attrUserID        = "enduser.id"
	attrSessionID     = "session.id"
)

// Convert flattens an OTLP logs export request into entries. Records missing
// a timestamp get now; the resource's service.name becomes the entry source.
func Convert(req *collogspb.ExportLogsServiceRequest, now time.Time) []model.LogEntry {
	if req == nil {
		return nil
	}

	var entries []model.LogEntry
	for _, resourceLogs := range req.ResourceLogs {
		resourceAttrs := extractAttributes(resourceLogs.GetResource().GetAttributes())
		source := serviceName(resourceAttrs)

		for _, scopeLogs := range resourceLogs.ScopeLogs {
			for _, record := range scopeLogs.LogRecords {
				entry := model.LogEntry{
					Timestamp: recordTime(record.TimeUnixNano, record.ObservedTimeUnixNano, now),
					Level:     recordLevel(record.SeverityText, int32(record.SeverityNumber)),
					Message:   record.GetBody().GetStringValue(),
					Source:    source,
				}

				attrs := extractAttributes(record.Attributes)
				entry.CorrelationID = takeAttr(attrs, attrCorrelationID)
				entry.RequestID = takeAttr(attrs, attrRequestID)
				entry.UserID = takeAttr(attrs, attrUserID)
				entry.SessionID = takeAttr(attrs, attrSessionID)

				if len(attrs) > 0 {
					meta := make(map[string]any, len(attrs))
					for k, v := range attrs {
						meta[k] = v
					}
					entry.Metadata = meta
				}

				entries = append(entries, entry)
			}
		}
	}
	return entries
}

func recordTime(timeNano, observedNano uint64, now time.Time) time.Time {
	switch {
	case timeNano > 0:
		return time.Unix(0, int64(timeNano)).UTC()
	case observedNano > 0:
		return time.Unix(0, int64(observedNano)).UTC()
	default:
		return now
	}
}

// recordLevel prefers the severity text and falls back to the numeric
// severity bands (1-4 TRACE through 21-24 FATAL).
func recordLevel(text string, number int32) string {
	if text != "" {
		return logparse.Normalize(text)
	}
	switch {
	case number >= 1 && number <= 4:
		return model.LevelTrace
	case number <= 8:
		return model.LevelDebug
	case number <= 12:
		return model.LevelInfo
	case number <= 16:
		return model.LevelWarn
	case number <= 20:
		return model.LevelError
	case number <= 24:
		return model.LevelFatal
	default:
		return model.LevelInfo
	}
}

func takeAttr(attrs map[string]string, key string) string {
	v := attrs[key]
	delete(attrs, key)
	return v
}

// extractAttributes converts OTLP KeyValue attributes to a string map.
func extractAttributes(attrs []*commonpb.KeyValue) map[string]string {
	result := make(map[string]string, len(attrs))
	for _, attr := range attrs {
		result[attr.Key] = attributeValueToString(attr.Value)
	}
	return result
}

func attributeValueToString(value *commonpb.AnyValue) string {
	if value == nil {
		return ""
	}
	switch v := value.Value.(type) {
	case *commonpb.AnyValue_StringValue:
		return v.StringValue
	case *commonpb.AnyValue_IntValue:
		return fmt.Sprintf("%d", v.IntValue)
	case *commonpb.AnyValue_DoubleValue:
		return fmt.Sprintf("%f", v.DoubleValue)
	case *commonpb.AnyValue_BoolValue:
		return fmt.Sprintf("%t", v.BoolValue)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// serviceName resolves the entry source from resource attributes, preferring
// service.name with host.name as fallback.
func serviceName(attrs map[string]string) string {
	if name := attrs["service.name"]; name != "" {
		return name
	}
	return attrs["host.name"]
}
