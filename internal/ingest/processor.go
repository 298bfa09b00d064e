// Package ingest turns raw source-tagged log lines into entries and routes
// them to the window store.
package ingest

import (
	"time"

	"github.com/tinytelemetry/lens/internal/model"
)

// RecordSink receives parsed entries. *store.Store satisfies it.
type RecordSink interface {
	Add(model.LogEntry)
}

// Processor parses ingest envelopes and feeds a sink. An entry's source
// defaults to the envelope's source tag when the line itself carries none.
type Processor struct {
	sink RecordSink
	now  func() time.Time
}

// NewProcessor creates a processor writing to sink.
func NewProcessor(sink RecordSink) *Processor {
	return &Processor{sink: sink, now: time.Now}
}

// Process parses one envelope and stores the resulting entry. Blank lines
// are dropped; malformed lines degrade to plain-text entries rather than
// being rejected. Returns the stored entry for observability.
func (p *Processor) Process(env model.IngestEnvelope) (model.LogEntry, bool) {
	entry, ok := ParseLine(env.Line, p.now().UTC())
	if !ok {
		return model.LogEntry{}, false
	}
	if entry.Source == "" {
		entry.Source = env.Source
	}
	if p.sink != nil {
		p.sink.Add(entry)
	}
	return entry, true
}
