// Package logsource unifies the log input plugins (TCP, stdin) behind one
// stream abstraction.
package logsource

import "github.com/tinytelemetry/lens/internal/model"

// LogSource is a unified interface for log input sources.
type LogSource interface {
	Lines() <-chan model.IngestEnvelope // read-only stream of raw lines
	Stop()                              // graceful shutdown
	Name() string                       // "tcp", "stdin"
}
