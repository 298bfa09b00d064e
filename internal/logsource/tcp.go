package logsource

import (
	"github.com/tinytelemetry/lens/internal/model"
	"github.com/tinytelemetry/lens/internal/tcpserver"
)

// TCPSource wraps an already-started tcpserver.Server as a LogSource.
type TCPSource struct {
	server *tcpserver.Server
}

// NewTCPSource adapts server to the LogSource interface.
func NewTCPSource(server *tcpserver.Server) *TCPSource {
	return &TCPSource{server: server}
}

func (t *TCPSource) Lines() <-chan model.IngestEnvelope { return t.server.Lines() }
func (t *TCPSource) Stop()                              { _ = t.server.Stop() }
func (t *TCPSource) Name() string                       { return "tcp" }
