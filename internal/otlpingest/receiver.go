package otlpingest

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/tinytelemetry/lens/internal/model"
	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

// RecordSink receives converted entries. *store.Store satisfies it.
type RecordSink interface {
	Add(entry model.LogEntry)
}

// GRPCReceiver serves the OTLP LogsService and feeds converted records into
// the window store.
type GRPCReceiver struct {
	collogspb.UnimplementedLogsServiceServer
	sink     RecordSink
	addr     string
	server   *grpc.Server
	listener net.Listener
}

// NewGRPCReceiver creates a receiver bound to addr.
func NewGRPCReceiver(addr string, sink RecordSink) *GRPCReceiver {
	return &GRPCReceiver{sink: sink, addr: addr}
}

// Start begins serving. It blocks until the server stops.
func (r *GRPCReceiver) Start() error {
	lis, err := net.Listen("tcp", r.addr)
	if err != nil {
		return fmt.Errorf("otlpingest: listen: %w", err)
	}
	r.listener = lis

	r.server = grpc.NewServer()
	collogspb.RegisterLogsServiceServer(r.server, r)

	// Reflection helps debugging with grpcurl.
	reflection.Register(r.server)

	return r.server.Serve(lis)
}

// Addr returns the bound listener address.
func (r *GRPCReceiver) Addr() string {
	if r.listener == nil {
		return r.addr
	}
	return r.listener.Addr().String()
}

// Shutdown stops the server gracefully.
func (r *GRPCReceiver) Shutdown(ctx context.Context) error {
	if r.server != nil {
		r.server.GracefulStop()
	}
	return nil
}

// Export implements the LogsService Export RPC.
func (r *GRPCReceiver) Export(ctx context.Context, req *collogspb.ExportLogsServiceRequest) (*collogspb.ExportLogsServiceResponse, error) {
	for _, entry := range Convert(req, time.Now().UTC()) {
		r.sink.Add(entry)
	}
	return &collogspb.ExportLogsServiceResponse{
		PartialSuccess: &collogspb.ExportLogsPartialSuccess{
			RejectedLogRecords: 0,
		},
	}, nil
}
