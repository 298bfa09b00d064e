// Package tcpserver accepts newline-delimited log payloads over TCP and
// exposes them as a stream of ingest envelopes.
package tcpserver

import (
	"bufio"
	"context"
	"errors"
	"log"
	"net"
	"sync"

	"github.com/tinytelemetry/lens/internal/model"
)

const (
	// DefaultLineChannelSize bounds the incoming line channel.
	DefaultLineChannelSize = 100_000

	// DefaultMaxLineSize caps a single log line at 1MB.
	DefaultMaxLineSize = 1024 * 1024
)

// Config holds tunable parameters for the TCP server.
type Config struct {
	LineChannelSize int
	MaxLineSize     int
}

// Server listens for newline-delimited log lines over TCP. Each non-empty
// line is forwarded on Lines tagged with source "tcp".
type Server struct {
	addr        string
	listener    net.Listener
	lines       chan model.IngestEnvelope
	maxLineSize int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

// NewServer creates a TCP server. Default addr is "127.0.0.1:4000".
func NewServer(addr string, conf ...Config) *Server {
	if addr == "" {
		addr = "127.0.0.1:4000"
	}
	channelSize := DefaultLineChannelSize
	maxLineSize := DefaultMaxLineSize
	if len(conf) > 0 {
		if conf[0].LineChannelSize > 0 {
			channelSize = conf[0].LineChannelSize
		}
		if conf[0].MaxLineSize > 0 {
			maxLineSize = conf[0].MaxLineSize
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:        addr,
		lines:       make(chan model.IngestEnvelope, channelSize),
		maxLineSize: maxLineSize,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start begins accepting connections.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
					continue
				}
			}
			s.wg.Add(1)
			go s.handleConnection(conn)
		}
	}()
	return nil
}

func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, s.maxLineSize), s.maxLineSize)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		select {
		case s.lines <- model.IngestEnvelope{Source: "tcp", Line: line}:
		case <-s.ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			log.Printf("tcpserver: dropped connection %s, line exceeded %d bytes", conn.RemoteAddr(), s.maxLineSize)
			return
		}
		log.Printf("tcpserver: scanner error from %s: %v", conn.RemoteAddr(), err)
	}
}

// Lines returns the stream of received envelopes.
func (s *Server) Lines() <-chan model.IngestEnvelope { return s.lines }

// Addr returns the bound listener address, useful when the configured port
// was 0.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Stop closes the listener and waits for connection handlers to drain.
func (s *Server) Stop() error {
	s.cancel()
	var err error
	if s.listener != nil {
		err = s.listener.Close()
	}
	s.wg.Wait()
	close(s.lines)
	return err
}
