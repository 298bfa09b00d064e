// Package httpserver provides the HTTP API for querying the telemetry
// window and an OTLP/HTTP logs endpoint for ingestion.
package httpserver

import (
	"compress/gzip"
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tinytelemetry/lens/internal/model"
	"github.com/tinytelemetry/lens/internal/otlpingest"
	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// WindowStore is the narrow store contract required by the HTTP API.
type WindowStore interface {
	Add(model.LogEntry)
	Query(model.LogQuery) (*model.QueryResult, error)
	Aggregate(model.AggregationOptions) (*model.AggregationResult, error)
	IndexValues(field string) []string
	Len() int
	Cap() int
}

// Server serves the query API over HTTP.
type Server struct {
	addr      string
	store     WindowStore
	server    *http.Server
	listener  net.Listener
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates an HTTP API server. Default addr is "0.0.0.0:3000".
func NewServer(addr string, store WindowStore) *Server {
	if addr == "" {
		addr = "0.0.0.0:3000"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:   addr,
		store:  store,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Handler builds the route table. Exposed for tests.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.POST("/api/query", s.handleQuery)
	r.POST("/api/aggregate", s.handleAggregate)
	r.GET("/api/indexes/:field", s.handleIndexValues)
	r.POST("/v1/logs", s.handleOTLPLogs)

	return r
}

// Start begins serving HTTP requests in the background.
func (s *Server) Start() error {
	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener
	s.startTime = time.Now()

	go s.server.Serve(listener)
	return nil
}

// Addr returns the bound listener address.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"uptime":      time.Since(s.startTime).String(),
		"entry_count": s.store.Len(),
		"capacity":    s.store.Cap(),
	})
}

func (s *Server) handleQuery(c *gin.Context) {
	var q model.LogQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query payload: " + err.Error()})
		return
	}
	result, err := s.store.Query(q)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleAggregate(c *gin.Context) {
	var opts model.AggregationOptions
	if err := c.ShouldBindJSON(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid aggregation payload: " + err.Error()})
		return
	}
	result, err := s.store.Aggregate(opts)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleIndexValues(c *gin.Context) {
	field := c.Param("field")
	values := s.store.IndexValues(field)
	if values == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown index field: " + field})
		return
	}
	c.JSON(http.StatusOK, gin.H{"field": field, "values": values})
}

// handleOTLPLogs accepts an OTLP/HTTP logs export, protobuf or JSON encoded,
// optionally gzip compressed.
func (s *Server) handleOTLPLogs(c *gin.Context) {
	body := io.Reader(c.Request.Body)
	if c.GetHeader("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gzip body"})
			return
		}
		defer gz.Close()
		body = gz
	}
	payload, err := io.ReadAll(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}

	req := &collogspb.ExportLogsServiceRequest{}
	switch c.ContentType() {
	case "application/json":
		err = protojson.Unmarshal(payload, req)
	default:
		err = proto.Unmarshal(payload, req)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid OTLP payload: " + err.Error()})
		return
	}

	for _, entry := range otlpingest.Convert(req, time.Now().UTC()) {
		s.store.Add(entry)
	}

	resp := &collogspb.ExportLogsServiceResponse{}
	if c.ContentType() == "application/json" {
		data, _ := protojson.Marshal(resp)
		c.Data(http.StatusOK, "application/json", data)
		return
	}
	data, _ := proto.Marshal(resp)
	c.Data(http.StatusOK, "application/x-protobuf", data)
}
