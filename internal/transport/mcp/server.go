// Package mcp exposes the retrieval pipeline as an MCP tool server.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/hermes-rag/hermes/internal/version"
)

const serverName = "hermes"

// Server wraps the MCP server with its application dependencies.
type Server struct {
	mcp        *server.MCPServer
	httpServer *server.StreamableHTTPServer

	search    SearchService
	ingest    IngestService
	documents DocumentStore
	cfg       ConfigInfo
	logger    *zap.Logger
}

// New creates the MCP server and registers all tools and resources.
func New(searchSvc SearchService, ingestSvc IngestService, docs DocumentStore, cfg ConfigInfo, logger *zap.Logger) *Server {
	s := &Server{
		mcp: server.NewMCPServer(
			serverName,
			version.Version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		search:    searchSvc,
		ingest:    ingestSvc,
		documents: docs,
		cfg:       cfg,
		logger:    logger,
	}

	s.registerTools()
	s.registerResources()

	return s
}

// ServeStdio serves MCP over stdio and blocks until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// ServeHTTP serves MCP over streamable HTTP and blocks until Shutdown.
func (s *Server) ServeHTTP(addr string) error {
	s.httpServer = server.NewStreamableHTTPServer(s.mcp)
	if err := s.httpServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("mcp http server: %w", err)
	}
	return nil
}

// Shutdown stops the HTTP transport, if one is running.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(searchTool(), s.handleSearch)
	s.mcp.AddTool(ingestDocumentTool(), s.handleIngestDocument)
	s.mcp.AddTool(listDocumentsTool(), s.handleListDocuments)
	s.mcp.AddTool(getDocumentTool(), s.handleGetDocument)
	s.mcp.AddTool(deleteDocumentTool(), s.handleDeleteDocument)
	s.mcp.AddTool(getStatsTool(), s.handleGetStats)
}

func (s *Server) toolLogger(tool string) *zap.Logger {
	if s.logger == nil {
		return zap.NewNop()
	}
	return s.logger.With(zap.String("tool", tool))
}
