package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

const configResourceURI = "rag://config"

func (s *Server) registerResources() {
	s.mcp.AddResource(mcp.NewResource(
		configResourceURI,
		"Retrieval configuration",
		mcp.WithResourceDescription("Active chunking, retrieval, and caching settings"),
		mcp.WithMIMEType("application/json"),
	), s.handleConfigResource)
}

func (s *Server) handleConfigResource(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     toJSON(s.cfg),
		},
	}, nil
}
