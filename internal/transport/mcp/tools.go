package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/hermes-rag/hermes/internal/domain"
	"github.com/hermes-rag/hermes/internal/usecase/ingest"
	"github.com/hermes-rag/hermes/internal/usecase/search"
)

const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

// handleSearch handles the rag_search tool invocation.
func (s *Server) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := toolArgs(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments"), nil
	}

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return mcp.NewToolResultError("query parameter is required"), nil
	}

	req := search.Request{
		Query:       query,
		Limit:       getIntDefault(args, "limit", 0),
		UseCache:    getBoolDefault(args, "use_cache", true),
		UseReranker: getBoolDefault(args, "use_reranker", true),
	}

	resp, err := s.search.Search(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			return mcp.NewToolResultError("query parameter is required"), nil
		}
		s.toolLogger("rag_search").Error("search failed", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if getStringDefault(args, "format", formatMarkdown) == formatJSON {
		return mcp.NewToolResultText(toJSON(resp)), nil
	}
	return mcp.NewToolResultText(renderSearchMarkdown(resp)), nil
}

// handleIngestDocument handles the rag_ingest_document tool invocation.
func (s *Server) handleIngestDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := toolArgs(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments"), nil
	}

	title, ok := args["title"].(string)
	if !ok || title == "" {
		return mcp.NewToolResultError("title parameter is required"), nil
	}
	content, ok := args["content"].(string)
	if !ok {
		return mcp.NewToolResultError("content parameter is required"), nil
	}

	req := ingest.Request{
		Title:    title,
		Content:  content,
		Source:   getStringDefault(args, "source", ""),
		DocType:  getStringDefault(args, "doc_type", ""),
		Metadata: getStringMap(args, "metadata"),
	}

	result, err := s.ingest.Ingest(ctx, req)
	if err != nil {
		s.toolLogger("rag_ingest_document").Error("ingestion failed", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("ingestion failed: %v", err)), nil
	}

	return mcp.NewToolResultText(toJSON(result)), nil
}

// handleListDocuments handles the rag_list_documents tool invocation.
func (s *Server) handleListDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := toolArgs(request)

	limit := getIntDefault(args, "limit", 20)
	offset := getIntDefault(args, "offset", 0)
	docType := getStringDefault(args, "doc_type", "")

	page, err := s.documents.List(ctx, limit, offset, docType)
	if err != nil {
		s.toolLogger("rag_list_documents").Error("listing failed", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("listing failed: %v", err)), nil
	}

	if getStringDefault(args, "format", formatMarkdown) == formatJSON {
		return mcp.NewToolResultText(toJSON(documentPageDTO(page))), nil
	}
	return mcp.NewToolResultText(renderDocumentListMarkdown(page)), nil
}

// handleGetDocument handles the rag_get_document tool invocation.
func (s *Server) handleGetDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := toolArgs(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments"), nil
	}

	id, ok := args["document_id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("document_id parameter is required"), nil
	}

	info, err := s.documents.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("document %s not found", id)), nil
		}
		s.toolLogger("rag_get_document").Error("lookup failed", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
	}

	if getStringDefault(args, "format", formatMarkdown) == formatJSON {
		return mcp.NewToolResultText(toJSON(documentInfoDTO(info))), nil
	}
	return mcp.NewToolResultText(renderDocumentMarkdown(info)), nil
}

// handleDeleteDocument handles the rag_delete_document tool invocation.
func (s *Server) handleDeleteDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := toolArgs(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments"), nil
	}

	id, ok := args["document_id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("document_id parameter is required"), nil
	}

	found, err := s.documents.Delete(ctx, id)
	if err != nil {
		s.toolLogger("rag_delete_document").Error("deletion failed", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("deletion failed: %v", err)), nil
	}
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("document %s not found", id)), nil
	}

	return mcp.NewToolResultText(toJSON(map[string]interface{}{
		"deleted":     true,
		"document_id": id,
	})), nil
}

// handleGetStats handles the rag_get_stats tool invocation.
func (s *Server) handleGetStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := toolArgs(request)

	stats, err := s.documents.Stats(ctx)
	if err != nil {
		s.toolLogger("rag_get_stats").Error("stats failed", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("stats failed: %v", err)), nil
	}

	if getStringDefault(args, "format", formatMarkdown) == formatJSON {
		return mcp.NewToolResultText(toJSON(statsDTO(stats))), nil
	}
	return mcp.NewToolResultText(renderStatsMarkdown(stats)), nil
}

// Parameter helpers

func toolArgs(request mcp.CallToolRequest) (map[string]interface{}, bool) {
	if request.Params.Arguments == nil {
		return map[string]interface{}{}, true
	}
	args, ok := request.Params.Arguments.(map[string]interface{})
	return args, ok
}

func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	// JSON numbers decode as float64.
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

func getStringMap(args map[string]interface{}, key string) map[string]string {
	raw, ok := args[key].(map[string]interface{})
	if !ok || len(raw) == 0 {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		} else {
			out[k] = fmt.Sprint(v)
		}
	}
	return out
}
