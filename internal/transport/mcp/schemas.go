package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func formatProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Response format",
		"enum":        []string{"markdown", "json"},
		"default":     "markdown",
	}
}

// searchTool returns the tool definition for rag_search.
func searchTool() mcp.Tool {
	return mcp.Tool{
		Name:        "rag_search",
		Description: "Search the knowledge base with hybrid retrieval (vector + keyword fusion, optional cross-encoder reranking)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return",
					"minimum":     1,
					"maximum":     50,
				},
				"use_cache": map[string]interface{}{
					"type":        "boolean",
					"description": "Serve repeated queries from the query cache",
					"default":     true,
				},
				"use_reranker": map[string]interface{}{
					"type":        "boolean",
					"description": "Refine fused candidates with the cross-encoder reranker",
					"default":     true,
				},
				"format": formatProperty(),
			},
			Required: []string{"query"},
		},
	}
}

// ingestDocumentTool returns the tool definition for rag_ingest_document.
func ingestDocumentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "rag_ingest_document",
		Description: "Ingest a document into the knowledge base: split, enrich, embed, and store its chunks",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Document title",
				},
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Full document text",
				},
				"source": map[string]interface{}{
					"type":        "string",
					"description": "Optional source label (URL, file path, system name)",
				},
				"doc_type": map[string]interface{}{
					"type":        "string",
					"description": "Optional free-form classification tag",
				},
				"metadata": map[string]interface{}{
					"type":        "object",
					"description": "Optional key-value metadata attached to the document",
					"additionalProperties": map[string]interface{}{
						"type": "string",
					},
				},
			},
			Required: []string{"title", "content"},
		},
	}
}

// listDocumentsTool returns the tool definition for rag_list_documents.
func listDocumentsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "rag_list_documents",
		Description: "List stored documents, newest first, with pagination",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Page size",
					"default":     20,
					"minimum":     1,
					"maximum":     100,
				},
				"offset": map[string]interface{}{
					"type":        "integer",
					"description": "Number of documents to skip",
					"minimum":     0,
				},
				"doc_type": map[string]interface{}{
					"type":        "string",
					"description": "Only list documents with this type tag",
				},
				"format": formatProperty(),
			},
		},
	}
}

// getDocumentTool returns the tool definition for rag_get_document.
func getDocumentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "rag_get_document",
		Description: "Get a stored document's metadata and chunk statistics",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"document_id": map[string]interface{}{
					"type":        "string",
					"description": "Document identifier",
				},
				"format": formatProperty(),
			},
			Required: []string{"document_id"},
		},
	}
}

// deleteDocumentTool returns the tool definition for rag_delete_document.
func deleteDocumentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "rag_delete_document",
		Description: "Delete a document and all of its chunks",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"document_id": map[string]interface{}{
					"type":        "string",
					"description": "Document identifier",
				},
			},
			Required: []string{"document_id"},
		},
	}
}

// getStatsTool returns the tool definition for rag_get_stats.
func getStatsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "rag_get_stats",
		Description: "Get knowledge base statistics: document count, chunk count, token totals, counts by type",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"format": formatProperty(),
			},
		},
	}
}
