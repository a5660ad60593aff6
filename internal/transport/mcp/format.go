package mcp

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hermes-rag/hermes/internal/domain"
)

// Formatting is a pure transform over the canonical result structs; the
// usecase layer never shapes output.

func toJSON(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// JSON DTOs for the document tools.

type documentJSON struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Source     string            `json:"source,omitempty"`
	DocType    string            `json:"doc_type,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	CreatedAt  string            `json:"created_at"`
	ChunkCount int               `json:"chunk_count"`
	TokenCount int               `json:"token_count"`
}

type documentPageJSON struct {
	Documents []documentJSON `json:"documents"`
	Total     int            `json:"total"`
	Offset    int            `json:"offset"`
	HasMore   bool           `json:"has_more"`
}

type statsJSON struct {
	Documents   int            `json:"documents"`
	Chunks      int            `json:"chunks"`
	TotalTokens int64          `json:"total_tokens"`
	ByType      map[string]int `json:"by_type,omitempty"`
}

func documentInfoDTO(info domain.DocumentInfo) documentJSON {
	return documentJSON{
		ID:         info.ID,
		Title:      info.Title,
		Source:     info.Source,
		DocType:    info.DocType,
		Metadata:   info.Metadata,
		CreatedAt:  info.CreatedAt.UTC().Format(time.RFC3339),
		ChunkCount: info.ChunkCount,
		TokenCount: info.TokenCount,
	}
}

func documentPageDTO(page domain.DocumentPage) documentPageJSON {
	out := documentPageJSON{
		Documents: make([]documentJSON, len(page.Items)),
		Total:     page.Total,
		Offset:    page.Offset,
		HasMore:   page.HasMore,
	}
	for i, item := range page.Items {
		out.Documents[i] = documentInfoDTO(item)
	}
	return out
}

func statsDTO(stats domain.Stats) statsJSON {
	return statsJSON{
		Documents:   stats.Documents,
		Chunks:      stats.Chunks,
		TotalTokens: stats.TotalTokens,
		ByType:      stats.ByType,
	}
}

// Markdown renderers.

func renderSearchMarkdown(resp *domain.SearchResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Search results for %q\n\n", resp.Query)
	if len(resp.Results) == 0 {
		b.WriteString("No results found.\n")
	}
	for i, r := range resp.Results {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, r.DocumentTitle)
		fmt.Fprintf(&b, "%s\n\n", r.Text)
		fmt.Fprintf(&b, "*chunk `%s`", r.ChunkID)
		if r.RerankScore != 0 {
			fmt.Fprintf(&b, ", rerank score %.4f", r.RerankScore)
		} else if r.RRFScore != 0 {
			fmt.Fprintf(&b, ", fused score %.4f", r.RRFScore)
		}
		b.WriteString("*\n\n")
	}

	fmt.Fprintf(&b, "---\n%d result(s) from %d candidate(s) in %dms",
		len(resp.Results), resp.TotalCandidates, resp.ElapsedMS)
	if resp.Cached {
		b.WriteString(" (cached)")
	}
	b.WriteString("\n")

	return b.String()
}

func renderDocumentMarkdown(info domain.DocumentInfo) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", info.Title)
	fmt.Fprintf(&b, "- **ID**: `%s`\n", info.ID)
	if info.Source != "" {
		fmt.Fprintf(&b, "- **Source**: %s\n", info.Source)
	}
	if info.DocType != "" {
		fmt.Fprintf(&b, "- **Type**: %s\n", info.DocType)
	}
	fmt.Fprintf(&b, "- **Created**: %s\n", info.CreatedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "- **Chunks**: %d\n", info.ChunkCount)
	fmt.Fprintf(&b, "- **Tokens**: %d\n", info.TokenCount)

	if len(info.Metadata) > 0 {
		b.WriteString("\n## Metadata\n\n")
		for k, v := range info.Metadata {
			fmt.Fprintf(&b, "- **%s**: %s\n", k, v)
		}
	}

	return b.String()
}

func renderDocumentListMarkdown(page domain.DocumentPage) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Documents (%d total)\n\n", page.Total)
	if len(page.Items) == 0 {
		b.WriteString("No documents stored.\n")
		return b.String()
	}

	for _, item := range page.Items {
		fmt.Fprintf(&b, "- **%s** (`%s`)", item.Title, item.ID)
		if item.DocType != "" {
			fmt.Fprintf(&b, " [%s]", item.DocType)
		}
		fmt.Fprintf(&b, ", %d chunk(s), created %s\n",
			item.ChunkCount, item.CreatedAt.UTC().Format("2006-01-02"))
	}

	if page.HasMore {
		fmt.Fprintf(&b, "\nMore available: next offset %d\n", page.Offset+len(page.Items))
	}

	return b.String()
}

func renderStatsMarkdown(stats domain.Stats) string {
	var b strings.Builder

	b.WriteString("# Knowledge base statistics\n\n")
	fmt.Fprintf(&b, "- **Documents**: %d\n", stats.Documents)
	fmt.Fprintf(&b, "- **Chunks**: %d\n", stats.Chunks)
	fmt.Fprintf(&b, "- **Estimated tokens**: %d\n", stats.TotalTokens)

	if len(stats.ByType) > 0 {
		b.WriteString("\n## By type\n\n")
		for t, n := range stats.ByType {
			fmt.Fprintf(&b, "- %s: %d\n", t, n)
		}
	}

	return b.String()
}
