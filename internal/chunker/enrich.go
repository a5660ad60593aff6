package chunker

import (
	"fmt"
	"strings"
)

// Enrich prepends document-level context to a segment before embedding.
// An isolated fragment can be ambiguous; the prefix biases both the embedding
// and the cross-encoder toward the owning document. The segment index is
// rendered 1-based for readability.
func Enrich(text, docTitle string, index int, docType string) string {
	prefix := []string{fmt.Sprintf("Document: %s", docTitle)}
	if docType != "" {
		prefix = append(prefix, fmt.Sprintf("Type: %s", docType))
	}
	prefix = append(prefix, fmt.Sprintf("Segment %d", index+1))
	return fmt.Sprintf("[%s] %s", strings.Join(prefix, " | "), text)
}
