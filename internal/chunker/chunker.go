// Package chunker splits raw document text into bounded, overlapping segments
// and enriches them with document-level context before embedding.
//
// The length unit throughout is the whitespace-delimited word count, not bytes
// or runes. Splitting tries separators most-structural-first so that segments
// preserve the largest coherent units; the word-window fallback only kicks in
// when no separator divides the text at all.
package chunker

import "strings"

// Default splitting parameters, in words.
const (
	DefaultSize    = 512
	DefaultOverlap = 64
)

// DefaultSeparators are tried in priority order: paragraph break, line break,
// sentence break, clause break, plain space.
var DefaultSeparators = []string{"\n\n", "\n", ". ", ", ", " "}

// Splitter divides text into segments of at most Size words, with consecutive
// segments sharing roughly Overlap words.
type Splitter struct {
	Size       int
	Overlap    int
	Separators []string
}

// New creates a Splitter. Non-positive size/overlap and an empty separator
// list fall back to the defaults.
func New(size, overlap int, separators []string) *Splitter {
	if size <= 0 {
		size = DefaultSize
	}
	if overlap <= 0 {
		overlap = DefaultOverlap
	}
	if len(separators) == 0 {
		separators = DefaultSeparators
	}
	return &Splitter{Size: size, Overlap: overlap, Separators: separators}
}

// Split divides text into segments. Empty or whitespace-only input yields nil;
// input at or below Size words is returned as a single trimmed segment.
//
// Every returned segment holds at most Size words, except when a single
// indivisible part (no separator present) exceeds Size on its own; such a
// part is kept whole rather than broken mid-unit.
func (s *Splitter) Split(text string) []string {
	if len(strings.Fields(text)) <= s.Size {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	}

	// Try each separator in priority order; use the first one that splits.
	var parts []string
	var sep string
	for _, candidate := range s.Separators {
		if split := strings.Split(text, candidate); len(split) > 1 {
			parts = split
			sep = candidate
			break
		}
	}
	if parts == nil {
		return s.splitByWords(text)
	}

	var chunks []string
	var current []string
	currentLen := 0

	for _, part := range parts {
		partLen := len(strings.Fields(part))
		if currentLen+partLen > s.Size && len(current) > 0 {
			if chunk := strings.TrimSpace(strings.Join(current, sep)); chunk != "" {
				chunks = append(chunks, chunk)
			}
			// Seed the next segment with whole trailing parts, bounded by Overlap words.
			current, currentLen = s.overlapTail(current)
		}
		current = append(current, part)
		currentLen += partLen
	}

	if len(current) > 0 {
		if chunk := strings.TrimSpace(strings.Join(current, sep)); chunk != "" {
			chunks = append(chunks, chunk)
		}
	}

	return chunks
}

// overlapTail walks backward through the just-closed parts, accumulating whole
// parts until adding another would exceed Overlap words, and returns them in
// original order together with their word count.
func (s *Splitter) overlapTail(closed []string) ([]string, int) {
	var tail []string
	tailLen := 0
	for i := len(closed) - 1; i >= 0; i-- {
		partLen := len(strings.Fields(closed[i]))
		if tailLen+partLen > s.Overlap {
			break
		}
		tail = append([]string{closed[i]}, tail...)
		tailLen += partLen
	}
	return tail, tailLen
}

// splitByWords is the fallback for a single unbroken run: consecutive windows
// of Size words, stepping by Size-Overlap. The step is clamped to a minimum of
// 1 so progress is guaranteed even when Overlap >= Size.
func (s *Splitter) splitByWords(text string) []string {
	words := strings.Fields(text)

	step := s.Size - s.Overlap
	if step < 1 {
		step = 1
	}

	var chunks []string
	for i := 0; i < len(words); i += step {
		end := i + s.Size
		if end > len(words) {
			end = len(words)
		}
		chunk := strings.TrimSpace(strings.Join(words[i:end], " "))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(words) {
			break
		}
	}
	return chunks
}
