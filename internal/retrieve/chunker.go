package retrieve

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rlevin/matchpoint/internal/model"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// normalize collapses whitespace runs to single spaces and trims.
func normalize(text string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(text, " "))
}

// separators tried in priority order when a span exceeds the chunk size.
var separators = []string{"\n\n", "\n", ". ", " "}

// Chunker produces bound-size, overlapping segments of normalized text.
type Chunker struct {
	chunkSize int
	overlap   int
}

// NewChunker validates the configuration. chunkSize must be positive and
// overlap must stay below chunkSize; violations are configuration errors,
// not recoverable at runtime.
func NewChunker(chunkSize, overlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("chunk overlap must be in [0, %d), got %d", chunkSize, overlap)
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}, nil
}

// Chunk splits text into chunks. Empty input (after normalization) yields nil.
//
// Overlap is cumulative: each chunk's prefix is drawn from the previous
// already-overlapped chunk, so overlap compounds down the sequence. That is
// long-standing behavior that retrieval consumers depend on; do not flatten
// it to a prefix from the original un-overlapped chunk.
func (c *Chunker) Chunk(text string) []model.Chunk {
	normalized := normalize(text)
	if normalized == "" {
		return nil
	}
	base := recursiveSplit(normalized, c.chunkSize)
	overlapped := applyOverlap(base, c.overlap)
	chunks := make([]model.Chunk, len(overlapped))
	for i, t := range overlapped {
		chunks[i] = model.Chunk{Index: i, Text: t}
	}
	return chunks
}

// recursiveSplit packs fragments greedily under chunkSize, splitting on the
// first separator present and recursing into oversized fragments. When no
// separator exists at all it hard-slices chunkSize characters at a time.
func recursiveSplit(text string, chunkSize int) []string {
	if utf8.RuneCountInString(text) <= chunkSize {
		return []string{text}
	}
	for _, sep := range separators {
		if !strings.Contains(text, sep) {
			continue
		}
		parts := strings.Split(text, sep)
		var chunks []string
		current := ""
		for _, part := range parts {
			partText := strings.TrimSpace(part)
			if partText == "" {
				continue
			}
			candidate := partText
			if current != "" {
				candidate = strings.TrimSpace(current + sep + partText)
			}
			if utf8.RuneCountInString(candidate) <= chunkSize {
				current = candidate
				continue
			}
			if current != "" {
				chunks = append(chunks, current)
			}
			if utf8.RuneCountInString(partText) > chunkSize {
				chunks = append(chunks, recursiveSplit(partText, chunkSize)...)
				current = ""
			} else {
				current = partText
			}
		}
		if current != "" {
			chunks = append(chunks, current)
		}
		if len(chunks) > 0 {
			return chunks
		}
	}
	runes := []rune(text)
	return append([]string{string(runes[:chunkSize])}, recursiveSplit(string(runes[chunkSize:]), chunkSize)...)
}

// applyOverlap keeps the first chunk as-is and prefixes every subsequent
// chunk with the tail of the previously-overlapped chunk.
func applyOverlap(chunks []string, overlap int) []string {
	if len(chunks) == 0 || overlap <= 0 {
		return chunks
	}
	overlapped := make([]string, 0, len(chunks))
	overlapped = append(overlapped, chunks[0])
	for _, chunk := range chunks[1:] {
		prev := []rune(overlapped[len(overlapped)-1])
		prefix := string(prev)
		if len(prev) > overlap {
			prefix = string(prev[len(prev)-overlap:])
		}
		overlapped = append(overlapped, strings.TrimSpace(prefix+" "+chunk))
	}
	return overlapped
}
