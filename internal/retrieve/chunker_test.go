package retrieve

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNewChunker_Validation(t *testing.T) {
	if _, err := NewChunker(0, 0); err == nil {
		t.Error("Expected error for zero chunk size")
	}
	if _, err := NewChunker(100, 100); err == nil {
		t.Error("Expected error for overlap == chunk size")
	}
	if _, err := NewChunker(100, -1); err == nil {
		t.Error("Expected error for negative overlap")
	}
	if _, err := NewChunker(100, 20); err != nil {
		t.Errorf("Expected no error for valid config, got %v", err)
	}
}

func TestChunker_EmptyInput(t *testing.T) {
	c, err := NewChunker(100, 20)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := c.Chunk("   \n\t  "); got != nil {
		t.Errorf("Expected nil for whitespace-only input, got %v", got)
	}
}

func TestChunker_ShortInputSingleChunk(t *testing.T) {
	c, _ := NewChunker(100, 20)
	chunks := c.Chunk("A short   handbook\nparagraph.")
	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
	// Whitespace runs collapse before chunking.
	if chunks[0].Text != "A short handbook paragraph." {
		t.Errorf("Unexpected normalization: %q", chunks[0].Text)
	}
	if chunks[0].Index != 0 {
		t.Errorf("Expected index 0, got %d", chunks[0].Index)
	}
}

func TestChunker_SplitsOnSentences(t *testing.T) {
	c, _ := NewChunker(40, 0)
	text := "The plan matches contributions. Vesting is graded over four years. HSA contributions are separate."
	chunks := c.Chunk(text)
	if len(chunks) < 2 {
		t.Fatalf("Expected multiple chunks, got %d", len(chunks))
	}
	for _, ch := range chunks {
		if utf8.RuneCountInString(ch.Text) > 40 {
			t.Errorf("Chunk exceeds size bound: %d runes in %q", utf8.RuneCountInString(ch.Text), ch.Text)
		}
	}
}

func TestChunker_NoSeparatorHardSlice(t *testing.T) {
	c, _ := NewChunker(10, 0)
	text := strings.Repeat("x", 25)
	chunks := c.Chunk(text)
	if len(chunks) != 3 {
		t.Fatalf("Expected 3 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != strings.Repeat("x", 10) || chunks[2].Text != strings.Repeat("x", 5) {
		t.Errorf("Unexpected hard-slice boundaries: %v", chunks)
	}
}

func TestChunker_CumulativeOverlap(t *testing.T) {
	// Overlap prefixes come from the previously-overlapped chunk, not the
	// original one, so overlap text compounds down the sequence.
	c, _ := NewChunker(12, 4)
	chunks := c.Chunk("aaaa bbbb cccc dddd")
	if len(chunks) < 2 {
		t.Fatalf("Expected multiple chunks, got %d", len(chunks))
	}
	if chunks[0].Text != "aaaa bbbb" {
		t.Errorf("Expected first chunk unchanged, got %q", chunks[0].Text)
	}
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1].Text)
		tail := strings.TrimSpace(string(prev[len(prev)-4:]))
		if !strings.HasPrefix(chunks[i].Text, tail) {
			t.Errorf("Chunk %d %q does not start with tail %q of previous overlapped chunk", i, chunks[i].Text, tail)
		}
	}
}

func TestChunker_CoversAllContent(t *testing.T) {
	c, _ := NewChunker(50, 10)
	text := "Section 1: Retirement. The employer will match 50% of the first 3%. Section 2: Vesting. Cliff vesting applies after one year of service."
	chunks := c.Chunk(text)
	joined := ""
	for _, ch := range chunks {
		joined += ch.Text + " "
	}
	for _, word := range strings.Fields(normalize(text)) {
		// Sentence splits consume the ". " separator, so compare without
		// trailing periods.
		word = strings.TrimRight(word, ".")
		if !strings.Contains(joined, word) {
			t.Errorf("Word %q missing from chunk output", word)
		}
	}
	for i, ch := range chunks {
		if ch.Index != i {
			t.Errorf("Chunk %d has index %d", i, ch.Index)
		}
	}
}
