package retrieve

import (
	"testing"

	"github.com/rlevin/matchpoint/internal/model"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize("Match 50% of the FIRST 3%!")
	want := []string{"match", "50", "of", "the", "first", "3"}
	if len(tokens) != len(want) {
		t.Fatalf("Expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i, w := range want {
		if tokens[i] != w {
			t.Errorf("Token %d: expected %q, got %q", i, w, tokens[i])
		}
	}
	if got := Tokenize("  ...  "); got != nil {
		t.Errorf("Expected no tokens for punctuation-only input, got %v", got)
	}
}

func TestRetriever_ScoresDistinctQueryTokens(t *testing.T) {
	r := NewRetriever(4)
	chunks := []model.Chunk{
		{Index: 0, Text: "employer match vesting schedule"},
		{Index: 1, Text: "vacation policy and holidays"},
	}
	// Repeated query tokens count once.
	results := r.Retrieve("match match vesting", chunks)
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Index != 0 {
		t.Errorf("Expected chunk 0, got %d", results[0].Index)
	}
	// 2 distinct hits over 4 chunk tokens.
	if results[0].Score != 0.5 {
		t.Errorf("Expected score 0.5, got %v", results[0].Score)
	}
}

func TestRetriever_OrderingAndTopK(t *testing.T) {
	r := NewRetriever(2)
	chunks := []model.Chunk{
		{Index: 0, Text: "match vesting hsa employer contribution tiers"},
		{Index: 1, Text: "match vesting"},
		{Index: 2, Text: "match"},
		{Index: 3, Text: "unrelated text about parking"},
	}
	results := r.Retrieve("match vesting", chunks)
	if len(results) != 2 {
		t.Fatalf("Expected topK=2 results, got %d", len(results))
	}
	if results[0].Index != 1 || results[1].Index != 2 {
		t.Errorf("Unexpected ranking: %+v", results)
	}
	if results[0].Score < results[1].Score {
		t.Error("Expected non-increasing score order")
	}
}

func TestRetriever_TieStability(t *testing.T) {
	r := NewRetriever(0)
	chunks := []model.Chunk{
		{Index: 0, Text: "match vesting"},
		{Index: 1, Text: "vesting match"},
	}
	results := r.Retrieve("match", chunks)
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Index != 0 || results[1].Index != 1 {
		t.Errorf("Expected original order on ties, got %+v", results)
	}
}

func TestRetriever_EmptyQuery(t *testing.T) {
	r := NewRetriever(4)
	if got := r.Retrieve("", []model.Chunk{{Index: 0, Text: "match"}}); got != nil {
		t.Errorf("Expected nil for empty query, got %v", got)
	}
}
