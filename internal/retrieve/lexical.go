package retrieve

import (
	"regexp"
	"sort"
	"strings"

	"github.com/rlevin/matchpoint/internal/model"
)

var nonWordRE = regexp.MustCompile(`[^\w]+`)

// Tokenize splits on runs of non-word characters, lowercases, and drops
// empty tokens.
func Tokenize(text string) []string {
	var tokens []string
	for _, raw := range nonWordRE.Split(strings.ToLower(text), -1) {
		if raw != "" {
			tokens = append(tokens, raw)
		}
	}
	return tokens
}

// Retriever ranks chunks against a query by literal token overlap.
// No embeddings, no IDF: the score for a chunk is the number of distinct
// query tokens present in its token set divided by the chunk's token count.
type Retriever struct {
	topK int
}

// NewRetriever creates a retriever returning at most topK results.
func NewRetriever(topK int) *Retriever {
	return &Retriever{topK: topK}
}

// Retrieve scores every chunk against the query and returns the best topK in
// non-increasing score order. Ties preserve original chunk order. Chunks with
// no tokens, and chunks sharing no tokens with the query, are skipped, so the
// result may be shorter than topK.
func (r *Retriever) Retrieve(query string, chunks []model.Chunk) []model.RetrievalResult {
	queryTokens := Tokenize(query)
	if len(queryTokens) == 0 {
		return nil
	}

	var scored []model.RetrievalResult
	for _, chunk := range chunks {
		tokens := Tokenize(chunk.Text)
		if len(tokens) == 0 {
			continue
		}
		tokenSet := make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			tokenSet[t] = struct{}{}
		}
		seen := make(map[string]struct{}, len(queryTokens))
		hits := 0
		for _, qt := range queryTokens {
			if _, dup := seen[qt]; dup {
				continue
			}
			seen[qt] = struct{}{}
			if _, ok := tokenSet[qt]; ok {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		scored = append(scored, model.RetrievalResult{
			Index: chunk.Index,
			Score: float64(hits) / float64(len(tokens)),
			Text:  chunk.Text,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if r.topK > 0 && len(scored) > r.topK {
		scored = scored[:r.topK]
	}
	return scored
}
