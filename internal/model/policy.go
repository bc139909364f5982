package model

// MatchTier is one band of a tiered employer match. Rate is the match ratio
// applied to the slice of salary covered by Limit, both as fractions.
// Tiers apply in list order, first to last.
type MatchTier struct {
	Rate  float64 `json:"rate"`
	Limit float64 `json:"limit"`
}

// PolicySnapshot is the match policy as delivered by the policy-retrieval
// collaborator. MatchPercent and MatchUpToPercent may arrive as numbers,
// fractions, or percent-formatted strings ("4%"); the coerce package owns
// that interpretation. Raw carries unstructured policy text when structured
// parsing failed upstream.
type PolicySnapshot struct {
	MatchPercent     any    `json:"match_percent,omitempty"`
	MatchUpToPercent any    `json:"match_up_to_percent,omitempty"`
	VestingSchedule  string `json:"vesting_schedule,omitempty"`
	Raw              string `json:"raw,omitempty"`
}

// Chunk is a bounded-size segment of normalized handbook text.
// Index is sequential creation order, not a source offset.
type Chunk struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// RetrievalResult is a chunk ranked against a query. Score is the fraction
// of query tokens found in the chunk's token set, always in [0,1].
type RetrievalResult struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
	Text  string  `json:"text"`
}

// PolicyAnswer is the output of the policy scout: either the keyword-bearing
// handbook sections joined together, or the answer assembled from retrieved
// chunks when no section qualified.
type PolicyAnswer struct {
	Question   string            `json:"question"`
	Answer     string            `json:"answer"`
	Sources    []RetrievalResult `json:"sources"`
	Conflicts  bool              `json:"conflicts"`
	Confidence string            `json:"confidence,omitempty"`
}

// Confidence levels for a policy answer.
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)
