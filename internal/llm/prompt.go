package llm

import (
	"encoding/json"
	"fmt"
)

const (
	defaultPromptPrefix = "You are the Strategist. Use the policy answer and paystub analysis to produce " +
		"a step-by-step reasoning chain with math, then a single actionable recommendation. Avoid stock picking."
	defaultPromptSuffix = "Format as: Reasoning Steps: 1) ... 2) ... 3) ... Recommendation: ..."
)

// BuildPrompt serializes the computed analysis into the strategist prompt.
// The model only ever rephrases numbers computed upstream.
func BuildPrompt(req SynthesizeRequest) string {
	payload, err := json.Marshal(map[string]any{
		"leaked_value":          req.Metrics,
		"paystub_verification":  req.Verification,
		"rsu_analysis":          req.Vesting,
		"policy":                req.Policy,
	})
	if err != nil {
		payload = []byte("{}")
	}
	return fmt.Sprintf("%s\n\nData:\n%s\n\n%s", defaultPromptPrefix, payload, defaultPromptSuffix)
}
