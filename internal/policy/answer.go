package policy

import (
	"encoding/json"
	"strings"

	"github.com/rlevin/matchpoint/internal/model"
)

// ParseAnswer interprets the text of a policy answer. A JSON object becomes a
// structured snapshot directly; anything else is carried as raw text for the
// regex parser to work on later.
func ParseAnswer(answer string) model.PolicySnapshot {
	if strings.TrimSpace(answer) == "" {
		return model.PolicySnapshot{}
	}
	var snap model.PolicySnapshot
	if err := json.Unmarshal([]byte(answer), &snap); err != nil {
		return model.PolicySnapshot{Raw: answer}
	}
	return snap
}
