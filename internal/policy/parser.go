// Package policy turns retrieved handbook text into a structured match
// policy: either by decoding the structured answer a collaborator produced,
// or by regex extraction of tiered/capped match rules from free text.
package policy

import (
	"regexp"
	"strings"

	"github.com/rlevin/matchpoint/internal/coerce"
	"github.com/rlevin/matchpoint/internal/model"
)

var (
	tierFirstRE = regexp.MustCompile(`match\s+(\d+(?:\.\d+)?)\s*%\s+of\s+the\s+first\s+(\d+(?:\.\d+)?)\s*%`)
	tierNextRE  = regexp.MustCompile(`match\s+(\d+(?:\.\d+)?)\s*%\s+of\s+the\s+next\s+(\d+(?:\.\d+)?)\s*%`)
	capRE       = regexp.MustCompile(`capped at\s+(\d+(?:\.\d+)?)\s*%`)
)

// Extraction is the result of parsing match rules out of raw policy text.
// All fields are fractions.
type Extraction struct {
	MatchPercent           float64           `json:"match_percent"`
	MatchUpToPercent       float64           `json:"match_up_to_percent"`
	Tiers                  []model.MatchTier `json:"tiers"`
	MaxMatchPercent        float64           `json:"max_match_percent"`
	MaxContributionPercent float64           `json:"max_contribution_percent"`
}

// ExtractMatchFromRaw scans lowercased policy text for tiered match rules of
// the form "match R% of the first L%" / "match R% of the next L%" and an
// optional "capped at N%" clause.
//
// Tier order is pattern-kind then position: every "first" occurrence is
// collected before any "next" occurrence, regardless of where they sit in the
// document. The two scans must stay sequential; downstream tier application
// depends on this ordering.
func ExtractMatchFromRaw(raw string) Extraction {
	text := strings.ToLower(raw)

	var tiers []model.MatchTier
	for _, m := range tierFirstRE.FindAllStringSubmatch(text, -1) {
		tiers = append(tiers, model.MatchTier{Rate: coerce.Percent(m[1]), Limit: coerce.Percent(m[2])})
	}
	for _, m := range tierNextRE.FindAllStringSubmatch(text, -1) {
		tiers = append(tiers, model.MatchTier{Rate: coerce.Percent(m[1]), Limit: coerce.Percent(m[2])})
	}

	maxMatch := 0.0
	if m := capRE.FindStringSubmatch(text); m != nil {
		maxMatch = coerce.Percent(m[1])
	}

	maxContribution := 0.0
	for _, tier := range tiers {
		maxContribution += tier.Limit
	}
	if len(tiers) > 0 && maxMatch == 0 {
		// No explicit cap: fall back to the weighted sum across tiers.
		for _, tier := range tiers {
			maxMatch += tier.Rate * tier.Limit
		}
	}

	matchPercent := 0.0
	if len(tiers) > 0 {
		matchPercent = 1.0
	}

	return Extraction{
		MatchPercent:           matchPercent,
		MatchUpToPercent:       maxContribution,
		Tiers:                  tiers,
		MaxMatchPercent:        maxMatch,
		MaxContributionPercent: maxContribution,
	}
}
