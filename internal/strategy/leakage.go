package strategy

import (
	"github.com/rlevin/matchpoint/internal/coerce"
	"github.com/rlevin/matchpoint/internal/model"
	"github.com/rlevin/matchpoint/internal/policy"
)

// ComputeLeakedValue quantifies the annualized employer match the employee is
// not claiming. The policy snapshot's structured fields win; the regex parser
// only runs over snapshot.Raw when a structured field is zero-valued, and it
// fills in only the missing field(s).
func ComputeLeakedValue(paystub model.PaystubRecord, snapshot model.PolicySnapshot) model.LeakageMetrics {
	// An unparseable gross pay coerces to zero and counts as missing.
	grossPay := coerce.Float(paystub.GrossPay)
	if grossPay == 0 {
		grossPay = coerce.Float(paystub.BasePay)
	}
	current401k := coerce.Float(paystub.PreTax401k) + coerce.Float(paystub.Roth401k)
	contributionRate := 0.0
	if grossPay > 0 {
		contributionRate = current401k / grossPay
	}

	matchRate := coerce.Percent(snapshot.MatchPercent)
	matchUpTo := coerce.Percent(snapshot.MatchUpToPercent)

	var tiers []model.MatchTier
	var extraction policy.Extraction
	if (matchRate == 0 || matchUpTo == 0) && snapshot.Raw != "" {
		extraction = policy.ExtractMatchFromRaw(snapshot.Raw)
		if matchRate == 0 {
			matchRate = extraction.MatchPercent
		}
		if matchUpTo == 0 {
			matchUpTo = extraction.MatchUpToPercent
		}
		tiers = extraction.Tiers
	}
	tiersPresent := len(tiers) > 0

	periods := EstimatePeriodsPerYear(paystub)

	var gapRate, annualOpportunity float64
	if tiersPresent {
		currentMatch := matchFromTiers(contributionRate, tiers)
		gapRate = extraction.MaxContributionPercent - contributionRate
		if gapRate < 0 {
			gapRate = 0
		}
		missedMatch := extraction.MaxMatchPercent - currentMatch
		if missedMatch < 0 {
			missedMatch = 0
		}
		annualOpportunity = grossPay * missedMatch * float64(periods)
		// Report the blended rate and the full-match contribution target.
		if extraction.MaxContributionPercent > 0 {
			matchRate = extraction.MaxMatchPercent / extraction.MaxContributionPercent
		} else {
			matchRate = 0
		}
		matchUpTo = extraction.MaxContributionPercent
	} else {
		gapRate = matchUpTo - contributionRate
		if gapRate < 0 {
			gapRate = 0
		}
		annualOpportunity = grossPay * gapRate * matchRate * float64(periods)
	}

	return model.LeakageMetrics{
		GrossPay:              grossPay,
		Current401k:           current401k,
		Current401kRate:       coerce.Round4(contributionRate),
		MatchRate:             coerce.Round4(matchRate),
		MatchUpTo:             coerce.Round4(matchUpTo),
		GapRate:               coerce.Round4(gapRate),
		AnnualOpportunityCost: coerce.Round2(annualOpportunity),
		PayPeriodsPerYear:     periods,
		PolicyMissingMatch:    (matchRate == 0 || matchUpTo == 0) && !tiersPresent,
		TiersPresent:          tiersPresent,
		Tiers:                 tiers,
	}
}

// matchFromTiers applies tiers sequentially to the contribution rate. Each
// tier consumes up to its limit of the remaining rate and contributes
// applied*rate of employer match, until the rate is exhausted.
func matchFromTiers(contributionRate float64, tiers []model.MatchTier) float64 {
	remaining := contributionRate
	if remaining < 0 {
		remaining = 0
	}
	matchPercent := 0.0
	for _, tier := range tiers {
		if remaining <= 0 {
			break
		}
		applied := remaining
		if tier.Limit < applied {
			applied = tier.Limit
		}
		matchPercent += applied * tier.Rate
		remaining -= applied
	}
	return matchPercent
}
