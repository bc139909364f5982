package strategy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rlevin/matchpoint/internal/model"
)

// BuildActionPlan assembles the recommended steps for the employee.
//
// The plan is sorted by (impact, effort) as plain string comparison, so
// "high" orders before "low" before "medium". The ordering is lexical, not a
// severity rank; downstream output is pinned to it.
func BuildActionPlan(metrics model.LeakageMetrics) []model.ActionItem {
	var actions []model.ActionItem

	if metrics.PolicyMissingMatch {
		actions = append(actions, model.ActionItem{
			Action: "Confirm employer match policy",
			Impact: "high",
			Effort: "medium",
		})
	} else if metrics.GapRate > 0 {
		actions = append(actions, model.ActionItem{
			Action: fmt.Sprintf("Increase 401k contribution by %.2f%%", metrics.GapRate*100),
			Impact: "high",
			Effort: "low",
		})
	}

	actions = append(actions,
		model.ActionItem{
			Action: "Confirm vesting schedule",
			Impact: "medium",
			Effort: "low",
		},
		model.ActionItem{
			Action: "Review HSA eligibility for tax savings",
			Impact: "medium",
			Effort: "medium",
		},
	)

	sort.SliceStable(actions, func(i, j int) bool {
		if actions[i].Impact != actions[j].Impact {
			return actions[i].Impact < actions[j].Impact
		}
		return actions[i].Effort < actions[j].Effort
	})
	return actions
}

// BuildReasoning documents the assumptions behind the metrics so every
// reported number stays explainable.
func BuildReasoning(metrics model.LeakageMetrics) []model.ReasoningEntry {
	return []model.ReasoningEntry{
		{
			Assumption:  "Pay frequency inferred from pay period dates",
			Calculation: fmt.Sprintf("%d pay periods/year", metrics.PayPeriodsPerYear),
			Result:      "Used to annualize opportunity cost",
		},
		{
			Assumption:  "Employer match formula",
			Calculation: fmt.Sprintf("%.2f%% up to %.2f%%", metrics.MatchRate*100, metrics.MatchUpTo*100),
			Result:      fmt.Sprintf("Contribution gap %.2f%%", metrics.GapRate*100),
		},
		{
			Assumption:  "Annualized missed value",
			Calculation: "gross × gap × match × periods",
			Result:      fmt.Sprintf("$%.2f", metrics.AnnualOpportunityCost),
		},
	}
}

// ComposeRecommendation deterministically renders the full recommendation:
// an amount-saved summary, the urgent vesting alert when a cliff is near, the
// payroll-integrity verdict, an executive verdict with ROI, the match math,
// and up to three action items.
func ComposeRecommendation(
	metrics model.LeakageMetrics,
	verification model.VerificationResult,
	vesting *model.VestingAlert,
	conflicts bool,
	plan []model.ActionItem,
) string {
	name := firstName(metrics.EmployeeName)

	var sections []string

	matchValue := metrics.AnnualOpportunityCost
	rsuValue := 0.0
	if vesting != nil && vesting.DaysRemaining <= 90 {
		rsuValue = vesting.ValueEstimate
	}
	if total := matchValue + rsuValue; total > 0 {
		sections = append(sections, fmt.Sprintf("💰 Amount Saved: $%s (Total value identified)", comma2(total)))
	}

	if vesting != nil && vesting.DaysRemaining <= 90 {
		valueMsg := "Y$"
		if vesting.ValueEstimate > 0 {
			valueMsg = "$" + comma2(vesting.ValueEstimate)
		}
		priceNote := ""
		if vesting.StockPrice > 0 {
			priceNote = fmt.Sprintf(" (estimated at $%.2f/share)", vesting.StockPrice)
		}
		rsuMsg := fmt.Sprintf(
			"You have a %.0f-share vesting cliff approaching on %s. "+
				"By remaining with the company for %d additional days, you will secure equity valued at approximately %s%s.",
			vesting.Shares, vesting.NextVestingDate, vesting.DaysRemaining, valueMsg, priceNote,
		)
		sections = append(sections, "🚨 Urgent Strategic Alert:\n"+rsuMsg)
	}

	switch verification.Status {
	case model.VerifyIncorrect:
		sections = append(sections, "⚠️ Payroll Integrity Check: "+verification.Message)
	case model.VerifyCorrect:
		sections = append(sections, "✅ Payroll Integrity Check: Verified. Net pay accurately reflects gross income less taxes and deductions.")
	}

	verdict, math := matchVerdict(name, metrics, conflicts)
	sections = append(sections, "💼 Executive Summary: "+verdict)
	sections = append(sections, "📊 Financial Impact Analysis:\n"+math)

	var planLines []string
	for i, step := range plan {
		if i >= 3 {
			break
		}
		planLines = append(planLines, "- "+step.Action)
	}
	sections = append(sections, "🚀 Strategic Roadmap:\n"+strings.Join(planLines, "\n"))

	return strings.Join(sections, "\n\n")
}

func matchVerdict(name string, metrics model.LeakageMetrics, conflicts bool) (verdict, math string) {
	if metrics.PolicyMissingMatch {
		verdict = fmt.Sprintf(
			"%s, we could not verify your employer match policy in the provided documents. "+
				"To ensure you are not leaving capital on the table, we must locate this information.",
			name,
		)
		if conflicts {
			verdict += " Note: Conflicting policy data was detected."
		}
		math = fmt.Sprintf(
			"Gross per period: $%.2f\nCurrent 401k rate: %.2f%%\nMatch policy: Not found in documents",
			metrics.GrossPay, metrics.Current401kRate*100,
		)
		return verdict, math
	}

	monthlyGain := metrics.AnnualOpportunityCost / 12
	gapPercent := metrics.GapRate * 100
	currentPercent := metrics.Current401kRate * 100
	targetPercent := currentPercent + gapPercent

	// ROI relative to the extra salary the employee would contribute.
	annualCost := metrics.GrossPay * metrics.GapRate * float64(metrics.PayPeriodsPerYear)
	roi := 0.0
	if annualCost > 0 {
		roi = metrics.AnnualOpportunityCost / annualCost * 100
	}

	if metrics.GapRate > 0 {
		verdict = fmt.Sprintf(
			"%s, you are currently contributing %.1f%%. By increasing your contribution to %.1f%%, "+
				"you will unlock an additional $%.0f/month in employer matching. "+
				"This represents an immediate %.0f%% return on your investment.",
			name, currentPercent, targetPercent, monthlyGain, roi,
		)
	} else {
		verdict = fmt.Sprintf(
			"%s, excellent work. You are contributing %.1f%%, which captures the full employer match. "+
				"You are maximizing this risk-free return on capital.",
			name, currentPercent,
		)
	}
	if conflicts {
		verdict += " Note: Conflicting policies detected."
	}

	if metrics.TiersPresent {
		tierLines := make([]string, 0, len(metrics.Tiers))
		for i, tier := range metrics.Tiers {
			prefix := "Next"
			if i == 0 {
				prefix = "First"
			}
			tierLines = append(tierLines, fmt.Sprintf("  - %.0f%% match on %s %.1f%% of salary", tier.Rate*100, prefix, tier.Limit*100))
		}
		math = fmt.Sprintf(
			"Gross per period: $%.2f\nCurrent 401k rate: %.2f%%\nMatch Structure:\n%s\nGap to max match: %.2f%%\nAnnual opportunity cost: $%.2f",
			metrics.GrossPay, metrics.Current401kRate*100, strings.Join(tierLines, "\n"),
			metrics.GapRate*100, metrics.AnnualOpportunityCost,
		)
	} else {
		math = fmt.Sprintf(
			"Gross per period: $%.2f\nCurrent 401k rate: %.2f%%\nMatch policy: %.0f%% match up to %.1f%% of salary\nGap: %.2f%%\nAnnual opportunity cost: $%.2f",
			metrics.GrossPay, metrics.Current401kRate*100, metrics.MatchRate*100,
			metrics.MatchUpTo*100, metrics.GapRate*100, metrics.AnnualOpportunityCost,
		)
	}
	return verdict, math
}

// firstName extracts the leading name token; empty input falls back to "User".
func firstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return "User"
	}
	return fields[0]
}

// comma2 renders a currency amount with thousands separators and 2 decimals.
func comma2(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	dot := strings.Index(s, ".")
	intPart, frac := s[:dot], s[dot:]
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteRune(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
