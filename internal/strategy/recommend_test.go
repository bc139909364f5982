package strategy

import (
	"strings"
	"testing"

	"github.com/rlevin/matchpoint/internal/model"
)

func TestBuildActionPlan_LexicalOrdering(t *testing.T) {
	plan := BuildActionPlan(model.LeakageMetrics{GapRate: 0.03})
	if len(plan) != 3 {
		t.Fatalf("Expected 3 actions, got %d", len(plan))
	}
	// Plain string sort on (impact, effort): high < medium, low < medium.
	if plan[0].Impact != "high" || plan[0].Effort != "low" {
		t.Errorf("Expected the contribution increase first, got %+v", plan[0])
	}
	if plan[1].Impact != "medium" || plan[1].Effort != "low" {
		t.Errorf("Expected vesting confirmation second, got %+v", plan[1])
	}
	if plan[2].Impact != "medium" || plan[2].Effort != "medium" {
		t.Errorf("Expected HSA review last, got %+v", plan[2])
	}
	if !strings.Contains(plan[0].Action, "3.00%") {
		t.Errorf("Expected gap percentage in action text, got %q", plan[0].Action)
	}
}

func TestBuildActionPlan_MissingPolicy(t *testing.T) {
	plan := BuildActionPlan(model.LeakageMetrics{PolicyMissingMatch: true})
	if len(plan) != 3 {
		t.Fatalf("Expected 3 actions, got %d", len(plan))
	}
	if plan[0].Action != "Confirm employer match policy" {
		t.Errorf("Expected policy confirmation first, got %+v", plan[0])
	}
}

func TestBuildActionPlan_NoGap(t *testing.T) {
	plan := BuildActionPlan(model.LeakageMetrics{})
	if len(plan) != 2 {
		t.Fatalf("Expected 2 actions without a gap, got %d", len(plan))
	}
}

func TestBuildReasoning(t *testing.T) {
	entries := BuildReasoning(model.LeakageMetrics{
		PayPeriodsPerYear:     26,
		MatchRate:             0.5,
		MatchUpTo:             0.04,
		GapRate:               0.03,
		AnnualOpportunityCost: 780.00,
	})
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	if !strings.Contains(entries[0].Calculation, "26 pay periods/year") {
		t.Errorf("Unexpected frequency entry: %+v", entries[0])
	}
	if !strings.Contains(entries[1].Calculation, "50.00% up to 4.00%") {
		t.Errorf("Unexpected formula entry: %+v", entries[1])
	}
	if !strings.Contains(entries[2].Result, "$780.00") {
		t.Errorf("Unexpected value entry: %+v", entries[2])
	}
}

func TestComposeRecommendation_FullReport(t *testing.T) {
	metrics := model.LeakageMetrics{
		EmployeeName:          "Jordan Lee",
		GrossPay:              4000.0,
		Current401kRate:       0.01,
		MatchRate:             0.5,
		MatchUpTo:             0.04,
		GapRate:               0.03,
		AnnualOpportunityCost: 720.00,
		PayPeriodsPerYear:     12,
	}
	verification := model.VerificationResult{Status: model.VerifyCorrect, Message: "Calculations verified"}
	vesting := &model.VestingAlert{
		NextVestingDate: "April 15, 2025",
		DaysRemaining:   45,
		Shares:          250,
		StockPrice:      150.00,
		ValueEstimate:   37500.00,
	}
	plan := BuildActionPlan(metrics)

	out := ComposeRecommendation(metrics, verification, vesting, false, plan)

	if !strings.Contains(out, "💰 Amount Saved: $38,220.00") {
		t.Errorf("Expected combined total 720 + 37500, got:\n%s", out)
	}
	if !strings.Contains(out, "🚨 Urgent Strategic Alert:") {
		t.Error("Expected vesting alert section")
	}
	if !strings.Contains(out, "250-share vesting cliff approaching on April 15, 2025") {
		t.Error("Expected cliff details")
	}
	if !strings.Contains(out, "✅ Payroll Integrity Check") {
		t.Error("Expected payroll verdict")
	}
	if !strings.Contains(out, "Jordan, you are currently contributing 1.0%") {
		t.Error("Expected first-name executive summary")
	}
	// ROI = annual match gain over extra contribution: 720 / (4000*0.03*12) = 50%.
	if !strings.Contains(out, "50% return on your investment") {
		t.Errorf("Expected ROI sentence, got:\n%s", out)
	}
	if !strings.Contains(out, "📊 Financial Impact Analysis:") {
		t.Error("Expected math section")
	}
	if got := strings.Count(out, "\n- "); got > 3 {
		t.Errorf("Roadmap limited to three items, found %d lines", got)
	}
}

func TestComposeRecommendation_ZeroValuePlaceholder(t *testing.T) {
	metrics := model.LeakageMetrics{EmployeeName: "Sam"}
	vesting := &model.VestingAlert{
		NextVestingDate: "April 15, 2025",
		DaysRemaining:   30,
		Shares:          100,
	}
	out := ComposeRecommendation(metrics, model.VerificationResult{Status: model.VerifyUnknown}, vesting, false, nil)

	if !strings.Contains(out, "equity valued at approximately Y$") {
		t.Errorf("Expected Y$ placeholder for unpriced equity, got:\n%s", out)
	}
	if strings.Contains(out, "💰 Amount Saved") {
		t.Error("Expected no amount-saved line when nothing is quantified")
	}
	if strings.Contains(out, "Payroll Integrity Check") {
		t.Error("Unknown verification should not render a payroll verdict")
	}
}

func TestComposeRecommendation_DistantVestingExcluded(t *testing.T) {
	metrics := model.LeakageMetrics{
		EmployeeName:          "Sam Park",
		GrossPay:              4000.0,
		MatchRate:             0.5,
		MatchUpTo:             0.04,
		GapRate:               0.03,
		AnnualOpportunityCost: 720.00,
		PayPeriodsPerYear:     12,
		Current401kRate:       0.01,
	}
	vesting := &model.VestingAlert{DaysRemaining: 120, ValueEstimate: 37500.00, NextVestingDate: "August 1, 2025", Shares: 250}
	out := ComposeRecommendation(metrics, model.VerificationResult{Status: model.VerifyCorrect}, vesting, false, nil)

	if strings.Contains(out, "🚨") {
		t.Error("Vesting beyond 90 days is not urgent")
	}
	if !strings.Contains(out, "💰 Amount Saved: $720.00") {
		t.Errorf("Expected match-only total, got:\n%s", out)
	}
}

func TestComposeRecommendation_MissingPolicyAndConflicts(t *testing.T) {
	metrics := model.LeakageMetrics{GrossPay: 4000.0, PolicyMissingMatch: true}
	out := ComposeRecommendation(metrics, model.VerificationResult{Status: model.VerifyUnknown}, nil, true, nil)

	if !strings.Contains(out, "User, we could not verify your employer match policy") {
		t.Errorf("Expected missing-policy verdict with User fallback, got:\n%s", out)
	}
	if !strings.Contains(out, "Conflicting policy data was detected") {
		t.Error("Expected conflict note")
	}
	if !strings.Contains(out, "Match policy: Not found in documents") {
		t.Error("Expected math block noting the missing policy")
	}
}

func TestComposeRecommendation_TieredMathBlock(t *testing.T) {
	metrics := model.LeakageMetrics{
		EmployeeName:          "Ana Silva",
		GrossPay:              4000.0,
		Current401kRate:       0.01,
		GapRate:               0.04,
		AnnualOpportunityCost: 720.00,
		PayPeriodsPerYear:     12,
		TiersPresent:          true,
		Tiers: []model.MatchTier{
			{Rate: 0.5, Limit: 0.03},
			{Rate: 0.25, Limit: 0.02},
		},
	}
	out := ComposeRecommendation(metrics, model.VerificationResult{Status: model.VerifyCorrect}, nil, false, nil)

	if !strings.Contains(out, "- 50% match on First 3.0% of salary") {
		t.Errorf("Expected first tier line, got:\n%s", out)
	}
	if !strings.Contains(out, "- 25% match on Next 2.0% of salary") {
		t.Errorf("Expected next tier line, got:\n%s", out)
	}
}

func TestComma2(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{999.5, "999.50"},
		{1000, "1,000.00"},
		{38220, "38,220.00"},
		{1234567.89, "1,234,567.89"},
		{-1234.5, "-1,234.50"},
	}
	for _, c := range cases {
		if got := comma2(c.in); got != c.want {
			t.Errorf("comma2(%v): expected %q, got %q", c.in, c.want, got)
		}
	}
}
