package model

import "time"

// LeakageMetrics quantifies the employer-match money an employee is leaving
// on the table. Rates are fractions rounded to 4 decimals, currency amounts
// to 2 decimals.
type LeakageMetrics struct {
	EmployeeName          string      `json:"employee_name,omitempty"`
	GrossPay              float64     `json:"gross_pay"`
	Current401k           float64     `json:"current_401k"`
	Current401kRate       float64     `json:"current_401k_rate"`
	MatchRate             float64     `json:"match_rate"`
	MatchUpTo             float64     `json:"match_up_to"`
	GapRate               float64     `json:"gap_rate"`
	AnnualOpportunityCost float64     `json:"annual_opportunity_cost"`
	PayPeriodsPerYear     int         `json:"pay_periods_per_year"`
	PolicyMissingMatch    bool        `json:"policy_missing_match"`
	TiersPresent          bool        `json:"tiers_present"`
	Tiers                 []MatchTier `json:"tiers,omitempty"`
}

// Verification statuses for the payroll-consistency check.
const (
	VerifyCorrect   = "correct"
	VerifyIncorrect = "incorrect"
	VerifyUnknown   = "unknown"
)

// VerificationResult is the outcome of reconciling gross, net, taxes and
// deductions on a paystub.
type VerificationResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// VestingAlert describes an upcoming (or passed) vesting cliff.
// DaysRemaining is signed: negative means the date is in the past.
type VestingAlert struct {
	NextVestingDate string  `json:"next_vesting_date"`
	DaysRemaining   int     `json:"days_remaining"`
	Shares          float64 `json:"shares"`
	StockPrice      float64 `json:"stock_price"`
	ValueEstimate   float64 `json:"value_estimate"`
}

// ReasoningEntry documents one assumption in the leakage math so every
// reported number stays explainable.
type ReasoningEntry struct {
	Assumption  string `json:"assumption"`
	Calculation string `json:"calculation"`
	Result      string `json:"result"`
}

// ActionItem is one recommended step. Impact and Effort are free-form labels
// ("high", "medium", "low"); the composer sorts by them as plain strings.
type ActionItem struct {
	Action string `json:"action"`
	Impact string `json:"impact"`
	Effort string `json:"effort"`
}

// Report is the complete analysis for one paystub/RSU record against one
// benefits handbook.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	Handbook    string    `json:"handbook,omitempty"`

	Policy       PolicyAnswer       `json:"policy"`
	Metrics      LeakageMetrics     `json:"leaked_value"`
	Verification VerificationResult `json:"paystub_verification"`
	Vesting      *VestingAlert      `json:"rsu_analysis,omitempty"`

	Reasoning  []ReasoningEntry `json:"reasoning"`
	ActionPlan []ActionItem     `json:"action_plan"`

	// Recommendation is the deterministic composer output, or the hosted
	// model's text when the LLM path is enabled.
	Recommendation string        `json:"recommendation"`
	LLM            *LLMSynthesis `json:"llm,omitempty"`
}

// LLMSynthesis records the optional hosted-model rendering of the
// recommendation. It never affects the computed metrics.
type LLMSynthesis struct {
	Enabled  bool     `json:"enabled"`
	Provider string   `json:"provider,omitempty"`
	Model    string   `json:"model,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
