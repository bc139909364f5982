package model

// PaystubRecord holds the fields the extraction agent pulls from a paystub.
// Numeric fields may arrive as currency-formatted strings ("$4,000.00"), so
// they are kept loosely typed and run through the coerce package at the point
// of use. Missing fields stay nil and coerce to zero.
type PaystubRecord struct {
	EmployeeName    string `json:"employee_name,omitempty"`
	EmployerName    string `json:"employer_name,omitempty"`
	PayPeriodStart  any    `json:"pay_period_start,omitempty"`
	PayPeriodEnd    any    `json:"pay_period_end,omitempty"`
	PayDate         any    `json:"pay_date,omitempty"`
	BasePay         any    `json:"base_pay,omitempty"`
	GrossPay        any    `json:"gross_pay,omitempty"`
	NetPay          any    `json:"net_pay,omitempty"`
	PreTax401k      any    `json:"pre_tax_401k,omitempty"`
	Roth401k        any    `json:"roth_401k,omitempty"`
	HSAContribution any    `json:"hsa_contribution,omitempty"`
	YTDGrossPay     any    `json:"ytd_gross_pay,omitempty"`
	TotalTaxes      any    `json:"total_taxes,omitempty"`
	TotalDeductions any    `json:"total_deductions,omitempty"`
	Currency        string `json:"currency,omitempty"`
}

// RSURecord holds the fields the extraction agent pulls from an RSU grant
// statement. Same loose typing rules as PaystubRecord.
type RSURecord struct {
	ParticipantName    string `json:"participant_name,omitempty"`
	EmployerName       string `json:"employer_name,omitempty"`
	GrantDate          any    `json:"grant_date,omitempty"`
	TotalSharesGranted any    `json:"total_shares_granted,omitempty"`
	VestingDescription string `json:"vesting_schedule_description,omitempty"`
	NextVestingDate    any    `json:"next_vesting_date,omitempty"`
	NextVestingShares  any    `json:"next_vesting_shares,omitempty"`
	CurrentStockPrice  any    `json:"current_stock_price,omitempty"`
}
