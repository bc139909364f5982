// Package strategy converts extracted paystub/RSU fields plus a retrieved
// match policy into the quantified contribution gap, payroll-consistency
// check, vesting alert and recommendation text.
package strategy

import (
	"github.com/rlevin/matchpoint/internal/coerce"
	"github.com/rlevin/matchpoint/internal/model"
)

// EstimatePeriodsPerYear infers pay frequency from the pay-period dates.
// Unparseable or missing dates default to monthly.
func EstimatePeriodsPerYear(paystub model.PaystubRecord) int {
	start, okStart := coerce.Date(paystub.PayPeriodStart)
	end, okEnd := coerce.Date(paystub.PayPeriodEnd)
	if !okStart || !okEnd {
		return 12
	}
	days := int(end.Sub(start).Hours() / 24)
	if days < 0 {
		days = -days
	}
	days++
	switch {
	case days <= 8:
		return 52 // weekly
	case days <= 16:
		return 26 // biweekly
	case days <= 23:
		return 24 // semimonthly
	default:
		return 12
	}
}
