package strategy

import (
	"fmt"

	"github.com/rlevin/matchpoint/internal/coerce"
	"github.com/rlevin/matchpoint/internal/model"
)

// VerifyPaystub reconciles gross, net, taxes and deductions. Differences
// under a dollar are treated as rounding. When the straightforward
// reconciliation fails, the alternate hypothesis that total deductions
// already include taxes is tested before declaring the stub inconsistent.
func VerifyPaystub(paystub model.PaystubRecord) model.VerificationResult {
	// An unparseable gross pay coerces to zero and counts as missing.
	gross := coerce.Float(paystub.GrossPay)
	if gross == 0 {
		gross = coerce.Float(paystub.BasePay)
	}
	net := coerce.Float(paystub.NetPay)
	taxes := coerce.Float(paystub.TotalTaxes)
	deductions := coerce.Float(paystub.TotalDeductions)

	if taxes == 0 && deductions == 0 {
		return model.VerificationResult{
			Status:  model.VerifyUnknown,
			Message: "Missing tax/deduction data for verification",
		}
	}

	calculatedNet := gross - taxes - deductions
	if diff := abs(calculatedNet - net); diff < 1.0 {
		return model.VerificationResult{
			Status:  model.VerifyCorrect,
			Message: "Calculations verified",
		}
	}

	altNet := gross - deductions
	if diff := abs(altNet - net); diff < 1.0 {
		return model.VerificationResult{
			Status:  model.VerifyCorrect,
			Message: "Calculations verified (Note: Total Deductions appears to include Taxes)",
		}
	}

	return model.VerificationResult{
		Status: model.VerifyIncorrect,
		Message: fmt.Sprintf(
			"Gross ($%.2f) - Taxes ($%.2f) - Deductions ($%.2f) = $%.2f, but Net is $%.2f.",
			gross, taxes, deductions, calculatedNet, net,
		),
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
