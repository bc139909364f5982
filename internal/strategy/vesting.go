package strategy

import (
	"time"

	"github.com/rlevin/matchpoint/internal/coerce"
	"github.com/rlevin/matchpoint/internal/model"
	"github.com/rlevin/matchpoint/internal/price"
)

// VestingAnalyzer estimates the value riding on the next vesting cliff.
type VestingAnalyzer struct {
	prices price.Source
	now    func() time.Time
}

// NewVestingAnalyzer builds an analyzer that consults prices when the record
// carries no usable stock price.
func NewVestingAnalyzer(prices price.Source) *VestingAnalyzer {
	return &VestingAnalyzer{prices: prices, now: time.Now}
}

// Analyze returns a vesting alert, or nil when the record has no parseable
// vesting date or no shares. Missing vesting data is not an error.
// DaysRemaining is negative when the cliff has already passed.
func (a *VestingAnalyzer) Analyze(rsu model.RSURecord) *model.VestingAlert {
	shares := coerce.Float(rsu.NextVestingShares)
	if shares == 0 {
		return nil
	}
	vestDate, ok := coerce.Date(rsu.NextVestingDate)
	if !ok {
		return nil
	}

	now := a.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(vestDate.Sub(today).Hours() / 24)

	stockPrice := coerce.Float(rsu.CurrentStockPrice)
	if stockPrice <= 0 && a.prices != nil {
		stockPrice = a.prices.Lookup(rsu.EmployerName)
	}

	return &model.VestingAlert{
		NextVestingDate: vestDate.Format("January 2, 2006"),
		DaysRemaining:   days,
		Shares:          shares,
		StockPrice:      stockPrice,
		ValueEstimate:   shares * stockPrice,
	}
}
