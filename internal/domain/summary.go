package domain

import "github.com/shopspring/decimal"

// TimeSummary aggregates time tracking entries for one period.
type TimeSummary struct {
	TotalHours    decimal.Decimal
	BillableHours decimal.Decimal
	AmountBilled  decimal.Decimal
	WorkerCount   int
}

// UtilizationPct is billable over total hours, as a percentage. Zero total
// hours yields zero, not a division error.
func (s TimeSummary) UtilizationPct() decimal.Decimal {
	if s.TotalHours.IsZero() {
		return decimal.Zero
	}
	return s.BillableHours.Div(s.TotalHours).Mul(decimal.NewFromInt(100))
}

// AverageRate is billed amount over billable hours. Zero billable hours
// yields zero.
func (s TimeSummary) AverageRate() decimal.Decimal {
	if s.BillableHours.IsZero() {
		return decimal.Zero
	}
	return s.AmountBilled.Div(s.BillableHours)
}
