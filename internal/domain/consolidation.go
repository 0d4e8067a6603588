package domain

import "github.com/shopspring/decimal"

// EntityFinancials is one entity's own P&L aggregation for a period, before
// any group-level adjustment.
type EntityFinancials struct {
	EntityName        string
	Revenue           decimal.Decimal
	DirectCosts       decimal.Decimal
	OperatingExpenses decimal.Decimal
	GrossMargin       decimal.Decimal
	EBITDA            decimal.Decimal
}

// Elimination is one applied intercompany revenue elimination, kept for
// audit and export.
type Elimination struct {
	FromEntity           string
	ToEntity             string
	Amount               decimal.Decimal
	MatchID              string
	Level                string
	SourceJournalLineIDs []string
}

// ConsolidatedFinancials is the group result for a period. Revenue is
// post-elimination; RevenueBeforeEliminations keeps the unadjusted figure.
// Eliminations are applied to revenue only, not netted against costs — a
// known asymmetry of the source system that is preserved here. Minority
// interest is computed per entity on the immediate parent's stake without
// compounding through multi-level chains; a 70%-owned subsidiary of an
// 80%-owned subsidiary is treated as 70% held.
type ConsolidatedFinancials struct {
	Period                    string
	Revenue                   decimal.Decimal
	RevenueBeforeEliminations decimal.Decimal
	DirectCosts               decimal.Decimal
	OperatingExpenses         decimal.Decimal
	GrossMargin               decimal.Decimal
	GrossMarginPct            decimal.Decimal
	EBITDA                    decimal.Decimal
	EBITDAPct                 decimal.Decimal
	IntercompanyEliminations  decimal.Decimal
	MinorityInterest          decimal.Decimal
	NetIncome                 decimal.Decimal
	ByEntity                  []EntityFinancials
	Eliminations              []Elimination
}

// CashflowConfidence tiers a forecast month by how much of it rests on
// scheduled amounts versus plain historical averages.
type CashflowConfidence string

const (
	ConfidenceHigh   CashflowConfidence = "high"
	ConfidenceMedium CashflowConfidence = "medium"
	ConfidenceLow    CashflowConfidence = "low"
)

// CashflowProjection is one forecast month. ClosingBalance always equals
// OpeningBalance plus NetCashflow, and the next month opens on this month's
// close.
type CashflowProjection struct {
	Month            string
	OpeningBalance   decimal.Decimal
	CustomerPayments decimal.Decimal
	ScheduledBilling decimal.Decimal
	TotalInflow      decimal.Decimal
	SupplierPayments decimal.Decimal
	TotalOutflow     decimal.Decimal
	NetCashflow      decimal.Decimal
	ClosingBalance   decimal.Decimal
	Confidence       CashflowConfidence
}

// CounterpartyBalance is an aged outstanding amount grouped per customer or
// supplier.
type CounterpartyBalance struct {
	Counterparty string
	Amount       decimal.Decimal
	AverageAge   decimal.Decimal
	Count        int
}
