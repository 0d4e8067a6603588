package export

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupledger/groupledger/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestConsolidationCSV(t *testing.T) {
	c := &domain.ConsolidatedFinancials{
		Period:                    "2024-03",
		Revenue:                   dec("13000"),
		RevenueBeforeEliminations: dec("15000"),
		DirectCosts:               dec("7000"),
		GrossMargin:               dec("6000"),
		GrossMarginPct:            dec("46.15"),
		EBITDA:                    dec("6000"),
		EBITDAPct:                 dec("46.15"),
		IntercompanyEliminations:  dec("2000"),
		NetIncome:                 dec("6000"),
		ByEntity: []domain.EntityFinancials{
			{EntityName: "Alpine Consulting B.V.", Revenue: dec("10000"), DirectCosts: dec("4000"), GrossMargin: dec("6000"), EBITDA: dec("6000")},
		},
		Eliminations: []domain.Elimination{
			{FromEntity: "Alpine Consulting B.V.", ToEntity: "Nordic Data AB", Amount: dec("2000"), MatchID: "IC-1", Level: "Group Holding B.V."},
		},
	}

	data, err := ConsolidationCSV(c)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "CONSOLIDATED INCOME STATEMENT,2024-03")
	assert.Contains(t, out, "Revenue,13000.00")
	assert.Contains(t, out, "Intercompany Eliminations,-2000.00")
	assert.Contains(t, out, "BY ENTITY")
	assert.Contains(t, out, "Alpine Consulting B.V.,10000.00,4000.00")
	assert.Contains(t, out, "INTERCOMPANY ELIMINATIONS")
	assert.Contains(t, out, "IC-1")
}

func TestKPICSV(t *testing.T) {
	records := []*domain.KPIRecord{
		{Type: domain.KPIGrossMargin, Value: dec("6000"), Unit: domain.UnitEUR},
		{Type: domain.KPIGrossMarginPct, Value: dec("60"), Unit: domain.UnitPct},
	}
	data, err := KPICSV("Alpine Consulting B.V.", "2024-03", records)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "KPI REPORT,Alpine Consulting B.V.,2024-03")
	assert.Contains(t, out, "KPI,Value,Unit")
	assert.Contains(t, out, "gross_margin,6000.00,EUR")
	assert.Contains(t, out, "gross_margin_percentage,60.00,%")
}

func TestForecastCSV(t *testing.T) {
	projections := []domain.CashflowProjection{
		{
			Month:          "2024-04",
			OpeningBalance: dec("50000"),
			TotalInflow:    dec("19000"),
			TotalOutflow:   dec("10000"),
			NetCashflow:    dec("9000"),
			ClosingBalance: dec("59000"),
			Confidence:     domain.ConfidenceHigh,
		},
	}
	data, err := ForecastCSV(projections)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "CASHFLOW FORECAST")
	require.True(t, strings.Contains(out, "Month,Opening Balance"))
	assert.Contains(t, out, "2024-04,50000.00")
	assert.Contains(t, out, "high")
}
