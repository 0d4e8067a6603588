// Package export renders reports as CSV for download and distribution.
package export

import (
	"bytes"
	"fmt"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/groupledger/groupledger/internal/domain"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func pct(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type metricRow struct {
	Metric string `csv:"Metric"`
	Value  string `csv:"Value"`
}

type entityRow struct {
	Entity            string `csv:"Entity"`
	Revenue           string `csv:"Revenue"`
	DirectCosts       string `csv:"Direct Costs"`
	OperatingExpenses string `csv:"Operating Expenses"`
	GrossMargin       string `csv:"Gross Margin"`
	EBITDA            string `csv:"EBITDA"`
}

type eliminationRow struct {
	FromEntity string `csv:"From Entity"`
	ToEntity   string `csv:"To Entity"`
	Amount     string `csv:"Amount"`
	MatchID    string `csv:"Match ID"`
	Level      string `csv:"Elimination Level"`
}

type kpiRow struct {
	KPI   string `csv:"KPI"`
	Value string `csv:"Value"`
	Unit  string `csv:"Unit"`
}

type forecastRow struct {
	Month            string `csv:"Month"`
	OpeningBalance   string `csv:"Opening Balance"`
	CustomerPayments string `csv:"Customer Payments"`
	ScheduledBilling string `csv:"Scheduled Billing"`
	TotalInflow      string `csv:"Total Inflow"`
	SupplierPayments string `csv:"Supplier Payments"`
	TotalOutflow     string `csv:"Total Outflow"`
	NetCashflow      string `csv:"Net Cashflow"`
	ClosingBalance   string `csv:"Closing Balance"`
	Confidence       string `csv:"Confidence"`
}

func writeSection[T any](buf *bytes.Buffer, title string, rows []T) error {
	if title != "" {
		buf.WriteString(title + "\n")
	}
	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return err
	}
	buf.Write(out)
	buf.WriteString("\n")
	return nil
}

// ConsolidationCSV renders the group consolidation report: headline figures,
// the per-entity breakdown and the applied eliminations.
func ConsolidationCSV(c *domain.ConsolidatedFinancials) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("CONSOLIDATED INCOME STATEMENT,%s\n\n", c.Period))

	summary := []metricRow{
		{Metric: "Revenue (before eliminations)", Value: money(c.RevenueBeforeEliminations)},
		{Metric: "Intercompany Eliminations", Value: money(c.IntercompanyEliminations.Neg())},
		{Metric: "Revenue", Value: money(c.Revenue)},
		{Metric: "Direct Costs", Value: money(c.DirectCosts.Neg())},
		{Metric: "Gross Margin", Value: money(c.GrossMargin)},
		{Metric: "Gross Margin %", Value: pct(c.GrossMarginPct)},
		{Metric: "Operating Expenses", Value: money(c.OperatingExpenses.Neg())},
		{Metric: "EBITDA", Value: money(c.EBITDA)},
		{Metric: "EBITDA %", Value: pct(c.EBITDAPct)},
		{Metric: "Minority Interest", Value: money(c.MinorityInterest.Neg())},
		{Metric: "Net Income", Value: money(c.NetIncome)},
	}
	if err := writeSection(&buf, "", summary); err != nil {
		return nil, err
	}

	entities := make([]entityRow, 0, len(c.ByEntity))
	for _, e := range c.ByEntity {
		entities = append(entities, entityRow{
			Entity:            e.EntityName,
			Revenue:           money(e.Revenue),
			DirectCosts:       money(e.DirectCosts),
			OperatingExpenses: money(e.OperatingExpenses),
			GrossMargin:       money(e.GrossMargin),
			EBITDA:            money(e.EBITDA),
		})
	}
	if err := writeSection(&buf, "BY ENTITY", entities); err != nil {
		return nil, err
	}

	if len(c.Eliminations) > 0 {
		rows := make([]eliminationRow, 0, len(c.Eliminations))
		for _, e := range c.Eliminations {
			rows = append(rows, eliminationRow{
				FromEntity: e.FromEntity,
				ToEntity:   e.ToEntity,
				Amount:     money(e.Amount),
				MatchID:    e.MatchID,
				Level:      e.Level,
			})
		}
		if err := writeSection(&buf, "INTERCOMPANY ELIMINATIONS", rows); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// IncomeStatementCSV renders the per-entity income statement without group
// adjustments.
func IncomeStatementCSV(c *domain.ConsolidatedFinancials) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("INCOME STATEMENT BY ENTITY,%s\n\n", c.Period))

	rows := make([]entityRow, 0, len(c.ByEntity))
	for _, e := range c.ByEntity {
		rows = append(rows, entityRow{
			Entity:            e.EntityName,
			Revenue:           money(e.Revenue),
			DirectCosts:       money(e.DirectCosts),
			OperatingExpenses: money(e.OperatingExpenses),
			GrossMargin:       money(e.GrossMargin),
			EBITDA:            money(e.EBITDA),
		})
	}
	if err := writeSection(&buf, "", rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// KPICSV renders the KPI report for one organization and period.
func KPICSV(organizationName, period string, records []*domain.KPIRecord) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("KPI REPORT,%s,%s\n\n", organizationName, period))

	rows := make([]kpiRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, kpiRow{
			KPI:   string(r.Type),
			Value: r.Value.StringFixed(2),
			Unit:  string(r.Unit),
		})
	}
	if err := writeSection(&buf, "", rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ForecastCSV renders the 12-month cashflow projection.
func ForecastCSV(projections []domain.CashflowProjection) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("CASHFLOW FORECAST\n\n")

	rows := make([]forecastRow, 0, len(projections))
	for _, p := range projections {
		rows = append(rows, forecastRow{
			Month:            p.Month,
			OpeningBalance:   money(p.OpeningBalance),
			CustomerPayments: money(p.CustomerPayments),
			ScheduledBilling: money(p.ScheduledBilling),
			TotalInflow:      money(p.TotalInflow),
			SupplierPayments: money(p.SupplierPayments),
			TotalOutflow:     money(p.TotalOutflow),
			NetCashflow:      money(p.NetCashflow),
			ClosingBalance:   money(p.ClosingBalance),
			Confidence:       string(p.Confidence),
		})
	}
	if err := writeSection(&buf, "", rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
