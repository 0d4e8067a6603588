package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// KPIUnit is the unit of a KPI value.
type KPIUnit string

const (
	UnitEUR    KPIUnit = "EUR"
	UnitPct    KPIUnit = "%"
	UnitRatio  KPIUnit = "ratio"
	UnitDays   KPIUnit = "days"
	UnitCount  KPIUnit = "count"
	UnitMonths KPIUnit = "months"
	UnitScore  KPIUnit = "score"
)

// KPIType enumerates the calculated metrics of both KPI families.
type KPIType string

// Services family.
const (
	KPIGrossMargin          KPIType = "gross_margin"
	KPIGrossMarginPct       KPIType = "gross_margin_percentage"
	KPIEBITDA               KPIType = "ebitda"
	KPIEBITDAPct            KPIType = "ebitda_percentage"
	KPIBillableUtilization  KPIType = "billable_utilization"
	KPIAverageHourlyRate    KPIType = "average_hourly_rate"
	KPIRevenuePerFTE        KPIType = "revenue_per_fte"
	KPIDaysSalesOutstanding KPIType = "days_sales_outstanding"
	KPIOperatingCashFlow    KPIType = "operating_cash_flow"
)

// SaaS family.
const (
	KPIMRR                KPIType = "mrr"
	KPIARR                KPIType = "arr"
	KPIARPU               KPIType = "arpu"
	KPICustomerChurnRate  KPIType = "customer_churn_rate"
	KPIGrossRetention     KPIType = "gross_revenue_retention"
	KPINetRetention       KPIType = "net_revenue_retention"
	KPICAC                KPIType = "cac"
	KPILTV                KPIType = "ltv"
	KPILTVCACRatio        KPIType = "ltv_cac_ratio"
	KPIMonthsToRecoverCAC KPIType = "months_to_recover_cac"
	KPIRuleOf40           KPIType = "rule_of_40"
)

// KPIRecord is one calculated metric for an (organization, period, type)
// triple. Recalculation overwrites the previous value for the same triple.
// Metadata carries the supporting figures behind the headline number.
type KPIRecord struct {
	ID             string
	OrganizationID string
	Period         string
	Type           KPIType
	Value          decimal.Decimal
	Unit           KPIUnit
	Metadata       map[string]string
	CalculatedAt   time.Time
}
