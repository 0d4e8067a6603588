package domain

import "time"

// ReportType enumerates the exportable report kinds.
type ReportType string

const (
	ReportConsolidation    ReportType = "consolidation"
	ReportIncomeStatement  ReportType = "income_statement"
	ReportCashflowForecast ReportType = "cashflow_forecast"
	ReportKPI              ReportType = "kpi_report"
)

// ReportStatus moves forward only: draft -> generated -> sent.
type ReportStatus string

const (
	ReportDraft     ReportStatus = "draft"
	ReportGenerated ReportStatus = "generated"
	ReportSent      ReportStatus = "sent"
)

// Report records one explicit report generation request and its output file.
type Report struct {
	ID             string
	OrganizationID string
	Type           ReportType
	Period         string
	GeneratedBy    string
	FileName       string
	Status         ReportStatus
	GeneratedAt    time.Time
}
