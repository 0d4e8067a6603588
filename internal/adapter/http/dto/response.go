package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/groupledger/groupledger/internal/domain"
	"github.com/groupledger/groupledger/internal/usecase"
)

// OrganizationResponse represents an organization in API responses.
type OrganizationResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	ParentID            string          `json:"parent_id,omitempty"`
	Type                string          `json:"type"`
	ReportingType       string          `json:"reporting_type"`
	OwnershipPercentage decimal.Decimal `json:"ownership_percentage"`
	Description         string          `json:"description,omitempty"`
	Active              bool            `json:"active"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// OrganizationFromDomain converts a domain organization to a response.
func OrganizationFromDomain(o *domain.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		ID:                  o.ID,
		Name:                o.Name,
		ParentID:            o.ParentID,
		Type:                string(o.Type),
		ReportingType:       string(o.ReportingType),
		OwnershipPercentage: o.OwnershipPercentage,
		Description:         o.Description,
		Active:              o.Active,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}

// OrganizationsFromDomain converts domain organizations to responses.
func OrganizationsFromDomain(orgs []*domain.Organization) []*OrganizationResponse {
	result := make([]*OrganizationResponse, len(orgs))
	for i, o := range orgs {
		result[i] = OrganizationFromDomain(o)
	}
	return result
}

// ListOrganizationsResponse wraps an organization listing.
type ListOrganizationsResponse struct {
	Organizations []*OrganizationResponse `json:"organizations"`
	Total         int64                   `json:"total"`
}

// UploadResponse represents an upload batch in API responses.
type UploadResponse struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organization_id,omitempty"`
	Type           string     `json:"type"`
	FileName       string     `json:"file_name"`
	Period         string     `json:"period,omitempty"`
	Status         string     `json:"status"`
	RecordCount    int        `json:"record_count"`
	SkippedCount   int        `json:"skipped_count"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	UploadedAt     time.Time  `json:"uploaded_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// UploadFromDomain converts a domain upload batch to a response.
func UploadFromDomain(b *domain.UploadBatch) *UploadResponse {
	resp := &UploadResponse{
		ID:             b.ID,
		OrganizationID: b.OrganizationID,
		Type:           string(b.Type),
		FileName:       b.FileName,
		Period:         b.Period,
		Status:         string(b.Status),
		RecordCount:    b.RecordCount,
		SkippedCount:   b.SkippedCount,
		ErrorMessage:   b.ErrorMessage,
		UploadedAt:     b.UploadedAt,
	}
	if !b.CompletedAt.IsZero() {
		completed := b.CompletedAt
		resp.CompletedAt = &completed
	}
	return resp
}

// UploadsFromDomain converts domain upload batches to responses.
func UploadsFromDomain(batches []*domain.UploadBatch) []*UploadResponse {
	result := make([]*UploadResponse, len(batches))
	for i, b := range batches {
		result[i] = UploadFromDomain(b)
	}
	return result
}

// ListUploadsResponse wraps an upload listing.
type ListUploadsResponse struct {
	Uploads []*UploadResponse `json:"uploads"`
	Total   int64             `json:"total"`
}

// EntityFinancialsResponse represents one entity's P&L in API responses.
type EntityFinancialsResponse struct {
	EntityName        string          `json:"entity_name"`
	Revenue           decimal.Decimal `json:"revenue"`
	DirectCosts       decimal.Decimal `json:"direct_costs"`
	OperatingExpenses decimal.Decimal `json:"operating_expenses"`
	GrossMargin       decimal.Decimal `json:"gross_margin"`
	EBITDA            decimal.Decimal `json:"ebitda"`
}

// EliminationResponse represents one applied elimination in API responses.
type EliminationResponse struct {
	FromEntity string          `json:"from_entity"`
	ToEntity   string          `json:"to_entity"`
	Amount     decimal.Decimal `json:"amount"`
	MatchID    string          `json:"match_id"`
	Level      string          `json:"level"`
}

// ConsolidationResponse represents the group result in API responses.
type ConsolidationResponse struct {
	Period                    string                     `json:"period"`
	Revenue                   decimal.Decimal            `json:"revenue"`
	RevenueBeforeEliminations decimal.Decimal            `json:"revenue_before_eliminations"`
	DirectCosts               decimal.Decimal            `json:"direct_costs"`
	OperatingExpenses         decimal.Decimal            `json:"operating_expenses"`
	GrossMargin               decimal.Decimal            `json:"gross_margin"`
	GrossMarginPct            decimal.Decimal            `json:"gross_margin_pct"`
	EBITDA                    decimal.Decimal            `json:"ebitda"`
	EBITDAPct                 decimal.Decimal            `json:"ebitda_pct"`
	IntercompanyEliminations  decimal.Decimal            `json:"intercompany_eliminations"`
	MinorityInterest          decimal.Decimal            `json:"minority_interest"`
	NetIncome                 decimal.Decimal            `json:"net_income"`
	ByEntity                  []EntityFinancialsResponse `json:"by_entity"`
	Eliminations              []EliminationResponse      `json:"eliminations,omitempty"`
}

// ConsolidationFromDomain converts a domain consolidation to a response.
func ConsolidationFromDomain(c *domain.ConsolidatedFinancials) *ConsolidationResponse {
	resp := &ConsolidationResponse{
		Period:                    c.Period,
		Revenue:                   c.Revenue,
		RevenueBeforeEliminations: c.RevenueBeforeEliminations,
		DirectCosts:               c.DirectCosts,
		OperatingExpenses:         c.OperatingExpenses,
		GrossMargin:               c.GrossMargin,
		GrossMarginPct:            c.GrossMarginPct,
		EBITDA:                    c.EBITDA,
		EBITDAPct:                 c.EBITDAPct,
		IntercompanyEliminations:  c.IntercompanyEliminations,
		MinorityInterest:          c.MinorityInterest,
		NetIncome:                 c.NetIncome,
	}
	for _, e := range c.ByEntity {
		resp.ByEntity = append(resp.ByEntity, EntityFinancialsResponse{
			EntityName:        e.EntityName,
			Revenue:           e.Revenue,
			DirectCosts:       e.DirectCosts,
			OperatingExpenses: e.OperatingExpenses,
			GrossMargin:       e.GrossMargin,
			EBITDA:            e.EBITDA,
		})
	}
	for _, el := range c.Eliminations {
		resp.Eliminations = append(resp.Eliminations, EliminationResponse{
			FromEntity: el.FromEntity,
			ToEntity:   el.ToEntity,
			Amount:     el.Amount,
			MatchID:    el.MatchID,
			Level:      el.Level,
		})
	}
	return resp
}

// KPIResponse represents one calculated KPI in API responses.
type KPIResponse struct {
	ID           string            `json:"id"`
	Type         string            `json:"type"`
	Value        decimal.Decimal   `json:"value"`
	Unit         string            `json:"unit"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	CalculatedAt time.Time         `json:"calculated_at"`
}

// KPIsFromDomain converts domain KPI records to responses.
func KPIsFromDomain(records []*domain.KPIRecord) []*KPIResponse {
	result := make([]*KPIResponse, len(records))
	for i, r := range records {
		result[i] = &KPIResponse{
			ID:           r.ID,
			Type:         string(r.Type),
			Value:        r.Value,
			Unit:         string(r.Unit),
			Metadata:     r.Metadata,
			CalculatedAt: r.CalculatedAt,
		}
	}
	return result
}

// ListKPIsResponse wraps a KPI listing.
type ListKPIsResponse struct {
	OrganizationID string         `json:"organization_id"`
	Period         string         `json:"period"`
	KPIs           []*KPIResponse `json:"kpis"`
}

// ProjectionResponse represents one forecast month in API responses.
type ProjectionResponse struct {
	Month            string          `json:"month"`
	OpeningBalance   decimal.Decimal `json:"opening_balance"`
	CustomerPayments decimal.Decimal `json:"customer_payments"`
	ScheduledBilling decimal.Decimal `json:"scheduled_billing"`
	TotalInflow      decimal.Decimal `json:"total_inflow"`
	SupplierPayments decimal.Decimal `json:"supplier_payments"`
	TotalOutflow     decimal.Decimal `json:"total_outflow"`
	NetCashflow      decimal.Decimal `json:"net_cashflow"`
	ClosingBalance   decimal.Decimal `json:"closing_balance"`
	Confidence       string          `json:"confidence"`
}

// ProjectionsFromDomain converts domain projections to responses.
func ProjectionsFromDomain(projections []domain.CashflowProjection) []ProjectionResponse {
	result := make([]ProjectionResponse, len(projections))
	for i, p := range projections {
		result[i] = ProjectionResponse{
			Month:            p.Month,
			OpeningBalance:   p.OpeningBalance,
			CustomerPayments: p.CustomerPayments,
			ScheduledBilling: p.ScheduledBilling,
			TotalInflow:      p.TotalInflow,
			SupplierPayments: p.SupplierPayments,
			TotalOutflow:     p.TotalOutflow,
			NetCashflow:      p.NetCashflow,
			ClosingBalance:   p.ClosingBalance,
			Confidence:       string(p.Confidence),
		}
	}
	return result
}

// CounterpartyBalanceResponse represents an aged balance in API responses.
type CounterpartyBalanceResponse struct {
	Counterparty string          `json:"counterparty"`
	Amount       decimal.Decimal `json:"amount"`
	AverageAge   decimal.Decimal `json:"average_age_days"`
	Count        int             `json:"count"`
}

// CounterpartyBalancesFromDomain converts aged balances to responses.
func CounterpartyBalancesFromDomain(balances []*domain.CounterpartyBalance) []*CounterpartyBalanceResponse {
	result := make([]*CounterpartyBalanceResponse, len(balances))
	for i, b := range balances {
		result[i] = &CounterpartyBalanceResponse{
			Counterparty: b.Counterparty,
			Amount:       b.Amount,
			AverageAge:   b.AverageAge,
			Count:        b.Count,
		}
	}
	return result
}

// CashflowSummaryResponse represents the treasury overview in API responses.
type CashflowSummaryResponse struct {
	CashPosition    decimal.Decimal                `json:"cash_position"`
	OpenReceivables decimal.Decimal                `json:"open_receivables"`
	OpenPayables    decimal.Decimal                `json:"open_payables"`
	NetPosition     decimal.Decimal                `json:"net_position"`
	NearTerm        []ProjectionResponse           `json:"near_term"`
	Forecast        []ProjectionResponse           `json:"forecast"`
	AgedReceivables []*CounterpartyBalanceResponse `json:"aged_receivables"`
	AgedPayables    []*CounterpartyBalanceResponse `json:"aged_payables"`
}

// CashflowSummaryFromUseCase converts the use case summary to a response.
func CashflowSummaryFromUseCase(s *usecase.CashflowSummary) *CashflowSummaryResponse {
	return &CashflowSummaryResponse{
		CashPosition:    s.CashPosition,
		OpenReceivables: s.OpenReceivables,
		OpenPayables:    s.OpenPayables,
		NetPosition:     s.NetPosition,
		NearTerm:        ProjectionsFromDomain(s.NearTerm),
		Forecast:        ProjectionsFromDomain(s.Forecast),
		AgedReceivables: CounterpartyBalancesFromDomain(s.AgedReceivables),
		AgedPayables:    CounterpartyBalancesFromDomain(s.AgedPayables),
	}
}

// ReportResponse represents a report record in API responses.
type ReportResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id,omitempty"`
	Type           string    `json:"type"`
	Period         string    `json:"period,omitempty"`
	GeneratedBy    string    `json:"generated_by,omitempty"`
	FileName       string    `json:"file_name"`
	Status         string    `json:"status"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// ReportFromDomain converts a domain report to a response.
func ReportFromDomain(r *domain.Report) *ReportResponse {
	return &ReportResponse{
		ID:             r.ID,
		OrganizationID: r.OrganizationID,
		Type:           string(r.Type),
		Period:         r.Period,
		GeneratedBy:    r.GeneratedBy,
		FileName:       r.FileName,
		Status:         string(r.Status),
		GeneratedAt:    r.GeneratedAt,
	}
}

// ReportsFromDomain converts domain reports to responses.
func ReportsFromDomain(reports []*domain.Report) []*ReportResponse {
	result := make([]*ReportResponse, len(reports))
	for i, r := range reports {
		result[i] = ReportFromDomain(r)
	}
	return result
}

// ListReportsResponse wraps a report listing.
type ListReportsResponse struct {
	Reports []*ReportResponse `json:"reports"`
	Total   int64             `json:"total"`
}

// PeriodsResponse wraps the known reporting periods.
type PeriodsResponse struct {
	Periods []string `json:"periods"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
