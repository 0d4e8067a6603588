package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/groupledger/groupledger/internal/domain"
	"github.com/groupledger/groupledger/internal/export"
	"github.com/groupledger/groupledger/internal/infrastructure/metrics"
)

// ReportUseCase generates exportable reports and tracks them.
type ReportUseCase struct {
	reportRepo    ReportRepository
	orgRepo       OrganizationRepository
	consolidation *ConsolidationUseCase
	kpis          *KPIUseCase
	forecast      *ForecastUseCase
	idGen         IDGenerator
	metrics       *metrics.Metrics
	logger        zerolog.Logger
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(
	reportRepo ReportRepository,
	orgRepo OrganizationRepository,
	consolidation *ConsolidationUseCase,
	kpis *KPIUseCase,
	forecast *ForecastUseCase,
	idGen IDGenerator,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:    reportRepo,
		orgRepo:       orgRepo,
		consolidation: consolidation,
		kpis:          kpis,
		forecast:      forecast,
		idGen:         idGen,
		metrics:       m,
		logger:        logger,
	}
}

// GenerateReportInput represents one report generation request.
type GenerateReportInput struct {
	Type           domain.ReportType
	Period         string
	OrganizationID string
	GeneratedBy    string
}

// GenerateReport builds the requested report, renders it to CSV and records
// the generation. The CSV bytes are returned alongside the report record.
func (uc *ReportUseCase) GenerateReport(ctx context.Context, input GenerateReportInput) (*domain.Report, []byte, error) {
	var (
		data []byte
		err  error
	)
	switch input.Type {
	case domain.ReportConsolidation:
		var result *domain.ConsolidatedFinancials
		result, err = uc.consolidation.Consolidate(ctx, input.Period)
		if err == nil {
			data, err = export.ConsolidationCSV(result)
		}
	case domain.ReportIncomeStatement:
		var result *domain.ConsolidatedFinancials
		result, err = uc.consolidation.Consolidate(ctx, input.Period)
		if err == nil {
			data, err = export.IncomeStatementCSV(result)
		}
	case domain.ReportKPI:
		var org *domain.Organization
		org, err = uc.orgRepo.GetByID(ctx, input.OrganizationID)
		if err != nil {
			return nil, nil, err
		}
		var records []*domain.KPIRecord
		records, err = uc.kpis.List(ctx, input.OrganizationID, input.Period)
		if err == nil && len(records) == 0 {
			records, err = uc.kpis.Calculate(ctx, input.OrganizationID, input.Period)
		}
		if err == nil {
			data, err = export.KPICSV(org.Name, input.Period, records)
		}
	case domain.ReportCashflowForecast:
		var projections []domain.CashflowProjection
		projections, err = uc.forecast.Forecast(ctx)
		if err == nil {
			data, err = export.ForecastCSV(projections)
		}
	default:
		return nil, nil, fmt.Errorf("unknown report type %q", input.Type)
	}
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	report := &domain.Report{
		ID:             uc.idGen.Generate(),
		OrganizationID: input.OrganizationID,
		Type:           input.Type,
		Period:         input.Period,
		GeneratedBy:    input.GeneratedBy,
		FileName:       reportFileName(input.Type, input.Period, now),
		Status:         domain.ReportGenerated,
		GeneratedAt:    now,
	}
	if err := uc.reportRepo.Create(ctx, report); err != nil {
		return nil, nil, err
	}
	uc.metrics.ReportsGenerated.WithLabelValues(string(report.Type)).Inc()

	uc.logger.Info().
		Str("report_id", report.ID).
		Str("type", string(report.Type)).
		Str("period", report.Period).
		Msg("report generated")
	return report, data, nil
}

// GetReport retrieves a report record by ID.
func (uc *ReportUseCase) GetReport(ctx context.Context, id string) (*domain.Report, error) {
	return uc.reportRepo.GetByID(ctx, id)
}

// ListReports lists report records, optionally scoped to an organization.
func (uc *ReportUseCase) ListReports(ctx context.Context, organizationID string, limit, offset int) ([]*domain.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return uc.reportRepo.List(ctx, organizationID, limit, offset)
}

// MarkSent records that a report was distributed.
func (uc *ReportUseCase) MarkSent(ctx context.Context, id string) error {
	report, err := uc.reportRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return uc.reportRepo.UpdateStatus(ctx, report.ID, domain.ReportSent, time.Now().UTC())
}

func reportFileName(t domain.ReportType, period string, at time.Time) string {
	if period == "" {
		period = at.Format("2006-01")
	}
	return fmt.Sprintf("%s_%s_%s.csv", t, period, at.Format("20060102_150405"))
}
