package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/groupledger/groupledger/internal/domain"
)

// Forecast policy. The horizon is split into confidence tiers: the near
// term leans on scheduled billing and the collection of today's open
// positions, the mid term on uplifted historical averages, the far term on
// plain averages.
const (
	forecastHorizonMonths = 12
	nearTermMonths        = 2
	midTermMonths         = 6
	historyMonths         = 6
)

var (
	nearTermInflowUplift = decimal.NewFromFloat(1.10)
	midTermInflowUplift  = decimal.NewFromFloat(1.05)
	// midTermScheduledWeight discounts scheduled billing beyond the near
	// term; bookings that far out still shift.
	midTermScheduledWeight = decimal.NewFromFloat(0.80)
	// receivablesCollectionShare and payablesSettlementShare are the
	// fractions of today's open positions expected to settle within the
	// near term, spread evenly across its months.
	receivablesCollectionShare = decimal.NewFromFloat(0.30)
	payablesSettlementShare    = decimal.NewFromFloat(0.40)
)

// forecastCurrency pins the cash position to the group's reporting currency.
const forecastCurrency = "EUR"

// ForecastUseCase builds 12-month cash projections for the consolidation
// scope from bank balances, open invoices, scheduled installments and
// historical payment behavior.
type ForecastUseCase struct {
	treasuryRepo TreasuryRepository
	invoiceRepo  InvoiceRepository
	orgs         *OrganizationUseCase
	logger       zerolog.Logger
}

// NewForecastUseCase creates a new ForecastUseCase.
func NewForecastUseCase(treasuryRepo TreasuryRepository, invoiceRepo InvoiceRepository, orgs *OrganizationUseCase, logger zerolog.Logger) *ForecastUseCase {
	return &ForecastUseCase{
		treasuryRepo: treasuryRepo,
		invoiceRepo:  invoiceRepo,
		orgs:         orgs,
		logger:       logger,
	}
}

// ForecastInputs are the aggregates a projection is built from.
type ForecastInputs struct {
	CashPosition      decimal.Decimal
	OpenReceivables   decimal.Decimal
	OpenPayables      decimal.Decimal
	AvgMonthlyInflow  decimal.Decimal
	AvgMonthlyOutflow decimal.Decimal
	ScheduledByMonth  map[string]decimal.Decimal
}

// CashflowSummary is the treasury overview: today's position, the near-term
// slice of the forecast and aged counterparty balances.
type CashflowSummary struct {
	CashPosition    decimal.Decimal
	OpenReceivables decimal.Decimal
	OpenPayables    decimal.Decimal
	NetPosition     decimal.Decimal
	NearTerm        []domain.CashflowProjection
	Forecast        []domain.CashflowProjection
	AgedReceivables []*domain.CounterpartyBalance
	AgedPayables    []*domain.CounterpartyBalance
}

// Forecast produces the 12-month projection for the active consolidation
// scope, starting from next month.
func (uc *ForecastUseCase) Forecast(ctx context.Context) ([]domain.CashflowProjection, error) {
	in, err := uc.gather(ctx)
	if err != nil {
		return nil, err
	}
	return BuildForecast(*in, time.Now().UTC()), nil
}

// Summary produces the treasury overview.
func (uc *ForecastUseCase) Summary(ctx context.Context) (*CashflowSummary, error) {
	scope, err := uc.orgs.ConsolidationScope(ctx)
	if err != nil {
		return nil, err
	}
	in, err := uc.gather(ctx)
	if err != nil {
		return nil, err
	}
	forecast := BuildForecast(*in, time.Now().UTC())

	agedReceivables, err := uc.invoiceRepo.AgedReceivables(ctx, scope, 10)
	if err != nil {
		return nil, err
	}
	agedPayables, err := uc.invoiceRepo.AgedPayables(ctx, scope, 10)
	if err != nil {
		return nil, err
	}

	return &CashflowSummary{
		CashPosition:    in.CashPosition,
		OpenReceivables: in.OpenReceivables,
		OpenPayables:    in.OpenPayables,
		NetPosition:     in.CashPosition.Add(in.OpenReceivables).Sub(in.OpenPayables),
		NearTerm:        forecast[:3],
		Forecast:        forecast,
		AgedReceivables: agedReceivables,
		AgedPayables:    agedPayables,
	}, nil
}

func (uc *ForecastUseCase) gather(ctx context.Context) (*ForecastInputs, error) {
	scope, err := uc.orgs.ConsolidationScope(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	since := now.AddDate(0, -historyMonths, 0)

	cash, err := uc.treasuryRepo.CashPosition(ctx, scope, forecastCurrency)
	if err != nil {
		return nil, err
	}
	receivables, err := uc.invoiceRepo.OpenReceivables(ctx, scope)
	if err != nil {
		return nil, err
	}
	payables, err := uc.invoiceRepo.OpenPayables(ctx, scope)
	if err != nil {
		return nil, err
	}
	avgIn, err := uc.treasuryRepo.AverageMonthlyCustomerPayments(ctx, scope, since)
	if err != nil {
		return nil, err
	}
	avgOut, err := uc.treasuryRepo.AverageMonthlySupplierPayments(ctx, scope, since)
	if err != nil {
		return nil, err
	}
	scheduled, err := uc.treasuryRepo.ScheduledInstallmentsByMonth(ctx, scope, now)
	if err != nil {
		return nil, err
	}

	return &ForecastInputs{
		CashPosition:      cash,
		OpenReceivables:   receivables,
		OpenPayables:      payables,
		AvgMonthlyInflow:  avgIn,
		AvgMonthlyOutflow: avgOut,
		ScheduledByMonth:  scheduled,
	}, nil
}

// BuildForecast projects 12 months of cashflow starting from the month
// after start. Every month closes at opening plus net, and each month opens
// on the previous close.
func BuildForecast(in ForecastInputs, start time.Time) []domain.CashflowProjection {
	nearMonths := decimal.NewFromInt(nearTermMonths)
	receivablesPerMonth := in.OpenReceivables.Mul(receivablesCollectionShare).Div(nearMonths)
	payablesPerMonth := in.OpenPayables.Mul(payablesSettlementShare).Div(nearMonths)

	forecast := make([]domain.CashflowProjection, 0, forecastHorizonMonths)
	balance := in.CashPosition
	firstOfMonth := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < forecastHorizonMonths; i++ {
		month := firstOfMonth.AddDate(0, i+1, 0).Format("2006-01")
		scheduled := in.ScheduledByMonth[month]

		var inflow, outflow decimal.Decimal
		var confidence domain.CashflowConfidence
		switch {
		case i < nearTermMonths:
			inflow = scheduled.
				Add(in.AvgMonthlyInflow.Mul(nearTermInflowUplift)).
				Add(receivablesPerMonth)
			outflow = in.AvgMonthlyOutflow.Add(payablesPerMonth)
			confidence = domain.ConfidenceHigh
		case i < midTermMonths:
			inflow = in.AvgMonthlyInflow.Mul(midTermInflowUplift).
				Add(scheduled.Mul(midTermScheduledWeight))
			outflow = in.AvgMonthlyOutflow
			confidence = domain.ConfidenceMedium
		default:
			inflow = in.AvgMonthlyInflow
			outflow = in.AvgMonthlyOutflow
			confidence = domain.ConfidenceLow
		}

		net := inflow.Sub(outflow)
		closing := balance.Add(net)
		forecast = append(forecast, domain.CashflowProjection{
			Month:            month,
			OpeningBalance:   balance,
			CustomerPayments: in.AvgMonthlyInflow,
			ScheduledBilling: scheduled,
			TotalInflow:      inflow,
			SupplierPayments: in.AvgMonthlyOutflow,
			TotalOutflow:     outflow,
			NetCashflow:      net,
			ClosingBalance:   closing,
			Confidence:       confidence,
		})
		balance = closing
	}
	return forecast
}
