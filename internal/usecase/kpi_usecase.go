package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/groupledger/groupledger/internal/domain"
	"github.com/groupledger/groupledger/internal/infrastructure/metrics"
)

// Heuristic constants behind the KPI calculations. They mirror the group's
// reporting conventions and are named here rather than buried in formulas.
const (
	// dsoPeriodDays is the day count a reporting period is assumed to span
	// when deriving daily revenue for DSO.
	dsoPeriodDays = 90
	// assumedContractMonths is the average customer lifetime used for LTV
	// until cohort data exists.
	assumedContractMonths = 24
	// placeholderGrowthRate feeds Rule of 40 until enough history is
	// ingested to compute real period-over-period growth.
	placeholderGrowthRate = 30
)

// KPIUseCase calculates and persists per-organization KPIs. Services
// entities get the consulting family, SaaS entities the subscription family.
type KPIUseCase struct {
	orgRepo      OrganizationRepository
	journalRepo  JournalRepository
	invoiceRepo  InvoiceRepository
	contractRepo ContractRepository
	timeRepo     TimeEntryRepository
	kpiRepo      KPIRepository
	idGen        IDGenerator
	metrics      *metrics.Metrics
	logger       zerolog.Logger
}

// NewKPIUseCase creates a new KPIUseCase.
func NewKPIUseCase(
	orgRepo OrganizationRepository,
	journalRepo JournalRepository,
	invoiceRepo InvoiceRepository,
	contractRepo ContractRepository,
	timeRepo TimeEntryRepository,
	kpiRepo KPIRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *KPIUseCase {
	return &KPIUseCase{
		orgRepo:      orgRepo,
		journalRepo:  journalRepo,
		invoiceRepo:  invoiceRepo,
		contractRepo: contractRepo,
		timeRepo:     timeRepo,
		kpiRepo:      kpiRepo,
		idGen:        idGen,
		metrics:      m,
		logger:       logger,
	}
}

// Calculate computes the KPI family matching the organization's type for a
// period and upserts the results. Recalculation overwrites earlier values
// for the same (organization, period, type).
func (uc *KPIUseCase) Calculate(ctx context.Context, organizationID, period string) ([]*domain.KPIRecord, error) {
	org, err := uc.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	var records []*domain.KPIRecord
	switch org.Type {
	case domain.OrgTypeSaaS:
		records, err = uc.calculateSaaS(ctx, org, period)
	default:
		records, err = uc.calculateServices(ctx, org, period)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for _, r := range records {
		r.ID = uc.idGen.Generate()
		r.OrganizationID = org.ID
		r.Period = period
		r.CalculatedAt = now
	}
	if err := uc.kpiRepo.Upsert(ctx, records); err != nil {
		return nil, err
	}
	uc.metrics.KPIsCalculated.Add(float64(len(records)))

	uc.logger.Info().
		Str("organization_id", org.ID).
		Str("period", period).
		Int("kpis", len(records)).
		Msg("kpis calculated")
	return records, nil
}

// List returns the stored KPIs for an organization and period.
func (uc *KPIUseCase) List(ctx context.Context, organizationID, period string) ([]*domain.KPIRecord, error) {
	return uc.kpiRepo.ListByPeriod(ctx, organizationID, period)
}

func (uc *KPIUseCase) calculateServices(ctx context.Context, org *domain.Organization, period string) ([]*domain.KPIRecord, error) {
	fin, err := uc.journalRepo.FinancialsForOrganization(ctx, org.ID, period)
	if err != nil {
		return nil, err
	}
	ts, err := uc.timeRepo.SumByPeriod(ctx, []string{org.ID}, period)
	if err != nil {
		return nil, err
	}
	receivables, err := uc.invoiceRepo.OpenReceivables(ctx, []string{org.ID})
	if err != nil {
		return nil, err
	}
	payables, err := uc.invoiceRepo.OpenPayables(ctx, []string{org.ID})
	if err != nil {
		return nil, err
	}

	return CalculateServicesKPIs(ServicesKPIInputs{
		Revenue:           fin.Revenue,
		DirectCosts:       fin.DirectCosts,
		OperatingExpenses: fin.OperatingExpenses,
		Time:              *ts,
		OpenReceivables:   receivables,
		OpenPayables:      payables,
	}), nil
}

func (uc *KPIUseCase) calculateSaaS(ctx context.Context, org *domain.Organization, period string) ([]*domain.KPIRecord, error) {
	contracts, err := uc.contractRepo.List(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	revenue, err := uc.invoiceRepo.SubscriptionRevenue(ctx, org.ID, period)
	if err != nil {
		return nil, err
	}
	spend, err := uc.journalRepo.SalesMarketingSpend(ctx, org.ID, period)
	if err != nil {
		return nil, err
	}

	periodStart, err := time.Parse("2006-01", period)
	if err != nil {
		return nil, fmt.Errorf("bad period %q: %w", period, err)
	}

	return CalculateSaaSKPIs(SaaSKPIInputs{
		Contracts:           contracts,
		InvoicedRevenue:     revenue,
		SalesMarketingSpend: spend,
		PeriodStart:         periodStart,
	}), nil
}

// ServicesKPIInputs are the aggregates behind the consulting KPI family.
type ServicesKPIInputs struct {
	Revenue           decimal.Decimal
	DirectCosts       decimal.Decimal
	OperatingExpenses decimal.Decimal
	Time              domain.TimeSummary
	OpenReceivables   decimal.Decimal
	OpenPayables      decimal.Decimal
}

// CalculateServicesKPIs derives the consulting KPI family. Every ratio
// guards its denominator: missing data yields zero values, never an error
// or a NaN.
func CalculateServicesKPIs(in ServicesKPIInputs) []*domain.KPIRecord {
	hundred := decimal.NewFromInt(100)

	grossMargin := in.Revenue.Sub(in.DirectCosts)
	grossMarginPct := decimal.Zero
	if in.Revenue.IsPositive() {
		grossMarginPct = grossMargin.Div(in.Revenue).Mul(hundred)
	}

	ebitda := grossMargin.Sub(in.OperatingExpenses)
	ebitdaPct := decimal.Zero
	if in.Revenue.IsPositive() {
		ebitdaPct = ebitda.Div(in.Revenue).Mul(hundred)
	}

	revenuePerFTE := decimal.Zero
	if in.Time.WorkerCount > 0 {
		revenuePerFTE = in.Revenue.Div(decimal.NewFromInt(int64(in.Time.WorkerCount)))
	}

	dso := decimal.Zero
	if in.Revenue.IsPositive() {
		dailyRevenue := in.Revenue.Div(decimal.NewFromInt(dsoPeriodDays))
		dso = in.OpenReceivables.Div(dailyRevenue)
	}

	operatingCashFlow := ebitda.Add(in.OpenPayables).Sub(in.OpenReceivables)

	return []*domain.KPIRecord{
		{Type: domain.KPIGrossMargin, Value: grossMargin, Unit: domain.UnitEUR, Metadata: map[string]string{
			"revenue":      in.Revenue.String(),
			"direct_costs": in.DirectCosts.String(),
		}},
		{Type: domain.KPIGrossMarginPct, Value: grossMarginPct, Unit: domain.UnitPct},
		{Type: domain.KPIEBITDA, Value: ebitda, Unit: domain.UnitEUR, Metadata: map[string]string{
			"operating_expenses": in.OperatingExpenses.String(),
		}},
		{Type: domain.KPIEBITDAPct, Value: ebitdaPct, Unit: domain.UnitPct},
		{Type: domain.KPIBillableUtilization, Value: in.Time.UtilizationPct(), Unit: domain.UnitPct, Metadata: map[string]string{
			"total_hours":    in.Time.TotalHours.String(),
			"billable_hours": in.Time.BillableHours.String(),
		}},
		{Type: domain.KPIAverageHourlyRate, Value: in.Time.AverageRate(), Unit: domain.UnitEUR},
		{Type: domain.KPIRevenuePerFTE, Value: revenuePerFTE, Unit: domain.UnitEUR, Metadata: map[string]string{
			"fte_count": fmt.Sprintf("%d", in.Time.WorkerCount),
		}},
		{Type: domain.KPIDaysSalesOutstanding, Value: dso.Round(0), Unit: domain.UnitDays, Metadata: map[string]string{
			"open_receivables": in.OpenReceivables.String(),
		}},
		{Type: domain.KPIOperatingCashFlow, Value: operatingCashFlow, Unit: domain.UnitEUR},
	}
}

// SaaSKPIInputs are the aggregates behind the subscription KPI family.
// Contracts carries all contracts of the organization, active or not; churn
// needs the terminated ones too.
type SaaSKPIInputs struct {
	Contracts           []*domain.CustomerContract
	InvoicedRevenue     decimal.Decimal
	SalesMarketingSpend decimal.Decimal
	PeriodStart         time.Time
}

// CalculateSaaSKPIs derives the subscription KPI family. MRR assumes annual
// contracts: one twelfth of the open contract value. LTV and Rule of 40 use
// the named heuristic constants until real cohort history exists.
func CalculateSaaSKPIs(in SaaSKPIInputs) []*domain.KPIRecord {
	hundred := decimal.NewFromInt(100)
	twelve := decimal.NewFromInt(12)

	var active []*domain.CustomerContract
	var terminated int
	for _, c := range in.Contracts {
		switch c.Status {
		case "Approved", "Active":
			active = append(active, c)
		case "Terminated":
			terminated++
		}
	}

	totalContractValue := decimal.Zero
	customers := map[string]struct{}{}
	newCustomers := 0
	for _, c := range active {
		value := c.RemainingAmount
		if value.IsZero() {
			value = c.ContractAmount
		}
		totalContractValue = totalContractValue.Add(value)

		key := c.CustomerID
		if key == "" {
			key = c.Customer
		}
		customers[key] = struct{}{}

		if c.EffectiveDate != nil && !c.EffectiveDate.Before(in.PeriodStart) {
			newCustomers++
		}
	}

	mrr := totalContractValue.Div(twelve)
	arr := mrr.Mul(twelve)

	arpu := decimal.Zero
	if len(customers) > 0 {
		arpu = mrr.Div(decimal.NewFromInt(int64(len(customers))))
	}

	churnRate := decimal.Zero
	if len(in.Contracts) > 0 {
		churnRate = decimal.NewFromInt(int64(terminated)).
			Div(decimal.NewFromInt(int64(len(in.Contracts)))).
			Mul(hundred)
	}
	grr := hundred.Sub(churnRate)
	// no expansion data yet, NRR tracks GRR
	nrr := grr

	cac := decimal.Zero
	if newCustomers > 0 {
		cac = in.SalesMarketingSpend.Div(decimal.NewFromInt(int64(newCustomers)))
	}

	ltv := arpu.Mul(decimal.NewFromInt(assumedContractMonths))

	ltvCacRatio := decimal.Zero
	if cac.IsPositive() {
		ltvCacRatio = ltv.Div(cac)
	}

	monthsToRecover := decimal.Zero
	if arpu.IsPositive() {
		monthsToRecover = cac.Div(arpu)
	}

	profitMargin := decimal.Zero
	if in.InvoicedRevenue.IsPositive() {
		profitMargin = in.InvoicedRevenue.Sub(in.SalesMarketingSpend).
			Div(in.InvoicedRevenue).Mul(hundred)
	}
	ruleOf40 := decimal.NewFromInt(placeholderGrowthRate).Add(profitMargin)

	return []*domain.KPIRecord{
		{Type: domain.KPIMRR, Value: mrr, Unit: domain.UnitEUR, Metadata: map[string]string{
			"active_contracts": fmt.Sprintf("%d", len(active)),
		}},
		{Type: domain.KPIARR, Value: arr, Unit: domain.UnitEUR},
		{Type: domain.KPIARPU, Value: arpu, Unit: domain.UnitEUR, Metadata: map[string]string{
			"customer_count": fmt.Sprintf("%d", len(customers)),
		}},
		{Type: domain.KPICustomerChurnRate, Value: churnRate, Unit: domain.UnitPct, Metadata: map[string]string{
			"terminated": fmt.Sprintf("%d", terminated),
			"total":      fmt.Sprintf("%d", len(in.Contracts)),
		}},
		{Type: domain.KPIGrossRetention, Value: grr, Unit: domain.UnitPct},
		{Type: domain.KPINetRetention, Value: nrr, Unit: domain.UnitPct},
		{Type: domain.KPICAC, Value: cac, Unit: domain.UnitEUR, Metadata: map[string]string{
			"sales_marketing_spend": in.SalesMarketingSpend.String(),
			"new_customers":         fmt.Sprintf("%d", newCustomers),
		}},
		{Type: domain.KPILTV, Value: ltv, Unit: domain.UnitEUR},
		{Type: domain.KPILTVCACRatio, Value: ltvCacRatio, Unit: domain.UnitRatio},
		{Type: domain.KPIMonthsToRecoverCAC, Value: monthsToRecover.Round(1), Unit: domain.UnitMonths},
		{Type: domain.KPIRuleOf40, Value: ruleOf40, Unit: domain.UnitScore, Metadata: map[string]string{
			"growth_rate":   decimal.NewFromInt(placeholderGrowthRate).String(),
			"profit_margin": profitMargin.String(),
		}},
	}
}
