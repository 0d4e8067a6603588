package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupledger/groupledger/internal/domain"
	"github.com/groupledger/groupledger/internal/usecase"
	"github.com/groupledger/groupledger/internal/usecase/mocks"
)

func kpiByType(records []*domain.KPIRecord) map[domain.KPIType]*domain.KPIRecord {
	out := make(map[domain.KPIType]*domain.KPIRecord, len(records))
	for _, r := range records {
		out[r.Type] = r
	}
	return out
}

func TestCalculateServicesKPIs(t *testing.T) {
	t.Run("full inputs", func(t *testing.T) {
		records := usecase.CalculateServicesKPIs(usecase.ServicesKPIInputs{
			Revenue:           dec("10000"),
			DirectCosts:       dec("4000"),
			OperatingExpenses: dec("2000"),
			Time: domain.TimeSummary{
				TotalHours:    dec("1000"),
				BillableHours: dec("750"),
				AmountBilled:  dec("90000"),
				WorkerCount:   8,
			},
			OpenReceivables: dec("3000"),
			OpenPayables:    dec("1000"),
		})
		byType := kpiByType(records)
		require.Len(t, records, 9)

		assert.Equal(t, "6000", byType[domain.KPIGrossMargin].Value.String())
		assert.Equal(t, "60", byType[domain.KPIGrossMarginPct].Value.String())
		assert.Equal(t, "4000", byType[domain.KPIEBITDA].Value.String())
		assert.Equal(t, "40", byType[domain.KPIEBITDAPct].Value.String())
		assert.Equal(t, "75", byType[domain.KPIBillableUtilization].Value.String())
		assert.Equal(t, "120", byType[domain.KPIAverageHourlyRate].Value.String())
		assert.Equal(t, "1250", byType[domain.KPIRevenuePerFTE].Value.String())
		// 3000 due / (10000/90 per day) = 27 days
		assert.Equal(t, "27", byType[domain.KPIDaysSalesOutstanding].Value.String())
		// 4000 + 1000 - 3000
		assert.Equal(t, "2000", byType[domain.KPIOperatingCashFlow].Value.String())

		assert.Equal(t, domain.UnitEUR, byType[domain.KPIGrossMargin].Unit)
		assert.Equal(t, domain.UnitPct, byType[domain.KPIEBITDAPct].Unit)
		assert.Equal(t, domain.UnitDays, byType[domain.KPIDaysSalesOutstanding].Unit)
	})

	t.Run("empty inputs yield zeros not errors", func(t *testing.T) {
		records := usecase.CalculateServicesKPIs(usecase.ServicesKPIInputs{})
		require.Len(t, records, 9)
		for _, r := range records {
			assert.True(t, r.Value.IsZero(), "%s should be zero", r.Type)
		}
	})
}

func TestCalculateSaaSKPIs(t *testing.T) {
	periodStart := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	newDate := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	oldDate := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)

	t.Run("subscription metrics", func(t *testing.T) {
		contracts := []*domain.CustomerContract{
			{Status: "Active", CustomerID: "C1", ContractAmount: dec("60000"), EffectiveDate: &oldDate},
			{Status: "Approved", CustomerID: "C2", RemainingAmount: dec("60000"), EffectiveDate: &newDate},
			{Status: "Terminated", CustomerID: "C3", ContractAmount: dec("30000")},
			{Status: "Draft", CustomerID: "C4", ContractAmount: dec("10000")},
		}

		records := usecase.CalculateSaaSKPIs(usecase.SaaSKPIInputs{
			Contracts:           contracts,
			InvoicedRevenue:     dec("40000"),
			SalesMarketingSpend: dec("10000"),
			PeriodStart:         periodStart,
		})
		byType := kpiByType(records)
		require.Len(t, records, 11)

		// 120000 open contract value, annualized
		assert.Equal(t, "10000", byType[domain.KPIMRR].Value.String())
		assert.Equal(t, "120000", byType[domain.KPIARR].Value.String())
		assert.Equal(t, "5000", byType[domain.KPIARPU].Value.String())
		assert.Equal(t, "25", byType[domain.KPICustomerChurnRate].Value.String())
		assert.Equal(t, "75", byType[domain.KPIGrossRetention].Value.String())
		assert.Equal(t, "75", byType[domain.KPINetRetention].Value.String())
		// one contract effective in-period
		assert.Equal(t, "10000", byType[domain.KPICAC].Value.String())
		assert.Equal(t, "120000", byType[domain.KPILTV].Value.String())
		assert.Equal(t, "12", byType[domain.KPILTVCACRatio].Value.String())
		assert.Equal(t, "2", byType[domain.KPIMonthsToRecoverCAC].Value.String())
		// 30 growth placeholder + 75 profit margin
		assert.Equal(t, "105", byType[domain.KPIRuleOf40].Value.String())
	})

	t.Run("no contracts yield zeros", func(t *testing.T) {
		records := usecase.CalculateSaaSKPIs(usecase.SaaSKPIInputs{PeriodStart: periodStart})
		byType := kpiByType(records)
		assert.True(t, byType[domain.KPIMRR].Value.IsZero())
		assert.True(t, byType[domain.KPICustomerChurnRate].Value.IsZero())
		// retention floors at 100 when nothing churned
		assert.Equal(t, "100", byType[domain.KPIGrossRetention].Value.String())
	})
}

func TestKPIUseCase_Calculate(t *testing.T) {
	ctx := context.Background()

	orgRepo := mocks.NewMockOrganizationRepository()
	require.NoError(t, orgRepo.Create(ctx, &domain.Organization{
		ID: "alpine", Name: "Alpine Consulting B.V.", NameKey: usecase.NameKey("Alpine Consulting B.V."),
		Type: domain.OrgTypeServices, Active: true,
	}))

	journalRepo := mocks.NewMockJournalRepository()
	journalRepo.FinancialsForOrganizationFunc = func(ctx context.Context, organizationID, period string) (*domain.EntityFinancials, error) {
		return &domain.EntityFinancials{Revenue: dec("10000"), DirectCosts: dec("4000")}, nil
	}

	kpiRepo := mocks.NewMockKPIRepository()
	uc := usecase.NewKPIUseCase(
		orgRepo, journalRepo, mocks.NewMockInvoiceRepository(), mocks.NewMockContractRepository(),
		mocks.NewMockTimeEntryRepository(), kpiRepo, mocks.NewMockIDGenerator(), testMetrics, zerolog.Nop(),
	)

	records, err := uc.Calculate(ctx, "alpine", "2024-03")
	require.NoError(t, err)
	require.Len(t, records, 9)
	for _, r := range records {
		assert.Equal(t, "alpine", r.OrganizationID)
		assert.Equal(t, "2024-03", r.Period)
		assert.NotEmpty(t, r.ID)
		assert.False(t, r.CalculatedAt.IsZero())
	}

	stored, err := uc.List(ctx, "alpine", "2024-03")
	require.NoError(t, err)
	assert.Len(t, stored, 9)

	// recalculation overwrites, never duplicates
	_, err = uc.Calculate(ctx, "alpine", "2024-03")
	require.NoError(t, err)
	stored, err = uc.List(ctx, "alpine", "2024-03")
	require.NoError(t, err)
	assert.Len(t, stored, 9)

	_, err = uc.Calculate(ctx, "missing", "2024-03")
	assert.ErrorIs(t, err, domain.ErrOrganizationNotFound)
}

func TestKPIUseCase_Calculate_SaaS(t *testing.T) {
	ctx := context.Background()

	orgRepo := mocks.NewMockOrganizationRepository()
	require.NoError(t, orgRepo.Create(ctx, &domain.Organization{
		ID: "symson", Name: "Symson B.V.", NameKey: usecase.NameKey("Symson B.V."),
		Type: domain.OrgTypeSaaS, Active: true,
	}))

	contractRepo := mocks.NewMockContractRepository()
	contractRepo.Contracts = []*domain.CustomerContract{
		{OrganizationID: "symson", Status: "Active", CustomerID: "C1", ContractAmount: dec("120000")},
	}

	uc := usecase.NewKPIUseCase(
		orgRepo, mocks.NewMockJournalRepository(), mocks.NewMockInvoiceRepository(), contractRepo,
		mocks.NewMockTimeEntryRepository(), mocks.NewMockKPIRepository(), mocks.NewMockIDGenerator(), testMetrics, zerolog.Nop(),
	)

	records, err := uc.Calculate(ctx, "symson", "2024-03")
	require.NoError(t, err)
	byType := kpiByType(records)
	require.Len(t, records, 11)
	assert.Equal(t, "10000", byType[domain.KPIMRR].Value.String())

	_, err = uc.Calculate(ctx, "symson", "not-a-period")
	assert.Error(t, err)
}
