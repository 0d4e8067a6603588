package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupledger/groupledger/internal/domain"
	"github.com/groupledger/groupledger/internal/usecase"
	"github.com/groupledger/groupledger/internal/usecase/mocks"
)

func TestBuildForecast(t *testing.T) {
	start := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	in := usecase.ForecastInputs{
		CashPosition:      dec("50000"),
		OpenReceivables:   dec("20000"),
		OpenPayables:      dec("10000"),
		AvgMonthlyInflow:  dec("10000"),
		AvgMonthlyOutflow: dec("8000"),
		ScheduledByMonth: map[string]decimal.Decimal{
			"2024-04": dec("5000"),
			"2024-05": dec("3000"),
			"2024-07": dec("2000"),
		},
	}

	forecast := usecase.BuildForecast(in, start)
	require.Len(t, forecast, 12)

	t.Run("months and chaining", func(t *testing.T) {
		assert.Equal(t, "2024-04", forecast[0].Month)
		assert.Equal(t, "2025-03", forecast[11].Month)
		assert.Equal(t, "50000", forecast[0].OpeningBalance.String())
		for i, p := range forecast {
			assert.True(t, p.ClosingBalance.Equal(p.OpeningBalance.Add(p.NetCashflow)), "month %s", p.Month)
			if i > 0 {
				assert.True(t, p.OpeningBalance.Equal(forecast[i-1].ClosingBalance), "month %s", p.Month)
			}
		}
	})

	t.Run("near term leans on scheduled and open positions", func(t *testing.T) {
		first := forecast[0]
		assert.Equal(t, domain.ConfidenceHigh, first.Confidence)
		// 5000 scheduled + 10000*1.10 + 20000*0.30/2
		assert.Equal(t, "19000", first.TotalInflow.String())
		// 8000 + 10000*0.40/2
		assert.Equal(t, "10000", first.TotalOutflow.String())
		assert.Equal(t, "5000", first.ScheduledBilling.String())

		second := forecast[1]
		assert.Equal(t, domain.ConfidenceHigh, second.Confidence)
		// 3000 scheduled + 10000*1.10 + 20000*0.30/2
		assert.Equal(t, "17000", second.TotalInflow.String())
	})

	t.Run("mid term discounts scheduled billing", func(t *testing.T) {
		third := forecast[2] // 2024-06, nothing scheduled
		assert.Equal(t, domain.ConfidenceMedium, third.Confidence)
		assert.Equal(t, "10500", third.TotalInflow.String())
		assert.Equal(t, "8000", third.TotalOutflow.String())

		fourth := forecast[3] // 2024-07, 2000 scheduled at 80%
		assert.Equal(t, "12100", fourth.TotalInflow.String())
	})

	t.Run("far term falls back to averages", func(t *testing.T) {
		for _, p := range forecast[6:] {
			assert.Equal(t, domain.ConfidenceLow, p.Confidence, "month %s", p.Month)
			assert.Equal(t, "10000", p.TotalInflow.String())
			assert.Equal(t, "8000", p.TotalOutflow.String())
		}
	})
}

func TestBuildForecast_EmptyInputs(t *testing.T) {
	forecast := usecase.BuildForecast(usecase.ForecastInputs{}, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.Len(t, forecast, 12)
	for _, p := range forecast {
		assert.True(t, p.TotalInflow.IsZero())
		assert.True(t, p.ClosingBalance.IsZero())
	}
}

func TestForecastUseCase_Summary(t *testing.T) {
	ctx := context.Background()

	orgRepo := mocks.NewMockOrganizationRepository()
	require.NoError(t, orgRepo.Create(ctx, &domain.Organization{
		ID: "alpine", Name: "Alpine Consulting B.V.", NameKey: usecase.NameKey("Alpine Consulting B.V."), Active: true,
	}))
	orgs := usecase.NewOrganizationUseCase(orgRepo, mocks.NewMockIDGenerator())

	treasuryRepo := mocks.NewMockTreasuryRepository()
	treasuryRepo.CashPositionFunc = func(ctx context.Context, organizationIDs []string, currency string) (decimal.Decimal, error) {
		assert.Equal(t, "EUR", currency)
		return dec("50000"), nil
	}
	invoiceRepo := mocks.NewMockInvoiceRepository()
	invoiceRepo.OpenReceivablesFunc = func(ctx context.Context, organizationIDs []string) (decimal.Decimal, error) {
		return dec("20000"), nil
	}
	invoiceRepo.OpenPayablesFunc = func(ctx context.Context, organizationIDs []string) (decimal.Decimal, error) {
		return dec("10000"), nil
	}

	uc := usecase.NewForecastUseCase(treasuryRepo, invoiceRepo, orgs, zerolog.Nop())

	summary, err := uc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "60000", summary.NetPosition.String())
	assert.Len(t, summary.Forecast, 12)
	assert.Len(t, summary.NearTerm, 3)
}
