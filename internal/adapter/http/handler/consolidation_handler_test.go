package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/groupledger/groupledger/internal/adapter/http/dto"
	"github.com/groupledger/groupledger/internal/domain"
)

type consolidationServiceStub struct {
	consolidateFn func(ctx context.Context, period string) (*domain.ConsolidatedFinancials, error)
	periodsFn     func(ctx context.Context) ([]string, error)
}

func (s *consolidationServiceStub) Consolidate(ctx context.Context, period string) (*domain.ConsolidatedFinancials, error) {
	return s.consolidateFn(ctx, period)
}

func (s *consolidationServiceStub) Periods(ctx context.Context) ([]string, error) {
	return s.periodsFn(ctx)
}

func TestConsolidationHandler_Get_ExplicitPeriod(t *testing.T) {
	handler := NewConsolidationHandler(&consolidationServiceStub{
		consolidateFn: func(ctx context.Context, period string) (*domain.ConsolidatedFinancials, error) {
			if period != "2024-03" {
				t.Fatalf("expected period 2024-03, got %s", period)
			}
			return &domain.ConsolidatedFinancials{
				Period:  period,
				Revenue: decimal.RequireFromString("10000"),
			}, nil
		},
		periodsFn: func(ctx context.Context) ([]string, error) {
			t.Fatal("Periods should not be called when a period is given")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/consolidation?period=2024-03", nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ConsolidationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Period != "2024-03" || resp.Revenue.String() != "10000" {
		t.Fatalf("expected consolidation to round-trip, got %+v", resp)
	}
}

func TestConsolidationHandler_Get_DefaultsToLatestPeriod(t *testing.T) {
	handler := NewConsolidationHandler(&consolidationServiceStub{
		periodsFn: func(ctx context.Context) ([]string, error) {
			return []string{"2024-04", "2024-03"}, nil
		},
		consolidateFn: func(ctx context.Context, period string) (*domain.ConsolidatedFinancials, error) {
			if period != "2024-04" {
				t.Fatalf("expected latest period 2024-04, got %s", period)
			}
			return &domain.ConsolidatedFinancials{Period: period}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/consolidation", nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestConsolidationHandler_Get_NoData(t *testing.T) {
	handler := NewConsolidationHandler(&consolidationServiceStub{
		periodsFn: func(ctx context.Context) ([]string, error) {
			return nil, nil
		},
		consolidateFn: func(ctx context.Context, period string) (*domain.ConsolidatedFinancials, error) {
			t.Fatal("Consolidate should not be called without periods")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/consolidation", nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestConsolidationHandler_Get_NoDataForPeriod(t *testing.T) {
	handler := NewConsolidationHandler(&consolidationServiceStub{
		consolidateFn: func(ctx context.Context, period string) (*domain.ConsolidatedFinancials, error) {
			return nil, domain.ErrNoFinancialData
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/consolidation?period=2030-01", nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestConsolidationHandler_Periods(t *testing.T) {
	handler := NewConsolidationHandler(&consolidationServiceStub{
		periodsFn: func(ctx context.Context) ([]string, error) {
			return []string{"2024-04", "2024-03"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/consolidation/periods", nil)
	rec := httptest.NewRecorder()

	handler.Periods(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.PeriodsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Periods) != 2 {
		t.Fatalf("expected 2 periods, got %d", len(resp.Periods))
	}
}
