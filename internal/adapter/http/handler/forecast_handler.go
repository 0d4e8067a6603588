package handler

import (
	"context"
	"net/http"

	"github.com/groupledger/groupledger/internal/adapter/http/dto"
	"github.com/groupledger/groupledger/internal/domain"
	"github.com/groupledger/groupledger/internal/usecase"
)

// ForecastService defines the behavior needed by ForecastHandler.
type ForecastService interface {
	Forecast(ctx context.Context) ([]domain.CashflowProjection, error)
	Summary(ctx context.Context) (*usecase.CashflowSummary, error)
}

// ForecastHandler handles cashflow forecast HTTP requests.
type ForecastHandler struct {
	forecastUC ForecastService
}

// NewForecastHandler creates a new ForecastHandler.
func NewForecastHandler(forecastUC ForecastService) *ForecastHandler {
	return &ForecastHandler{forecastUC: forecastUC}
}

// Get returns the 12-month cashflow projection.
func (h *ForecastHandler) Get(w http.ResponseWriter, r *http.Request) {
	projections, err := h.forecastUC.Forecast(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build forecast", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"forecast": dto.ProjectionsFromDomain(projections),
	})
}

// Summary returns the treasury overview.
func (h *ForecastHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.forecastUC.Summary(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build cashflow summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CashflowSummaryFromUseCase(summary))
}
