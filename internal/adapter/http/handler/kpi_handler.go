package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/groupledger/groupledger/internal/adapter/http/dto"
	"github.com/groupledger/groupledger/internal/domain"
)

// KPIService defines the behavior needed by KPIHandler.
type KPIService interface {
	Calculate(ctx context.Context, organizationID, period string) ([]*domain.KPIRecord, error)
	List(ctx context.Context, organizationID, period string) ([]*domain.KPIRecord, error)
}

// KPIHandler handles KPI HTTP requests.
type KPIHandler struct {
	kpiUC KPIService
}

// NewKPIHandler creates a new KPIHandler.
func NewKPIHandler(kpiUC KPIService) *KPIHandler {
	return &KPIHandler{kpiUC: kpiUC}
}

// Calculate recomputes an organization's KPIs for a period.
func (h *KPIHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	period := r.URL.Query().Get("period")
	if id == "" || period == "" {
		writeError(w, http.StatusBadRequest, "missing organization ID or period", "")
		return
	}

	records, err := h.kpiUC.Calculate(r.Context(), id, period)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to calculate kpis", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListKPIsResponse{
		OrganizationID: id,
		Period:         period,
		KPIs:           dto.KPIsFromDomain(records),
	})
}

// List returns the stored KPIs for an organization and period.
func (h *KPIHandler) List(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	period := r.URL.Query().Get("period")
	if id == "" || period == "" {
		writeError(w, http.StatusBadRequest, "missing organization ID or period", "")
		return
	}

	records, err := h.kpiUC.List(r.Context(), id, period)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list kpis", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListKPIsResponse{
		OrganizationID: id,
		Period:         period,
		KPIs:           dto.KPIsFromDomain(records),
	})
}
