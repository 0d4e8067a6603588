package handler

import (
	"context"
	"net/http"

	"github.com/groupledger/groupledger/internal/adapter/http/dto"
	"github.com/groupledger/groupledger/internal/domain"
)

// ConsolidationService defines the behavior needed by ConsolidationHandler.
type ConsolidationService interface {
	Consolidate(ctx context.Context, period string) (*domain.ConsolidatedFinancials, error)
	Periods(ctx context.Context) ([]string, error)
}

// ConsolidationHandler handles consolidation HTTP requests.
type ConsolidationHandler struct {
	consolidationUC ConsolidationService
}

// NewConsolidationHandler creates a new ConsolidationHandler.
func NewConsolidationHandler(consolidationUC ConsolidationService) *ConsolidationHandler {
	return &ConsolidationHandler{consolidationUC: consolidationUC}
}

// Get computes the group consolidation for a period. Without an explicit
// period the latest period with data is used.
func (h *ConsolidationHandler) Get(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		periods, err := h.consolidationUC.Periods(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list periods", err.Error())
			return
		}
		if len(periods) == 0 {
			writeError(w, http.StatusNotFound, "no financial data", domain.ErrNoFinancialData.Error())
			return
		}
		period = periods[0]
	}

	result, err := h.consolidationUC.Consolidate(r.Context(), period)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to consolidate", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsolidationFromDomain(result))
}

// Periods lists the reporting periods with journal data.
func (h *ConsolidationHandler) Periods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.consolidationUC.Periods(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list periods", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PeriodsResponse{Periods: periods})
}
