package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/groupledger/groupledger/internal/adapter/http/dto"
	"github.com/groupledger/groupledger/internal/domain"
	"github.com/groupledger/groupledger/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	GenerateReport(ctx context.Context, input usecase.GenerateReportInput) (*domain.Report, []byte, error)
	GetReport(ctx context.Context, id string) (*domain.Report, error)
	ListReports(ctx context.Context, organizationID string, limit, offset int) ([]*domain.Report, error)
	MarkSent(ctx context.Context, id string) error
}

// ReportHandler handles report HTTP requests.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Create generates a report. With ?download=true the CSV streams back
// directly; otherwise the report record is returned.
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.GenerateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	report, data, err := h.reportUC.GenerateReport(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to generate report", err.Error())
		return
	}

	if r.URL.Query().Get("download") == "true" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName))
		w.WriteHeader(http.StatusCreated)
		w.Write(data)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ReportFromDomain(report))
}

// Get retrieves a report record by ID.
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing report ID", "")
		return
	}

	report, err := h.reportUC.GetReport(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReportFromDomain(report))
}

// List lists report records.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)
	organizationID := r.URL.Query().Get("organization_id")

	reports, err := h.reportUC.ListReports(r.Context(), organizationID, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list reports", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListReportsResponse{
		Reports: dto.ReportsFromDomain(reports),
		Total:   int64(len(reports)),
	})
}

// MarkSent records that a report was distributed.
func (h *ReportHandler) MarkSent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing report ID", "")
		return
	}

	if err := h.reportUC.MarkSent(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to mark report sent", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.ReportSent)})
}
