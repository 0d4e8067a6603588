package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/groupledger/groupledger/internal/adapter/http/dto"
	"github.com/groupledger/groupledger/internal/domain"
	"github.com/groupledger/groupledger/internal/usecase"
)

// maxUploadBytes caps the multipart form held in memory per upload request.
const maxUploadBytes = 32 << 20

// UploadService defines the behavior needed by UploadHandler.
type UploadService interface {
	IngestFile(ctx context.Context, input usecase.IngestInput) (*domain.UploadBatch, error)
	GetUpload(ctx context.Context, id string) (*domain.UploadBatch, error)
	ListUploads(ctx context.Context, organizationID string, limit, offset int) ([]*domain.UploadBatch, error)
}

// ConsolidationInvalidator drops cached consolidations after fresh data
// lands for a period.
type ConsolidationInvalidator interface {
	InvalidatePeriod(ctx context.Context, period string) error
}

// UploadHandler handles CSV upload HTTP requests.
type UploadHandler struct {
	ingestUC      UploadService
	consolidation ConsolidationInvalidator
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(ingestUC UploadService, consolidation ConsolidationInvalidator) *UploadHandler {
	return &UploadHandler{ingestUC: ingestUC, consolidation: consolidation}
}

// Create accepts a multipart CSV upload. The "type" form field selects the
// mapping table; the file goes in the "file" field.
func (h *UploadHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", err.Error())
		return
	}

	uploadType := r.FormValue("type")
	if uploadType == "" {
		writeError(w, http.StatusBadRequest, "missing upload type", "")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file", err.Error())
		return
	}
	defer file.Close()

	batch, err := h.ingestUC.IngestFile(r.Context(), usecase.IngestInput{
		Type:           domain.UploadType(uploadType),
		FileName:       header.Filename,
		Reader:         file,
		FallbackPeriod: r.FormValue("period"),
	})
	if err != nil {
		status := mapDomainError(err)
		if batch != nil {
			// The batch record exists with its failure reason; surface both.
			writeJSON(w, status, dto.UploadFromDomain(batch))
			return
		}
		writeError(w, status, "failed to process upload", err.Error())
		return
	}

	if batch.Period != "" {
		// Ingested data changes the period's consolidation.
		_ = h.consolidation.InvalidatePeriod(r.Context(), batch.Period)
	}

	writeJSON(w, http.StatusCreated, dto.UploadFromDomain(batch))
}

// Get retrieves an upload batch by ID.
func (h *UploadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing upload ID", "")
		return
	}

	batch, err := h.ingestUC.GetUpload(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get upload", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UploadFromDomain(batch))
}

// List lists upload batches.
func (h *UploadHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)
	organizationID := r.URL.Query().Get("organization_id")

	batches, err := h.ingestUC.ListUploads(r.Context(), organizationID, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list uploads", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListUploadsResponse{
		Uploads: dto.UploadsFromDomain(batches),
		Total:   int64(len(batches)),
	})
}
