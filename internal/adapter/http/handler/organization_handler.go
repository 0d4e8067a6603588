package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/groupledger/groupledger/internal/adapter/http/dto"
	"github.com/groupledger/groupledger/internal/domain"
	"github.com/groupledger/groupledger/internal/usecase"
)

// OrganizationService defines the behavior needed by OrganizationHandler.
type OrganizationService interface {
	CreateOrganization(ctx context.Context, input usecase.CreateOrganizationInput) (*domain.Organization, error)
	GetOrganization(ctx context.Context, id string) (*domain.Organization, error)
	ListOrganizations(ctx context.Context, activeOnly bool) ([]*domain.Organization, error)
	UpdateOrganization(ctx context.Context, input usecase.UpdateOrganizationInput) (*domain.Organization, error)
}

// OrganizationHandler handles organization-related HTTP requests.
type OrganizationHandler struct {
	orgUC OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(orgUC OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgUC: orgUC}
}

// Create creates a new organization.
func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	org, err := h.orgUC.CreateOrganization(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create organization", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.OrganizationFromDomain(org))
}

// Get retrieves an organization by ID.
func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing organization ID", "")
		return
	}

	org, err := h.orgUC.GetOrganization(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get organization", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.OrganizationFromDomain(org))
}

// List lists organizations.
func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	orgs, err := h.orgUC.ListOrganizations(r.Context(), activeOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list organizations", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListOrganizationsResponse{
		Organizations: dto.OrganizationsFromDomain(orgs),
		Total:         int64(len(orgs)),
	})
}

// Update updates an organization's structure fields.
func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing organization ID", "")
		return
	}

	var req dto.UpdateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	org, err := h.orgUC.UpdateOrganization(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update organization", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.OrganizationFromDomain(org))
}
