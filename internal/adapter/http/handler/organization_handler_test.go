package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/groupledger/groupledger/internal/adapter/http/dto"
	"github.com/groupledger/groupledger/internal/domain"
	"github.com/groupledger/groupledger/internal/usecase"
)

type organizationServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateOrganizationInput) (*domain.Organization, error)
	getFn    func(ctx context.Context, id string) (*domain.Organization, error)
	listFn   func(ctx context.Context, activeOnly bool) ([]*domain.Organization, error)
	updateFn func(ctx context.Context, input usecase.UpdateOrganizationInput) (*domain.Organization, error)
}

func (s *organizationServiceStub) CreateOrganization(ctx context.Context, input usecase.CreateOrganizationInput) (*domain.Organization, error) {
	return s.createFn(ctx, input)
}

func (s *organizationServiceStub) GetOrganization(ctx context.Context, id string) (*domain.Organization, error) {
	return s.getFn(ctx, id)
}

func (s *organizationServiceStub) ListOrganizations(ctx context.Context, activeOnly bool) ([]*domain.Organization, error) {
	return s.listFn(ctx, activeOnly)
}

func (s *organizationServiceStub) UpdateOrganization(ctx context.Context, input usecase.UpdateOrganizationInput) (*domain.Organization, error) {
	return s.updateFn(ctx, input)
}

func TestOrganizationHandler_Create_Success(t *testing.T) {
	org := &domain.Organization{
		ID:   "org-1",
		Name: "Alpine Consulting B.V.",
		Type: domain.OrgTypeServices,
	}

	var captured usecase.CreateOrganizationInput
	handler := NewOrganizationHandler(&organizationServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateOrganizationInput) (*domain.Organization, error) {
			captured = input
			return org, nil
		},
	})

	body, _ := json.Marshal(dto.CreateOrganizationRequest{
		Name: "Alpine Consulting B.V.",
		Type: "services",
	})

	req := httptest.NewRequest(http.MethodPost, "/organizations", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.Name != "Alpine Consulting B.V." || captured.Type != domain.OrgTypeServices {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.OrganizationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "org-1" {
		t.Fatalf("expected organization ID org-1, got %s", resp.ID)
	}
}

func TestOrganizationHandler_Create_InvalidJSON(t *testing.T) {
	handler := NewOrganizationHandler(&organizationServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateOrganizationInput) (*domain.Organization, error) {
			t.Fatal("CreateOrganization should not be called for invalid payload")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/organizations", bytes.NewBufferString("{invalid json"))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestOrganizationHandler_Create_Duplicate(t *testing.T) {
	handler := NewOrganizationHandler(&organizationServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateOrganizationInput) (*domain.Organization, error) {
			return nil, domain.ErrDuplicateOrganization
		},
	})

	body, _ := json.Marshal(dto.CreateOrganizationRequest{Name: "Alpine Consulting B.V."})
	req := httptest.NewRequest(http.MethodPost, "/organizations", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestOrganizationHandler_Get(t *testing.T) {
	org := &domain.Organization{ID: "org-1", Name: "Alpine Consulting B.V."}
	handler := NewOrganizationHandler(&organizationServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Organization, error) {
			if id != "org-1" {
				t.Fatalf("expected id org-1, got %s", id)
			}
			return org, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/organizations/org-1", nil)
	req = setChiURLParam(req, "id", "org-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOrganizationHandler_Get_NotFound(t *testing.T) {
	handler := NewOrganizationHandler(&organizationServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Organization, error) {
			return nil, domain.ErrOrganizationNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/organizations/org-1", nil)
	req = setChiURLParam(req, "id", "org-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestOrganizationHandler_List(t *testing.T) {
	handler := NewOrganizationHandler(&organizationServiceStub{
		listFn: func(ctx context.Context, activeOnly bool) ([]*domain.Organization, error) {
			if !activeOnly {
				t.Fatalf("expected activeOnly filter from query")
			}
			return []*domain.Organization{{ID: "org-1"}, {ID: "org-2"}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/organizations?active=true", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListOrganizationsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Organizations) != 2 {
		t.Fatalf("expected 2 organizations, got %d", len(resp.Organizations))
	}
}

func TestOrganizationHandler_List_ServiceError(t *testing.T) {
	handler := NewOrganizationHandler(&organizationServiceStub{
		listFn: func(ctx context.Context, activeOnly bool) ([]*domain.Organization, error) {
			return nil, errors.New("db error")
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/organizations", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestOrganizationHandler_Update(t *testing.T) {
	var captured usecase.UpdateOrganizationInput
	handler := NewOrganizationHandler(&organizationServiceStub{
		updateFn: func(ctx context.Context, input usecase.UpdateOrganizationInput) (*domain.Organization, error) {
			captured = input
			return &domain.Organization{ID: input.ID}, nil
		},
	})

	body, _ := json.Marshal(dto.UpdateOrganizationRequest{
		ParentID: "org-parent",
		Active:   true,
	})
	req := httptest.NewRequest(http.MethodPut, "/organizations/org-1", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "org-1")
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.ID != "org-1" || captured.ParentID != "org-parent" || !captured.Active {
		t.Fatalf("expected input to match request, got %+v", captured)
	}
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}
