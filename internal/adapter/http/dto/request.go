package dto

import (
	"github.com/shopspring/decimal"

	"github.com/groupledger/groupledger/internal/domain"
	"github.com/groupledger/groupledger/internal/usecase"
)

// CreateOrganizationRequest represents a request to create an organization.
type CreateOrganizationRequest struct {
	Name                string          `json:"name"`
	ParentID            string          `json:"parent_id,omitempty"`
	Type                string          `json:"type,omitempty"`
	ReportingType       string          `json:"reporting_type,omitempty"`
	OwnershipPercentage decimal.Decimal `json:"ownership_percentage,omitempty"`
	Description         string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateOrganizationRequest) ToUseCaseInput() usecase.CreateOrganizationInput {
	return usecase.CreateOrganizationInput{
		Name:                r.Name,
		ParentID:            r.ParentID,
		Type:                domain.OrganizationType(r.Type),
		ReportingType:       domain.ReportingType(r.ReportingType),
		OwnershipPercentage: r.OwnershipPercentage,
		Description:         r.Description,
	}
}

// UpdateOrganizationRequest represents a request to update an organization.
type UpdateOrganizationRequest struct {
	ParentID            string          `json:"parent_id,omitempty"`
	Type                string          `json:"type,omitempty"`
	ReportingType       string          `json:"reporting_type,omitempty"`
	OwnershipPercentage decimal.Decimal `json:"ownership_percentage,omitempty"`
	Description         string          `json:"description,omitempty"`
	Active              bool            `json:"active"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateOrganizationRequest) ToUseCaseInput(id string) usecase.UpdateOrganizationInput {
	return usecase.UpdateOrganizationInput{
		ID:                  id,
		ParentID:            r.ParentID,
		Type:                domain.OrganizationType(r.Type),
		ReportingType:       domain.ReportingType(r.ReportingType),
		OwnershipPercentage: r.OwnershipPercentage,
		Description:         r.Description,
		Active:              r.Active,
	}
}

// GenerateReportRequest represents a request to generate a report.
type GenerateReportRequest struct {
	Type           string `json:"type"`
	Period         string `json:"period,omitempty"`
	OrganizationID string `json:"organization_id,omitempty"`
	GeneratedBy    string `json:"generated_by,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *GenerateReportRequest) ToUseCaseInput() usecase.GenerateReportInput {
	return usecase.GenerateReportInput{
		Type:           domain.ReportType(r.Type),
		Period:         r.Period,
		OrganizationID: r.OrganizationID,
		GeneratedBy:    r.GeneratedBy,
	}
}
