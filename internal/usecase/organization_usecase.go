package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/groupledger/groupledger/internal/domain"
)

// legalSuffix strips trailing legal-form suffixes for matching. The canonical
// stored name keeps the suffix; only the comparison key drops it.
var legalSuffix = regexp.MustCompile(`\s+(B\.?V\.?|AB|Ltd\.?|Inc\.?|GmbH|N\.?V\.?)$`)

// OrganizationUseCase handles legal entity management and resolution of raw
// CSV entity names to organizations.
type OrganizationUseCase struct {
	orgRepo OrganizationRepository
	idGen   IDGenerator

	// aliases maps normalized spelling variants to canonical names.
	aliases map[string]string

	mu   sync.RWMutex
	memo map[string]string // name key -> organization ID
}

// NewOrganizationUseCase creates a new OrganizationUseCase.
func NewOrganizationUseCase(orgRepo OrganizationRepository, idGen IDGenerator) *OrganizationUseCase {
	return &OrganizationUseCase{
		orgRepo: orgRepo,
		idGen:   idGen,
		aliases: map[string]string{},
		memo:    map[string]string{},
	}
}

// RegisterAlias maps a raw spelling to the canonical entity name.
func (uc *OrganizationUseCase) RegisterAlias(raw, canonical string) {
	uc.aliases[NameKey(raw)] = canonical
}

// NameKey builds the comparison key for an entity name: trimmed, legal
// suffix removed, inner whitespace collapsed, lowercased.
func NameKey(name string) string {
	s := strings.TrimSpace(name)
	s = legalSuffix.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}

// inferType guesses the organization type from the entity name. Names
// containing "holding" are treated as holding companies; everything else
// defaults to a services entity and can be corrected later.
func inferType(name string) domain.OrganizationType {
	if strings.Contains(strings.ToLower(name), "holding") {
		return domain.OrgTypeHolding
	}
	return domain.OrgTypeServices
}

// CreateOrganizationInput represents input for creating an organization.
type CreateOrganizationInput struct {
	Name                string
	ParentID            string
	Type                domain.OrganizationType
	ReportingType       domain.ReportingType
	OwnershipPercentage decimal.Decimal
	Description         string
}

// CreateOrganization creates a new organization.
func (uc *OrganizationUseCase) CreateOrganization(ctx context.Context, input CreateOrganizationInput) (*domain.Organization, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrEmptyEntityName
	}
	if input.Type == "" {
		input.Type = inferType(name)
	}
	if input.ReportingType == "" {
		input.ReportingType = domain.ReportingConsolidated
	}
	if input.OwnershipPercentage.IsZero() {
		input.OwnershipPercentage = decimal.NewFromInt(100)
	}

	now := time.Now().UTC()
	org := &domain.Organization{
		ID:                  uc.idGen.Generate(),
		Name:                name,
		NameKey:             NameKey(name),
		ParentID:            input.ParentID,
		Type:                input.Type,
		ReportingType:       input.ReportingType,
		OwnershipPercentage: input.OwnershipPercentage,
		Description:         input.Description,
		Active:              true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	uc.memo[org.NameKey] = org.ID
	uc.mu.Unlock()
	return org, nil
}

// GetOrganization retrieves an organization by ID.
func (uc *OrganizationUseCase) GetOrganization(ctx context.Context, id string) (*domain.Organization, error) {
	return uc.orgRepo.GetByID(ctx, id)
}

// ListOrganizations lists organizations.
func (uc *OrganizationUseCase) ListOrganizations(ctx context.Context, activeOnly bool) ([]*domain.Organization, error) {
	return uc.orgRepo.List(ctx, activeOnly)
}

// UpdateOrganizationInput represents input for updating an organization.
type UpdateOrganizationInput struct {
	ID                  string
	ParentID            string
	Type                domain.OrganizationType
	ReportingType       domain.ReportingType
	OwnershipPercentage decimal.Decimal
	Description         string
	Active              bool
}

// UpdateOrganization updates an organization's structure fields. The name is
// immutable: it anchors entity resolution.
func (uc *OrganizationUseCase) UpdateOrganization(ctx context.Context, input UpdateOrganizationInput) (*domain.Organization, error) {
	org, err := uc.orgRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	org.ParentID = input.ParentID
	if input.Type != "" {
		org.Type = input.Type
	}
	if input.ReportingType != "" {
		org.ReportingType = input.ReportingType
	}
	if !input.OwnershipPercentage.IsZero() {
		org.OwnershipPercentage = input.OwnershipPercentage
	}
	org.Description = input.Description
	org.Active = input.Active
	org.UpdatedAt = time.Now().UTC()

	if err := uc.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

// ResolveEntity maps a raw CSV entity name to an organization ID, creating
// the organization on first sight. Spelling variants that share a name key
// ("Alpine Consulting B.V.", "alpine consulting bv") resolve to the same
// organization. Resolution is memoized per process; the unique index on the
// name key makes concurrent first-sight creates converge: on a duplicate
// error the winner's row is looked up.
func (uc *OrganizationUseCase) ResolveEntity(ctx context.Context, rawName string) (string, error) {
	if canonical, ok := uc.aliases[NameKey(rawName)]; ok {
		rawName = canonical
	}
	key := NameKey(rawName)
	if key == "" {
		return "", domain.ErrEmptyEntityName
	}

	uc.mu.RLock()
	id, ok := uc.memo[key]
	uc.mu.RUnlock()
	if ok {
		return id, nil
	}

	org, err := uc.orgRepo.GetByNameKey(ctx, key)
	switch {
	case err == nil:
		// known entity
	case errors.Is(err, domain.ErrOrganizationNotFound):
		org, err = uc.CreateOrganization(ctx, CreateOrganizationInput{Name: rawName})
		if errors.Is(err, domain.ErrDuplicateOrganization) {
			org, err = uc.orgRepo.GetByNameKey(ctx, key)
		}
		if err != nil {
			return "", err
		}
	default:
		return "", err
	}

	uc.mu.Lock()
	uc.memo[key] = org.ID
	uc.mu.Unlock()
	return org.ID, nil
}

// ConsolidationScope returns the IDs of the active organizations included
// in group-level reporting.
func (uc *OrganizationUseCase) ConsolidationScope(ctx context.Context) ([]string, error) {
	orgs, err := uc.orgRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(orgs))
	for _, o := range orgs {
		ids = append(ids, o.ID)
	}
	return ids, nil
}
