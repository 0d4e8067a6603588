package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrganizationType classifies a legal entity within the group.
type OrganizationType string

const (
	OrgTypeHolding  OrganizationType = "holding"
	OrgTypeServices OrganizationType = "services"
	OrgTypeSaaS     OrganizationType = "saas"
)

// ReportingType distinguishes entities that report standalone from those
// that are consolidated into a parent.
type ReportingType string

const (
	ReportingStandalone   ReportingType = "standalone"
	ReportingConsolidated ReportingType = "consolidated"
)

// maxParentDepth bounds parent-chain walks so a corrupted hierarchy
// (cycle or dangling reference) cannot loop forever.
const maxParentDepth = 16

// Organization is a legal entity in the ownership tree. ParentID is empty for
// the group root. NameKey is the normalized form of Name used for entity
// resolution and carries a unique index. OwnershipPercentage is the stake
// held by the immediate parent only; it is not pre-multiplied through the
// chain.
type Organization struct {
	ID                  string
	Name                string
	NameKey             string
	ParentID            string
	Type                OrganizationType
	ReportingType       ReportingType
	OwnershipPercentage decimal.Decimal
	Description         string
	Active              bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsWhollyOwned reports whether the immediate parent holds 100% of the entity.
func (o *Organization) IsWhollyOwned() bool {
	return o.OwnershipPercentage.GreaterThanOrEqual(decimal.NewFromInt(100))
}

// MinorityShare returns the fraction of the entity not held by the immediate
// parent, as a percentage in [0, 100].
func (o *Organization) MinorityShare() decimal.Decimal {
	share := decimal.NewFromInt(100).Sub(o.OwnershipPercentage)
	if share.IsNegative() {
		return decimal.Zero
	}
	return share
}

// ParentChain returns the IDs from the organization up to its root, the
// organization itself first. The walk stops at maxParentDepth or at the
// first parent that cannot be resolved.
func ParentChain(org *Organization, byID map[string]*Organization) []string {
	chain := []string{org.ID}
	current := org
	for depth := 0; current.ParentID != "" && depth < maxParentDepth; depth++ {
		chain = append(chain, current.ParentID)
		parent, ok := byID[current.ParentID]
		if !ok {
			break
		}
		current = parent
	}
	return chain
}
