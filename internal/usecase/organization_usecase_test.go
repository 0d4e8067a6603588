package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupledger/groupledger/internal/domain"
	"github.com/groupledger/groupledger/internal/usecase"
	"github.com/groupledger/groupledger/internal/usecase/mocks"
)

func newOrgUseCase() (*usecase.OrganizationUseCase, *mocks.MockOrganizationRepository) {
	repo := mocks.NewMockOrganizationRepository()
	return usecase.NewOrganizationUseCase(repo, mocks.NewMockIDGenerator()), repo
}

func TestOrganizationUseCase_ResolveEntity(t *testing.T) {
	ctx := context.Background()

	t.Run("creates on first sight and memoizes", func(t *testing.T) {
		uc, _ := newOrgUseCase()

		first, err := uc.ResolveEntity(ctx, "Alpine Consulting B.V.")
		require.NoError(t, err)
		second, err := uc.ResolveEntity(ctx, "Alpine Consulting B.V.")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("spelling variants resolve to one organization", func(t *testing.T) {
		uc, repo := newOrgUseCase()

		a, err := uc.ResolveEntity(ctx, "Alpine Consulting B.V.")
		require.NoError(t, err)
		b, err := uc.ResolveEntity(ctx, "  alpine   consulting ")
		require.NoError(t, err)
		c, err := uc.ResolveEntity(ctx, "Alpine Consulting BV")
		require.NoError(t, err)
		assert.Equal(t, a, b)
		assert.Equal(t, a, c)

		orgs, err := repo.List(ctx, false)
		require.NoError(t, err)
		assert.Len(t, orgs, 1)
		// first sighting wins the canonical name
		assert.Equal(t, "Alpine Consulting B.V.", orgs[0].Name)
	})

	t.Run("registered alias redirects", func(t *testing.T) {
		uc, _ := newOrgUseCase()
		uc.RegisterAlias("ACME NL", "Acme Netherlands B.V.")

		a, err := uc.ResolveEntity(ctx, "Acme Netherlands B.V.")
		require.NoError(t, err)
		b, err := uc.ResolveEntity(ctx, "ACME NL")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		uc, _ := newOrgUseCase()
		_, err := uc.ResolveEntity(ctx, "   ")
		assert.ErrorIs(t, err, domain.ErrEmptyEntityName)
	})

	t.Run("duplicate create falls back to lookup", func(t *testing.T) {
		uc, repo := newOrgUseCase()

		winner := &domain.Organization{ID: "org-1", Name: "Nordic Data AB", NameKey: usecase.NameKey("Nordic Data AB"), Active: true}
		lookups := 0
		repo.GetByNameKeyFunc = func(ctx context.Context, key string) (*domain.Organization, error) {
			lookups++
			if lookups == 1 {
				return nil, domain.ErrOrganizationNotFound
			}
			return winner, nil
		}
		repo.CreateFunc = func(ctx context.Context, org *domain.Organization) error {
			return domain.ErrDuplicateOrganization
		}

		id, err := uc.ResolveEntity(ctx, "Nordic Data AB")
		require.NoError(t, err)
		assert.Equal(t, "org-1", id)
	})
}

func TestOrganizationUseCase_CreateOrganization(t *testing.T) {
	ctx := context.Background()

	t.Run("holding name infers holding type", func(t *testing.T) {
		uc, _ := newOrgUseCase()
		org, err := uc.CreateOrganization(ctx, usecase.CreateOrganizationInput{Name: "Group Holding B.V."})
		require.NoError(t, err)
		assert.Equal(t, domain.OrgTypeHolding, org.Type)
		assert.True(t, org.IsWhollyOwned())
	})

	t.Run("explicit type wins over inference", func(t *testing.T) {
		uc, _ := newOrgUseCase()
		org, err := uc.CreateOrganization(ctx, usecase.CreateOrganizationInput{
			Name: "Symson Holding",
			Type: domain.OrgTypeSaaS,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.OrgTypeSaaS, org.Type)
	})

	t.Run("minority share from ownership", func(t *testing.T) {
		uc, _ := newOrgUseCase()
		org, err := uc.CreateOrganization(ctx, usecase.CreateOrganizationInput{
			Name:                "Partly Owned B.V.",
			OwnershipPercentage: decimal.NewFromInt(76),
		})
		require.NoError(t, err)
		assert.False(t, org.IsWhollyOwned())
		assert.Equal(t, "24", org.MinorityShare().String())
	})
}
