package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/groupledger/groupledger/internal/domain"
)

// OrganizationRepository implements usecase.OrganizationRepository.
type OrganizationRepository struct {
	pool *pgxpool.Pool
}

// NewOrganizationRepository creates a new OrganizationRepository.
func NewOrganizationRepository(pool *pgxpool.Pool) *OrganizationRepository {
	return &OrganizationRepository{pool: pool}
}

const organizationColumns = `id, name, name_key, parent_id, org_type, reporting_type, ownership_percentage, description, active, created_at, updated_at`

// Create inserts an organization. A name-key collision maps to
// domain.ErrDuplicateOrganization so callers can recover the winner.
func (r *OrganizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO organizations (`+organizationColumns+`)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11)`,
		org.ID, org.Name, org.NameKey, org.ParentID, string(org.Type), string(org.ReportingType),
		decimalToNumeric(org.OwnershipPercentage), org.Description, org.Active,
		timeToPgTimestamptz(org.CreatedAt), timeToPgTimestamptz(org.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateOrganization
	}

	return err
}

// GetByID retrieves an organization by ID.
func (r *OrganizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	return r.get(ctx, `SELECT `+organizationColumns+` FROM organizations WHERE id = $1`, id)
}

// GetByNameKey retrieves an organization by its normalized name key.
func (r *OrganizationRepository) GetByNameKey(ctx context.Context, key string) (*domain.Organization, error) {
	return r.get(ctx, `SELECT `+organizationColumns+` FROM organizations WHERE name_key = $1`, key)
}

func (r *OrganizationRepository) get(ctx context.Context, query string, arg any) (*domain.Organization, error) {
	row := r.pool.QueryRow(ctx, query, arg)

	org, err := scanOrganization(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrganizationNotFound
		}

		return nil, err
	}

	return org, nil
}

// List lists organizations, name order.
func (r *OrganizationRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []*domain.Organization
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}

	return orgs, rows.Err()
}

// Update updates an organization's mutable fields.
func (r *OrganizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE organizations
		SET parent_id = NULLIF($2, ''), org_type = $3, reporting_type = $4,
		    ownership_percentage = $5, description = $6, active = $7, updated_at = $8
		WHERE id = $1`,
		org.ID, org.ParentID, string(org.Type), string(org.ReportingType),
		decimalToNumeric(org.OwnershipPercentage), org.Description, org.Active,
		timeToPgTimestamptz(org.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrganizationNotFound
	}

	return nil
}

func scanOrganization(row pgx.Row) (*domain.Organization, error) {
	var (
		org       domain.Organization
		parentID  pgtype.Text
		ownership pgtype.Numeric
		orgType   string
		repType   string
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&org.ID, &org.Name, &org.NameKey, &parentID, &orgType, &repType,
		&ownership, &org.Description, &org.Active, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	org.ParentID = parentID.String
	org.Type = domain.OrganizationType(orgType)
	org.ReportingType = domain.ReportingType(repType)
	org.OwnershipPercentage = numericToDecimal(ownership)
	org.CreatedAt = pgTimestamptzToTime(createdAt)
	org.UpdatedAt = pgTimestamptzToTime(updatedAt)

	return &org, nil
}
