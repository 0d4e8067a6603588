package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/groupledger/groupledger/internal/domain"
	"github.com/groupledger/groupledger/internal/usecase"
)

// DealRepository implements usecase.DealRepository.
type DealRepository struct {
	pool *pgxpool.Pool
}

// NewDealRepository creates a new DealRepository.
func NewDealRepository(pool *pgxpool.Pool) *DealRepository {
	return &DealRepository{pool: pool}
}

var dealColumns = []string{
	"id", "upload_id", "organization_id", "entity_name", "period",
	"record_id", "name", "stage", "create_date", "close_date",
	"amount", "owner", "deal_type", "metadata",
}

// InsertBatch bulk-inserts sales deals inside the transaction.
func (r *DealRepository) InsertBatch(ctx context.Context, tx usecase.Transaction, deals []*domain.SalesDeal) error {
	rows := make([][]any, 0, len(deals))
	for _, d := range deals {
		rows = append(rows, []any{
			d.ID, d.UploadID, d.OrganizationID, d.EntityName, d.Period,
			d.RecordID, d.Name, d.Stage, dateToPgDate(d.CreateDate), dateToPgDate(d.CloseDate),
			decimalToNumeric(d.Amount), d.Owner, d.DealType, metadataValue(d.Metadata),
		})
	}

	_, err := pgxTxFrom(tx).CopyFrom(ctx, pgx.Identifier{"sales_deals"}, dealColumns, pgx.CopyFromRows(rows))

	return err
}

// ListOpen lists deals that are still in the pipeline across the given
// organizations.
func (r *DealRepository) ListOpen(ctx context.Context, organizationIDs []string) ([]*domain.SalesDeal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, organization_id, entity_name, period, record_id, name, stage,
		       create_date, close_date, amount, owner, deal_type
		FROM sales_deals
		WHERE organization_id = ANY($1)
		  AND stage NOT IN ('closedwon', 'closedlost')
		ORDER BY close_date NULLS LAST, amount DESC`,
		organizationIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deals []*domain.SalesDeal
	for rows.Next() {
		var (
			d             domain.SalesDeal
			create, close pgtype.Date
			amount        pgtype.Numeric
		)
		if err := rows.Scan(
			&d.ID, &d.OrganizationID, &d.EntityName, &d.Period, &d.RecordID, &d.Name, &d.Stage,
			&create, &close, &amount, &d.Owner, &d.DealType,
		); err != nil {
			return nil, err
		}
		d.CreateDate = pgDateToTimePtr(create)
		d.CloseDate = pgDateToTimePtr(close)
		d.Amount = numericToDecimal(amount)
		deals = append(deals, &d)
	}

	return deals, rows.Err()
}
