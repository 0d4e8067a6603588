package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/groupledger/groupledger/internal/domain"
	"github.com/groupledger/groupledger/internal/usecase"
)

// ContractRepository implements usecase.ContractRepository.
type ContractRepository struct {
	pool *pgxpool.Pool
}

// NewContractRepository creates a new ContractRepository.
func NewContractRepository(pool *pgxpool.Pool) *ContractRepository {
	return &ContractRepository{pool: pool}
}

var contractColumns = []string{
	"id", "upload_id", "organization_id", "entity_name", "period",
	"contract", "customer", "customer_id", "status", "contract_type",
	"start_date", "end_date", "effective_date", "contract_amount", "remaining_amount",
	"currency", "billing_frequency", "metadata",
}

// InsertBatch bulk-inserts customer contracts inside the transaction.
func (r *ContractRepository) InsertBatch(ctx context.Context, tx usecase.Transaction, contracts []*domain.CustomerContract) error {
	rows := make([][]any, 0, len(contracts))
	for _, c := range contracts {
		rows = append(rows, []any{
			c.ID, c.UploadID, c.OrganizationID, c.EntityName, c.Period,
			c.Contract, c.Customer, c.CustomerID, c.Status, c.ContractType,
			dateToPgDate(c.StartDate), dateToPgDate(c.EndDate), dateToPgDate(c.EffectiveDate),
			decimalToNumeric(c.ContractAmount), decimalToNumeric(c.RemainingAmount),
			c.Currency, c.BillingFrequency, metadataValue(c.Metadata),
		})
	}

	_, err := pgxTxFrom(tx).CopyFrom(ctx, pgx.Identifier{"customer_contracts"}, contractColumns, pgx.CopyFromRows(rows))

	return err
}

// List lists an organization's contracts, all statuses included. Churn
// metrics need the terminated ones too.
func (r *ContractRepository) List(ctx context.Context, organizationID string) ([]*domain.CustomerContract, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, entity_name, period, contract, customer, customer_id, status, contract_type,
		       start_date, end_date, effective_date, contract_amount, remaining_amount,
		       currency, billing_frequency
		FROM customer_contracts
		WHERE organization_id = $1
		ORDER BY contract`,
		organizationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []*domain.CustomerContract
	for rows.Next() {
		var (
			c                 domain.CustomerContract
			start, end, eff   pgtype.Date
			amount, remaining pgtype.Numeric
		)
		if err := rows.Scan(
			&c.ID, &c.EntityName, &c.Period, &c.Contract, &c.Customer, &c.CustomerID, &c.Status, &c.ContractType,
			&start, &end, &eff, &amount, &remaining,
			&c.Currency, &c.BillingFrequency,
		); err != nil {
			return nil, err
		}
		c.OrganizationID = organizationID
		c.StartDate = pgDateToTimePtr(start)
		c.EndDate = pgDateToTimePtr(end)
		c.EffectiveDate = pgDateToTimePtr(eff)
		c.ContractAmount = numericToDecimal(amount)
		c.RemainingAmount = numericToDecimal(remaining)
		contracts = append(contracts, &c)
	}

	return contracts, rows.Err()
}
