package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/groupledger/groupledger/internal/domain"
	"github.com/groupledger/groupledger/internal/usecase"
)

// TimeEntryRepository implements usecase.TimeEntryRepository.
type TimeEntryRepository struct {
	pool *pgxpool.Pool
}

// NewTimeEntryRepository creates a new TimeEntryRepository.
func NewTimeEntryRepository(pool *pgxpool.Pool) *TimeEntryRepository {
	return &TimeEntryRepository{pool: pool}
}

var timeEntryColumns = []string{
	"id", "upload_id", "organization_id", "entity_name", "period",
	"worker", "entry_date", "total_hours", "billable_hours", "amount_to_bill",
	"rate_to_bill", "billing_status", "customer", "project", "metadata",
}

// InsertBatch bulk-inserts time entries inside the transaction.
func (r *TimeEntryRepository) InsertBatch(ctx context.Context, tx usecase.Transaction, entries []*domain.TimeEntry) error {
	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []any{
			e.ID, e.UploadID, e.OrganizationID, e.EntityName, e.Period,
			e.Worker, dateToPgDate(e.Date), decimalToNumeric(e.TotalHours), decimalToNumeric(e.BillableHours),
			decimalToNumeric(e.AmountToBill), decimalToNumeric(e.RateToBill), e.BillingStatus,
			e.Customer, e.Project, metadataValue(e.Metadata),
		})
	}

	_, err := pgxTxFrom(tx).CopyFrom(ctx, pgx.Identifier{"time_entries"}, timeEntryColumns, pgx.CopyFromRows(rows))

	return err
}

// SumByPeriod aggregates reported hours across the given organizations for a
// period. Distinct workers approximate FTE count.
func (r *TimeEntryRepository) SumByPeriod(ctx context.Context, organizationIDs []string, period string) (*domain.TimeSummary, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_hours), 0),
		       COALESCE(SUM(billable_hours), 0),
		       COALESCE(SUM(amount_to_bill), 0),
		       COUNT(DISTINCT worker)
		FROM time_entries
		WHERE organization_id = ANY($1) AND period = $2`,
		organizationIDs, period,
	)

	var (
		summary                 domain.TimeSummary
		total, billable, amount pgtype.Numeric
	)
	if err := row.Scan(&total, &billable, &amount, &summary.WorkerCount); err != nil {
		return nil, err
	}
	summary.TotalHours = numericToDecimal(total)
	summary.BillableHours = numericToDecimal(billable)
	summary.AmountBilled = numericToDecimal(amount)

	return &summary, nil
}
