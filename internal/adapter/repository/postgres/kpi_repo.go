package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/groupledger/groupledger/internal/domain"
)

// KPIRepository implements usecase.KPIRepository.
type KPIRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewKPIRepository creates a new KPIRepository.
func NewKPIRepository(pool *pgxpool.Pool, retrier *Retrier) *KPIRepository {
	return &KPIRepository{pool: pool, retrier: retrier}
}

// Upsert writes calculated KPI values. Recalculating a period overwrites the
// previous value for the same (organization, period, type) triple. Concurrent
// recalculations of the same triple can deadlock on the unique index, so the
// batch is retried.
func (r *KPIRepository) Upsert(ctx context.Context, records []*domain.KPIRecord) error {
	return r.retrier.Retry(ctx, func() error {
		return r.upsert(ctx, records)
	})
}

func (r *KPIRepository) upsert(ctx context.Context, records []*domain.KPIRecord) error {
	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(`
			INSERT INTO kpi_records (id, organization_id, period, kpi_type, value, unit, metadata, calculated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (organization_id, period, kpi_type)
			DO UPDATE SET value = EXCLUDED.value, unit = EXCLUDED.unit,
			              metadata = EXCLUDED.metadata, calculated_at = EXCLUDED.calculated_at`,
			rec.ID, rec.OrganizationID, rec.Period, string(rec.Type),
			decimalToNumeric(rec.Value), string(rec.Unit), metadataValue(rec.Metadata),
			timeToPgTimestamptz(rec.CalculatedAt),
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range records {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}

	return results.Close()
}

// ListByPeriod lists an organization's calculated KPIs for a period.
func (r *KPIRepository) ListByPeriod(ctx context.Context, organizationID, period string) ([]*domain.KPIRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, organization_id, period, kpi_type, value, unit, metadata, calculated_at
		FROM kpi_records
		WHERE organization_id = $1 AND period = $2
		ORDER BY kpi_type`,
		organizationID, period,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.KPIRecord
	for rows.Next() {
		var (
			rec          domain.KPIRecord
			kpiType      string
			unit         string
			value        pgtype.Numeric
			metadata     map[string]string
			calculatedAt pgtype.Timestamptz
		)
		if err := rows.Scan(
			&rec.ID, &rec.OrganizationID, &rec.Period, &kpiType, &value, &unit, &metadata, &calculatedAt,
		); err != nil {
			return nil, err
		}
		rec.Type = domain.KPIType(kpiType)
		rec.Unit = domain.KPIUnit(unit)
		rec.Value = numericToDecimal(value)
		rec.Metadata = metadata
		rec.CalculatedAt = pgTimestamptzToTime(calculatedAt)
		records = append(records, &rec)
	}

	return records, rows.Err()
}
