package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/groupledger/groupledger/internal/domain"
)

// UploadRepository implements usecase.UploadRepository.
type UploadRepository struct {
	pool *pgxpool.Pool
}

// NewUploadRepository creates a new UploadRepository.
func NewUploadRepository(pool *pgxpool.Pool) *UploadRepository {
	return &UploadRepository{pool: pool}
}

const uploadColumns = `id, organization_id, upload_type, file_name, period, status, record_count, skipped_count, error_message, uploaded_at, completed_at`

// Create inserts an upload batch.
func (r *UploadRepository) Create(ctx context.Context, batch *domain.UploadBatch) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO upload_batches (`+uploadColumns+`)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, NULL)`,
		batch.ID, batch.OrganizationID, string(batch.Type), batch.FileName, batch.Period,
		string(batch.Status), batch.RecordCount, batch.SkippedCount, batch.ErrorMessage,
		timeToPgTimestamptz(batch.UploadedAt),
	)

	return err
}

// GetByID retrieves an upload batch by ID.
func (r *UploadRepository) GetByID(ctx context.Context, id string) (*domain.UploadBatch, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+uploadColumns+` FROM upload_batches WHERE id = $1`, id)

	batch, err := scanUpload(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUploadNotFound
		}

		return nil, err
	}

	return batch, nil
}

// List lists upload batches newest first, optionally scoped to an organization.
func (r *UploadRepository) List(ctx context.Context, organizationID string, limit, offset int) ([]*domain.UploadBatch, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+uploadColumns+` FROM upload_batches
		WHERE ($1 = '' OR organization_id = $1)
		ORDER BY uploaded_at DESC
		LIMIT $2 OFFSET $3`,
		organizationID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []*domain.UploadBatch
	for rows.Next() {
		batch, err := scanUpload(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}

	return batches, rows.Err()
}

// MarkCompleted finalizes a successful batch.
func (r *UploadRepository) MarkCompleted(ctx context.Context, id string, recordCount, skippedCount int, completedAt time.Time) error {
	return r.setOutcome(ctx, id, `
		UPDATE upload_batches
		SET status = 'completed', record_count = $2, skipped_count = $3, completed_at = $4
		WHERE id = $1`,
		id, recordCount, skippedCount, timeToPgTimestamptz(completedAt))
}

// MarkFailed finalizes a failed batch with its error message.
func (r *UploadRepository) MarkFailed(ctx context.Context, id string, errMsg string, completedAt time.Time) error {
	return r.setOutcome(ctx, id, `
		UPDATE upload_batches
		SET status = 'failed', error_message = $2, completed_at = $3
		WHERE id = $1`,
		id, errMsg, timeToPgTimestamptz(completedAt))
}

func (r *UploadRepository) setOutcome(ctx context.Context, id, query string, args ...any) error {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUploadNotFound
	}

	return nil
}

func scanUpload(row pgx.Row) (*domain.UploadBatch, error) {
	var (
		batch       domain.UploadBatch
		orgID       pgtype.Text
		uploadType  string
		status      string
		uploadedAt  pgtype.Timestamptz
		completedAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&batch.ID, &orgID, &uploadType, &batch.FileName, &batch.Period, &status,
		&batch.RecordCount, &batch.SkippedCount, &batch.ErrorMessage, &uploadedAt, &completedAt,
	); err != nil {
		return nil, err
	}

	batch.OrganizationID = orgID.String
	batch.Type = domain.UploadType(uploadType)
	batch.Status = domain.UploadStatus(status)
	batch.UploadedAt = pgTimestamptzToTime(uploadedAt)
	batch.CompletedAt = pgTimestamptzToTime(completedAt)

	return &batch, nil
}
