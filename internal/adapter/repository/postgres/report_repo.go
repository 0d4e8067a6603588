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

// ReportRepository implements usecase.ReportRepository.
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

const reportColumns = `id, organization_id, report_type, period, generated_by, file_name, status, generated_at`

// Create inserts a generated report record.
func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reports (`+reportColumns+`, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $8)`,
		report.ID, report.OrganizationID, string(report.Type), report.Period,
		report.GeneratedBy, report.FileName, string(report.Status),
		timeToPgTimestamptz(report.GeneratedAt),
	)

	return err
}

// GetByID retrieves a report by ID.
func (r *ReportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, id)

	report, err := scanReport(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}

		return nil, err
	}

	return report, nil
}

// List lists reports newest first, optionally scoped to an organization.
func (r *ReportRepository) List(ctx context.Context, organizationID string, limit, offset int) ([]*domain.Report, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+reportColumns+` FROM reports
		WHERE ($1 = '' OR organization_id = $1)
		ORDER BY generated_at DESC
		LIMIT $2 OFFSET $3`,
		organizationID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*domain.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

// UpdateStatus advances a report's status.
func (r *ReportRepository) UpdateStatus(ctx context.Context, id string, status domain.ReportStatus, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE reports SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReportNotFound
	}

	return nil
}

func scanReport(row pgx.Row) (*domain.Report, error) {
	var (
		report      domain.Report
		orgID       pgtype.Text
		reportType  string
		status      string
		generatedAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&report.ID, &orgID, &reportType, &report.Period, &report.GeneratedBy,
		&report.FileName, &status, &generatedAt,
	); err != nil {
		return nil, err
	}

	report.OrganizationID = orgID.String
	report.Type = domain.ReportType(reportType)
	report.Status = domain.ReportStatus(status)
	report.GeneratedAt = pgTimestamptzToTime(generatedAt)

	return &report, nil
}
