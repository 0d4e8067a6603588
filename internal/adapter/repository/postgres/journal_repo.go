package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/groupledger/groupledger/internal/domain"
	"github.com/groupledger/groupledger/internal/usecase"
)

// JournalRepository implements usecase.JournalRepository.
type JournalRepository struct {
	pool *pgxpool.Pool
}

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(pool *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{pool: pool}
}

var journalColumns = []string{
	"id", "upload_id", "organization_id", "entity_name", "period",
	"journal", "journal_number", "status", "accounting_date", "source",
	"ledger", "currency", "ledger_account", "account_category",
	"debit_amount", "credit_amount", "line_memo", "revenue_category",
	"spend_category", "cost_center", "customer", "project", "worker",
	"supplier", "initiating_company", "intercompany_match_id", "metadata",
}

// InsertBatch bulk-inserts journal lines inside the given transaction.
func (r *JournalRepository) InsertBatch(ctx context.Context, tx usecase.Transaction, lines []*domain.JournalLine) error {
	rows := make([][]any, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []any{
			l.ID, l.UploadID, l.OrganizationID, l.EntityName, l.Period,
			l.Journal, l.JournalNumber, l.Status, dateToPgDate(l.AccountingDate), l.Source,
			l.Ledger, l.Currency, l.LedgerAccount, string(l.AccountCategory),
			decimalToNumeric(l.DebitAmount), decimalToNumeric(l.CreditAmount), l.LineMemo, l.RevenueCategory,
			l.SpendCategory, l.CostCenter, l.Customer, l.Project, l.Worker,
			l.Supplier, l.InitiatingCompany, l.IntercompanyMatchID, metadataValue(l.Metadata),
		})
	}

	_, err := pgxTxFrom(tx).CopyFrom(ctx, pgx.Identifier{"journal_lines"}, journalColumns, pgx.CopyFromRows(rows))

	return err
}

// SummarizeByEntity aggregates the P&L per entity for a period. Revenue
// accounts carry a credit balance, cost accounts a debit balance.
func (r *JournalRepository) SummarizeByEntity(ctx context.Context, period string) ([]*domain.EntityFinancials, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT entity_name,
		       COALESCE(SUM(CASE WHEN account_category = 'revenue' THEN credit_amount - debit_amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN account_category = 'direct_costs' THEN debit_amount - credit_amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN account_category = 'operating_expenses' THEN debit_amount - credit_amount ELSE 0 END), 0)
		FROM journal_lines
		WHERE period = $1
		GROUP BY entity_name
		ORDER BY entity_name`,
		period,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []*domain.EntityFinancials
	for rows.Next() {
		var (
			ef                         domain.EntityFinancials
			revenue, direct, operating pgtype.Numeric
		)
		if err := rows.Scan(&ef.EntityName, &revenue, &direct, &operating); err != nil {
			return nil, err
		}
		ef.Revenue = numericToDecimal(revenue)
		ef.DirectCosts = numericToDecimal(direct)
		ef.OperatingExpenses = numericToDecimal(operating)
		entities = append(entities, &ef)
	}

	return entities, rows.Err()
}

// FinancialsForOrganization aggregates one organization's own P&L for a period.
func (r *JournalRepository) FinancialsForOrganization(ctx context.Context, organizationID, period string) (*domain.EntityFinancials, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT COALESCE(MAX(entity_name), ''),
		       COALESCE(SUM(CASE WHEN account_category = 'revenue' THEN credit_amount - debit_amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN account_category = 'direct_costs' THEN debit_amount - credit_amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN account_category = 'operating_expenses' THEN debit_amount - credit_amount ELSE 0 END), 0)
		FROM journal_lines
		WHERE organization_id = $1 AND period = $2`,
		organizationID, period,
	)

	var (
		ef                         domain.EntityFinancials
		revenue, direct, operating pgtype.Numeric
	)
	if err := row.Scan(&ef.EntityName, &revenue, &direct, &operating); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.EntityFinancials{}, nil
		}

		return nil, err
	}
	ef.Revenue = numericToDecimal(revenue)
	ef.DirectCosts = numericToDecimal(direct)
	ef.OperatingExpenses = numericToDecimal(operating)

	return &ef, nil
}

// SalesMarketingSpend sums debit postings on sales and marketing cost centers.
func (r *JournalRepository) SalesMarketingSpend(ctx context.Context, organizationID, period string) (decimal.Decimal, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(debit_amount - credit_amount), 0)
		FROM journal_lines
		WHERE organization_id = $1 AND period = $2
		  AND (cost_center ILIKE '%sales%' OR cost_center ILIKE '%marketing%')`,
		organizationID, period,
	)

	var spend pgtype.Numeric
	if err := row.Scan(&spend); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(spend), nil
}

// ListIntercompany lists the period's journal lines that carry an
// intercompany match ID.
func (r *JournalRepository) ListIntercompany(ctx context.Context, period string) ([]*domain.JournalLine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, entity_name, account_category, debit_amount, credit_amount,
		       initiating_company, intercompany_match_id
		FROM journal_lines
		WHERE period = $1 AND intercompany_match_id <> ''
		ORDER BY intercompany_match_id, id`,
		period,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*domain.JournalLine
	for rows.Next() {
		var (
			line          domain.JournalLine
			category      string
			debit, credit pgtype.Numeric
		)
		if err := rows.Scan(
			&line.ID, &line.EntityName, &category, &debit, &credit,
			&line.InitiatingCompany, &line.IntercompanyMatchID,
		); err != nil {
			return nil, err
		}
		line.Period = period
		line.AccountCategory = domain.AccountCategory(category)
		line.DebitAmount = numericToDecimal(debit)
		line.CreditAmount = numericToDecimal(credit)
		lines = append(lines, &line)
	}

	return lines, rows.Err()
}

// Periods lists the distinct reporting periods with journal data, newest first.
func (r *JournalRepository) Periods(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT period FROM journal_lines ORDER BY period DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}

	return periods, rows.Err()
}

// metadataValue passes unpromoted source columns through as jsonb, NULL when
// the row had none.
func metadataValue(m map[string]string) any {
	if len(m) == 0 {
		return nil
	}

	return m
}
