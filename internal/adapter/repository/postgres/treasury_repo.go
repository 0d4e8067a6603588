package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/groupledger/groupledger/internal/domain"
	"github.com/groupledger/groupledger/internal/usecase"
)

// TreasuryRepository implements usecase.TreasuryRepository. It covers the
// cash-side tables: bank statement lines, payments in both directions,
// scheduled billing installments and tax declaration lines.
type TreasuryRepository struct {
	pool *pgxpool.Pool
}

// NewTreasuryRepository creates a new TreasuryRepository.
func NewTreasuryRepository(pool *pgxpool.Pool) *TreasuryRepository {
	return &TreasuryRepository{pool: pool}
}

var bankStatementColumns = []string{
	"id", "upload_id", "organization_id", "entity_name", "period",
	"transaction_date", "amount", "direction", "currency", "description",
	"bank_account", "metadata",
}

var customerPaymentColumns = []string{
	"id", "upload_id", "organization_id", "entity_name", "period",
	"payment", "customer", "customer_id", "payment_date", "amount",
	"currency", "status", "payment_type", "metadata",
}

var supplierPaymentColumns = []string{
	"id", "upload_id", "organization_id", "entity_name", "period",
	"transaction_number", "supplier", "payment_date", "amount",
	"currency", "status", "payment_type", "metadata",
}

var installmentColumns = []string{
	"id", "upload_id", "organization_id", "entity_name", "period",
	"customer", "contract", "installment_date", "amount", "currency",
	"status", "metadata",
}

var taxDeclarationColumns = []string{
	"id", "upload_id", "organization_id", "entity_name", "period",
	"start_date", "end_date", "description", "amount", "component", "metadata",
}

// InsertBankBatch bulk-inserts bank statement lines inside the transaction.
func (r *TreasuryRepository) InsertBankBatch(ctx context.Context, tx usecase.Transaction, lines []*domain.BankStatementLine) error {
	rows := make([][]any, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []any{
			l.ID, l.UploadID, l.OrganizationID, l.EntityName, l.Period,
			dateToPgDate(l.Date), decimalToNumeric(l.Amount), string(l.Direction), l.Currency, l.Description,
			l.BankAccount, metadataValue(l.Metadata),
		})
	}

	_, err := pgxTxFrom(tx).CopyFrom(ctx, pgx.Identifier{"bank_statement_lines"}, bankStatementColumns, pgx.CopyFromRows(rows))

	return err
}

// InsertCustomerPaymentBatch bulk-inserts customer payments inside the transaction.
func (r *TreasuryRepository) InsertCustomerPaymentBatch(ctx context.Context, tx usecase.Transaction, payments []*domain.CustomerPayment) error {
	rows := make([][]any, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, []any{
			p.ID, p.UploadID, p.OrganizationID, p.EntityName, p.Period,
			p.Payment, p.Customer, p.CustomerID, dateToPgDate(p.PaymentDate), decimalToNumeric(p.Amount),
			p.Currency, p.Status, p.PaymentType, metadataValue(p.Metadata),
		})
	}

	_, err := pgxTxFrom(tx).CopyFrom(ctx, pgx.Identifier{"customer_payments"}, customerPaymentColumns, pgx.CopyFromRows(rows))

	return err
}

// InsertSupplierPaymentBatch bulk-inserts supplier payments inside the transaction.
func (r *TreasuryRepository) InsertSupplierPaymentBatch(ctx context.Context, tx usecase.Transaction, payments []*domain.SupplierPayment) error {
	rows := make([][]any, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, []any{
			p.ID, p.UploadID, p.OrganizationID, p.EntityName, p.Period,
			p.TransactionNumber, p.Supplier, dateToPgDate(p.PaymentDate), decimalToNumeric(p.Amount),
			p.Currency, p.Status, p.PaymentType, metadataValue(p.Metadata),
		})
	}

	_, err := pgxTxFrom(tx).CopyFrom(ctx, pgx.Identifier{"supplier_payments"}, supplierPaymentColumns, pgx.CopyFromRows(rows))

	return err
}

// InsertInstallmentBatch bulk-inserts billing installments inside the transaction.
func (r *TreasuryRepository) InsertInstallmentBatch(ctx context.Context, tx usecase.Transaction, installments []*domain.BillingInstallment) error {
	rows := make([][]any, 0, len(installments))
	for _, ins := range installments {
		rows = append(rows, []any{
			ins.ID, ins.UploadID, ins.OrganizationID, ins.EntityName, ins.Period,
			ins.Customer, ins.Contract, dateToPgDate(ins.Date), decimalToNumeric(ins.Amount), ins.Currency,
			ins.Status, metadataValue(ins.Metadata),
		})
	}

	_, err := pgxTxFrom(tx).CopyFrom(ctx, pgx.Identifier{"billing_installments"}, installmentColumns, pgx.CopyFromRows(rows))

	return err
}

// InsertTaxBatch bulk-inserts tax declaration lines inside the transaction.
func (r *TreasuryRepository) InsertTaxBatch(ctx context.Context, tx usecase.Transaction, lines []*domain.TaxDeclarationLine) error {
	rows := make([][]any, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []any{
			l.ID, l.UploadID, l.OrganizationID, l.EntityName, l.Period,
			dateToPgDate(l.StartDate), dateToPgDate(l.EndDate), l.Description,
			decimalToNumeric(l.Amount), l.Component, metadataValue(l.Metadata),
		})
	}

	_, err := pgxTxFrom(tx).CopyFrom(ctx, pgx.Identifier{"tax_declaration_lines"}, taxDeclarationColumns, pgx.CopyFromRows(rows))

	return err
}

// CashPosition nets statement credits against debits in one currency across
// the given organizations.
func (r *TreasuryRepository) CashPosition(ctx context.Context, organizationIDs []string, currency string) (decimal.Decimal, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE WHEN direction = 'CR' THEN amount ELSE -amount END), 0)
		FROM bank_statement_lines
		WHERE organization_id = ANY($1) AND currency = $2`,
		organizationIDs, currency,
	)

	var position pgtype.Numeric
	if err := row.Scan(&position); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(position), nil
}

// AverageMonthlyCustomerPayments averages completed customer payment inflow
// per calendar month since the cutoff.
func (r *TreasuryRepository) AverageMonthlyCustomerPayments(ctx context.Context, organizationIDs []string, since time.Time) (decimal.Decimal, error) {
	return r.monthlyAverage(ctx, `
		SELECT COALESCE(AVG(monthly.total), 0)
		FROM (
			SELECT date_trunc('month', payment_date) AS month, SUM(amount) AS total
			FROM customer_payments
			WHERE organization_id = ANY($1) AND payment_date >= $2
			  AND status IN ('Completed', 'Paid')
			GROUP BY 1
		) monthly`,
		organizationIDs, since)
}

// AverageMonthlySupplierPayments averages completed supplier payment outflow
// per calendar month since the cutoff.
func (r *TreasuryRepository) AverageMonthlySupplierPayments(ctx context.Context, organizationIDs []string, since time.Time) (decimal.Decimal, error) {
	return r.monthlyAverage(ctx, `
		SELECT COALESCE(AVG(monthly.total), 0)
		FROM (
			SELECT date_trunc('month', payment_date) AS month, SUM(amount) AS total
			FROM supplier_payments
			WHERE organization_id = ANY($1) AND payment_date >= $2
			  AND status IN ('Completed', 'Paid')
			GROUP BY 1
		) monthly`,
		organizationIDs, since)
}

func (r *TreasuryRepository) monthlyAverage(ctx context.Context, query string, organizationIDs []string, since time.Time) (decimal.Decimal, error) {
	row := r.pool.QueryRow(ctx, query, organizationIDs, dateToPgDate(&since))

	var avg pgtype.Numeric
	if err := row.Scan(&avg); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(avg), nil
}

// ScheduledInstallmentsByMonth sums upcoming scheduled billing per
// YYYY-MM month, capped at a forecast year.
func (r *TreasuryRepository) ScheduledInstallmentsByMonth(ctx context.Context, organizationIDs []string, from time.Time) (map[string]decimal.Decimal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(installment_date, 'YYYY-MM'), SUM(amount)
		FROM billing_installments
		WHERE organization_id = ANY($1) AND installment_date >= $2
		  AND status IN ('Scheduled', 'Pending')
		GROUP BY 1
		ORDER BY 1
		LIMIT 12`,
		organizationIDs, dateToPgDate(&from),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byMonth := make(map[string]decimal.Decimal)
	for rows.Next() {
		var (
			month string
			total pgtype.Numeric
		)
		if err := rows.Scan(&month, &total); err != nil {
			return nil, err
		}
		byMonth[month] = numericToDecimal(total)
	}

	return byMonth, rows.Err()
}
