package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/groupledger/groupledger/internal/domain"
	"github.com/groupledger/groupledger/internal/usecase"
)

// InvoiceRepository implements usecase.InvoiceRepository for both the
// receivable and payable side.
type InvoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

var customerInvoiceColumns = []string{
	"id", "upload_id", "organization_id", "entity_name", "period",
	"invoice", "customer", "customer_id", "status", "invoice_type",
	"invoice_date", "due_date", "invoice_amount", "amount_due", "tax_amount",
	"currency", "payment_status", "payment_type", "memo", "metadata",
}

var supplierInvoiceColumns = []string{
	"id", "upload_id", "organization_id", "entity_name", "period",
	"supplier_invoice", "invoice_number", "supplier", "status", "intercompany",
	"invoice_date", "accounting_date", "due_date", "invoice_amount", "balance_due",
	"tax_amount", "currency", "payment_type", "memo", "metadata",
}

// InsertCustomerBatch bulk-inserts customer invoices inside the transaction.
func (r *InvoiceRepository) InsertCustomerBatch(ctx context.Context, tx usecase.Transaction, invoices []*domain.CustomerInvoice) error {
	rows := make([][]any, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, []any{
			inv.ID, inv.UploadID, inv.OrganizationID, inv.EntityName, inv.Period,
			inv.Invoice, inv.Customer, inv.CustomerID, inv.Status, inv.InvoiceType,
			dateToPgDate(inv.InvoiceDate), dateToPgDate(inv.DueDate),
			decimalToNumeric(inv.InvoiceAmount), decimalToNumeric(inv.AmountDue), decimalToNumeric(inv.TaxAmount),
			inv.Currency, inv.PaymentStatus, inv.PaymentType, inv.Memo, metadataValue(inv.Metadata),
		})
	}

	_, err := pgxTxFrom(tx).CopyFrom(ctx, pgx.Identifier{"customer_invoices"}, customerInvoiceColumns, pgx.CopyFromRows(rows))

	return err
}

// InsertSupplierBatch bulk-inserts supplier invoices inside the transaction.
func (r *InvoiceRepository) InsertSupplierBatch(ctx context.Context, tx usecase.Transaction, invoices []*domain.SupplierInvoice) error {
	rows := make([][]any, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, []any{
			inv.ID, inv.UploadID, inv.OrganizationID, inv.EntityName, inv.Period,
			inv.SupplierInvoice, inv.InvoiceNumber, inv.Supplier, inv.Status, inv.Intercompany,
			dateToPgDate(inv.InvoiceDate), dateToPgDate(inv.AccountingDate), dateToPgDate(inv.DueDate),
			decimalToNumeric(inv.InvoiceAmount), decimalToNumeric(inv.BalanceDue), decimalToNumeric(inv.TaxAmount),
			inv.Currency, inv.PaymentType, inv.Memo, metadataValue(inv.Metadata),
		})
	}

	_, err := pgxTxFrom(tx).CopyFrom(ctx, pgx.Identifier{"supplier_invoices"}, supplierInvoiceColumns, pgx.CopyFromRows(rows))

	return err
}

// OpenReceivables sums outstanding customer invoice balances across the
// given organizations.
func (r *InvoiceRepository) OpenReceivables(ctx context.Context, organizationIDs []string) (decimal.Decimal, error) {
	return r.sum(ctx, `
		SELECT COALESCE(SUM(amount_due), 0)
		FROM customer_invoices
		WHERE organization_id = ANY($1) AND payment_status <> 'Paid' AND amount_due > 0`,
		organizationIDs)
}

// OpenPayables sums outstanding supplier invoice balances across the given
// organizations.
func (r *InvoiceRepository) OpenPayables(ctx context.Context, organizationIDs []string) (decimal.Decimal, error) {
	return r.sum(ctx, `
		SELECT COALESCE(SUM(balance_due), 0)
		FROM supplier_invoices
		WHERE organization_id = ANY($1) AND status <> 'Paid' AND balance_due > 0`,
		organizationIDs)
}

// AgedReceivables groups open receivables per customer, largest first.
func (r *InvoiceRepository) AgedReceivables(ctx context.Context, organizationIDs []string, limit int) ([]*domain.CounterpartyBalance, error) {
	return r.aged(ctx, `
		SELECT customer,
		       COALESCE(SUM(amount_due), 0),
		       COALESCE(AVG(CURRENT_DATE - due_date), 0),
		       COUNT(*)
		FROM customer_invoices
		WHERE organization_id = ANY($1) AND payment_status <> 'Paid' AND amount_due > 0
		GROUP BY customer
		ORDER BY 2 DESC
		LIMIT $2`,
		organizationIDs, limit)
}

// AgedPayables groups open payables per supplier, largest first.
func (r *InvoiceRepository) AgedPayables(ctx context.Context, organizationIDs []string, limit int) ([]*domain.CounterpartyBalance, error) {
	return r.aged(ctx, `
		SELECT supplier,
		       COALESCE(SUM(balance_due), 0),
		       COALESCE(AVG(CURRENT_DATE - due_date), 0),
		       COUNT(*)
		FROM supplier_invoices
		WHERE organization_id = ANY($1) AND status <> 'Paid' AND balance_due > 0
		GROUP BY supplier
		ORDER BY 2 DESC
		LIMIT $2`,
		organizationIDs, limit)
}

// SubscriptionRevenue sums invoiced subscription revenue for an organization
// and period.
func (r *InvoiceRepository) SubscriptionRevenue(ctx context.Context, organizationID, period string) (decimal.Decimal, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(invoice_amount), 0)
		FROM customer_invoices
		WHERE organization_id = $1 AND period = $2
		  AND invoice_type IN ('Subscription', 'Standard')`,
		organizationID, period,
	)

	var total pgtype.Numeric
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(total), nil
}

func (r *InvoiceRepository) sum(ctx context.Context, query string, organizationIDs []string) (decimal.Decimal, error) {
	row := r.pool.QueryRow(ctx, query, organizationIDs)

	var total pgtype.Numeric
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(total), nil
}

func (r *InvoiceRepository) aged(ctx context.Context, query string, organizationIDs []string, limit int) ([]*domain.CounterpartyBalance, error) {
	rows, err := r.pool.Query(ctx, query, organizationIDs, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []*domain.CounterpartyBalance
	for rows.Next() {
		var (
			cb          domain.CounterpartyBalance
			amount, age pgtype.Numeric
		)
		if err := rows.Scan(&cb.Counterparty, &amount, &age, &cb.Count); err != nil {
			return nil, err
		}
		cb.Amount = numericToDecimal(amount)
		cb.AverageAge = numericToDecimal(age)
		balances = append(balances, &cb)
	}

	return balances, rows.Err()
}
