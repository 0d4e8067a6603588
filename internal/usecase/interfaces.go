package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/groupledger/groupledger/internal/domain"
)

// OrganizationRepository defines data access for legal entities.
type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id string) (*domain.Organization, error)
	GetByNameKey(ctx context.Context, key string) (*domain.Organization, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Organization, error)
	Update(ctx context.Context, org *domain.Organization) error
}

// UploadRepository defines data access for upload batches.
type UploadRepository interface {
	Create(ctx context.Context, batch *domain.UploadBatch) error
	GetByID(ctx context.Context, id string) (*domain.UploadBatch, error)
	List(ctx context.Context, organizationID string, limit, offset int) ([]*domain.UploadBatch, error)
	MarkCompleted(ctx context.Context, id string, recordCount, skippedCount int, completedAt time.Time) error
	MarkFailed(ctx context.Context, id string, errMsg string, completedAt time.Time) error
}

// JournalRepository defines data access for journal lines.
type JournalRepository interface {
	InsertBatch(ctx context.Context, tx Transaction, lines []*domain.JournalLine) error
	SummarizeByEntity(ctx context.Context, period string) ([]*domain.EntityFinancials, error)
	FinancialsForOrganization(ctx context.Context, organizationID, period string) (*domain.EntityFinancials, error)
	SalesMarketingSpend(ctx context.Context, organizationID, period string) (decimal.Decimal, error)
	ListIntercompany(ctx context.Context, period string) ([]*domain.JournalLine, error)
	Periods(ctx context.Context) ([]string, error)
}

// InvoiceRepository defines data access for customer and supplier invoices.
type InvoiceRepository interface {
	InsertCustomerBatch(ctx context.Context, tx Transaction, invoices []*domain.CustomerInvoice) error
	InsertSupplierBatch(ctx context.Context, tx Transaction, invoices []*domain.SupplierInvoice) error
	OpenReceivables(ctx context.Context, organizationIDs []string) (decimal.Decimal, error)
	OpenPayables(ctx context.Context, organizationIDs []string) (decimal.Decimal, error)
	AgedReceivables(ctx context.Context, organizationIDs []string, limit int) ([]*domain.CounterpartyBalance, error)
	AgedPayables(ctx context.Context, organizationIDs []string, limit int) ([]*domain.CounterpartyBalance, error)
	SubscriptionRevenue(ctx context.Context, organizationID, period string) (decimal.Decimal, error)
}

// ContractRepository defines data access for customer contracts.
type ContractRepository interface {
	InsertBatch(ctx context.Context, tx Transaction, contracts []*domain.CustomerContract) error
	List(ctx context.Context, organizationID string) ([]*domain.CustomerContract, error)
}

// TimeEntryRepository defines data access for time tracking entries.
type TimeEntryRepository interface {
	InsertBatch(ctx context.Context, tx Transaction, entries []*domain.TimeEntry) error
	SumByPeriod(ctx context.Context, organizationIDs []string, period string) (*domain.TimeSummary, error)
}

// TreasuryRepository defines data access for bank statements, payments,
// billing installments and tax declaration lines.
type TreasuryRepository interface {
	InsertBankBatch(ctx context.Context, tx Transaction, lines []*domain.BankStatementLine) error
	InsertCustomerPaymentBatch(ctx context.Context, tx Transaction, payments []*domain.CustomerPayment) error
	InsertSupplierPaymentBatch(ctx context.Context, tx Transaction, payments []*domain.SupplierPayment) error
	InsertInstallmentBatch(ctx context.Context, tx Transaction, installments []*domain.BillingInstallment) error
	InsertTaxBatch(ctx context.Context, tx Transaction, lines []*domain.TaxDeclarationLine) error
	CashPosition(ctx context.Context, organizationIDs []string, currency string) (decimal.Decimal, error)
	AverageMonthlyCustomerPayments(ctx context.Context, organizationIDs []string, since time.Time) (decimal.Decimal, error)
	AverageMonthlySupplierPayments(ctx context.Context, organizationIDs []string, since time.Time) (decimal.Decimal, error)
	ScheduledInstallmentsByMonth(ctx context.Context, organizationIDs []string, from time.Time) (map[string]decimal.Decimal, error)
}

// DealRepository defines data access for sales pipeline deals.
type DealRepository interface {
	InsertBatch(ctx context.Context, tx Transaction, deals []*domain.SalesDeal) error
	ListOpen(ctx context.Context, organizationIDs []string) ([]*domain.SalesDeal, error)
}

// KPIRepository defines data access for calculated KPI values.
type KPIRepository interface {
	Upsert(ctx context.Context, records []*domain.KPIRecord) error
	ListByPeriod(ctx context.Context, organizationID, period string) ([]*domain.KPIRecord, error)
}

// ReportRepository defines data access for generated reports.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	List(ctx context.Context, organizationID string, limit, offset int) ([]*domain.Report, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReportStatus, updatedAt time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
