package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/groupledger/groupledger/internal/domain"
	"github.com/groupledger/groupledger/internal/usecase"
)

// MockOrganizationRepository is a mock implementation of OrganizationRepository.
type MockOrganizationRepository struct {
	mu   sync.RWMutex
	orgs map[string]*domain.Organization

	CreateFunc       func(ctx context.Context, org *domain.Organization) error
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Organization, error)
	GetByNameKeyFunc func(ctx context.Context, key string) (*domain.Organization, error)
	ListFunc         func(ctx context.Context, activeOnly bool) ([]*domain.Organization, error)
	UpdateFunc       func(ctx context.Context, org *domain.Organization) error
}

func NewMockOrganizationRepository() *MockOrganizationRepository {
	return &MockOrganizationRepository{
		orgs: make(map[string]*domain.Organization),
	}
}

func (m *MockOrganizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, org)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.orgs {
		if existing.NameKey == org.NameKey {
			return domain.ErrDuplicateOrganization
		}
	}
	m.orgs[org.ID] = org
	return nil
}

func (m *MockOrganizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if org, ok := m.orgs[id]; ok {
		return org, nil
	}
	return nil, domain.ErrOrganizationNotFound
}

func (m *MockOrganizationRepository) GetByNameKey(ctx context.Context, key string) (*domain.Organization, error) {
	if m.GetByNameKeyFunc != nil {
		return m.GetByNameKeyFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, org := range m.orgs {
		if org.NameKey == key {
			return org, nil
		}
	}
	return nil, domain.ErrOrganizationNotFound
}

func (m *MockOrganizationRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Organization, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, activeOnly)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var orgs []*domain.Organization
	for _, org := range m.orgs {
		if activeOnly && !org.Active {
			continue
		}
		orgs = append(orgs, org)
	}
	return orgs, nil
}

func (m *MockOrganizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, org)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orgs[org.ID]; !ok {
		return domain.ErrOrganizationNotFound
	}
	m.orgs[org.ID] = org
	return nil
}

// MockUploadRepository is a mock implementation of UploadRepository.
type MockUploadRepository struct {
	mu      sync.RWMutex
	batches map[string]*domain.UploadBatch

	CreateFunc        func(ctx context.Context, batch *domain.UploadBatch) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.UploadBatch, error)
	ListFunc          func(ctx context.Context, organizationID string, limit, offset int) ([]*domain.UploadBatch, error)
	MarkCompletedFunc func(ctx context.Context, id string, recordCount, skippedCount int, completedAt time.Time) error
	MarkFailedFunc    func(ctx context.Context, id string, errMsg string, completedAt time.Time) error
}

func NewMockUploadRepository() *MockUploadRepository {
	return &MockUploadRepository{
		batches: make(map[string]*domain.UploadBatch),
	}
}

func (m *MockUploadRepository) Create(ctx context.Context, batch *domain.UploadBatch) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, batch)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *batch
	m.batches[batch.ID] = &copied
	return nil
}

func (m *MockUploadRepository) GetByID(ctx context.Context, id string) (*domain.UploadBatch, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.batches[id]; ok {
		return b, nil
	}
	return nil, domain.ErrUploadNotFound
}

func (m *MockUploadRepository) List(ctx context.Context, organizationID string, limit, offset int) ([]*domain.UploadBatch, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, organizationID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var batches []*domain.UploadBatch
	for _, b := range m.batches {
		if organizationID != "" && b.OrganizationID != organizationID {
			continue
		}
		batches = append(batches, b)
	}
	return batches, nil
}

func (m *MockUploadRepository) MarkCompleted(ctx context.Context, id string, recordCount, skippedCount int, completedAt time.Time) error {
	if m.MarkCompletedFunc != nil {
		return m.MarkCompletedFunc(ctx, id, recordCount, skippedCount, completedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.batches[id]
	if !ok {
		return domain.ErrUploadNotFound
	}
	b.Status = domain.UploadCompleted
	b.RecordCount = recordCount
	b.SkippedCount = skippedCount
	b.CompletedAt = completedAt
	return nil
}

func (m *MockUploadRepository) MarkFailed(ctx context.Context, id string, errMsg string, completedAt time.Time) error {
	if m.MarkFailedFunc != nil {
		return m.MarkFailedFunc(ctx, id, errMsg, completedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.batches[id]
	if !ok {
		return domain.ErrUploadNotFound
	}
	b.Status = domain.UploadFailed
	b.ErrorMessage = errMsg
	b.CompletedAt = completedAt
	return nil
}

// MockJournalRepository is a mock implementation of JournalRepository.
type MockJournalRepository struct {
	mu    sync.RWMutex
	Lines []*domain.JournalLine

	InsertBatchFunc               func(ctx context.Context, tx usecase.Transaction, lines []*domain.JournalLine) error
	SummarizeByEntityFunc         func(ctx context.Context, period string) ([]*domain.EntityFinancials, error)
	FinancialsForOrganizationFunc func(ctx context.Context, organizationID, period string) (*domain.EntityFinancials, error)
	SalesMarketingSpendFunc       func(ctx context.Context, organizationID, period string) (decimal.Decimal, error)
	ListIntercompanyFunc          func(ctx context.Context, period string) ([]*domain.JournalLine, error)
	PeriodsFunc                   func(ctx context.Context) ([]string, error)
}

func NewMockJournalRepository() *MockJournalRepository {
	return &MockJournalRepository{}
}

func (m *MockJournalRepository) InsertBatch(ctx context.Context, tx usecase.Transaction, lines []*domain.JournalLine) error {
	if m.InsertBatchFunc != nil {
		return m.InsertBatchFunc(ctx, tx, lines)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lines = append(m.Lines, lines...)
	return nil
}

func (m *MockJournalRepository) SummarizeByEntity(ctx context.Context, period string) ([]*domain.EntityFinancials, error) {
	if m.SummarizeByEntityFunc != nil {
		return m.SummarizeByEntityFunc(ctx, period)
	}
	return nil, nil
}

func (m *MockJournalRepository) FinancialsForOrganization(ctx context.Context, organizationID, period string) (*domain.EntityFinancials, error) {
	if m.FinancialsForOrganizationFunc != nil {
		return m.FinancialsForOrganizationFunc(ctx, organizationID, period)
	}
	return &domain.EntityFinancials{}, nil
}

func (m *MockJournalRepository) SalesMarketingSpend(ctx context.Context, organizationID, period string) (decimal.Decimal, error) {
	if m.SalesMarketingSpendFunc != nil {
		return m.SalesMarketingSpendFunc(ctx, organizationID, period)
	}
	return decimal.Zero, nil
}

func (m *MockJournalRepository) ListIntercompany(ctx context.Context, period string) ([]*domain.JournalLine, error) {
	if m.ListIntercompanyFunc != nil {
		return m.ListIntercompanyFunc(ctx, period)
	}
	return nil, nil
}

func (m *MockJournalRepository) Periods(ctx context.Context) ([]string, error) {
	if m.PeriodsFunc != nil {
		return m.PeriodsFunc(ctx)
	}
	return nil, nil
}

// MockInvoiceRepository is a mock implementation of InvoiceRepository.
type MockInvoiceRepository struct {
	mu               sync.RWMutex
	CustomerInvoices []*domain.CustomerInvoice
	SupplierInvoices []*domain.SupplierInvoice

	InsertCustomerBatchFunc func(ctx context.Context, tx usecase.Transaction, invoices []*domain.CustomerInvoice) error
	InsertSupplierBatchFunc func(ctx context.Context, tx usecase.Transaction, invoices []*domain.SupplierInvoice) error
	OpenReceivablesFunc     func(ctx context.Context, organizationIDs []string) (decimal.Decimal, error)
	OpenPayablesFunc        func(ctx context.Context, organizationIDs []string) (decimal.Decimal, error)
	AgedReceivablesFunc     func(ctx context.Context, organizationIDs []string, limit int) ([]*domain.CounterpartyBalance, error)
	AgedPayablesFunc        func(ctx context.Context, organizationIDs []string, limit int) ([]*domain.CounterpartyBalance, error)
	SubscriptionRevenueFunc func(ctx context.Context, organizationID, period string) (decimal.Decimal, error)
}

func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{}
}

func (m *MockInvoiceRepository) InsertCustomerBatch(ctx context.Context, tx usecase.Transaction, invoices []*domain.CustomerInvoice) error {
	if m.InsertCustomerBatchFunc != nil {
		return m.InsertCustomerBatchFunc(ctx, tx, invoices)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CustomerInvoices = append(m.CustomerInvoices, invoices...)
	return nil
}

func (m *MockInvoiceRepository) InsertSupplierBatch(ctx context.Context, tx usecase.Transaction, invoices []*domain.SupplierInvoice) error {
	if m.InsertSupplierBatchFunc != nil {
		return m.InsertSupplierBatchFunc(ctx, tx, invoices)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SupplierInvoices = append(m.SupplierInvoices, invoices...)
	return nil
}

func (m *MockInvoiceRepository) OpenReceivables(ctx context.Context, organizationIDs []string) (decimal.Decimal, error) {
	if m.OpenReceivablesFunc != nil {
		return m.OpenReceivablesFunc(ctx, organizationIDs)
	}
	return decimal.Zero, nil
}

func (m *MockInvoiceRepository) OpenPayables(ctx context.Context, organizationIDs []string) (decimal.Decimal, error) {
	if m.OpenPayablesFunc != nil {
		return m.OpenPayablesFunc(ctx, organizationIDs)
	}
	return decimal.Zero, nil
}

func (m *MockInvoiceRepository) AgedReceivables(ctx context.Context, organizationIDs []string, limit int) ([]*domain.CounterpartyBalance, error) {
	if m.AgedReceivablesFunc != nil {
		return m.AgedReceivablesFunc(ctx, organizationIDs, limit)
	}
	return nil, nil
}

func (m *MockInvoiceRepository) AgedPayables(ctx context.Context, organizationIDs []string, limit int) ([]*domain.CounterpartyBalance, error) {
	if m.AgedPayablesFunc != nil {
		return m.AgedPayablesFunc(ctx, organizationIDs, limit)
	}
	return nil, nil
}

func (m *MockInvoiceRepository) SubscriptionRevenue(ctx context.Context, organizationID, period string) (decimal.Decimal, error) {
	if m.SubscriptionRevenueFunc != nil {
		return m.SubscriptionRevenueFunc(ctx, organizationID, period)
	}
	return decimal.Zero, nil
}

// MockContractRepository is a mock implementation of ContractRepository.
type MockContractRepository struct {
	mu        sync.RWMutex
	Contracts []*domain.CustomerContract

	InsertBatchFunc func(ctx context.Context, tx usecase.Transaction, contracts []*domain.CustomerContract) error
	ListFunc        func(ctx context.Context, organizationID string) ([]*domain.CustomerContract, error)
}

func NewMockContractRepository() *MockContractRepository {
	return &MockContractRepository{}
}

func (m *MockContractRepository) InsertBatch(ctx context.Context, tx usecase.Transaction, contracts []*domain.CustomerContract) error {
	if m.InsertBatchFunc != nil {
		return m.InsertBatchFunc(ctx, tx, contracts)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Contracts = append(m.Contracts, contracts...)
	return nil
}

func (m *MockContractRepository) List(ctx context.Context, organizationID string) ([]*domain.CustomerContract, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, organizationID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var contracts []*domain.CustomerContract
	for _, c := range m.Contracts {
		if organizationID == "" || c.OrganizationID == organizationID {
			contracts = append(contracts, c)
		}
	}
	return contracts, nil
}

// MockTimeEntryRepository is a mock implementation of TimeEntryRepository.
type MockTimeEntryRepository struct {
	mu      sync.RWMutex
	Entries []*domain.TimeEntry

	InsertBatchFunc func(ctx context.Context, tx usecase.Transaction, entries []*domain.TimeEntry) error
	SumByPeriodFunc func(ctx context.Context, organizationIDs []string, period string) (*domain.TimeSummary, error)
}

func NewMockTimeEntryRepository() *MockTimeEntryRepository {
	return &MockTimeEntryRepository{}
}

func (m *MockTimeEntryRepository) InsertBatch(ctx context.Context, tx usecase.Transaction, entries []*domain.TimeEntry) error {
	if m.InsertBatchFunc != nil {
		return m.InsertBatchFunc(ctx, tx, entries)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, entries...)
	return nil
}

func (m *MockTimeEntryRepository) SumByPeriod(ctx context.Context, organizationIDs []string, period string) (*domain.TimeSummary, error) {
	if m.SumByPeriodFunc != nil {
		return m.SumByPeriodFunc(ctx, organizationIDs, period)
	}
	return &domain.TimeSummary{}, nil
}

// MockTreasuryRepository is a mock implementation of TreasuryRepository.
type MockTreasuryRepository struct {
	mu               sync.RWMutex
	BankLines        []*domain.BankStatementLine
	CustomerPayments []*domain.CustomerPayment
	SupplierPayments []*domain.SupplierPayment
	Installments     []*domain.BillingInstallment
	TaxLines         []*domain.TaxDeclarationLine

	InsertBankBatchFunc                 func(ctx context.Context, tx usecase.Transaction, lines []*domain.BankStatementLine) error
	InsertCustomerPaymentBatchFunc      func(ctx context.Context, tx usecase.Transaction, payments []*domain.CustomerPayment) error
	InsertSupplierPaymentBatchFunc      func(ctx context.Context, tx usecase.Transaction, payments []*domain.SupplierPayment) error
	InsertInstallmentBatchFunc          func(ctx context.Context, tx usecase.Transaction, installments []*domain.BillingInstallment) error
	InsertTaxBatchFunc                  func(ctx context.Context, tx usecase.Transaction, lines []*domain.TaxDeclarationLine) error
	CashPositionFunc                    func(ctx context.Context, organizationIDs []string, currency string) (decimal.Decimal, error)
	AverageMonthlyCustomerPaymentsFunc  func(ctx context.Context, organizationIDs []string, since time.Time) (decimal.Decimal, error)
	AverageMonthlySupplierPaymentsFunc  func(ctx context.Context, organizationIDs []string, since time.Time) (decimal.Decimal, error)
	ScheduledInstallmentsByMonthFunc    func(ctx context.Context, organizationIDs []string, from time.Time) (map[string]decimal.Decimal, error)
}

func NewMockTreasuryRepository() *MockTreasuryRepository {
	return &MockTreasuryRepository{}
}

func (m *MockTreasuryRepository) InsertBankBatch(ctx context.Context, tx usecase.Transaction, lines []*domain.BankStatementLine) error {
	if m.InsertBankBatchFunc != nil {
		return m.InsertBankBatchFunc(ctx, tx, lines)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BankLines = append(m.BankLines, lines...)
	return nil
}

func (m *MockTreasuryRepository) InsertCustomerPaymentBatch(ctx context.Context, tx usecase.Transaction, payments []*domain.CustomerPayment) error {
	if m.InsertCustomerPaymentBatchFunc != nil {
		return m.InsertCustomerPaymentBatchFunc(ctx, tx, payments)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CustomerPayments = append(m.CustomerPayments, payments...)
	return nil
}

func (m *MockTreasuryRepository) InsertSupplierPaymentBatch(ctx context.Context, tx usecase.Transaction, payments []*domain.SupplierPayment) error {
	if m.InsertSupplierPaymentBatchFunc != nil {
		return m.InsertSupplierPaymentBatchFunc(ctx, tx, payments)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SupplierPayments = append(m.SupplierPayments, payments...)
	return nil
}

func (m *MockTreasuryRepository) InsertInstallmentBatch(ctx context.Context, tx usecase.Transaction, installments []*domain.BillingInstallment) error {
	if m.InsertInstallmentBatchFunc != nil {
		return m.InsertInstallmentBatchFunc(ctx, tx, installments)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Installments = append(m.Installments, installments...)
	return nil
}

func (m *MockTreasuryRepository) InsertTaxBatch(ctx context.Context, tx usecase.Transaction, lines []*domain.TaxDeclarationLine) error {
	if m.InsertTaxBatchFunc != nil {
		return m.InsertTaxBatchFunc(ctx, tx, lines)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TaxLines = append(m.TaxLines, lines...)
	return nil
}

func (m *MockTreasuryRepository) CashPosition(ctx context.Context, organizationIDs []string, currency string) (decimal.Decimal, error) {
	if m.CashPositionFunc != nil {
		return m.CashPositionFunc(ctx, organizationIDs, currency)
	}
	return decimal.Zero, nil
}

func (m *MockTreasuryRepository) AverageMonthlyCustomerPayments(ctx context.Context, organizationIDs []string, since time.Time) (decimal.Decimal, error) {
	if m.AverageMonthlyCustomerPaymentsFunc != nil {
		return m.AverageMonthlyCustomerPaymentsFunc(ctx, organizationIDs, since)
	}
	return decimal.Zero, nil
}

func (m *MockTreasuryRepository) AverageMonthlySupplierPayments(ctx context.Context, organizationIDs []string, since time.Time) (decimal.Decimal, error) {
	if m.AverageMonthlySupplierPaymentsFunc != nil {
		return m.AverageMonthlySupplierPaymentsFunc(ctx, organizationIDs, since)
	}
	return decimal.Zero, nil
}

func (m *MockTreasuryRepository) ScheduledInstallmentsByMonth(ctx context.Context, organizationIDs []string, from time.Time) (map[string]decimal.Decimal, error) {
	if m.ScheduledInstallmentsByMonthFunc != nil {
		return m.ScheduledInstallmentsByMonthFunc(ctx, organizationIDs, from)
	}
	return map[string]decimal.Decimal{}, nil
}

// MockDealRepository is a mock implementation of DealRepository.
type MockDealRepository struct {
	mu    sync.RWMutex
	Deals []*domain.SalesDeal

	InsertBatchFunc func(ctx context.Context, tx usecase.Transaction, deals []*domain.SalesDeal) error
	ListOpenFunc    func(ctx context.Context, organizationIDs []string) ([]*domain.SalesDeal, error)
}

func NewMockDealRepository() *MockDealRepository {
	return &MockDealRepository{}
}

func (m *MockDealRepository) InsertBatch(ctx context.Context, tx usecase.Transaction, deals []*domain.SalesDeal) error {
	if m.InsertBatchFunc != nil {
		return m.InsertBatchFunc(ctx, tx, deals)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deals = append(m.Deals, deals...)
	return nil
}

func (m *MockDealRepository) ListOpen(ctx context.Context, organizationIDs []string) ([]*domain.SalesDeal, error) {
	if m.ListOpenFunc != nil {
		return m.ListOpenFunc(ctx, organizationIDs)
	}
	return nil, nil
}

// MockKPIRepository is a mock implementation of KPIRepository.
type MockKPIRepository struct {
	mu      sync.RWMutex
	Records map[string]*domain.KPIRecord // keyed by org|period|type

	UpsertFunc       func(ctx context.Context, records []*domain.KPIRecord) error
	ListByPeriodFunc func(ctx context.Context, organizationID, period string) ([]*domain.KPIRecord, error)
}

func NewMockKPIRepository() *MockKPIRepository {
	return &MockKPIRepository{
		Records: make(map[string]*domain.KPIRecord),
	}
}

func (m *MockKPIRepository) Upsert(ctx context.Context, records []*domain.KPIRecord) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, records)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range records {
		m.Records[r.OrganizationID+"|"+r.Period+"|"+string(r.Type)] = r
	}
	return nil
}

func (m *MockKPIRepository) ListByPeriod(ctx context.Context, organizationID, period string) ([]*domain.KPIRecord, error) {
	if m.ListByPeriodFunc != nil {
		return m.ListByPeriodFunc(ctx, organizationID, period)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var records []*domain.KPIRecord
	for _, r := range m.Records {
		if r.OrganizationID == organizationID && r.Period == period {
			records = append(records, r)
		}
	}
	return records, nil
}

// MockReportRepository is a mock implementation of ReportRepository.
type MockReportRepository struct {
	mu      sync.RWMutex
	Reports map[string]*domain.Report

	CreateFunc       func(ctx context.Context, report *domain.Report) error
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Report, error)
	ListFunc         func(ctx context.Context, organizationID string, limit, offset int) ([]*domain.Report, error)
	UpdateStatusFunc func(ctx context.Context, id string, status domain.ReportStatus, updatedAt time.Time) error
}

func NewMockReportRepository() *MockReportRepository {
	return &MockReportRepository{
		Reports: make(map[string]*domain.Report),
	}
}

func (m *MockReportRepository) Create(ctx context.Context, report *domain.Report) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, report)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reports[report.ID] = report
	return nil
}

func (m *MockReportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.Reports[id]; ok {
		return r, nil
	}
	return nil, domain.ErrReportNotFound
}

func (m *MockReportRepository) List(ctx context.Context, organizationID string, limit, offset int) ([]*domain.Report, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, organizationID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var reports []*domain.Report
	for _, r := range m.Reports {
		if organizationID != "" && r.OrganizationID != organizationID {
			continue
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func (m *MockReportRepository) UpdateStatus(ctx context.Context, id string, status domain.ReportStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.Reports[id]
	if !ok {
		return domain.ErrReportNotFound
	}
	r.Status = status
	return nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	m.RolledBack = true
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%04d", m.counter)
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu    sync.RWMutex
	store map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		store: make(map[string][]byte),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, key)
	return nil
}
