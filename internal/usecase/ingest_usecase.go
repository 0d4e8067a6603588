package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/groupledger/groupledger/internal/csvmap"
	"github.com/groupledger/groupledger/internal/domain"
	"github.com/groupledger/groupledger/internal/infrastructure/metrics"
)

// flushThreshold bounds how many mapped records are held in memory before
// they are written out in one batch insert.
const flushThreshold = 1000

// IngestUseCase drives a CSV file through mapping, entity resolution and
// batched persistence.
type IngestUseCase struct {
	uploadRepo   UploadRepository
	journalRepo  JournalRepository
	invoiceRepo  InvoiceRepository
	contractRepo ContractRepository
	timeRepo     TimeEntryRepository
	treasuryRepo TreasuryRepository
	dealRepo     DealRepository
	orgs         *OrganizationUseCase
	txManager    TransactionManager
	idGen        IDGenerator
	metrics      *metrics.Metrics
	logger       zerolog.Logger
}

// NewIngestUseCase creates a new IngestUseCase.
func NewIngestUseCase(
	uploadRepo UploadRepository,
	journalRepo JournalRepository,
	invoiceRepo InvoiceRepository,
	contractRepo ContractRepository,
	timeRepo TimeEntryRepository,
	treasuryRepo TreasuryRepository,
	dealRepo DealRepository,
	orgs *OrganizationUseCase,
	txManager TransactionManager,
	idGen IDGenerator,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *IngestUseCase {
	return &IngestUseCase{
		uploadRepo:   uploadRepo,
		journalRepo:  journalRepo,
		invoiceRepo:  invoiceRepo,
		contractRepo: contractRepo,
		timeRepo:     timeRepo,
		treasuryRepo: treasuryRepo,
		dealRepo:     dealRepo,
		orgs:         orgs,
		txManager:    txManager,
		idGen:        idGen,
		metrics:      m,
		logger:       logger,
	}
}

// IngestInput represents one submitted CSV file.
type IngestInput struct {
	Type           domain.UploadType
	FileName       string
	Reader         io.Reader
	FallbackPeriod string
}

// IngestFile processes a CSV upload end to end. Rows missing required fields
// are skipped and counted, never fatal; structural failures (unknown type,
// unreadable file, insert errors) fail the whole batch. All inserts for one
// batch share a single transaction, flushed in bounded chunks.
func (uc *IngestUseCase) IngestFile(ctx context.Context, input IngestInput) (*domain.UploadBatch, error) {
	cfg, err := csvmap.ConfigFor(input.Type)
	if err != nil {
		return nil, err
	}

	headers, rows, err := csvmap.ReadFile(input.Reader)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	batch := &domain.UploadBatch{
		ID:         uc.idGen.Generate(),
		Type:       input.Type,
		FileName:   input.FileName,
		Status:     domain.UploadProcessing,
		UploadedAt: now,
	}
	if err := uc.uploadRepo.Create(ctx, batch); err != nil {
		return nil, err
	}

	log := uc.logger.With().
		Str("upload_id", batch.ID).
		Str("upload_type", string(input.Type)).
		Str("file", input.FileName).
		Logger()

	result, err := uc.process(ctx, batch, cfg, headers, rows, input.FallbackPeriod, log)
	completedAt := time.Now().UTC()
	if err != nil {
		log.Error().Err(err).Msg("upload failed")
		uc.metrics.UploadsFailed.WithLabelValues(string(input.Type)).Inc()
		if markErr := uc.uploadRepo.MarkFailed(ctx, batch.ID, err.Error(), completedAt); markErr != nil {
			log.Error().Err(markErr).Msg("failed to mark upload failed")
		}
		batch.Status = domain.UploadFailed
		batch.ErrorMessage = err.Error()
		return batch, err
	}

	if err := uc.uploadRepo.MarkCompleted(ctx, batch.ID, result.inserted, result.skipped, completedAt); err != nil {
		return nil, err
	}
	uc.metrics.UploadsProcessed.WithLabelValues(string(input.Type)).Inc()
	uc.metrics.RowsIngested.Add(float64(result.inserted))
	uc.metrics.RowsSkipped.Add(float64(result.skipped))
	uc.metrics.UploadDuration.Observe(completedAt.Sub(now).Seconds())
	batch.Status = domain.UploadCompleted
	batch.RecordCount = result.inserted
	batch.SkippedCount = result.skipped
	batch.Period = result.period
	batch.OrganizationID = result.organizationID

	log.Info().
		Int("records", result.inserted).
		Int("skipped", result.skipped).
		Str("period", result.period).
		Msg("upload completed")
	return batch, nil
}

// GetUpload retrieves an upload batch by ID.
func (uc *IngestUseCase) GetUpload(ctx context.Context, id string) (*domain.UploadBatch, error) {
	return uc.uploadRepo.GetByID(ctx, id)
}

// ListUploads lists upload batches, optionally scoped to an organization.
func (uc *IngestUseCase) ListUploads(ctx context.Context, organizationID string, limit, offset int) ([]*domain.UploadBatch, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return uc.uploadRepo.List(ctx, organizationID, limit, offset)
}

type ingestResult struct {
	inserted       int
	skipped        int
	period         string
	organizationID string
}

// rowBase carries the fields shared by every canonical record variant.
type rowBase struct {
	id     string
	upload string
	orgID  string
	entity string
	period string
	meta   map[string]string
}

func (uc *IngestUseCase) process(
	ctx context.Context,
	batch *domain.UploadBatch,
	cfg csvmap.Config,
	headers []string,
	rows []map[string]string,
	fallbackPeriod string,
	log zerolog.Logger,
) (ingestResult, error) {
	var res ingestResult

	mapper := csvmap.NewMapper(cfg, headers)
	if fallbackPeriod == "" {
		fallbackPeriod = time.Now().UTC().Format("2006-01")
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return res, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	sink, err := uc.sinkFor(batch.Type, tx)
	if err != nil {
		return res, err
	}

	periodTally := map[string]int{}
	orgSeen := map[string]struct{}{}

	for i, raw := range rows {
		line := i + 2 // header is line 1
		row := mapper.MapRow(raw)

		if missing := mapper.MissingRequired(row); len(missing) > 0 {
			res.skipped++
			log.Warn().Int("line", line).Strs("missing", missing).Msg("row skipped")
			continue
		}

		orgID, err := uc.orgs.ResolveEntity(ctx, mapper.Entity(row))
		if err != nil {
			res.skipped++
			log.Warn().Int("line", line).Err(err).Msg("row skipped")
			continue
		}
		orgSeen[orgID] = struct{}{}

		period := mapper.Period(row, fallbackPeriod)
		periodTally[period]++

		base := rowBase{
			id:     uc.idGen.Generate(),
			upload: batch.ID,
			orgID:  orgID,
			entity: mapper.Entity(row),
			period: period,
			meta:   mapper.Unmapped(raw),
		}
		if err := sink.add(ctx, base, row); err != nil {
			return res, fmt.Errorf("insert at line %d: %w", line, err)
		}
		res.inserted++
	}

	if res.inserted == 0 {
		return res, domain.ErrEmptyFile
	}
	if err := sink.flush(ctx); err != nil {
		return res, err
	}
	if err := tx.Commit(ctx); err != nil {
		return res, err
	}

	res.period = dominantPeriod(periodTally)
	if len(orgSeen) == 1 {
		for id := range orgSeen {
			res.organizationID = id
		}
	}
	return res, nil
}

// dominantPeriod picks the most frequent period in the batch; ties resolve
// to the later period.
func dominantPeriod(tally map[string]int) string {
	var best string
	var bestN int
	for p, n := range tally {
		if n > bestN || (n == bestN && p > best) {
			best, bestN = p, n
		}
	}
	return best
}

// recordSink buffers mapped records of one upload type and flushes them in
// bounded chunks through the matching repository.
type recordSink struct {
	add   func(ctx context.Context, base rowBase, row csvmap.MappedRow) error
	flush func(ctx context.Context) error
}

// chunked wraps a typed buffer with threshold flushing.
func chunked[T any](build func(rowBase, csvmap.MappedRow) T, write func(context.Context, []T) error) *recordSink {
	var buf []T
	flush := func(ctx context.Context) error {
		if len(buf) == 0 {
			return nil
		}
		if err := write(ctx, buf); err != nil {
			return err
		}
		buf = buf[:0]
		return nil
	}
	return &recordSink{
		add: func(ctx context.Context, base rowBase, row csvmap.MappedRow) error {
			buf = append(buf, build(base, row))
			if len(buf) >= flushThreshold {
				return flush(ctx)
			}
			return nil
		},
		flush: flush,
	}
}

func (uc *IngestUseCase) sinkFor(t domain.UploadType, tx Transaction) (*recordSink, error) {
	switch t {
	case domain.UploadJournalLines:
		return chunked(buildJournalLine, func(ctx context.Context, recs []*domain.JournalLine) error {
			return uc.journalRepo.InsertBatch(ctx, tx, recs)
		}), nil
	case domain.UploadCustomerInvoices:
		return chunked(buildCustomerInvoice, func(ctx context.Context, recs []*domain.CustomerInvoice) error {
			return uc.invoiceRepo.InsertCustomerBatch(ctx, tx, recs)
		}), nil
	case domain.UploadSupplierInvoices:
		return chunked(buildSupplierInvoice, func(ctx context.Context, recs []*domain.SupplierInvoice) error {
			return uc.invoiceRepo.InsertSupplierBatch(ctx, tx, recs)
		}), nil
	case domain.UploadCustomerContracts:
		return chunked(buildCustomerContract, func(ctx context.Context, recs []*domain.CustomerContract) error {
			return uc.contractRepo.InsertBatch(ctx, tx, recs)
		}), nil
	case domain.UploadTimeEntries:
		return chunked(buildTimeEntry, func(ctx context.Context, recs []*domain.TimeEntry) error {
			return uc.timeRepo.InsertBatch(ctx, tx, recs)
		}), nil
	case domain.UploadBankStatements:
		return chunked(buildBankStatementLine, func(ctx context.Context, recs []*domain.BankStatementLine) error {
			return uc.treasuryRepo.InsertBankBatch(ctx, tx, recs)
		}), nil
	case domain.UploadCustomerPayments:
		return chunked(buildCustomerPayment, func(ctx context.Context, recs []*domain.CustomerPayment) error {
			return uc.treasuryRepo.InsertCustomerPaymentBatch(ctx, tx, recs)
		}), nil
	case domain.UploadSupplierPayments:
		return chunked(buildSupplierPayment, func(ctx context.Context, recs []*domain.SupplierPayment) error {
			return uc.treasuryRepo.InsertSupplierPaymentBatch(ctx, tx, recs)
		}), nil
	case domain.UploadBillingInstallments:
		return chunked(buildBillingInstallment, func(ctx context.Context, recs []*domain.BillingInstallment) error {
			return uc.treasuryRepo.InsertInstallmentBatch(ctx, tx, recs)
		}), nil
	case domain.UploadTaxDeclarations:
		return chunked(buildTaxDeclarationLine, func(ctx context.Context, recs []*domain.TaxDeclarationLine) error {
			return uc.treasuryRepo.InsertTaxBatch(ctx, tx, recs)
		}), nil
	case domain.UploadSalesDeals:
		return chunked(buildSalesDeal, func(ctx context.Context, recs []*domain.SalesDeal) error {
			return uc.dealRepo.InsertBatch(ctx, tx, recs)
		}), nil
	default:
		return nil, domain.ErrUnknownUploadType
	}
}

func buildJournalLine(base rowBase, row csvmap.MappedRow) *domain.JournalLine {
	account := row.String("ledgerAccount")
	return &domain.JournalLine{
		ID:                  base.id,
		UploadID:            base.upload,
		OrganizationID:      base.orgID,
		EntityName:          base.entity,
		Period:              base.period,
		Journal:             row.String("journal"),
		JournalNumber:       row.String("journalNumber"),
		Status:              row.String("status"),
		AccountingDate:      row.Date("accountingDate"),
		Source:              row.String("source"),
		Ledger:              row.String("ledger"),
		Currency:            row.String("currency"),
		LedgerAccount:       account,
		AccountCategory:     domain.CategorizeAccount(account),
		DebitAmount:         row.Amount("debitAmount"),
		CreditAmount:        row.Amount("creditAmount"),
		LineMemo:            row.String("lineMemo"),
		RevenueCategory:     row.String("revenueCategory"),
		SpendCategory:       row.String("spendCategory"),
		CostCenter:          row.String("costCenter"),
		Customer:            row.String("customer"),
		Project:             row.String("project"),
		Worker:              row.String("worker"),
		Supplier:            row.String("supplier"),
		InitiatingCompany:   row.String("intercompanyInitiatingCompany"),
		IntercompanyMatchID: row.String("intercompanyMatchId"),
		Metadata:            base.meta,
	}
}

func buildCustomerInvoice(base rowBase, row csvmap.MappedRow) *domain.CustomerInvoice {
	return &domain.CustomerInvoice{
		ID:             base.id,
		UploadID:       base.upload,
		OrganizationID: base.orgID,
		EntityName:     base.entity,
		Period:         base.period,
		Invoice:        row.String("invoice"),
		Customer:       row.String("customer"),
		CustomerID:     row.String("customerId"),
		Status:         row.String("invoiceStatus"),
		InvoiceType:    row.String("invoiceType"),
		InvoiceDate:    row.Date("invoiceDate"),
		DueDate:        row.Date("dueDate"),
		InvoiceAmount:  row.Amount("invoiceAmount"),
		AmountDue:      row.Amount("amountDue"),
		TaxAmount:      row.Amount("taxAmount"),
		Currency:       row.String("currency"),
		PaymentStatus:  row.String("paymentStatus"),
		PaymentType:    row.String("paymentType"),
		Memo:           row.String("memo"),
		Metadata:       base.meta,
	}
}

func buildSupplierInvoice(base rowBase, row csvmap.MappedRow) *domain.SupplierInvoice {
	return &domain.SupplierInvoice{
		ID:              base.id,
		UploadID:        base.upload,
		OrganizationID:  base.orgID,
		EntityName:      base.entity,
		Period:          base.period,
		SupplierInvoice: row.String("supplierInvoice"),
		InvoiceNumber:   row.String("invoiceNumber"),
		Supplier:        row.String("supplier"),
		Status:          row.String("status"),
		Intercompany:    parseFlag(row.String("intercompany")),
		InvoiceDate:     row.Date("invoiceDate"),
		AccountingDate:  row.Date("accountingDate"),
		DueDate:         row.Date("dueDate"),
		InvoiceAmount:   row.Amount("invoiceAmount"),
		BalanceDue:      row.Amount("balanceDue"),
		TaxAmount:       row.Amount("taxAmount"),
		Currency:        row.String("currency"),
		PaymentType:     row.String("paymentType"),
		Memo:            row.String("memo"),
		Metadata:        base.meta,
	}
}

func buildCustomerContract(base rowBase, row csvmap.MappedRow) *domain.CustomerContract {
	return &domain.CustomerContract{
		ID:               base.id,
		UploadID:         base.upload,
		OrganizationID:   base.orgID,
		EntityName:       base.entity,
		Period:           base.period,
		Contract:         row.String("contract"),
		Customer:         row.String("customer"),
		CustomerID:       row.String("customerId"),
		Status:           row.String("contractStatus"),
		ContractType:     row.String("contractType"),
		StartDate:        row.Date("contractStartDate"),
		EndDate:          row.Date("contractEndDate"),
		EffectiveDate:    row.Date("effectiveDate"),
		ContractAmount:   row.Amount("contractAmount"),
		RemainingAmount:  row.Amount("remainingAmount"),
		Currency:         row.String("currency"),
		BillingFrequency: row.String("billingFrequency"),
		Metadata:         base.meta,
	}
}

func buildTimeEntry(base rowBase, row csvmap.MappedRow) *domain.TimeEntry {
	return &domain.TimeEntry{
		ID:             base.id,
		UploadID:       base.upload,
		OrganizationID: base.orgID,
		EntityName:     base.entity,
		Period:         base.period,
		Worker:         row.String("worker"),
		Date:           row.Date("date"),
		TotalHours:     row.Amount("hours"),
		BillableHours:  row.Amount("billableHours"),
		AmountToBill:   row.Amount("amountToBill"),
		RateToBill:     row.Amount("rateToBill"),
		BillingStatus:  row.String("billingStatus"),
		Customer:       row.String("customer"),
		Project:        row.String("project"),
		Metadata:       base.meta,
	}
}

func buildBankStatementLine(base rowBase, row csvmap.MappedRow) *domain.BankStatementLine {
	amount := row.Amount("amount")
	direction := parseBankDirection(row.String("debitCredit"))
	if direction == "" {
		if amount.IsNegative() {
			direction = domain.BankDebit
		} else {
			direction = domain.BankCredit
		}
	}
	return &domain.BankStatementLine{
		ID:             base.id,
		UploadID:       base.upload,
		OrganizationID: base.orgID,
		EntityName:     base.entity,
		Period:         base.period,
		Date:           row.Date("transactionDate"),
		Amount:         amount.Abs(),
		Direction:      direction,
		Currency:       row.String("currency"),
		Description:    row.String("description"),
		BankAccount:    row.String("bankAccount"),
		Metadata:       base.meta,
	}
}

func buildCustomerPayment(base rowBase, row csvmap.MappedRow) *domain.CustomerPayment {
	return &domain.CustomerPayment{
		ID:             base.id,
		UploadID:       base.upload,
		OrganizationID: base.orgID,
		EntityName:     base.entity,
		Period:         base.period,
		Payment:        row.String("payment"),
		Customer:       row.String("customer"),
		CustomerID:     row.String("customerId"),
		PaymentDate:    row.Date("paymentDate"),
		Amount:         row.Amount("paymentAmount"),
		Currency:       row.String("currency"),
		Status:         row.String("paymentStatus"),
		PaymentType:    row.String("paymentType"),
		Metadata:       base.meta,
	}
}

func buildSupplierPayment(base rowBase, row csvmap.MappedRow) *domain.SupplierPayment {
	return &domain.SupplierPayment{
		ID:                base.id,
		UploadID:          base.upload,
		OrganizationID:    base.orgID,
		EntityName:        base.entity,
		Period:            base.period,
		TransactionNumber: row.String("transactionNumber"),
		Supplier:          row.String("supplier"),
		PaymentDate:       row.Date("paymentDate"),
		Amount:            row.Amount("amount"),
		Currency:          row.String("currency"),
		Status:            row.String("paymentStatus"),
		PaymentType:       row.String("paymentType"),
		Metadata:          base.meta,
	}
}

func buildBillingInstallment(base rowBase, row csvmap.MappedRow) *domain.BillingInstallment {
	return &domain.BillingInstallment{
		ID:             base.id,
		UploadID:       base.upload,
		OrganizationID: base.orgID,
		EntityName:     base.entity,
		Period:         base.period,
		Customer:       row.String("customer"),
		Contract:       row.String("contract"),
		Date:           row.Date("installmentDate"),
		Amount:         row.Amount("amount"),
		Currency:       row.String("currency"),
		Status:         row.String("installmentStatus"),
		Metadata:       base.meta,
	}
}

func buildTaxDeclarationLine(base rowBase, row csvmap.MappedRow) *domain.TaxDeclarationLine {
	return &domain.TaxDeclarationLine{
		ID:             base.id,
		UploadID:       base.upload,
		OrganizationID: base.orgID,
		EntityName:     base.entity,
		Period:         base.period,
		StartDate:      row.Date("startDate"),
		EndDate:        row.Date("endDate"),
		Description:    row.String("lineDescription"),
		Amount:         row.Amount("lineAmount"),
		Component:      row.String("taxDeclarationComponent"),
		Metadata:       base.meta,
	}
}

func buildSalesDeal(base rowBase, row csvmap.MappedRow) *domain.SalesDeal {
	return &domain.SalesDeal{
		ID:             base.id,
		UploadID:       base.upload,
		OrganizationID: base.orgID,
		EntityName:     base.entity,
		Period:         base.period,
		RecordID:       row.String("recordId"),
		Name:           row.String("dealName"),
		Stage:          row.String("dealStage"),
		CreateDate:     row.Date("createDate"),
		CloseDate:      row.Date("closeDate"),
		Amount:         row.Amount("amount"),
		Owner:          row.String("dealOwner"),
		DealType:       row.String("dealType"),
		Metadata:       base.meta,
	}
}

func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1":
		return true
	}
	return false
}

func parseBankDirection(s string) domain.BankDirection {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CR", "C", "CREDIT":
		return domain.BankCredit
	case "DR", "D", "DEBIT":
		return domain.BankDebit
	}
	return ""
}
