package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupledger/groupledger/internal/domain"
	"github.com/groupledger/groupledger/internal/infrastructure/metrics"
	"github.com/groupledger/groupledger/internal/usecase"
	"github.com/groupledger/groupledger/internal/usecase/mocks"
)

// Prometheus metrics register once per process.
var testMetrics = metrics.New()

type ingestFixture struct {
	uc       *usecase.IngestUseCase
	uploads  *mocks.MockUploadRepository
	journal  *mocks.MockJournalRepository
	invoices *mocks.MockInvoiceRepository
	treasury *mocks.MockTreasuryRepository
	orgRepo  *mocks.MockOrganizationRepository
}

func newIngestFixture() *ingestFixture {
	f := &ingestFixture{
		uploads:  mocks.NewMockUploadRepository(),
		journal:  mocks.NewMockJournalRepository(),
		invoices: mocks.NewMockInvoiceRepository(),
		treasury: mocks.NewMockTreasuryRepository(),
		orgRepo:  mocks.NewMockOrganizationRepository(),
	}
	orgs := usecase.NewOrganizationUseCase(f.orgRepo, mocks.NewMockIDGenerator())
	f.uc = usecase.NewIngestUseCase(
		f.uploads, f.journal, f.invoices, mocks.NewMockContractRepository(),
		mocks.NewMockTimeEntryRepository(), f.treasury, mocks.NewMockDealRepository(),
		orgs, mocks.NewMockTransactionManager(), mocks.NewMockIDGenerator(), testMetrics, zerolog.Nop(),
	)
	return f
}

func TestIngestUseCase_IngestFile(t *testing.T) {
	ctx := context.Background()

	t.Run("journal upload end to end", func(t *testing.T) {
		f := newIngestFixture()
		csv := strings.Join([]string{
			"Journal,Company,Status,Accounting Date,Currency,Ledger Account,Ledger Debit Amount,Ledger Credit Amount",
			`JE-1,Alpine Consulting B.V.,Posted,2024-03-01,EUR,4000 Revenue,,"1.250,00"`,
			"JE-2,Alpine Consulting B.V.,Posted,2024-03-02,EUR,6000 Subcontractors,500.00,",
			"JE-3,Nordic Data AB,Posted,2024-03-05,EUR,7000 Office,200.00,",
		}, "\n")

		batch, err := f.uc.IngestFile(ctx, usecase.IngestInput{
			Type:     domain.UploadJournalLines,
			FileName: "journal_march.csv",
			Reader:   strings.NewReader(csv),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.UploadCompleted, batch.Status)
		assert.Equal(t, 3, batch.RecordCount)
		assert.Equal(t, 0, batch.SkippedCount)
		assert.Equal(t, "2024-03", batch.Period)
		// two entities, so no single owning organization
		assert.Empty(t, batch.OrganizationID)

		require.Len(t, f.journal.Lines, 3)
		first := f.journal.Lines[0]
		assert.Equal(t, "1250", first.CreditAmount.String())
		assert.Equal(t, domain.AccountRevenue, first.AccountCategory)
		assert.Equal(t, "2024-03", first.Period)
		assert.NotEmpty(t, first.OrganizationID)
		assert.Equal(t, domain.AccountDirectCosts, f.journal.Lines[1].AccountCategory)
		assert.Equal(t, domain.AccountOpEx, f.journal.Lines[2].AccountCategory)

		// entities were created on first sight
		orgs, err := f.orgRepo.List(ctx, false)
		require.NoError(t, err)
		assert.Len(t, orgs, 2)
	})

	t.Run("unpromoted columns land in record metadata", func(t *testing.T) {
		f := newIngestFixture()
		csv := strings.Join([]string{
			"Journal,Company,Status,Accounting Date,Currency,Ledger Account,Approval Workflow",
			"JE-1,Alpine Consulting B.V.,Posted,2024-03-01,EUR,4000 Revenue,Two-step",
			"JE-2,Alpine Consulting B.V.,Posted,2024-03-02,EUR,6000 Subcontractors,",
		}, "\n")

		_, err := f.uc.IngestFile(ctx, usecase.IngestInput{
			Type:   domain.UploadJournalLines,
			Reader: strings.NewReader(csv),
		})
		require.NoError(t, err)
		require.Len(t, f.journal.Lines, 2)
		assert.Equal(t, map[string]string{"approval workflow": "Two-step"}, f.journal.Lines[0].Metadata)
		// blank cells stay out of the bag entirely
		assert.Nil(t, f.journal.Lines[1].Metadata)
	})

	t.Run("rows missing required fields are skipped not fatal", func(t *testing.T) {
		f := newIngestFixture()
		csv := strings.Join([]string{
			"Invoice,Company,Customer,Invoice Status,Invoice Date,Invoice Amount,Currency",
			"INV-1,Alpine Consulting B.V.,Acme,Approved,2024-03-01,1000.00,EUR",
			",Alpine Consulting B.V.,Acme,Approved,2024-03-02,500.00,EUR",
			"INV-3,Alpine Consulting B.V.,Acme,Approved,not a date,250.00,EUR",
		}, "\n")

		batch, err := f.uc.IngestFile(ctx, usecase.IngestInput{
			Type:   domain.UploadCustomerInvoices,
			Reader: strings.NewReader(csv),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, batch.RecordCount)
		assert.Equal(t, 2, batch.SkippedCount)
		assert.Len(t, f.invoices.CustomerInvoices, 1)
		// single entity batch keeps the owning organization
		assert.NotEmpty(t, batch.OrganizationID)
	})

	t.Run("all rows skipped fails the batch", func(t *testing.T) {
		f := newIngestFixture()
		csv := "Invoice,Company,Customer,Invoice Status,Invoice Date,Invoice Amount,Currency\n,,,,,,\n"

		_, err := f.uc.IngestFile(ctx, usecase.IngestInput{
			Type:   domain.UploadCustomerInvoices,
			Reader: strings.NewReader(csv),
		})
		assert.ErrorIs(t, err, domain.ErrEmptyFile)
	})

	t.Run("unknown upload type", func(t *testing.T) {
		f := newIngestFixture()
		_, err := f.uc.IngestFile(ctx, usecase.IngestInput{
			Type:   domain.UploadType("balance_sheet"),
			Reader: strings.NewReader("A,B\n1,2\n"),
		})
		assert.ErrorIs(t, err, domain.ErrUnknownUploadType)
	})

	t.Run("file without data rows", func(t *testing.T) {
		f := newIngestFixture()
		_, err := f.uc.IngestFile(ctx, usecase.IngestInput{
			Type:   domain.UploadJournalLines,
			Reader: strings.NewReader("Journal,Company\n"),
		})
		assert.ErrorIs(t, err, domain.ErrEmptyFile)
	})

	t.Run("bank statement directions", func(t *testing.T) {
		f := newIngestFixture()
		csv := strings.Join([]string{
			"Company,Transaction Date,Amount,Debit/Credit,Currency",
			"Alpine Consulting B.V.,2024-03-01,1000.00,CR,EUR",
			"Alpine Consulting B.V.,2024-03-02,-250.00,,EUR",
		}, "\n")

		batch, err := f.uc.IngestFile(ctx, usecase.IngestInput{
			Type:   domain.UploadBankStatements,
			Reader: strings.NewReader(csv),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, batch.RecordCount)
		require.Len(t, f.treasury.BankLines, 2)
		assert.Equal(t, domain.BankCredit, f.treasury.BankLines[0].Direction)
		// sign infers direction when the column is blank, amount stored absolute
		assert.Equal(t, domain.BankDebit, f.treasury.BankLines[1].Direction)
		assert.Equal(t, "250", f.treasury.BankLines[1].Amount.String())
	})
}

func TestIngestUseCase_InsertFailureFailsBatch(t *testing.T) {
	ctx := context.Background()
	f := newIngestFixture()
	f.journal.InsertBatchFunc = func(ctx context.Context, tx usecase.Transaction, lines []*domain.JournalLine) error {
		return assert.AnError
	}

	csv := strings.Join([]string{
		"Journal,Company,Status,Accounting Date,Currency,Ledger Account",
		"JE-1,Alpine Consulting B.V.,Posted,2024-03-01,EUR,4000",
	}, "\n")

	batch, err := f.uc.IngestFile(ctx, usecase.IngestInput{
		Type:   domain.UploadJournalLines,
		Reader: strings.NewReader(csv),
	})
	require.Error(t, err)
	assert.Equal(t, domain.UploadFailed, batch.Status)

	stored, getErr := f.uploads.GetByID(ctx, batch.ID)
	require.NoError(t, getErr)
	assert.Equal(t, domain.UploadFailed, stored.Status)
	assert.NotEmpty(t, stored.ErrorMessage)
}
