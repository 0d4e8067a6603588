package csvmap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupledger/groupledger/internal/domain"
)

func TestConfigFor(t *testing.T) {
	for _, ut := range []domain.UploadType{
		domain.UploadJournalLines,
		domain.UploadCustomerInvoices,
		domain.UploadSupplierInvoices,
		domain.UploadCustomerContracts,
		domain.UploadTimeEntries,
		domain.UploadBankStatements,
		domain.UploadCustomerPayments,
		domain.UploadSupplierPayments,
		domain.UploadBillingInstallments,
		domain.UploadTaxDeclarations,
		domain.UploadSalesDeals,
	} {
		cfg, err := ConfigFor(ut)
		require.NoError(t, err, "type %s", ut)
		assert.Equal(t, ut, cfg.Type)
		assert.NotEmpty(t, cfg.EntityField)
		assert.NotEmpty(t, cfg.DateField)
		assert.NotEmpty(t, cfg.RequiredFields())
	}

	_, err := ConfigFor(domain.UploadType("balance_sheet"))
	assert.ErrorIs(t, err, domain.ErrUnknownUploadType)
}

func TestMapper_JournalRow(t *testing.T) {
	cfg, err := ConfigFor(domain.UploadJournalLines)
	require.NoError(t, err)

	headers := []string{"Journal", "Company", "Status", "Accounting Date", "Currency", "Ledger Account", "Ledger Debit Amount", "Ledger Credit Amount"}
	m := NewMapper(cfg, headers)

	row := m.MapRow(map[string]string{
		"Journal":             "JE-1001",
		"Company":             "Alpine Consulting B.V.",
		"Status":              "Posted",
		"Accounting Date":     "2024-03-15",
		"Currency":            "EUR",
		"Ledger Account":      "4000 Revenue",
		"Ledger Debit Amount": "",
		"Ledger Credit Amount": "1.250,00",
	})

	assert.Equal(t, "JE-1001", row.String("journal"))
	assert.Equal(t, "Alpine Consulting B.V.", row.String("company"))
	assert.Equal(t, "1250", row.Amount("creditAmount").String())
	assert.True(t, row.Amount("debitAmount").IsZero())
	require.NotNil(t, row.Date("accountingDate"))
	assert.Equal(t, "2024-03", m.Period(row, "2024-01"))
	assert.Equal(t, "Alpine Consulting B.V.", m.Entity(row))
	assert.Empty(t, m.MissingRequired(row))
}

func TestMapper_AliasedHeaders(t *testing.T) {
	cfg, err := ConfigFor(domain.UploadCustomerInvoices)
	require.NoError(t, err)

	// alternate aliases, extra whitespace, headers in odd case
	headers := []string{"Invoice Number", " entity ", "Customer Name", "STATUS", "Date", "Total Amount", "Currency Code"}
	m := NewMapper(cfg, headers)

	cols := m.Columns()
	assert.Equal(t, "Invoice Number", cols["invoice"])
	assert.Equal(t, " entity ", cols["company"])
	assert.Equal(t, "Total Amount", cols["invoiceAmount"])

	row := m.MapRow(map[string]string{
		"Invoice Number": "INV-42",
		" entity ":       "Nordic Data AB",
		"Customer Name":  "Acme Corp",
		"STATUS":         "Approved",
		"Date":           "1/31/24",
		"Total Amount":   "$12,000.00",
		"Currency Code":  "USD",
	})

	assert.Equal(t, "Nordic Data AB", m.Entity(row))
	assert.Equal(t, "12000", row.Amount("invoiceAmount").String())
	assert.Equal(t, "2024-01", m.Period(row, "2023-12"))
	assert.Empty(t, m.MissingRequired(row))
}

func TestMapper_MissingRequired(t *testing.T) {
	cfg, err := ConfigFor(domain.UploadCustomerInvoices)
	require.NoError(t, err)

	headers := []string{"Invoice", "Company", "Customer", "Invoice Status", "Invoice Date", "Invoice Amount", "Currency"}
	m := NewMapper(cfg, headers)

	row := m.MapRow(map[string]string{
		"Invoice":        "INV-7",
		"Company":        "",
		"Customer":       "Acme",
		"Invoice Status": "Approved",
		"Invoice Date":   "not a date",
		"Invoice Amount": "0",
		"Currency":       "EUR",
	})

	missing := m.MissingRequired(row)
	assert.ElementsMatch(t, []string{"company", "invoiceDate"}, missing)
}

func TestMapper_ZeroAmountIsPresent(t *testing.T) {
	cfg, err := ConfigFor(domain.UploadTimeEntries)
	require.NoError(t, err)

	headers := []string{"Worker", "Company", "Date", "Hours"}
	m := NewMapper(cfg, headers)
	row := m.MapRow(map[string]string{
		"Worker":  "J. Smit",
		"Company": "Alpine Consulting B.V.",
		"Date":    "2024-02-01",
		"Hours":   "0",
	})
	assert.Empty(t, m.MissingRequired(row))
}

func TestMapper_Unmapped(t *testing.T) {
	cfg, err := ConfigFor(domain.UploadJournalLines)
	require.NoError(t, err)

	headers := []string{"Journal", "Company", "Status", "Accounting Date", "Currency", "Ledger Account", " Approval Workflow ", "Reviewer"}
	m := NewMapper(cfg, headers)

	extra := m.Unmapped(map[string]string{
		"Journal":             "JE-1",
		"Company":             "Alpine Consulting B.V.",
		"Status":              "Posted",
		"Accounting Date":     "2024-03-15",
		"Currency":            "EUR",
		"Ledger Account":      "4000",
		" Approval Workflow ": " Two-step ",
		"Reviewer":            "",
	})

	// unconsumed non-empty cells only, keyed by normalized header
	assert.Equal(t, map[string]string{"approval workflow": "Two-step"}, extra)

	none := m.Unmapped(map[string]string{
		"Journal": "JE-2",
		"Company": "Alpine Consulting B.V.",
	})
	assert.Nil(t, none)
}

func TestReadFile(t *testing.T) {
	t.Run("pads short rows and keeps raw headers", func(t *testing.T) {
		data := "\ufeffCompany, Amount \nAcme,100\nBeta\n"
		headers, rows, err := ReadFile(strings.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, []string{"Company", " Amount "}, headers)
		require.Len(t, rows, 2)
		assert.Equal(t, "100", rows[0][" Amount "])
		assert.Equal(t, "", rows[1][" Amount "])
	})

	t.Run("skips blank lines", func(t *testing.T) {
		data := "Company,Amount\n,\nAcme,50\n"
		_, rows, err := ReadFile(strings.NewReader(data))
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("empty file", func(t *testing.T) {
		_, _, err := ReadFile(strings.NewReader("Company,Amount\n"))
		assert.ErrorIs(t, err, domain.ErrEmptyFile)
	})
}
