package domain

import "time"

// UploadType identifies the kind of CSV export a batch carries. Each code has
// a mapping table in the csvmap registry; adding a new export means adding a
// registry entry, not new code paths.
type UploadType string

const (
	UploadJournalLines        UploadType = "journal_lines"
	UploadCustomerInvoices    UploadType = "customer_invoices"
	UploadSupplierInvoices    UploadType = "supplier_invoices"
	UploadCustomerContracts   UploadType = "customer_contracts"
	UploadTimeEntries         UploadType = "time_entries"
	UploadBankStatements      UploadType = "bank_statements"
	UploadCustomerPayments    UploadType = "customer_payments"
	UploadSupplierPayments    UploadType = "supplier_payments"
	UploadBillingInstallments UploadType = "billing_installments"
	UploadTaxDeclarations     UploadType = "tax_declarations"
	UploadSalesDeals          UploadType = "hubspot_deals"
)

// UploadStatus is the batch lifecycle state. A batch moves
// pending -> processing -> completed|failed exactly once.
type UploadStatus string

const (
	UploadPending    UploadStatus = "pending"
	UploadProcessing UploadStatus = "processing"
	UploadCompleted  UploadStatus = "completed"
	UploadFailed     UploadStatus = "failed"
)

// UploadBatch tracks one submitted CSV file through ingestion. Period is
// derived from row dates, never user-supplied. A batch may span multiple
// entities, in which case OrganizationID is empty.
type UploadBatch struct {
	ID             string
	OrganizationID string
	Type           UploadType
	FileName       string
	Period         string
	Status         UploadStatus
	RecordCount    int
	SkippedCount   int
	ErrorMessage   string
	UploadedAt     time.Time
	CompletedAt    time.Time
}
