package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canonical ledger records, one variant per upload type. Every variant
// carries its owning batch, the raw entity name from the export, the resolved
// organization, and the derived reporting period. Amount fields are
// non-negative; direction is encoded by field choice (debit/credit,
// due/paid), not by sign. Metadata holds source columns that were not
// promoted to first-class fields.

// JournalLine is a general-ledger journal entry line.
type JournalLine struct {
	ID              string
	UploadID        string
	OrganizationID  string
	EntityName      string
	Period          string
	Journal         string
	JournalNumber   string
	Status          string
	AccountingDate  *time.Time
	Source          string
	Ledger          string
	Currency        string
	LedgerAccount   string
	AccountCategory AccountCategory
	DebitAmount     decimal.Decimal
	CreditAmount    decimal.Decimal
	LineMemo        string
	RevenueCategory string
	SpendCategory   string
	CostCenter      string
	Customer        string
	Project         string
	Worker          string
	Supplier        string
	// Intercompany pairing: lines sharing a match ID form one intercompany
	// transaction between InitiatingCompany and EntityName.
	InitiatingCompany   string
	IntercompanyMatchID string
	Metadata            map[string]string
}

// CustomerInvoice is an accounts-receivable invoice.
type CustomerInvoice struct {
	ID             string
	UploadID       string
	OrganizationID string
	EntityName     string
	Period         string
	Invoice        string
	Customer       string
	CustomerID     string
	Status         string
	InvoiceType    string
	InvoiceDate    *time.Time
	DueDate        *time.Time
	InvoiceAmount  decimal.Decimal
	AmountDue      decimal.Decimal
	TaxAmount      decimal.Decimal
	Currency       string
	PaymentStatus  string
	PaymentType    string
	Memo           string
	Metadata       map[string]string
}

// SupplierInvoice is an accounts-payable invoice.
type SupplierInvoice struct {
	ID              string
	UploadID        string
	OrganizationID  string
	EntityName      string
	Period          string
	SupplierInvoice string
	InvoiceNumber   string
	Supplier        string
	Status          string
	Intercompany    bool
	InvoiceDate     *time.Time
	AccountingDate  *time.Time
	DueDate         *time.Time
	InvoiceAmount   decimal.Decimal
	BalanceDue      decimal.Decimal
	TaxAmount       decimal.Decimal
	Currency        string
	PaymentType     string
	Memo            string
	Metadata        map[string]string
}

// CustomerContract is a recurring-revenue contract.
type CustomerContract struct {
	ID               string
	UploadID         string
	OrganizationID   string
	EntityName       string
	Period           string
	Contract         string
	Customer         string
	CustomerID       string
	Status           string
	ContractType     string
	StartDate        *time.Time
	EndDate          *time.Time
	EffectiveDate    *time.Time
	ContractAmount   decimal.Decimal
	RemainingAmount  decimal.Decimal
	Currency         string
	BillingFrequency string
	Metadata         map[string]string
}

// TimeEntry is one reported timesheet line.
type TimeEntry struct {
	ID             string
	UploadID       string
	OrganizationID string
	EntityName     string
	Period         string
	Worker         string
	Date           *time.Time
	TotalHours     decimal.Decimal
	BillableHours  decimal.Decimal
	AmountToBill   decimal.Decimal
	RateToBill     decimal.Decimal
	BillingStatus  string
	Customer       string
	Project        string
	Metadata       map[string]string
}

// CustomerPayment is a received customer payment.
type CustomerPayment struct {
	ID             string
	UploadID       string
	OrganizationID string
	EntityName     string
	Period         string
	Payment        string
	Customer       string
	CustomerID     string
	PaymentDate    *time.Time
	Amount         decimal.Decimal
	Currency       string
	Status         string
	PaymentType    string
	Metadata       map[string]string
}

// SupplierPayment is an outgoing supplier payment.
type SupplierPayment struct {
	ID                string
	UploadID          string
	OrganizationID    string
	EntityName        string
	Period            string
	TransactionNumber string
	Supplier          string
	PaymentDate       *time.Time
	Amount            decimal.Decimal
	Currency          string
	Status            string
	PaymentType       string
	Metadata          map[string]string
}

// BankDirection marks a bank statement line as credit (cash in) or
// debit (cash out).
type BankDirection string

const (
	BankCredit BankDirection = "CR"
	BankDebit  BankDirection = "DR"
)

// BankStatementLine is one statement transaction on a bank account.
type BankStatementLine struct {
	ID             string
	UploadID       string
	OrganizationID string
	EntityName     string
	Period         string
	Date           *time.Time
	Amount         decimal.Decimal
	Direction      BankDirection
	Currency       string
	Description    string
	BankAccount    string
	Metadata       map[string]string
}

// BillingInstallment is a scheduled future billing event on a contract.
type BillingInstallment struct {
	ID             string
	UploadID       string
	OrganizationID string
	EntityName     string
	Period         string
	Customer       string
	Contract       string
	Date           *time.Time
	Amount         decimal.Decimal
	Currency       string
	Status         string
	Metadata       map[string]string
}

// TaxDeclarationLine is one line of a filed tax declaration.
type TaxDeclarationLine struct {
	ID             string
	UploadID       string
	OrganizationID string
	EntityName     string
	Period         string
	StartDate      *time.Time
	EndDate        *time.Time
	Description    string
	Amount         decimal.Decimal
	Component      string
	Metadata       map[string]string
}

// SalesDeal is a sales-pipeline deal from the CRM export.
type SalesDeal struct {
	ID             string
	UploadID       string
	OrganizationID string
	EntityName     string
	Period         string
	RecordID       string
	Name           string
	Stage          string
	CreateDate     *time.Time
	CloseDate      *time.Time
	Amount         decimal.Decimal
	Owner          string
	DealType       string
	Metadata       map[string]string
}
