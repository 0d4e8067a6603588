package csvmap

import (
	"github.com/groupledger/groupledger/internal/domain"
)

// Transform is the normalization applied to a mapped cell.
type Transform int

const (
	// TransformNone passes the trimmed cell through as a string.
	TransformNone Transform = iota
	// TransformAmount applies ParseAmount.
	TransformAmount
	// TransformDate applies ParseDate.
	TransformDate
)

// Field maps one canonical field to its possible CSV column names.
type Field struct {
	Name      string
	Required  bool
	Aliases   []string
	Transform Transform
}

// Config is the mapping table for one upload type. EntityField names the
// canonical field carrying the entity name; DateField names the field whose
// date drives period derivation.
type Config struct {
	Type        domain.UploadType
	Description string
	EntityField string
	DateField   string
	Fields      []Field
}

// RequiredFields lists the canonical field names that must be present for a
// row to be accepted.
func (c Config) RequiredFields() []string {
	var required []string
	for _, f := range c.Fields {
		if f.Required {
			required = append(required, f.Name)
		}
	}
	return required
}

// ConfigFor returns the mapping table registered for an upload type.
// Upload types without a table yield domain.ErrUnknownUploadType.
func ConfigFor(t domain.UploadType) (Config, error) {
	cfg, ok := registry[t]
	if !ok {
		return Config{}, domain.ErrUnknownUploadType
	}
	return cfg, nil
}

// registry holds one mapping table per supported export. Adding an export
// means adding an entry here, nothing else.
var registry = map[domain.UploadType]Config{
	domain.UploadJournalLines: {
		Type:        domain.UploadJournalLines,
		Description: "General ledger journal entries",
		EntityField: "company",
		DateField:   "accountingDate",
		Fields: []Field{
			{Name: "journal", Required: true, Aliases: []string{"Journal", "Journal Entry", "Journal ID"}},
			{Name: "journalNumber", Aliases: []string{"Journal Number", "Document Number"}},
			{Name: "company", Required: true, Aliases: []string{"Company", "Entity", "Legal Entity"}},
			{Name: "intercompanyInitiatingCompany", Aliases: []string{"Intercompany Initiating Company", "IC Company"}},
			{Name: "status", Required: true, Aliases: []string{"Status", "Journal Status"}},
			{Name: "accountingDate", Required: true, Aliases: []string{"Accounting Date", "Date", "Transaction Date"}, Transform: TransformDate},
			{Name: "source", Aliases: []string{"Source", "Journal Source"}},
			{Name: "ledger", Aliases: []string{"Ledger", "Ledger Type"}},
			{Name: "currency", Required: true, Aliases: []string{"Currency", "Currency Code"}},
			{Name: "ledgerAccount", Required: true, Aliases: []string{"Ledger Account", "Account", "GL Account"}},
			{Name: "debitAmount", Aliases: []string{"Ledger Debit Amount", "Debit Amount", "Debit"}, Transform: TransformAmount},
			{Name: "creditAmount", Aliases: []string{"Ledger Credit Amount", "Credit Amount", "Credit"}, Transform: TransformAmount},
			{Name: "lineMemo", Aliases: []string{"Line Memo", "Memo", "Description"}},
			{Name: "revenueCategory", Aliases: []string{"Revenue Category"}},
			{Name: "spendCategory", Aliases: []string{"Spend Category as Worktag", "Spend Category"}},
			{Name: "costCenter", Aliases: []string{"Cost Center"}},
			{Name: "customer", Aliases: []string{"Customer"}},
			{Name: "project", Aliases: []string{"Project"}},
			{Name: "worker", Aliases: []string{"Worker", "Employee"}},
			{Name: "supplier", Aliases: []string{"Supplier as Worktag", "Supplier"}},
			{Name: "intercompanyMatchId", Aliases: []string{"Intercompany Match ID", "IC Match ID"}},
		},
	},

	domain.UploadCustomerInvoices: {
		Type:        domain.UploadCustomerInvoices,
		Description: "Customer invoices (AR)",
		EntityField: "company",
		DateField:   "invoiceDate",
		Fields: []Field{
			{Name: "invoice", Required: true, Aliases: []string{"Invoice", "Invoice Number", "Invoice ID"}},
			{Name: "company", Required: true, Aliases: []string{"Company", "Entity"}},
			{Name: "customer", Required: true, Aliases: []string{"Customer", "Customer Name"}},
			{Name: "customerId", Aliases: []string{"Customer ID", "Customer Code"}},
			{Name: "invoiceStatus", Required: true, Aliases: []string{"Invoice Status", "Status"}},
			{Name: "invoiceType", Aliases: []string{"Invoice Type", "Type"}},
			{Name: "invoiceDate", Required: true, Aliases: []string{"Invoice Date", "Date"}, Transform: TransformDate},
			{Name: "invoiceAmount", Required: true, Aliases: []string{"Invoice Amount", "Amount", "Total Amount"}, Transform: TransformAmount},
			{Name: "amountDue", Aliases: []string{"Amount Due", "Outstanding Amount"}, Transform: TransformAmount},
			{Name: "taxAmount", Aliases: []string{"Tax Amount", "VAT Amount"}, Transform: TransformAmount},
			{Name: "currency", Required: true, Aliases: []string{"Currency", "Currency Code"}},
			{Name: "dueDate", Aliases: []string{"Due Date", "Payment Due Date"}, Transform: TransformDate},
			{Name: "paymentStatus", Aliases: []string{"Payment Status"}},
			{Name: "paymentType", Aliases: []string{"Payment Type"}},
			{Name: "memo", Aliases: []string{"Memo", "Description"}},
		},
	},

	domain.UploadSupplierInvoices: {
		Type:        domain.UploadSupplierInvoices,
		Description: "Supplier invoices (AP)",
		EntityField: "company",
		DateField:   "invoiceDate",
		Fields: []Field{
			{Name: "supplierInvoice", Required: true, Aliases: []string{"Supplier Invoice", "Invoice", "Invoice Number"}},
			{Name: "invoiceNumber", Aliases: []string{"Invoice Number", "Supplier Invoice Number"}},
			{Name: "company", Required: true, Aliases: []string{"Company", "Entity"}},
			{Name: "intercompany", Aliases: []string{"Intercompany", "Direct Intercompany"}},
			{Name: "status", Required: true, Aliases: []string{"Status", "Invoice Status"}},
			{Name: "supplier", Required: true, Aliases: []string{"Supplier", "Vendor", "Supplier Name"}},
			{Name: "supplierInvoiceNumber", Aliases: []string{"Supplier's Invoice Number", "Supplier Invoice Number"}},
			{Name: "invoiceDate", Required: true, Aliases: []string{"Invoice Date", "Date"}, Transform: TransformDate},
			{Name: "accountingDate", Aliases: []string{"Accounting Date"}, Transform: TransformDate},
			{Name: "dueDate", Aliases: []string{"Due Date", "Payment Due Date"}, Transform: TransformDate},
			{Name: "invoiceAmount", Required: true, Aliases: []string{"Invoice Amount", "Amount", "Total Amount"}, Transform: TransformAmount},
			{Name: "balanceDue", Aliases: []string{"Balance Due", "Amount Due"}, Transform: TransformAmount},
			{Name: "taxAmount", Aliases: []string{"Tax Amount", "VAT Amount"}, Transform: TransformAmount},
			{Name: "currency", Required: true, Aliases: []string{"Currency", "Currency Code"}},
			{Name: "memo", Aliases: []string{"Memo", "Description"}},
			{Name: "paymentType", Aliases: []string{"Payment Type"}},
		},
	},

	domain.UploadCustomerContracts: {
		Type:        domain.UploadCustomerContracts,
		Description: "Customer contracts (revenue recognition)",
		EntityField: "company",
		DateField:   "contractStartDate",
		Fields: []Field{
			{Name: "contract", Required: true, Aliases: []string{"Contract", "Contract Number", "Contract ID"}},
			{Name: "company", Required: true, Aliases: []string{"Company", "Entity"}},
			{Name: "customer", Required: true, Aliases: []string{"Sold-To Customer", "Customer", "Customer Name"}},
			{Name: "customerId", Aliases: []string{"Customer ID", "Customer Code"}},
			{Name: "contractStatus", Required: true, Aliases: []string{"Contract Status", "Status"}},
			{Name: "contractType", Aliases: []string{"Contract Type"}},
			{Name: "contractStartDate", Required: true, Aliases: []string{"Contract Start Date", "Start Date"}, Transform: TransformDate},
			{Name: "contractEndDate", Aliases: []string{"Contract End Date", "End Date"}, Transform: TransformDate},
			{Name: "effectiveDate", Aliases: []string{"Effective Date"}, Transform: TransformDate},
			{Name: "contractAmount", Required: true, Aliases: []string{"Contract Amount", "Amount", "Total Contract Value"}, Transform: TransformAmount},
			{Name: "remainingAmount", Aliases: []string{"Remaining Amount"}, Transform: TransformAmount},
			{Name: "currency", Required: true, Aliases: []string{"Currency", "Currency Code"}},
			{Name: "billingFrequency", Aliases: []string{"Billing Frequency", "Frequency"}},
		},
	},

	domain.UploadTimeEntries: {
		Type:        domain.UploadTimeEntries,
		Description: "Time tracking entries",
		EntityField: "company",
		DateField:   "date",
		Fields: []Field{
			{Name: "worker", Required: true, Aliases: []string{"Worker", "Employee", "Employee Name"}},
			{Name: "company", Required: true, Aliases: []string{"Contract Company", "Company", "Entity"}},
			{Name: "date", Required: true, Aliases: []string{"Date", "Entry Date", "Work Date"}, Transform: TransformDate},
			{Name: "hours", Required: true, Aliases: []string{"Total Reported Hours", "Hours", "Time", "Duration"}, Transform: TransformAmount},
			{Name: "billableHours", Aliases: []string{"Billable Hours", "Billable Time"}, Transform: TransformAmount},
			{Name: "amountToBill", Aliases: []string{"Amount To Bill", "YW RPT CC Amount to Bill"}, Transform: TransformAmount},
			{Name: "rateToBill", Aliases: []string{"Rate To Bill", "Rate", "Hourly Rate", "Billing Rate"}, Transform: TransformAmount},
			{Name: "customer", Aliases: []string{"Project Customer", "Customer", "Client"}},
			{Name: "project", Aliases: []string{"Reported Project", "Project", "Project Name"}},
			{Name: "billingStatus", Aliases: []string{"Customer Billing Status", "Billing Status"}},
		},
	},

	domain.UploadBankStatements: {
		Type:        domain.UploadBankStatements,
		Description: "Bank statement transactions",
		EntityField: "company",
		DateField:   "transactionDate",
		Fields: []Field{
			{Name: "company", Required: true, Aliases: []string{"Company", "Entity"}},
			{Name: "transactionDate", Required: true, Aliases: []string{"Transaction Date", "Date", "Value Date"}, Transform: TransformDate},
			{Name: "amount", Required: true, Aliases: []string{"Amount", "Transaction Amount", "Statement Line Amount"}, Transform: TransformAmount},
			{Name: "debitCredit", Aliases: []string{"Debit/Credit", "Debit Credit", "DR/CR"}},
			{Name: "currency", Required: true, Aliases: []string{"Currency", "Currency Code"}},
			{Name: "description", Aliases: []string{"Description", "Memo", "Transaction Description"}},
			{Name: "bankAccount", Aliases: []string{"Bank Account", "Account"}},
		},
	},

	domain.UploadCustomerPayments: {
		Type:        domain.UploadCustomerPayments,
		Description: "Customer payment transactions",
		EntityField: "company",
		DateField:   "paymentDate",
		Fields: []Field{
			{Name: "payment", Required: true, Aliases: []string{"Payment", "Payment ID", "Transaction ID"}},
			{Name: "company", Required: true, Aliases: []string{"Company", "Entity"}},
			{Name: "customer", Required: true, Aliases: []string{"Customer", "Customer Name"}},
			{Name: "customerId", Aliases: []string{"Customer ID", "Customer Code"}},
			{Name: "paymentDate", Required: true, Aliases: []string{"Payment Date", "Date"}, Transform: TransformDate},
			{Name: "paymentAmount", Required: true, Aliases: []string{"Payment Amount", "Amount"}, Transform: TransformAmount},
			{Name: "currency", Required: true, Aliases: []string{"Currency", "Currency Code"}},
			{Name: "paymentStatus", Aliases: []string{"Payment Status", "Status"}},
			{Name: "paymentType", Aliases: []string{"Payment Type"}},
		},
	},

	domain.UploadSupplierPayments: {
		Type:        domain.UploadSupplierPayments,
		Description: "Supplier payment transactions",
		EntityField: "company",
		DateField:   "paymentDate",
		Fields: []Field{
			{Name: "transactionNumber", Aliases: []string{"Transaction Number", "Payment ID"}},
			{Name: "company", Required: true, Aliases: []string{"Company", "Entity"}},
			{Name: "paymentDate", Required: true, Aliases: []string{"Payment Date", "Date"}, Transform: TransformDate},
			{Name: "paymentStatus", Aliases: []string{"Payment Status", "Status"}},
			{Name: "supplier", Required: true, Aliases: []string{"Supplier", "Vendor", "Supplier Name"}},
			{Name: "paymentType", Aliases: []string{"Payment Type"}},
			{Name: "amount", Required: true, Aliases: []string{"Amount in Payment Currency", "Amount", "Payment Amount"}, Transform: TransformAmount},
			{Name: "currency", Required: true, Aliases: []string{"Currency", "Currency Code"}},
		},
	},

	domain.UploadBillingInstallments: {
		Type:        domain.UploadBillingInstallments,
		Description: "Scheduled billing installments",
		EntityField: "company",
		DateField:   "installmentDate",
		Fields: []Field{
			{Name: "company", Required: true, Aliases: []string{"Company", "Entity"}},
			{Name: "customer", Required: true, Aliases: []string{"Customer", "Customer Name"}},
			{Name: "contract", Aliases: []string{"Contract", "Contract Number"}},
			{Name: "installmentDate", Required: true, Aliases: []string{"Installment Date", "Date", "Recognition Date", "Invoice Date"}, Transform: TransformDate},
			{Name: "amount", Required: true, Aliases: []string{"Amount", "Installment Amount", "Total Amount"}, Transform: TransformAmount},
			{Name: "installmentStatus", Aliases: []string{"Installment Status", "Status"}},
			{Name: "currency", Required: true, Aliases: []string{"Currency", "Currency Code"}},
		},
	},

	domain.UploadTaxDeclarations: {
		Type:        domain.UploadTaxDeclarations,
		Description: "Tax declaration lines",
		EntityField: "companies",
		DateField:   "startDate",
		Fields: []Field{
			{Name: "companies", Required: true, Aliases: []string{"Companies", "Company", "Entity"}},
			{Name: "startDate", Required: true, Aliases: []string{"Start Date", "Period Start"}, Transform: TransformDate},
			{Name: "endDate", Required: true, Aliases: []string{"End Date", "Period End"}, Transform: TransformDate},
			{Name: "lineDescription", Required: true, Aliases: []string{"Line Description", "Description"}},
			{Name: "lineAmount", Required: true, Aliases: []string{"Line Amount", "Amount"}, Transform: TransformAmount},
			{Name: "taxDeclarationComponent", Aliases: []string{"Tax Declaration Component", "Component"}},
		},
	},

	domain.UploadSalesDeals: {
		Type:        domain.UploadSalesDeals,
		Description: "Sales pipeline deals",
		EntityField: "associatedCompany",
		DateField:   "createDate",
		Fields: []Field{
			{Name: "recordId", Required: true, Aliases: []string{"Record ID", "Deal ID"}},
			{Name: "associatedCompany", Required: true, Aliases: []string{"Associated Company", "Company"}},
			{Name: "dealName", Required: true, Aliases: []string{"Deal Name", "Name"}},
			{Name: "dealStage", Required: true, Aliases: []string{"Deal Stage", "Stage"}},
			{Name: "createDate", Required: true, Aliases: []string{"Create Date", "Created Date"}, Transform: TransformDate},
			{Name: "closeDate", Aliases: []string{"Close Date", "Closed Date"}, Transform: TransformDate},
			{Name: "amount", Aliases: []string{"Amount EUR", "Amount", "Deal Amount"}, Transform: TransformAmount},
			{Name: "dealOwner", Aliases: []string{"Deal owner", "Owner"}},
			{Name: "dealType", Aliases: []string{"Initial Deal Type", "Deal Type", "Type"}},
		},
	},
}
