package constants

// DocType identifies which extraction profile applies to a document.
type DocType string

// Stable values (these exact strings arrive in upstream object metadata
// and double as the destination collection names).
const (
	DocTypeForm2307       DocType = "form_2307"       // BIR 2307 withholding certificate
	DocTypeServiceInvoice DocType = "service_invoice" // service invoice with line items
	DocTypeExpense        DocType = "expense"         // expense receipt (invoice profile alias)
)

// Entity types emitted by the extraction processors for tabular sections.
const (
	EntityMonthlyIncomeTable = "details_monthly_income_payment_taxes"
	EntityInvoiceItemTable   = "Item_Table"
	EntityInvoiceTotalsTable = "Item_Table_2"
)

// Output keys the table sequences are stored under in the final record.
const (
	TableKeyWithholding   = "table_rows"
	TableKeyInvoiceItems  = "Item_Table"
	TableKeyInvoiceTotals = "Item_Table_2"
)

// Column names for the 2307 monthly income/tax details table.
var WithholdingTableColumns = []string{
	"income_payment_subject",
	"atc",
	"first_month",
	"second_month",
	"third_month",
	"total_quarter",
	"tax_withheld_quarter",
}

// Column names for the service invoice tables.
var (
	InvoiceItemColumns   = []string{"Amount", "Item_Description_Nature_Of_Service"}
	InvoiceTotalsColumns = []string{"Less_Witholding_Tax", "Total_Amount_Due"}
)
