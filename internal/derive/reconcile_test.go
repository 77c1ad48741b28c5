package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cpaul777/docai-parse-codes/internal/record"
)

func TestReconcileWithholdingFirstQualifyingTotalWins(t *testing.T) {
	rows := []record.TableRow{
		{"income_payment_subject": "Rentals", "total_quarter": "125,000.00", "tax_withheld_quarter": "6,250.00"},
		{"income_payment_subject": "Total", "total_quarter": "125,000.00", "tax_withheld_quarter": "1,250.00"},
		{"income_payment_subject": "Total", "total_quarter": "999,999.00", "tax_withheld_quarter": "9,999.00"},
	}

	got := ReconcileWithholding(rows)
	require.NotNil(t, got)
	assert.Equal(t, 123750.00, got[FieldNetAmount])
	assert.Equal(t, 125000.00, got[FieldGrossAmount])
	assert.Equal(t, 1250.00, got[FieldWithheldAmount])
}

func TestReconcileWithholdingSkipsEmptyTotalRows(t *testing.T) {
	// A "Total" row with blank amounts (the trailing money-payments block of
	// the form) must not be picked over a later populated one.
	rows := []record.TableRow{
		{"income_payment_subject": "Total", "total_quarter": "", "tax_withheld_quarter": ""},
		{"income_payment_subject": "Total", "total_quarter": "50,000.00", "tax_withheld_quarter": "2,500.00"},
	}

	got := ReconcileWithholding(rows)
	require.NotNil(t, got)
	assert.Equal(t, 47500.00, got[FieldNetAmount])
}

func TestReconcileWithholdingMoneyPaymentsFallback(t *testing.T) {
	rows := []record.TableRow{
		{"income_payment_subject": "Rentals", "total_quarter": "10.00", "tax_withheld_quarter": ""},
		{"income_payment_subject": "Money Payments Subject to Withholding of", "total_quarter": "80,000.00", "tax_withheld_quarter": "4,000.00"},
	}

	got := ReconcileWithholding(rows)
	require.NotNil(t, got)
	assert.Equal(t, 80000.00, got[FieldGrossAmount])
	assert.Equal(t, 4000.00, got[FieldWithheldAmount])
	assert.Equal(t, 76000.00, got[FieldNetAmount])
}

func TestReconcileWithholdingNoRows(t *testing.T) {
	assert.Nil(t, ReconcileWithholding(nil))
	assert.Nil(t, ReconcileWithholding([]record.TableRow{}))
}

func TestReconcileWithholdingNoQualifyingRow(t *testing.T) {
	rows := []record.TableRow{
		{"income_payment_subject": "Rentals", "total_quarter": "125,000.00", "tax_withheld_quarter": "6,250.00"},
	}
	assert.Nil(t, ReconcileWithholding(rows))
}

func TestReconcileInvoice(t *testing.T) {
	items := []record.TableRow{{"Amount": "10,000.00", "Item_Description_Nature_Of_Service": "Consulting"}}
	totals := []record.TableRow{{"Less_Witholding_Tax": "1,000.00", "Total_Amount_Due": "9,000.00"}}

	got, zeroGross := ReconcileInvoice(items, totals)
	require.NotNil(t, got)
	assert.False(t, zeroGross)
	assert.Equal(t, 10000.00, got[FieldGrossAmount])
	assert.Equal(t, 1000.00, got[FieldWithheldAmount])
	assert.Equal(t, 10.00, got[FieldTaxRate])
	assert.Equal(t, 10000.00, got[FieldNetReceipt])
	assert.Equal(t, 9000.00, got[FieldNetAmount])
}

func TestReconcileInvoiceZeroGross(t *testing.T) {
	items := []record.TableRow{{"Amount": "0"}}
	totals := []record.TableRow{{"Less_Witholding_Tax": "100.00", "Total_Amount_Due": "0"}}

	got, zeroGross := ReconcileInvoice(items, totals)
	require.NotNil(t, got)
	assert.True(t, zeroGross)
	assert.Equal(t, 0.00, got[FieldTaxRate])
	assert.Equal(t, 100.00, got[FieldWithheldAmount])
}

func TestReconcileInvoiceRequiresBothTables(t *testing.T) {
	items := []record.TableRow{{"Amount": "10.00"}}
	got, _ := ReconcileInvoice(items, nil)
	assert.Nil(t, got)
	got, _ = ReconcileInvoice(nil, []record.TableRow{{"Total_Amount_Due": "10.00"}})
	assert.Nil(t, got)
}

func TestParseAmount(t *testing.T) {
	assert.Equal(t, 125000.0, parseAmount("125,000.00"))
	assert.Equal(t, 0.0, parseAmount(""))
	assert.Equal(t, 0.0, parseAmount("n/a"))
	assert.Equal(t, 1250.5, parseAmount(" 1,250.50 "))
}
