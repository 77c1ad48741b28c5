package derive

import (
	"math"
	"strconv"
	"strings"

	"github.com/Cpaul777/docai-parse-codes/internal/record"
)

// Derived field names.
const (
	FieldNetAmount      = "net_amount"
	FieldGrossAmount    = "gross_amount"
	FieldWithheldAmount = "withheld_amount"
	FieldTaxRate        = "tax_rate"
	FieldNetReceipt     = "net_receipt"
)

// Withholding table columns the reconciliation reads.
const (
	colSubject     = "income_payment_subject"
	colTotal       = "total_quarter"
	colTaxWithheld = "tax_withheld_quarter"
)

// Invoice table columns the reconciliation reads.
const (
	colAmount         = "Amount"
	colLessWithheld   = "Less_Witholding_Tax"
	colTotalAmountDue = "Total_Amount_Due"
)

// ReconcileWithholding finds the certificate's summary row and derives the
// net/gross/withheld amounts from it. The summary row is the first row, in
// table order, whose subject contains "Total" with both the quarter total
// and the tax withheld populated; when no Total row qualifies, the first
// qualifying "Money Payments" row stands in. Returns nil when there are no
// rows or no row qualifies — the record is then left unmodified.
func ReconcileWithholding(rows []record.TableRow) map[string]float64 {
	summary := findSummaryRow(rows, "Total")
	if summary == nil {
		summary = findSummaryRow(rows, "Money Payments")
	}
	if summary == nil {
		return nil
	}

	tq := parseAmount(summary[colTotal])
	twq := parseAmount(summary[colTaxWithheld])

	return map[string]float64{
		FieldNetAmount:      round2(tq - twq),
		FieldGrossAmount:    round2(tq),
		FieldWithheldAmount: round2(twq),
	}
}

func findSummaryRow(rows []record.TableRow, subjectFragment string) record.TableRow {
	for _, row := range rows {
		if !strings.Contains(row[colSubject], subjectFragment) {
			continue
		}
		if row[colTotal] == "" || row[colTaxWithheld] == "" {
			continue
		}
		return row
	}
	return nil
}

// ReconcileInvoice derives the invoice amounts from the first line item and
// the first totals row. Both tables must be non-empty; otherwise nil is
// returned and the record is left unmodified. A zero gross amount yields a
// zero tax rate (division guard); gotZeroGross reports it so the caller can
// log the anomaly.
func ReconcileInvoice(items, totals []record.TableRow) (derived map[string]float64, gotZeroGross bool) {
	if len(items) == 0 || len(totals) == 0 {
		return nil, false
	}

	gross := parseAmount(items[0][colAmount])
	withheld := parseAmount(totals[0][colLessWithheld])
	net := parseAmount(totals[0][colTotalAmountDue])

	taxRate := 0.0
	if gross != 0 {
		taxRate = withheld / gross * 100
	} else {
		gotZeroGross = true
	}

	return map[string]float64{
		FieldGrossAmount:    round2(gross),
		FieldWithheldAmount: round2(withheld),
		FieldTaxRate:        round2(taxRate),
		FieldNetReceipt:     round2(gross),
		FieldNetAmount:      round2(net),
	}, gotZeroGross
}

// parseAmount strips thousands-separator commas and parses the decimal.
// Absent or malformed values count as 0.
func parseAmount(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
