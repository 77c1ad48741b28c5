package normalize

// Kind selects which normalizer a field gets. Profiles assign kinds to
// field names; the pipeline applies them generically.
type Kind string

const (
	KindDate        Kind = "date"
	KindTaxID       Kind = "tax_id"
	KindPostalCode  Kind = "postal_code"
	KindCurrency    Kind = "currency"
	KindInvoiceNo   Kind = "invoice_number"
	KindPassthrough Kind = "passthrough"
)

// Apply runs the normalizer for kind over raw. Unknown kinds pass through
// unchanged (same as KindPassthrough).
func Apply(kind Kind, raw string) string {
	switch kind {
	case KindDate:
		return Date(raw)
	case KindTaxID:
		return TaxID(raw)
	case KindPostalCode:
		return PostalCode(raw)
	case KindCurrency:
		return Currency(raw)
	case KindInvoiceNo:
		return InvoiceNo(raw)
	default:
		return raw
	}
}
