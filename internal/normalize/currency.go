package normalize

import "strings"

// Currency strips an OCR'd amount down to digits, decimal points and
// thousands-separator commas. Commas are retained; arithmetic downstream
// strips them again before parsing.
func Currency(raw string) string {
	corrected := CorrectConfusions(raw)
	var b strings.Builder
	b.Grow(len(corrected))
	for _, r := range corrected {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// InvoiceNo strips an invoice number down to digits only. No length rule:
// invoice series vary by issuer.
func InvoiceNo(raw string) string {
	return digitsOf(CorrectConfusions(raw))
}
