// Package derive computes the record fields that are not extracted but
// calculated: quarter assignment and the table reconciliations.
package derive

import (
	"github.com/araddon/dateparse"
)

var quarterNames = [4]string{"1st Quarter", "2nd Quarter", "3rd Quarter", "4th Quarter"}

// Quarter maps a date string (lenient parse, any common layout) to its
// quarter-of-year label. Returns ("", false) when the input is empty or
// unparseable; a missing date is not an error, the field just stays unset.
func Quarter(dateStr string) (string, bool) {
	if dateStr == "" {
		return "", false
	}
	t, err := dateparse.ParseAny(dateStr)
	if err != nil {
		return "", false
	}
	m := int(t.Month())
	return quarterNames[(m-1)/3], true
}
