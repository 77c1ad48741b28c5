package normalize

import (
	"strconv"
	"time"
)

// dateLayout is the output (and validation) format: MM-DD-YYYY.
const dateLayout = "01-02-2006"

// Date normalizes an OCR'd date string to MM-DD-YYYY.
//
// The scanner emits dates in shapes like "3-1-2025", "03-1-2025",
// "03-01-2025" or "312025", often with confused glyphs. Strategy: apply the
// confusion table, keep only digits, take the last four digits as the year
// and infer month/day from the remainder. A 4-digit remainder splits 2+2;
// a 3- or 2-digit remainder takes the first digit as the month and the rest
// as the day. If the calendar rejects that, retry with a naive
// first-two/rest split. Anything still unparseable comes back as
// "<corrected raw> [INVALID]".
func Date(raw string) string {
	corrected := CorrectConfusions(raw)
	digits := digitsOf(corrected)

	if len(digits) < 6 || len(digits) > 8 {
		return corrected + InvalidSuffix
	}

	year := digits[len(digits)-4:]
	mmdd := digits[:len(digits)-4]

	var month, day string
	switch len(mmdd) {
	case 4:
		month, day = mmdd[:2], mmdd[2:]
	case 3, 2:
		month, day = mmdd[:1], mmdd[1:]
	}

	// Inherited quirk: expand a 2-digit year only when "20"+year is the
	// current calendar year. Unreachable with the 6..8 digit gate above
	// (the year slice is always 4 digits) but kept for parity with the
	// production rule set.
	if len(year) == 2 && "20"+year == strconv.Itoa(time.Now().Year()) {
		year = "20" + year
	}

	if dt, err := time.Parse(dateLayout, zpad2(month)+"-"+zpad2(day)+"-"+year); err == nil {
		return dt.Format(dateLayout)
	}

	// Second chance: naive first-two/rest split.
	m2, d2 := mmdd[:min(2, len(mmdd))], mmdd[min(2, len(mmdd)):]
	if dt, err := time.Parse(dateLayout, zpad2(m2)+"-"+zpad2(d2)+"-"+year); err == nil {
		return dt.Format(dateLayout)
	}

	return corrected + InvalidSuffix
}

func zpad2(s string) string {
	for len(s) < 2 {
		s = "0" + s
	}
	return s
}
