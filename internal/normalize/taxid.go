package normalize

// TIN digit-count bounds. Exactly nine digits is the base TIN; ten to
// twelve digits carry a branch-code suffix as a fourth group.
const (
	tinBaseLen  = 9
	tinUpperLen = 13 // exclusive
)

// TaxID normalizes a Philippine TIN to XXX-XXX-XXX, or XXX-XXX-XXX-XXXX
// when a branch code is present. Digit counts outside [9,13) still come
// back in the four-group shape, tagged invalid.
func TaxID(raw string) string {
	digits := digitsOf(CorrectConfusions(raw))

	switch n := len(digits); {
	case n == tinBaseLen:
		return digits[:3] + "-" + digits[3:6] + "-" + digits[6:]
	case n > tinBaseLen && n < tinUpperLen:
		return digits[:3] + "-" + digits[3:6] + "-" + digits[6:9] + "-" + digits[9:]
	default:
		return groupTIN(digits) + InvalidSuffix
	}
}

// groupTIN formats whatever digits exist into the four-group shape,
// tolerating short input.
func groupTIN(digits string) string {
	groups := []string{
		sliceOf(digits, 0, 3),
		sliceOf(digits, 3, 6),
		sliceOf(digits, 6, 9),
		sliceOf(digits, 9, len(digits)),
	}
	out := groups[0]
	for _, g := range groups[1:] {
		out += "-" + g
	}
	return out
}

func sliceOf(s string, lo, hi int) string {
	if lo > len(s) {
		lo = len(s)
	}
	if hi > len(s) {
		hi = len(s)
	}
	if hi < lo {
		hi = lo
	}
	return s[lo:hi]
}
