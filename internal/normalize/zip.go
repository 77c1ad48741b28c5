package normalize

// zipLen is the Philippine postal code length.
const zipLen = 4

// PostalCode normalizes a ZIP code to four digits. Any other digit count
// comes back as "<digits> [INVALID]".
func PostalCode(raw string) string {
	digits := digitsOf(CorrectConfusions(raw))
	if len(digits) == zipLen {
		return digits
	}
	return digits + InvalidSuffix
}
