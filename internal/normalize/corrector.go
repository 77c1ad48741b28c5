// Package normalize turns raw OCR-extracted strings into typed, validated
// field values. Normalizers never fail hard: malformed input comes back as a
// string carrying the InvalidSuffix sentinel so downstream reviewers can see
// what the scanner actually produced.
package normalize

import "strings"

// InvalidSuffix marks a value that could not be normalized. The payload in
// front of the marker is kept for human review.
const InvalidSuffix = " [INVALID]"

// confusions maps visually confusable OCR glyphs to the digit they almost
// always stand for on these forms. Case-sensitive on purpose: only the
// listed glyphs are known-safe to substitute.
var confusions = map[rune]rune{
	'O': '0',
	'o': '0',
	'I': '1',
	'l': '1',
	'S': '5',
	'p': '0',
}

// CorrectConfusions applies the fixed glyph substitution table
// character-by-character. Runs before digit extraction in every numeric
// normalizer.
func CorrectConfusions(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if d, ok := confusions[r]; ok {
			b.WriteRune(d)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Invalid reports whether a normalized value carries the invalid marker.
func Invalid(s string) bool {
	return strings.HasSuffix(s, "[INVALID]")
}

// digitsOf strips every non-digit rune.
func digitsOf(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
