// Package textutil cleans free-text mention values (names, addresses)
// before they enter the extraction map. Scanned forms come back with
// decomposed accents (n + combining tilde instead of ñ) and ragged
// whitespace.
package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var reMultiSpace = regexp.MustCompile(`[ \t]{2,}`)

// Clean NFC-composes the string and collapses runs of spaces and tabs.
// Line breaks inside multi-line mentions (form titles, addresses) are kept.
func Clean(s string) string {
	if s == "" {
		return s
	}
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = reMultiSpace.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
