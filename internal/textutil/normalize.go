// Package textutil provides accent and case insensitive text matching.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds s for comparison: canonical decomposition, combining marks
// removed, lower-cased and trimmed. "  GARCÍA " and "garcia" normalize equally.
func Normalize(s string) string {
	// transform chains keep state, so each call builds its own
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Contains reports whether text contains term after normalizing both.
// A blank term matches everything.
func Contains(text, term string) bool {
	return strings.Contains(Normalize(text), Normalize(term))
}

// IsBlank reports whether s is empty or whitespace only
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
