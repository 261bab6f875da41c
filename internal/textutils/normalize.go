// Package textutils provides the accent and case insensitive string comparison
// used by the rule engine and the statement parsers.
package textutils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize strips diacritics and lower-cases s.
//
// The string is decomposed (NFD), combining marks are dropped, and the result
// is recomposed (NFC) before lower-casing, so "Transferência" and
// "TRANSFERENCIA" both normalize to "transferencia".
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	// A transform chain keeps state between calls, build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalized, _, err := transform.String(t, s)
	if err != nil {
		normalized = s
	}

	return strings.ToLower(normalized)
}

// ContainsInsensitive reports whether the normalized haystack contains the
// normalized needle. An empty needle always matches.
func ContainsInsensitive(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(Normalize(haystack), Normalize(needle))
}

// EqualsInsensitive reports whether a and b are identical once normalized.
func EqualsInsensitive(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// CollapseSpaces trims s and replaces every run of whitespace with one space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
