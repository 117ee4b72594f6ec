// Package textutil provides text cleanup helpers shared by the collector and the normalizer.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeWhitespace replaces runs of whitespace with a single space and trims the ends.
func NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// Capitalize uppercases the first rune and lowercases the rest.
func Capitalize(str string) string {
	if str == "" {
		return str
	}

	runes := []rune(str)

	return string(unicode.ToUpper(runes[0])) + strings.ToLower(string(runes[1:]))
}

// StripDiacritics removes combining marks, so "Développeur" becomes "Developpeur".
// The input is returned unchanged when the transform fails.
func StripDiacritics(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	stripped, _, err := transform.String(t, str)
	if err != nil {
		return str
	}

	return stripped
}

// FoldKey builds a case- and accent-insensitive comparison key.
func FoldKey(str string) string {
	return strings.ToLower(StripDiacritics(NormalizeWhitespace(str)))
}
