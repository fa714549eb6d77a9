// Package corpus reads compressed Wikipedia dumps and holds the
// document-frequency dictionary built from them.
package corpus

import (
	"strings"
	"unicode"
)

// Tokenize splits text into lower-cased tokens: maximal runs of Unicode
// letters. Digits, punctuation and markup remnants act as separators.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}
