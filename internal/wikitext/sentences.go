// Package wikitext turns raw wiki markup into marker-annotated plain text
// and provides the sentence heuristics the claim pipeline builds on.
package wikitext

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SplitSentences splits text into presumed sentences.
//
// A '.' character is treated as a sentence terminator unless a simple
// heuristic suggests an abbreviation, a decimal or similar: the fragment
// after the '.' holds a single word, starts with a lowercase word, or the
// word just before the '.' looks like an abbreviation (short, begins with
// an uppercase letter). Fragments that belong to one sentence are rejoined
// with '.'.
func SplitSentences(text string) []string {
	var fragments []string
	for _, f := range strings.Split(text, ".") {
		if f != "" {
			fragments = append(fragments, f)
		}
	}

	var sentences []string
	var current []string

	for i, fragment := range fragments {
		current = append(current, fragment)

		if i == len(fragments)-1 {
			sentences = append(sentences, strings.Join(current, "."))
			break
		}

		nextWords := strings.Fields(fragments[i+1])

		switch {
		case len(nextWords) < 1:
			// Nothing but whitespace follows: the '.' ends the sentence.
			sentences = append(sentences, strings.Join(current, "."))
			current = nil
		case len(nextWords) == 1,
			strings.ToLower(nextWords[0]) == nextWords[0],
			looksLikeAbbreviation(lastWord(fragment)):
			// Keep accumulating; the '.' is not a terminator.
		default:
			sentences = append(sentences, strings.Join(current, "."))
			current = nil
		}
	}

	return sentences
}

// looksLikeAbbreviation reports whether a word preceding a '.' is likely
// an abbreviation: it begins with an uppercase letter and has at most 4
// characters.
func looksLikeAbbreviation(word string) bool {
	if word == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(word)
	return unicode.IsUpper(r) && utf8.RuneCountInString(word) <= 4
}

func lastWord(fragment string) string {
	words := strings.Split(fragment, " ")
	return words[len(words)-1]
}
