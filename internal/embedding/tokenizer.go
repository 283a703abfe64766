package embedding

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Tokenize splits text into lowercased, accent-stripped word tokens: maximal
// runs of Unicode letters. Digits and punctuation act as separators and are
// never emitted as tokens.
func Tokenize(text string) []string {
	text = stripAccents(strings.ToLower(text))

	var tokens []string
	var current strings.Builder
	for _, r := range text {
		if unicode.IsLetter(r) {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// stripAccents removes combining diacritical marks after NFD normalization.
// Marks must go before token splitting: a combining mark inside a word would
// otherwise terminate the letter run.
func stripAccents(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range norm.NFD.String(text) {
		if unicode.In(r, unicode.Mn) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
