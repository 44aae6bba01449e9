// Package parse turns free-text household commands into tokens, intents,
// quantity slots and item names.
package parse

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text, replaces every rune that is not a letter, digit
// or whitespace with a space, and splits on whitespace runs.
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, text)
	return strings.Fields(strings.ToLower(cleaned))
}

// NumberWord resolves a single English number word. Compound forms such as
// "twenty-five" are not composed.
func NumberWord(token string) (float64, bool) {
	v, ok := numberWords[token]
	return v, ok
}
