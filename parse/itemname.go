package parse

import (
	"strings"

	"pantryassistant/units"
)

// ExtractItemName joins, in order, every token whose index is not in skip and
// which is not an action synonym, unit, number word or stop word. An empty
// result means no item name could be recovered.
func ExtractItemName(tokens []string, skip map[int]bool) string {
	kept := make([]string, 0, len(tokens))
	for i, tok := range tokens {
		if skip[i] || !nameToken(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

func nameToken(tok string) bool {
	if actionWords[tok] || stopWords[tok] || units.IsUnit(tok) {
		return false
	}
	if _, ok := NumberWord(tok); ok {
		return false
	}
	return true
}
