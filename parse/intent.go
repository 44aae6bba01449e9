package parse

import "strings"

// Intent is the action a command asks for.
type Intent int

const (
	Unknown Intent = iota
	Add
	Remove
	Update
	Recipe
	Shopping
	Inventory
)

func (i Intent) String() string {
	switch i {
	case Add:
		return "add"
	case Remove:
		return "remove"
	case Update:
		return "update"
	case Recipe:
		return "recipe"
	case Shopping:
		return "shopping"
	case Inventory:
		return "inventory"
	default:
		return "unknown"
	}
}

// HasAnchor reports whether the intent takes arguments positioned after the
// token that introduced it.
func (i Intent) HasAnchor() bool {
	return i == Add || i == Remove || i == Update
}

// Classification is the outcome of intent classification. Anchor is the index
// of the token that matched, or -1 when Intent is Unknown.
type Classification struct {
	Intent Intent
	Anchor int
}

// Classify scans tokens left to right. A token matches a vocabulary when it
// equals a synonym, contains one, or is contained in one. At the first token
// matching anything, precedence Add > Remove > Update > Recipe > Shopping >
// Inventory picks the intent and later tokens are ignored.
func Classify(tokens []string) Classification {
	return classify(tokens, substringMatch)
}

// ClassifyStrict is Classify with whole-token matching only.
func ClassifyStrict(tokens []string) Classification {
	return classify(tokens, exactMatch)
}

func classify(tokens []string, match func(token, word string) bool) Classification {
	for i, tok := range tokens {
		if tok == "" {
			continue
		}
		for _, v := range vocabularies {
			for _, w := range v.words {
				if match(tok, w) {
					return Classification{Intent: v.intent, Anchor: i}
				}
			}
		}
	}
	return Classification{Intent: Unknown, Anchor: -1}
}

func substringMatch(token, word string) bool {
	return token == word || strings.Contains(token, word) || strings.Contains(word, token)
}

func exactMatch(token, word string) bool {
	return token == word
}
