package parse

import (
	"math"
	"strconv"

	"pantryassistant/units"
)

const (
	qualifierFull = "full"
	prepositionOf = "of"
)

// Slot is a quantity and unit span found in a token sequence.
type Slot struct {
	Quantity *float64
	// Unit is the raw unit token, not standardized. Empty when none followed
	// the quantity.
	Unit string
	// Consumed counts the quantity token and every unit, qualifier and
	// preposition token absorbed after it.
	Consumed int
}

// Found reports whether a quantity was extracted.
func (s Slot) Found() bool { return s.Quantity != nil }

// ExtractSlot reads a quantity starting at tokens[start], then an optional
// unit (with the "full" qualifier before or after it), then an optional "of".
func ExtractSlot(tokens []string, start int) Slot {
	if start < 0 || start >= len(tokens) {
		return Slot{}
	}

	q, ok := quantity(tokens[start])
	if !ok {
		return Slot{}
	}

	slot := Slot{Quantity: &q}
	next := start + 1

	switch {
	case at(tokens, next) == qualifierFull && units.IsUnit(at(tokens, next+1)):
		slot.Unit = tokens[next+1]
		next += 2
	case units.IsUnit(at(tokens, next)):
		slot.Unit = tokens[next]
		next++
		if at(tokens, next) == qualifierFull {
			next++
		}
	}

	if at(tokens, next) == prepositionOf {
		next++
	}

	slot.Consumed = next - start
	return slot
}

func quantity(token string) (float64, bool) {
	if v, err := strconv.ParseFloat(token, 64); err == nil {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return 0, false
		}
		return v, true
	}
	return NumberWord(token)
}

func at(tokens []string, i int) string {
	if i < 0 || i >= len(tokens) {
		return ""
	}
	return tokens[i]
}
