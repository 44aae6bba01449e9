// Package units normalizes the unit spellings that appear in commands and recipes.
package units

import "strings"

// Default is the unit assumed when a command names a quantity without one.
const Default = "units"

// canonical maps every recognized spelling to its canonical plural form.
// Canonical forms map to themselves so Standardize is idempotent.
var canonical = map[string]string{
	// volume
	"cup": "cups", "cups": "cups",
	"tbsp": "tablespoons", "tbsps": "tablespoons", "tbs": "tablespoons", "tablespoon": "tablespoons", "tablespoons": "tablespoons",
	"tsp": "teaspoons", "tsps": "teaspoons", "teaspoon": "teaspoons", "teaspoons": "teaspoons",
	"l": "liters", "liter": "liters", "liters": "liters", "litre": "liters", "litres": "liters",
	"ml": "milliliters", "milliliter": "milliliters", "milliliters": "milliliters", "millilitre": "milliliters", "millilitres": "milliliters",
	"pint": "pints", "pints": "pints",
	"quart": "quarts", "quarts": "quarts",
	"gallon": "gallons", "gallons": "gallons",

	// mass
	"g": "grams", "gram": "grams", "grams": "grams",
	"kg": "kilograms", "kgs": "kilograms", "kilo": "kilograms", "kilos": "kilograms", "kilogram": "kilograms", "kilograms": "kilograms",
	"oz": "ounces", "ounce": "ounces", "ounces": "ounces",
	"lb": "pounds", "lbs": "pounds", "pound": "pounds", "pounds": "pounds",

	// count
	"piece": "pieces", "pieces": "pieces", "pc": "pieces", "pcs": "pieces",
	"clove": "cloves", "cloves": "cloves",
	"head": "heads", "heads": "heads",
	"loaf": "loaves", "loaves": "loaves",
	"bottle": "bottles", "bottles": "bottles",
	"can": "cans", "cans": "cans",
	"jar": "jars", "jars": "jars",
	"pack": "packs", "packs": "packs", "package": "packs", "packages": "packs",
	"box": "boxes", "boxes": "boxes",
	"bag": "bags", "bags": "bags",
	"slice": "slices", "slices": "slices",
	"bunch": "bunches", "bunches": "bunches",
	"dozen": "dozens", "dozens": "dozens",

	// generic
	"unit": "units", "units": "units",
	"item": "items", "items": "items",
}

// IsUnit reports whether token is a recognized unit spelling.
func IsUnit(token string) bool {
	_, ok := canonical[strings.ToLower(token)]
	return ok
}

// Canonical returns the canonical spelling of raw, or raw unchanged when it
// is not a recognized unit.
func Canonical(raw string) string {
	if c, ok := canonical[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return c
	}
	return raw
}

// Standardize renames raw to its canonical form. The quantity is never
// rescaled: kg stays kilograms, it does not become grams.
func Standardize(quantity float64, raw string) (float64, string) {
	return quantity, Canonical(raw)
}

// Spellings returns every recognized spelling. The order is unspecified.
func Spellings() []string {
	out := make([]string, 0, len(canonical))
	for k := range canonical {
		out = append(out, k)
	}
	return out
}
