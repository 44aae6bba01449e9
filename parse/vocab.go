package parse

// vocabulary is one intent's synonym list. The order of vocabularies is the
// classification precedence.
type vocabulary struct {
	intent Intent
	words  []string
}

var vocabularies = []vocabulary{
	{intent: Add, words: []string{"add", "put", "insert", "include"}},
	{intent: Remove, words: []string{"remove", "delete", "discard", "toss", "take"}},
	{intent: Update, words: []string{"update", "change", "set", "modify", "adjust"}},
	{intent: Recipe, words: []string{"recipe", "recipes", "suggest", "recommend", "cook", "make", "meal", "dinner"}},
	{intent: Shopping, words: []string{"shopping", "shop", "buy", "purchase", "groceries"}},
	{intent: Inventory, words: []string{"inventory", "stock", "have", "ingredients", "pantry", "list"}},
}

// actionWords holds the Add, Remove and Update synonyms. They never form
// part of an item name.
var actionWords = func() map[string]bool {
	m := make(map[string]bool)
	for _, v := range vocabularies {
		if !v.intent.HasAnchor() {
			continue
		}
		for _, w := range v.words {
			m[w] = true
		}
	}
	return m
}()

var stopWords = map[string]bool{
	"to": true, "from": true, "in": true,
	"the": true, "a": true, "an": true,
	"my": true, "your": true,
	"inventory": true, "stock": true,
	"of": true, "full": true,
}

var numberWords = map[string]float64{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19, "twenty": 20,
	"thirty": 30, "forty": 40, "fifty": 50, "sixty": 60,
	"seventy": 70, "eighty": 80, "ninety": 90,
	"hundred": 100,
}
