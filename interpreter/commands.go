package interpreter

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"pantryassistant/parse"
	"pantryassistant/recipe"
	"pantryassistant/units"
)

// summaryLimit is how many entries a spoken list names before collapsing the
// rest into a count.
const summaryLimit = 5

const (
	helpText = "I didn't understand that command. You can ask me to add items, remove items, suggest recipes, or show your shopping list."

	clarifyAdd    = "I couldn't identify what item to add. Please say something like 'add 2 cups of flour'."
	clarifyRemove = "I couldn't identify what item to remove. Please say something like 'remove flour' or 'remove 2 cups of flour'."
	clarifyUpdate = "I couldn't understand the quantity update. Please say something like 'update flour quantity to 5'."

	emptyShopping  = "Great! You have all the items you need. Your inventory looks good."
	emptyInventory = "Your inventory is empty. You can add items by saying 'add [item] to inventory'."
)

// SupportedCommands lists example phrasings for help screens.
var SupportedCommands = []string{
	"Add [item] to inventory",
	"Remove [item] from inventory",
	"Update [item] quantity to [amount]",
	"Suggest a recipe",
	"Show my shopping list",
	"What ingredients do I have?",
}

// updateFillers never belong to the item name in an update command.
var updateFillers = map[string]bool{"quantity": true, "amount": true}

func (it *Interpreter) add(ctx context.Context, tokens []string, anchor int) Response {
	slot := parse.ExtractSlot(tokens, anchor+1)
	name := parse.ExtractItemName(tokens, slotSkip(anchor, slot))
	if name == "" {
		return clarify(clarifyAdd)
	}

	q, unit := 1.0, units.Default
	if slot.Found() {
		q = *slot.Quantity
		if slot.Unit != "" {
			unit = slot.Unit
		}
	}
	q, unit = units.Standardize(q, unit)

	item, err := it.inv.Add(ctx, name, q, unit)
	if err != nil {
		return failed("add", name, err)
	}
	return succeeded(
		fmt.Sprintf("Added %s %s of %s to your inventory.", num(q), unit, item.Name),
		ActionInventoryUpdated, item,
	)
}

func (it *Interpreter) remove(ctx context.Context, tokens []string, anchor int) Response {
	slot := parse.ExtractSlot(tokens, anchor+1)
	name := parse.ExtractItemName(tokens, slotSkip(anchor, slot))
	if name == "" {
		return clarify(clarifyRemove)
	}

	res, err := it.inv.Remove(ctx, name, slot.Quantity)
	if err != nil {
		return failed("remove", name, err)
	}
	if res.Removed {
		return succeeded(fmt.Sprintf("Removed %s from your inventory.", res.Name), ActionInventoryUpdated, res)
	}
	return succeeded(
		fmt.Sprintf("Removed %s of %s. Remaining: %s %s.", num(*slot.Quantity), res.Name, num(res.Quantity), res.Unit),
		ActionInventoryUpdated, res,
	)
}

func (it *Interpreter) update(ctx context.Context, tokens []string, anchor int) Response {
	to := -1
	for i := anchor + 1; i < len(tokens); i++ {
		if tokens[i] == "to" {
			to = i
			break
		}
	}
	if to < 0 {
		return clarify(clarifyUpdate)
	}

	skip := make(map[int]bool, len(tokens))
	for i, tok := range tokens {
		if i <= anchor || i >= to || updateFillers[tok] {
			skip[i] = true
		}
	}
	name := parse.ExtractItemName(tokens, skip)

	slot := parse.ExtractSlot(tokens, to+1)
	if name == "" || !slot.Found() {
		return clarify(clarifyUpdate)
	}

	item, err := it.inv.Update(ctx, name, *slot.Quantity, slot.Unit)
	if err != nil {
		return failed("update", name, err)
	}
	return succeeded(
		fmt.Sprintf("Updated %s quantity to %s %s.", item.Name, num(*slot.Quantity), item.Unit),
		ActionInventoryUpdated, item,
	)
}

func (it *Interpreter) suggestRecipe(ctx context.Context) Response {
	r, err := it.recipes.Suggest(ctx, "", 0)
	if err != nil {
		return failed("suggest", "a recipe", err)
	}

	servings := r.Servings
	if servings <= 0 {
		servings = 4
	}
	needs := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		needs[i] = amountOf(ing.Quantity, ing.Unit, ing.Name)
	}

	text := fmt.Sprintf("I suggest making %s.", r.Name)
	if r.Description != "" {
		text += " " + r.Description
	}
	text += fmt.Sprintf(" It serves %d people.", servings)
	if len(needs) > 0 {
		text += " You'll need: " + summarize(needs) + "."
	}
	return succeeded(text, ActionRecipeSuggested, recipeData(r))
}

func (it *Interpreter) shoppingList(ctx context.Context) Response {
	list, err := it.shopping.Generate(ctx)
	if err != nil {
		return failed("generate", "your shopping list", err)
	}
	if len(list) == 0 {
		return succeeded(emptyShopping, ActionShoppingList, list)
	}

	lines := make([]string, len(list))
	for i, item := range list {
		lines[i] = fmt.Sprintf("%s (need %s %s)", item.Name, num(item.SuggestedQuantity), item.Unit)
	}
	return succeeded("Here's your shopping list: "+summarize(lines)+".", ActionShoppingList, list)
}

func (it *Interpreter) listInventory(ctx context.Context) Response {
	items, err := it.inv.List(ctx)
	if err != nil {
		return failed("get", "your inventory", err)
	}
	if len(items) == 0 {
		return succeeded(emptyInventory, ActionInventoryList, items)
	}

	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = amountOf(item.Quantity, item.Unit, item.Name)
	}
	return succeeded("You have: "+summarize(lines)+".", ActionInventoryList, items)
}

// slotSkip marks the anchor and every token the slot consumed.
func slotSkip(anchor int, slot parse.Slot) map[int]bool {
	skip := map[int]bool{anchor: true}
	for i := 1; i <= slot.Consumed; i++ {
		skip[anchor+i] = true
	}
	return skip
}

func summarize(entries []string) string {
	if len(entries) <= summaryLimit {
		return strings.Join(entries, ", ")
	}
	return fmt.Sprintf("%s, and %d more items", strings.Join(entries[:summaryLimit], ", "), len(entries)-summaryLimit)
}

func amountOf(q float64, unit, name string) string {
	if unit == "" {
		unit = units.Default
	}
	return fmt.Sprintf("%s %s of %s", num(q), unit, name)
}

func num(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// recipeData keeps the suggested recipe's ingredient list non-nil so clients
// always see an array.
func recipeData(r recipe.Recipe) recipe.Recipe {
	if r.Ingredients == nil {
		r.Ingredients = []recipe.Ingredient{}
	}
	if r.Instructions == nil {
		r.Instructions = []string{}
	}
	return r
}
