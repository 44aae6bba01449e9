package planner

import (
	"fmt"
	"strconv"
	"strings"

	"pantryassistant/inventory"
)

const systemPrompt = "You are a helpful cooking assistant. Always respond with valid JSON."

// SystemPrompt is the instruction given to model-backed generators.
func SystemPrompt() string { return systemPrompt }

// BuildPrompt describes the available ingredients and the JSON shape the
// model must answer with.
func BuildPrompt(items []inventory.Item, preferences string, servings int) string {
	var b strings.Builder

	b.WriteString("Based on the following available ingredients, suggest a recipe.\n\n")
	b.WriteString("Available ingredients:\n")
	for _, it := range items {
		fmt.Fprintf(&b, "- %s: %s %s\n", it.Name, strconv.FormatFloat(it.Quantity, 'f', -1, 64), it.Unit)
	}

	if strings.TrimSpace(preferences) == "" {
		preferences = "None"
	}
	fmt.Fprintf(&b, "\nPreferences: %s\n", preferences)
	fmt.Fprintf(&b, "Servings: %d\n\n", servings)

	b.WriteString(`Please provide:
1. Recipe name
2. Brief description
3. List of required ingredients with quantities
4. Step-by-step cooking instructions

Format your response as JSON with the following structure:
{
    "name": "Recipe Name",
    "description": "Brief description",
    "servings": `)
	b.WriteString(strconv.Itoa(servings))
	b.WriteString(`,
    "ingredients": [
        {"name": "ingredient", "quantity": 2, "unit": "cups"}
    ],
    "instructions": ["step 1", "step 2"]
}`)

	return b.String()
}
