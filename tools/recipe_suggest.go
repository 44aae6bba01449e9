package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

type RecipeSuggest struct{ planner Planner }

func NewRecipeSuggest(p Planner) *RecipeSuggest { return &RecipeSuggest{planner: p} }

func (t *RecipeSuggest) Name() string  { return "recipe_suggest" }
func (t *RecipeSuggest) Title() string { return "Suggest Recipe" }
func (t *RecipeSuggest) Description() string {
	return "Suggests a recipe that uses what is currently in the inventory. The suggestion is remembered so it can be applied by name."
}

func (t *RecipeSuggest) InputSchema() *jsonschema.Schema {
	minServings := 1.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"preferences": {Type: "string"},
			"servings":    {Type: "integer", Minimum: &minServings},
		},
	}
}

func (t *RecipeSuggest) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"recipe": recipeSchema(),
		},
		Required: []string{"recipe"},
	}
}

func (t *RecipeSuggest) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	servings := 0
	if v, ok := numberArg(input, "servings"); ok {
		servings = int(v)
	}

	r, err := t.planner.Suggest(ctx, stringArg(input, "preferences"), servings)
	if err != nil {
		return nil, fmt.Errorf("suggest recipe: %w", err)
	}
	return toMap(map[string]any{"recipe": r})
}

func recipeSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name":        {Type: "string"},
			"description": {Type: "string"},
			"servings":    {Type: "integer"},
			"ingredients": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"name":     {Type: "string"},
						"quantity": {Type: "number"},
						"unit":     {Type: "string"},
					},
					Required: []string{"name", "quantity", "unit"},
				},
			},
			"instructions": {
				Type:  "array",
				Items: &jsonschema.Schema{Type: "string"},
			},
		},
		Required: []string{"name", "ingredients"},
	}
}
