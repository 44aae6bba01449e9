package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

type RecipeApply struct{ planner Planner }

func NewRecipeApply(p Planner) *RecipeApply { return &RecipeApply{planner: p} }

func (t *RecipeApply) Name() string  { return "recipe_apply" }
func (t *RecipeApply) Title() string { return "Apply Recipe" }
func (t *RecipeApply) Description() string {
	return "Deducts the ingredients of a previously suggested recipe from the inventory, scaled to servings. " +
		"Ingredients that are missing or short are reported in failed_items."
}

func (t *RecipeApply) InputSchema() *jsonschema.Schema {
	minServings := 1.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"recipe_name": {Type: "string"},
			"servings":    {Type: "integer", Minimum: &minServings},
		},
		Required: []string{"recipe_name"},
	}
}

func (t *RecipeApply) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"message": {Type: "string"},
			"result": {
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"success":                {Type: "boolean"},
					"message":                {Type: "string"},
					"recipe_name":            {Type: "string"},
					"servings":               {Type: "integer"},
					"scaling_factor":         {Type: "number"},
					"used_items":             {Type: "array", Items: &jsonschema.Schema{Type: "object"}},
					"failed_items":           {Type: "array", Items: &jsonschema.Schema{Type: "object"}},
					"total_ingredients":      {Type: "integer"},
					"successful_ingredients": {Type: "integer"},
				},
				Required: []string{"success", "message", "used_items", "failed_items"},
			},
		},
		Required: []string{"message", "result"},
	}
}

func (t *RecipeApply) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	name, err := requiredString(input, "recipe_name")
	if err != nil {
		return nil, err
	}
	servings := 0
	if v, ok := numberArg(input, "servings"); ok {
		servings = int(v)
	}

	res, err := t.planner.Apply(ctx, name, servings)
	if err != nil {
		return nil, err
	}
	return toMap(map[string]any{"message": "Recipe applied successfully", "result": res})
}
