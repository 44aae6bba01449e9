package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

type ShoppingList struct{ shopping ShoppingLister }

func NewShoppingList(s ShoppingLister) *ShoppingList { return &ShoppingList{shopping: s} }

func (t *ShoppingList) Name() string  { return "shopping_list" }
func (t *ShoppingList) Title() string { return "Get Shopping List" }
func (t *ShoppingList) Description() string {
	return "Lists inventory items at or below their low-stock threshold with a suggested quantity to buy."
}

func (t *ShoppingList) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:       "object",
		Properties: map[string]*jsonschema.Schema{},
	}
}

func (t *ShoppingList) OutputSchema() *jsonschema.Schema {
	minQty := 0.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"shopping_list": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"name":               {Type: "string"},
						"current_quantity":   {Type: "number", Minimum: &minQty},
						"unit":               {Type: "string"},
						"threshold":          {Type: "number", Minimum: &minQty},
						"suggested_quantity": {Type: "number", Minimum: &minQty},
					},
					Required: []string{"name", "current_quantity", "unit", "threshold", "suggested_quantity"},
				},
			},
		},
		Required: []string{"shopping_list"},
	}
}

func (t *ShoppingList) Run(ctx context.Context, _ map[string]any) (map[string]any, error) {
	list, err := t.shopping.Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate shopping list: %w", err)
	}
	return toMap(map[string]any{"shopping_list": list})
}
