package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

type InventoryRemove struct{ inv InventoryService }

func NewInventoryRemove(inv InventoryService) *InventoryRemove { return &InventoryRemove{inv: inv} }

func (t *InventoryRemove) Name() string  { return "inventory_remove" }
func (t *InventoryRemove) Title() string { return "Remove Inventory Item" }
func (t *InventoryRemove) Description() string {
	return "Removes an item entirely, or reduces it by quantity when given. Items reaching zero are deleted."
}

func (t *InventoryRemove) InputSchema() *jsonschema.Schema {
	minQty := 0.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"item_name": {Type: "string"},
			"quantity":  {Type: "number", Minimum: &minQty},
		},
		Required: []string{"item_name"},
	}
}

func (t *InventoryRemove) OutputSchema() *jsonschema.Schema {
	minQty := 0.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"message": {Type: "string"},
			"item": {
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"name":     {Type: "string"},
					"quantity": {Type: "number", Minimum: &minQty},
					"unit":     {Type: "string"},
					"removed":  {Type: "boolean"},
				},
				Required: []string{"name", "quantity", "unit", "removed"},
			},
		},
		Required: []string{"message", "item"},
	}
}

func (t *InventoryRemove) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	name, err := requiredString(input, "item_name")
	if err != nil {
		return nil, err
	}

	var qty *float64
	if v, ok := numberArg(input, "quantity"); ok {
		qty = &v
	}

	res, err := t.inv.Remove(ctx, name, qty)
	if err != nil {
		return nil, err
	}
	return toMap(map[string]any{"message": "Item removed successfully", "item": res})
}
