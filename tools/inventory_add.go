package tools

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"pantryassistant/units"
)

type InventoryAdd struct{ inv InventoryService }

func NewInventoryAdd(inv InventoryService) *InventoryAdd { return &InventoryAdd{inv: inv} }

func (t *InventoryAdd) Name() string  { return "inventory_add" }
func (t *InventoryAdd) Title() string { return "Add Inventory Item" }
func (t *InventoryAdd) Description() string {
	return "Adds quantity of an item to the inventory, creating it when absent. The unit replaces any existing unit."
}

func (t *InventoryAdd) InputSchema() *jsonschema.Schema {
	minQty := 0.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"item_name": {Type: "string"},
			"quantity":  {Type: "number", ExclusiveMinimum: &minQty},
			"unit":      {Type: "string", Description: "Defaults to " + units.Default},
		},
		Required: []string{"item_name", "quantity"},
	}
}

func (t *InventoryAdd) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"message": {Type: "string"},
			"item":    itemSchema(),
		},
		Required: []string{"message", "item"},
	}
}

func (t *InventoryAdd) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	name, err := requiredString(input, "item_name")
	if err != nil {
		return nil, err
	}
	qty, ok := numberArg(input, "quantity")
	if !ok {
		return nil, errors.New("quantity is required")
	}

	item, err := t.inv.Add(ctx, name, qty, stringArg(input, "unit"))
	if err != nil {
		return nil, err
	}
	return toMap(map[string]any{"message": "Item added successfully", "item": item})
}
