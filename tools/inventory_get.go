package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

type InventoryGet struct{ inv InventoryService }

func NewInventoryGet(inv InventoryService) *InventoryGet { return &InventoryGet{inv: inv} }

func (t *InventoryGet) Name() string  { return "inventory_get" }
func (t *InventoryGet) Title() string { return "Get Inventory" }
func (t *InventoryGet) Description() string {
	return "Returns every inventory item with its quantity and unit, ordered by name."
}

func (t *InventoryGet) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:       "object",
		Properties: map[string]*jsonschema.Schema{},
	}
}

func (t *InventoryGet) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"inventory": {
				Type:  "array",
				Items: itemSchema(),
			},
		},
		Required: []string{"inventory"},
	}
}

func (t *InventoryGet) Run(ctx context.Context, _ map[string]any) (map[string]any, error) {
	items, err := t.inv.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}

	type outItem struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	}
	out := struct {
		Inventory []outItem `json:"inventory"`
	}{Inventory: make([]outItem, 0, len(items))}

	for _, it := range items {
		out.Inventory = append(out.Inventory, outItem{Name: it.Name, Quantity: it.Quantity, Unit: it.Unit})
	}
	return toMap(out)
}

func itemSchema() *jsonschema.Schema {
	minQty := 0.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name":     {Type: "string"},
			"quantity": {Type: "number", Minimum: &minQty},
			"unit":     {Type: "string"},
		},
		Required: []string{"name", "quantity", "unit"},
	}
}
