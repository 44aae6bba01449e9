package tools

import (
	"context"
	"errors"
	"testing"

	"pantryassistant/interpreter"
	"pantryassistant/inventory"
	"pantryassistant/recipe"
	"pantryassistant/shopping"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlanner struct {
	recipe recipe.Recipe
	result recipe.ApplicationResult
	err    error

	gotServings int
	gotName     string
}

func (s *stubPlanner) Suggest(_ context.Context, _ string, servings int) (recipe.Recipe, error) {
	s.gotServings = servings
	return s.recipe, s.err
}

func (s *stubPlanner) Apply(_ context.Context, name string, servings int) (recipe.ApplicationResult, error) {
	s.gotName, s.gotServings = name, servings
	return s.result, s.err
}

type stubShopping struct {
	items []shopping.Item
	err   error
}

func (s stubShopping) Generate(context.Context) ([]shopping.Item, error) { return s.items, s.err }

func newTestRegistry(t *testing.T, planner *stubPlanner, items ...inventory.Item) (*Registry, *inventory.MemoryStore) {
	t.Helper()
	store := inventory.NewMemoryStore()
	for _, it := range items {
		require.NoError(t, store.UpsertItem(context.Background(), it.Name, it.Quantity, it.Unit))
	}
	svc := inventory.NewService(store)
	shop := shopping.NewService(svc, 1)

	reg, err := NewRegistry(Dependencies{
		Inventory: svc,
		Planner:   planner,
		Shopping:  shop,
		Commands:  interpreter.New(svc, planner, shop),
	})
	require.NoError(t, err)
	return reg, store
}

func TestNewRegistry(t *testing.T) {
	reg, _ := newTestRegistry(t, &stubPlanner{})

	var names []string
	for _, tool := range reg.GetTools() {
		names = append(names, tool.Name())
		assert.NotEmpty(t, tool.Title())
		assert.NotEmpty(t, tool.Description())
		assert.Equal(t, "object", tool.InputSchema().Type)
		assert.Equal(t, "object", tool.OutputSchema().Type)
	}
	assert.Equal(t, []string{
		"command_process",
		"inventory_add",
		"inventory_get",
		"inventory_remove",
		"recipe_apply",
		"recipe_suggest",
		"shopping_list",
	}, names)

	_, err := reg.GetTool("pantry_get")
	assert.ErrorContains(t, err, `tool "pantry_get" not found`)
}

func TestNewRegistry_MissingDependencies(t *testing.T) {
	_, err := NewRegistry(Dependencies{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inventory service is required")
	assert.Contains(t, err.Error(), "command processor is required")
}

func TestInventoryGet_Run(t *testing.T) {
	tests := []struct {
		name           string
		items          []inventory.Item
		expectedResult map[string]any
	}{
		{
			name: "ordered by name",
			items: []inventory.Item{
				{Name: "rice", Quantity: 2, Unit: "cups"},
				{Name: "eggs", Quantity: 12, Unit: "pieces"},
			},
			expectedResult: map[string]any{
				"inventory": []any{
					map[string]any{"name": "eggs", "quantity": 12.0, "unit": "pieces"},
					map[string]any{"name": "rice", "quantity": 2.0, "unit": "cups"},
				},
			},
		},
		{
			name:           "empty inventory",
			expectedResult: map[string]any{"inventory": []any{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, _ := newTestRegistry(t, &stubPlanner{}, tt.items...)

			out, err := reg.Run(context.Background(), Call{Name: "inventory_get"})
			require.NoError(t, err)
			assert.Equal(t, tt.expectedResult, out)
		})
	}
}

func TestInventoryAdd_Run(t *testing.T) {
	tests := []struct {
		name        string
		input       map[string]any
		expectedErr string
		wantQty     float64
		wantUnit    string
	}{
		{
			name:     "new item with unit",
			input:    map[string]any{"item_name": "Flour", "quantity": 2.0, "unit": "cup"},
			wantQty:  2,
			wantUnit: "cups",
		},
		{
			name:     "int quantity and default unit",
			input:    map[string]any{"item_name": "flour", "quantity": 3},
			wantQty:  3,
			wantUnit: "units",
		},
		{
			name:        "missing name",
			input:       map[string]any{"quantity": 1.0},
			expectedErr: "item_name is required",
		},
		{
			name:        "missing quantity",
			input:       map[string]any{"item_name": "flour"},
			expectedErr: "quantity is required",
		},
		{
			name:        "zero quantity",
			input:       map[string]any{"item_name": "flour", "quantity": 0.0},
			expectedErr: inventory.ErrInvalidQuantity.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, store := newTestRegistry(t, &stubPlanner{})

			out, err := reg.Run(context.Background(), Call{Name: "inventory_add", Input: tt.input})
			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Item added successfully", out["message"])

			item := out["item"].(map[string]any)
			assert.Equal(t, "flour", item["name"])
			assert.Equal(t, tt.wantQty, item["quantity"])

			got, ok, _ := store.GetItem(context.Background(), "flour")
			require.True(t, ok)
			assert.Equal(t, tt.wantUnit, got.Unit)
		})
	}
}

func TestInventoryRemove_Run(t *testing.T) {
	flour := inventory.Item{Name: "flour", Quantity: 3, Unit: "cups"}

	tests := []struct {
		name           string
		input          map[string]any
		expectedResult map[string]any
		expectedErr    error
	}{
		{
			name:  "partial",
			input: map[string]any{"item_name": "flour", "quantity": 1.0},
			expectedResult: map[string]any{
				"message": "Item removed successfully",
				"item":    map[string]any{"name": "flour", "quantity": 2.0, "unit": "cups", "removed": false},
			},
		},
		{
			name:  "whole row",
			input: map[string]any{"item_name": "flour"},
			expectedResult: map[string]any{
				"message": "Item removed successfully",
				"item":    map[string]any{"name": "flour", "quantity": 0.0, "unit": "cups", "removed": true},
			},
		},
		{
			name:        "unknown item",
			input:       map[string]any{"item_name": "saffron"},
			expectedErr: inventory.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, _ := newTestRegistry(t, &stubPlanner{}, flour)

			out, err := reg.Run(context.Background(), Call{Name: "inventory_remove", Input: tt.input})
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedResult, out)
		})
	}
}

func TestRecipeTools_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("suggest", func(t *testing.T) {
		planner := &stubPlanner{recipe: recipe.Recipe{
			Name:        "Omelette",
			Servings:    2,
			Ingredients: []recipe.Ingredient{{Name: "eggs", Quantity: 3, Unit: "pieces"}},
		}}
		reg, _ := newTestRegistry(t, planner)

		out, err := reg.Run(ctx, Call{Name: "recipe_suggest", Input: map[string]any{"servings": 2.0}})
		require.NoError(t, err)
		assert.Equal(t, 2, planner.gotServings)

		r := out["recipe"].(map[string]any)
		assert.Equal(t, "Omelette", r["name"])
		assert.Len(t, r["ingredients"], 1)
	})

	t.Run("apply", func(t *testing.T) {
		planner := &stubPlanner{result: recipe.ApplicationResult{
			Success:    true,
			RecipeName: "Omelette",
			Used:       []recipe.UsedItem{},
			Failed:     []recipe.FailedItem{},
		}}
		reg, _ := newTestRegistry(t, planner)

		out, err := reg.Run(ctx, Call{Name: "recipe_apply", Input: map[string]any{"recipe_name": "Omelette"}})
		require.NoError(t, err)
		assert.Equal(t, "Omelette", planner.gotName)
		assert.Equal(t, 0, planner.gotServings)
		assert.Equal(t, "Recipe applied successfully", out["message"])
		assert.Equal(t, true, out["result"].(map[string]any)["success"])
	})

	t.Run("apply unknown", func(t *testing.T) {
		reg, _ := newTestRegistry(t, &stubPlanner{err: recipe.ErrRecipeNotFound})

		_, err := reg.Run(ctx, Call{Name: "recipe_apply", Input: map[string]any{"recipe_name": "Lasagna"}})
		assert.ErrorIs(t, err, recipe.ErrRecipeNotFound)
	})
}

func TestShoppingList_Run(t *testing.T) {
	reg, _ := newTestRegistry(t, &stubPlanner{},
		inventory.Item{Name: "salt", Quantity: 0.5, Unit: "cups"},
		inventory.Item{Name: "rice", Quantity: 5, Unit: "cups"},
	)

	out, err := reg.Run(context.Background(), Call{Name: "shopping_list"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"shopping_list": []any{
			map[string]any{
				"name":               "salt",
				"current_quantity":   0.5,
				"unit":               "cups",
				"threshold":          1.0,
				"suggested_quantity": 1.5,
			},
		},
	}, out)

	tool := NewShoppingList(stubShopping{err: errors.New("offline")})
	_, err = tool.Run(context.Background(), nil)
	assert.ErrorContains(t, err, "offline")
}

func TestCommandProcess_Run(t *testing.T) {
	reg, store := newTestRegistry(t, &stubPlanner{})

	out, err := reg.Run(context.Background(), Call{
		Name:  "command_process",
		Input: map[string]any{"text": "add 2 cups of flour to inventory"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Added 2 cups of flour to your inventory.", out["text"])
	assert.Equal(t, "inventory_updated", out["action"])

	_, ok, _ := store.GetItem(context.Background(), "flour")
	assert.True(t, ok)

	out, err = reg.Run(context.Background(), Call{Name: "command_process", Input: map[string]any{"text": "hello there"}})
	require.NoError(t, err)
	assert.Nil(t, out["action"])

	_, err = reg.Run(context.Background(), Call{Name: "command_process"})
	assert.ErrorContains(t, err, "text is required")
}
