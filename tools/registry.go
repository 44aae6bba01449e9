package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"pantryassistant/interpreter"
	"pantryassistant/inventory"
	"pantryassistant/recipe"
	"pantryassistant/shopping"
)

type InventoryService interface {
	Add(ctx context.Context, name string, quantity float64, unit string) (inventory.Item, error)
	Remove(ctx context.Context, name string, quantity *float64) (inventory.RemoveResult, error)
	List(ctx context.Context) ([]inventory.Item, error)
}

type Planner interface {
	Suggest(ctx context.Context, preferences string, servings int) (recipe.Recipe, error)
	Apply(ctx context.Context, name string, servings int) (recipe.ApplicationResult, error)
}

type ShoppingLister interface {
	Generate(ctx context.Context) ([]shopping.Item, error)
}

// Dependencies are the services the tools delegate to.
type Dependencies struct {
	Inventory InventoryService
	Planner   Planner
	Shopping  ShoppingLister
	Commands  interpreter.Processor
}

func (d Dependencies) validate() error {
	var errs []error
	if d.Inventory == nil {
		errs = append(errs, errors.New("inventory service is required"))
	}
	if d.Planner == nil {
		errs = append(errs, errors.New("planner is required"))
	}
	if d.Shopping == nil {
		errs = append(errs, errors.New("shopping service is required"))
	}
	if d.Commands == nil {
		errs = append(errs, errors.New("command processor is required"))
	}
	return errors.Join(errs...)
}

// Registry maps tool names to implementations
type Registry map[string]Tool

// NewRegistry creates a registry holding every tool.
func NewRegistry(deps Dependencies) (*Registry, error) {
	if err := deps.validate(); err != nil {
		return nil, fmt.Errorf("tool dependencies: %w", err)
	}

	all := []Tool{
		NewInventoryGet(deps.Inventory),
		NewInventoryAdd(deps.Inventory),
		NewInventoryRemove(deps.Inventory),
		NewRecipeSuggest(deps.Planner),
		NewRecipeApply(deps.Planner),
		NewShoppingList(deps.Shopping),
		NewCommandProcess(deps.Commands),
	}

	registry := make(Registry, len(all))
	for _, t := range all {
		registry[t.Name()] = t
	}
	return &registry, nil
}

// GetTools returns all tools in the registry ordered by name
func (r *Registry) GetTools() []Tool {
	tools := make([]Tool, 0, len(*r))
	for _, tool := range *r {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name() < tools[j].Name() })
	return tools
}

// GetTool retrieves a tool by name from the registry
func (r Registry) GetTool(name string) (Tool, error) {
	tool, exists := r[name]
	if !exists {
		return nil, fmt.Errorf("tool %q not found in registry", name)
	}
	return tool, nil
}

// Run looks up the called tool and runs it. A nil input is treated as empty.
func (r Registry) Run(ctx context.Context, call Call) (map[string]any, error) {
	tool, err := r.GetTool(call.Name)
	if err != nil {
		return nil, err
	}
	input := call.Input
	if input == nil {
		input = map[string]any{}
	}
	out, err := tool.Run(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", call.Name, err)
	}
	return out, nil
}
