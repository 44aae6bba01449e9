// Package planner suggests recipes from the current inventory and applies
// previously suggested recipes by name.
package planner

import (
	"context"
	"fmt"
	"log/slog"

	"pantryassistant/inventory"
	"pantryassistant/recipe"
)

const (
	DefaultServings = 4

	noIngredientsName = "No ingredients available"
	errorRecipeName   = "Error generating recipe"
)

// Generator turns a prompt into a recipe. Implementations call a model or
// return canned recipes.
type Generator interface {
	Generate(ctx context.Context, prompt string, servings int) (recipe.Recipe, error)
}

// InventoryLister lists current stock.
type InventoryLister interface {
	List(ctx context.Context) ([]inventory.Item, error)
}

type Service struct {
	inv    InventoryLister
	gen    Generator
	cache  recipe.Cache
	engine recipe.Applier
}

func NewService(inv InventoryLister, gen Generator, cache recipe.Cache, engine recipe.Applier) *Service {
	return &Service{inv: inv, gen: gen, cache: cache, engine: engine}
}

// Suggest generates a recipe for servings people using what is in stock.
// An empty inventory yields a placeholder recipe without calling the
// generator; a generator failure yields an error placeholder. Only a
// failure to read inventory is returned as an error.
func (s *Service) Suggest(ctx context.Context, preferences string, servings int) (recipe.Recipe, error) {
	if servings <= 0 {
		servings = DefaultServings
	}

	items, err := s.inv.List(ctx)
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("list inventory: %w", err)
	}
	if len(items) == 0 {
		slog.Info("PLANNER: Inventory empty, returning placeholder")
		return recipe.Recipe{
			Name:         noIngredientsName,
			Description:  "Please add some ingredients to your inventory first.",
			Ingredients:  []recipe.Ingredient{},
			Instructions: []string{},
		}, nil
	}

	prompt := BuildPrompt(items, preferences, servings)
	r, err := s.gen.Generate(ctx, prompt, servings)
	if err != nil {
		slog.Error("PLANNER: Failed to generate recipe", "error", err)
		return recipe.Recipe{
			Name:         errorRecipeName,
			Description:  fmt.Sprintf("Unable to generate recipe: %v", err),
			Ingredients:  []recipe.Ingredient{},
			Instructions: []string{},
		}, nil
	}
	if r.Name == "" {
		r.Name = "Unknown Recipe"
	}

	if err := s.cache.Put(ctx, r); err != nil {
		slog.Warn("PLANNER: Failed to cache recipe", "recipe", r.Name, "error", err)
	}
	slog.Info("PLANNER: Generated recipe", "recipe", r.Name, "ingredients", len(r.Ingredients))
	return r, nil
}

// Apply applies a previously suggested recipe for servings people; zero
// servings uses the recipe's own count.
func (s *Service) Apply(ctx context.Context, name string, servings int) (recipe.ApplicationResult, error) {
	r, ok, err := s.cache.Recipe(ctx, name)
	if err != nil {
		return recipe.ApplicationResult{}, fmt.Errorf("load recipe %q: %w", name, err)
	}
	if !ok {
		return recipe.ApplicationResult{}, fmt.Errorf("%w: %q, generate a recipe first", recipe.ErrRecipeNotFound, name)
	}

	var target *int
	if servings > 0 {
		target = &servings
	}
	return s.engine.Apply(ctx, r, target, nil), nil
}

// Recipe returns a cached recipe by name.
func (s *Service) Recipe(ctx context.Context, name string) (recipe.Recipe, bool, error) {
	return s.cache.Recipe(ctx, name)
}

// Recipes lists the names of cached recipes.
func (s *Service) Recipes(ctx context.Context) ([]string, error) {
	return s.cache.Names(ctx)
}
