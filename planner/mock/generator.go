// Package mock provides a deterministic recipe generator for local runs and
// tests.
package mock

import (
	"context"
	"log/slog"
	"strings"

	"pantryassistant/recipe"
)

type Generator struct{}

func NewGenerator() *Generator { return &Generator{} }

// Generate picks one of three sample recipes by keyword: pasta, then
// vegetable or stir, then lettuce or salad. Anything else gets the pasta.
// The sample is returned as written; servings does not rescale it.
func (g *Generator) Generate(_ context.Context, prompt string, _ int) (recipe.Recipe, error) {
	samples := sampleRecipes()
	p := strings.ToLower(prompt)

	r := samples[0]
	switch {
	case strings.Contains(p, "pasta"):
		r = samples[0]
	case strings.Contains(p, "vegetable"), strings.Contains(p, "stir"):
		r = samples[1]
	case strings.Contains(p, "lettuce"), strings.Contains(p, "salad"):
		r = samples[2]
	}

	slog.Info("GENERATOR: Returning sample recipe", "recipe", r.Name)
	return r, nil
}

func sampleRecipes() []recipe.Recipe {
	return []recipe.Recipe{
		{
			Name:        "Pasta with Vegetables",
			Description: "A simple and healthy pasta dish using available ingredients",
			Servings:    4,
			Ingredients: []recipe.Ingredient{
				{Name: "pasta", Quantity: 400, Unit: "grams"},
				{Name: "tomatoes", Quantity: 4, Unit: "pieces"},
				{Name: "garlic", Quantity: 3, Unit: "cloves"},
				{Name: "olive oil", Quantity: 2, Unit: "tablespoons"},
			},
			Instructions: []string{
				"Cook pasta according to package instructions",
				"Heat olive oil in a pan",
				"Add garlic and sauté until fragrant",
				"Add tomatoes and cook until soft",
				"Mix with cooked pasta and serve",
			},
		},
		{
			Name:        "Vegetable Stir Fry",
			Description: "Quick and colorful vegetable stir fry",
			Servings:    4,
			Ingredients: []recipe.Ingredient{
				{Name: "mixed vegetables", Quantity: 500, Unit: "grams"},
				{Name: "garlic", Quantity: 2, Unit: "cloves"},
				{Name: "soy sauce", Quantity: 3, Unit: "tablespoons"},
				{Name: "oil", Quantity: 2, Unit: "tablespoons"},
			},
			Instructions: []string{
				"Heat oil in a wok or large pan",
				"Add garlic and stir fry for 30 seconds",
				"Add vegetables and cook for 5-7 minutes",
				"Add soy sauce and stir well",
				"Serve hot with rice or noodles",
			},
		},
		{
			Name:        "Simple Salad",
			Description: "Fresh and healthy salad",
			Servings:    4,
			Ingredients: []recipe.Ingredient{
				{Name: "lettuce", Quantity: 1, Unit: "head"},
				{Name: "tomatoes", Quantity: 3, Unit: "pieces"},
				{Name: "cucumber", Quantity: 1, Unit: "piece"},
				{Name: "olive oil", Quantity: 2, Unit: "tablespoons"},
			},
			Instructions: []string{
				"Wash and chop lettuce",
				"Cut tomatoes and cucumber into pieces",
				"Mix all vegetables in a bowl",
				"Drizzle with olive oil",
				"Season and serve",
			},
		},
	}
}
