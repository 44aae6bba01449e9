// Package recipe models generated recipes and applies them to inventory,
// scaling every ingredient to the requested number of servings.
package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrRecipeNotFound = errors.New("recipe not found")

type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type Recipe struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Servings     int          `json:"servings"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
}

// IsValid reports whether the recipe can be applied.
func (r Recipe) IsValid() bool {
	if strings.TrimSpace(r.Name) == "" || r.Servings < 0 || len(r.Ingredients) == 0 {
		return false
	}
	for _, ing := range r.Ingredients {
		if strings.TrimSpace(ing.Name) == "" || ing.Quantity < 0 {
			return false
		}
	}
	return true
}

// Source supplies a previously generated recipe by name.
type Source interface {
	Recipe(ctx context.Context, name string) (Recipe, bool, error)
}

// ParseJSON decodes a recipe from model output, tolerating a surrounding
// markdown code fence.
func ParseJSON(text string) (Recipe, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start >= 0 && end > start {
		text = text[start : end+1]
	}

	var r Recipe
	if err := json.Unmarshal([]byte(text), &r); err != nil {
		return Recipe{}, fmt.Errorf("parse recipe JSON: %w", err)
	}
	if !r.IsValid() {
		return Recipe{}, fmt.Errorf("parse recipe JSON: recipe %q is incomplete", r.Name)
	}
	return r, nil
}
