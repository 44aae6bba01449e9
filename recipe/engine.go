package recipe

import (
	"context"
	"fmt"
	"log/slog"

	"pantryassistant/inventory"
	"pantryassistant/units"
)

// FailureReason says why an ingredient could not be fully deducted.
type FailureReason string

const (
	NotInInventory       FailureReason = "not_in_inventory"
	InsufficientQuantity FailureReason = "insufficient_quantity"
	ProcessingError      FailureReason = "error"
)

// UsedItem is an ingredient deducted from inventory. Partial items were
// short and are also reported in ApplicationResult.Failed.
type UsedItem struct {
	Name      string  `json:"name"`
	Used      float64 `json:"used"`
	Unit      string  `json:"unit"`
	Remaining float64 `json:"remaining"`
	Partial   bool    `json:"partial,omitempty"`
}

type FailedItem struct {
	Name      string        `json:"name"`
	Reason    FailureReason `json:"reason"`
	Required  string        `json:"required,omitempty"`
	Available string        `json:"available,omitempty"`
	Error     string        `json:"error,omitempty"`
}

type ApplicationResult struct {
	Success               bool         `json:"success"`
	Message               string       `json:"message"`
	RecipeName            string       `json:"recipe_name"`
	Servings              int          `json:"servings"`
	ScalingFactor         float64      `json:"scaling_factor"`
	Used                  []UsedItem   `json:"used_items"`
	Failed                []FailedItem `json:"failed_items"`
	TotalIngredients      int          `json:"total_ingredients"`
	SuccessfulIngredients int          `json:"successful_ingredients"`
}

// Inventory is the part of the inventory store the engine needs.
type Inventory interface {
	GetItem(ctx context.Context, name string) (inventory.Item, bool, error)
	ReduceQuantity(ctx context.Context, name string, amount float64) error
}

// Applier applies a recipe to inventory.
type Applier interface {
	Apply(ctx context.Context, r Recipe, target, original *int) ApplicationResult
}

// Engine deducts scaled recipe ingredients from inventory.
type Engine struct {
	inv Inventory
}

var _ Applier = (*Engine)(nil)

func NewEngine(inv Inventory) *Engine {
	return &Engine{inv: inv}
}

// Apply scales r from original to target servings and deducts each
// ingredient. A nil or negative count, or a zero target, falls back to
// r.Servings; a zero original scales by 1. The factor is always positive.
// A failing ingredient is recorded and the remaining ingredients are still
// processed.
func (e *Engine) Apply(ctx context.Context, r Recipe, target, original *int) ApplicationResult {
	targetServings, originalServings := r.Servings, r.Servings
	if target != nil && *target > 0 {
		targetServings = *target
	}
	if original != nil && *original >= 0 {
		originalServings = *original
	}

	factor := 1.0
	if originalServings != 0 {
		factor = float64(targetServings) / float64(originalServings)
	}
	if factor <= 0 {
		factor = 1
	}

	slog.Info("ENGINE: Applying recipe", "recipe", r.Name, "servings", targetServings, "factor", factor)

	res := ApplicationResult{
		RecipeName:    r.Name,
		Servings:      targetServings,
		ScalingFactor: factor,
		Used:          []UsedItem{},
		Failed:        []FailedItem{},
	}

	for _, ing := range r.Ingredients {
		e.applyIngredient(ctx, ing, factor, &res)
	}

	res.TotalIngredients = len(r.Ingredients)
	res.SuccessfulIngredients = len(res.Used)
	res.Success = len(res.Failed) == 0
	res.Message = fmt.Sprintf("Recipe '%s' applied for %d people", r.Name, targetServings)
	if !res.Success {
		res.Message += fmt.Sprintf(" (with %d issues)", len(res.Failed))
	}

	slog.Info("ENGINE: Recipe applied", "recipe", r.Name, "used", len(res.Used), "failed", len(res.Failed))
	return res
}

func (e *Engine) applyIngredient(ctx context.Context, ing Ingredient, factor float64, res *ApplicationResult) {
	name := inventory.NormalizeName(ing.Name)

	defer func() {
		if p := recover(); p != nil {
			slog.Error("ENGINE: Panic while processing ingredient", "ingredient", name, "panic", p)
			res.Failed = append(res.Failed, FailedItem{Name: name, Reason: ProcessingError, Error: fmt.Sprint(p)})
		}
	}()

	scaled, unit := units.Standardize(ing.Quantity*factor, ing.Unit)
	required := fmt.Sprintf("%.2f %s", scaled, unit)

	item, ok, err := e.inv.GetItem(ctx, name)
	if err != nil {
		e.processingError(name, err, res)
		return
	}
	if !ok {
		slog.Warn("ENGINE: Ingredient not in inventory", "ingredient", name)
		res.Failed = append(res.Failed, FailedItem{Name: name, Reason: NotInInventory, Required: required})
		return
	}

	if item.Quantity >= scaled {
		if err := e.inv.ReduceQuantity(ctx, name, scaled); err != nil {
			e.processingError(name, err, res)
			return
		}
		res.Used = append(res.Used, UsedItem{Name: name, Used: scaled, Unit: unit, Remaining: item.Quantity - scaled})
		return
	}

	available := fmt.Sprintf("%v %s", item.Quantity, item.Unit)
	if item.Quantity > 0 {
		if err := e.inv.ReduceQuantity(ctx, name, item.Quantity); err != nil {
			e.processingError(name, err, res)
			return
		}
		res.Used = append(res.Used, UsedItem{Name: name, Used: item.Quantity, Unit: item.Unit, Remaining: 0, Partial: true})
	}
	slog.Warn("ENGINE: Insufficient quantity", "ingredient", name, "required", required, "available", available)
	res.Failed = append(res.Failed, FailedItem{Name: name, Reason: InsufficientQuantity, Required: required, Available: available})
}

func (e *Engine) processingError(name string, err error, res *ApplicationResult) {
	slog.Error("ENGINE: Failed to process ingredient", "ingredient", name, "error", err)
	res.Failed = append(res.Failed, FailedItem{Name: name, Reason: ProcessingError, Error: err.Error()})
}
