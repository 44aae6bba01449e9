package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pantryassistant/interpreter"
	"pantryassistant/inventory"
	"pantryassistant/planner"
	"pantryassistant/recipe"
	"pantryassistant/shopping"
	"pantryassistant/units"
)

type inventoryUpdate struct {
	ItemName string   `json:"item_name" binding:"required"`
	Quantity *float64 `json:"quantity" binding:"required"`
	Unit     string   `json:"unit"`
}

type inventoryRemove struct {
	ItemName string   `json:"item_name" binding:"required"`
	Quantity *float64 `json:"quantity"`
}

type recipeRequest struct {
	Preferences string `json:"preferences"`
	Servings    int    `json:"servings"`
}

type applyRecipeRequest struct {
	RecipeName string `json:"recipe_name" binding:"required"`
	Servings   int    `json:"servings"`
}

type commandRequest struct {
	Text string `json:"text" binding:"required"`
}

type toolInfo struct {
	Name         string `json:"name"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	InputSchema  any    `json:"input_schema"`
	OutputSchema any    `json:"output_schema"`
}

func (h *handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Agentic Shopping Assistant API", "status": "running"})
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *handler) listInventory(c *gin.Context) {
	items, err := h.svc.Inventory.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if items == nil {
		items = []inventory.Item{}
	}
	c.JSON(http.StatusOK, gin.H{"inventory": items})
}

func (h *handler) addItem(c *gin.Context) {
	var req inventoryUpdate
	if !h.bind(c, &req) {
		return
	}
	if req.Unit == "" {
		req.Unit = units.Default
	}

	item, err := h.svc.Inventory.Add(c.Request.Context(), req.ItemName, *req.Quantity, req.Unit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item added successfully", "item": item})
}

func (h *handler) removeItem(c *gin.Context) {
	var req inventoryRemove
	if !h.bind(c, &req) {
		return
	}

	res, err := h.svc.Inventory.Remove(c.Request.Context(), req.ItemName, req.Quantity)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed successfully", "item": res})
}

func (h *handler) updateItem(c *gin.Context) {
	var req inventoryUpdate
	if !h.bind(c, &req) {
		return
	}

	item, err := h.svc.Inventory.Update(c.Request.Context(), req.ItemName, *req.Quantity, req.Unit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item updated successfully", "item": item})
}

func (h *handler) suggestRecipe(c *gin.Context) {
	req := recipeRequest{Servings: planner.DefaultServings}
	if c.Request.ContentLength != 0 && !h.bind(c, &req) {
		return
	}

	r, err := h.svc.Planner.Suggest(c.Request.Context(), req.Preferences, req.Servings)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": r})
}

func (h *handler) applyRecipe(c *gin.Context) {
	var req applyRecipeRequest
	if !h.bind(c, &req) {
		return
	}

	ctx := c.Request.Context()
	res, err := h.svc.Planner.Apply(ctx, req.RecipeName, req.Servings)
	if err != nil {
		h.fail(c, err)
		return
	}
	if h.svc.Notifier != nil {
		_ = h.svc.Notifier.RecipeApplied(ctx, res)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe applied successfully", "result": res})
}

func (h *handler) listRecipes(c *gin.Context) {
	names, err := h.svc.Planner.Recipes(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"recipes": names})
}

func (h *handler) shoppingList(c *gin.Context) {
	ctx := c.Request.Context()
	list, err := h.svc.Shopping.Generate(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	if h.svc.Notifier != nil {
		_ = h.svc.Notifier.ShoppingList(ctx, list)
	}
	c.JSON(http.StatusOK, gin.H{"shopping_list": list})
}

func (h *handler) updateThreshold(c *gin.Context) {
	raw, ok := c.GetQuery("threshold")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "threshold query parameter is required"})
		return
	}
	threshold, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "threshold must be a number"})
		return
	}

	t, err := h.svc.Shopping.UpdateThreshold(c.Param("item_name"), threshold)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Threshold updated", "item": t})
}

func (h *handler) processCommand(c *gin.Context) {
	var req commandRequest
	if !h.bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.svc.Commands.Process(c.Request.Context(), req.Text))
}

func (h *handler) supportedCommands(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"commands": interpreter.SupportedCommands})
}

func (h *handler) listTools(c *gin.Context) {
	all := h.svc.Tools.GetTools()
	out := make([]toolInfo, 0, len(all))
	for _, t := range all {
		out = append(out, toolInfo{
			Name:         t.Name(),
			Title:        t.Title(),
			Description:  t.Description(),
			InputSchema:  t.InputSchema(),
			OutputSchema: t.OutputSchema(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"tools": out})
}

func (h *handler) runTool(c *gin.Context) {
	tool, err := h.svc.Tools.GetTool(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
		return
	}

	input := map[string]any{}
	if c.Request.ContentLength != 0 && !h.bind(c, &input) {
		return
	}

	out, err := tool.Run(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return false
	}
	return true
}

// fail maps domain errors to status codes.
func (h *handler) fail(c *gin.Context, err error) {
	_ = c.Error(err)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, inventory.ErrNotFound), errors.Is(err, recipe.ErrRecipeNotFound):
		status = http.StatusNotFound
	case errors.Is(err, inventory.ErrInvalidName),
		errors.Is(err, inventory.ErrInvalidQuantity),
		errors.Is(err, shopping.ErrInvalidThreshold):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		h.log.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.JSON(status, gin.H{"detail": err.Error()})
}
