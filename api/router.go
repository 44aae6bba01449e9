// Package api serves the assistant over HTTP.
package api

import (
	"context"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pantryassistant"
	"pantryassistant/interpreter"
	"pantryassistant/inventory"
	"pantryassistant/recipe"
	"pantryassistant/shopping"
	"pantryassistant/tools"
)

const requestTimeout = 120 * time.Second

var defaultOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

type InventoryService interface {
	Add(ctx context.Context, name string, quantity float64, unit string) (inventory.Item, error)
	Remove(ctx context.Context, name string, quantity *float64) (inventory.RemoveResult, error)
	Update(ctx context.Context, name string, quantity float64, unit string) (inventory.Item, error)
	List(ctx context.Context) ([]inventory.Item, error)
}

type Planner interface {
	Suggest(ctx context.Context, preferences string, servings int) (recipe.Recipe, error)
	Apply(ctx context.Context, name string, servings int) (recipe.ApplicationResult, error)
	Recipes(ctx context.Context) ([]string, error)
}

type ShoppingService interface {
	Generate(ctx context.Context) ([]shopping.Item, error)
	UpdateThreshold(name string, threshold float64) (shopping.Threshold, error)
}

// Notifier receives events worth telling the household about. Failures are
// logged by the notifier and never fail the request.
type Notifier interface {
	RecipeApplied(ctx context.Context, res recipe.ApplicationResult) error
	ShoppingList(ctx context.Context, items []shopping.Item) error
}

// Services are the collaborators behind the routes. Notifier may be nil.
type Services struct {
	Inventory InventoryService
	Planner   Planner
	Shopping  ShoppingService
	Commands  interpreter.Processor
	Tools     *tools.Registry
	Notifier  Notifier
}

type handler struct {
	svc Services
	log *zap.Logger
}

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(cfg pantryassistant.ServerConfig, svc Services, log *zap.Logger) *gin.Engine {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	router := gin.New()
	router.Use(requestid.New())
	router.Use(recovery(log))
	router.Use(accessLog(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins(cfg.CORSOrigins),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(timeout(requestTimeout))

	h := &handler{svc: svc, log: log}

	router.GET("/", h.root)
	router.GET("/health", h.health)

	api := router.Group("/api")
	{
		inv := api.Group("/inventory")
		inv.GET("", h.listInventory)
		inv.POST("/add", h.addItem)
		inv.POST("/remove", h.removeItem)
		inv.POST("/update", h.updateItem)

		planner := api.Group("/planner")
		planner.POST("/suggest-recipe", h.suggestRecipe)
		planner.POST("/apply-recipe", h.applyRecipe)
		planner.GET("/recipes", h.listRecipes)

		shop := api.Group("/shopping")
		shop.GET("/list", h.shoppingList)
		shop.POST("/update-threshold/:item_name", h.updateThreshold)

		voice := api.Group("/voice")
		voice.POST("/process", h.processCommand)
		voice.GET("/supported-commands", h.supportedCommands)

		api.GET("/tools", h.listTools)
		api.POST("/tools/:name", h.runTool)
	}

	log.Info("Router setup completed", zap.Strings("cors_origins", origins(cfg.CORSOrigins)))
	return router
}

func origins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return defaultOrigins
	}
	return out
}
