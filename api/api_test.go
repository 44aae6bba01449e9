package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pantryassistant"
	"pantryassistant/interpreter"
	"pantryassistant/inventory"
	"pantryassistant/planner"
	"pantryassistant/planner/mock"
	"pantryassistant/recipe"
	"pantryassistant/shopping"
	"pantryassistant/tools"
)

type recordingNotifier struct {
	applied  []recipe.ApplicationResult
	shopping [][]shopping.Item
}

func (r *recordingNotifier) RecipeApplied(_ context.Context, res recipe.ApplicationResult) error {
	r.applied = append(r.applied, res)
	return nil
}

func (r *recordingNotifier) ShoppingList(_ context.Context, items []shopping.Item) error {
	r.shopping = append(r.shopping, items)
	return nil
}

type testServer struct {
	router   *gin.Engine
	store    *inventory.MemoryStore
	notifier *recordingNotifier
}

func newTestServer(t *testing.T, items ...inventory.Item) *testServer {
	t.Helper()
	ctx := context.Background()

	store := inventory.NewMemoryStore()
	for _, it := range items {
		require.NoError(t, store.UpsertItem(ctx, it.Name, it.Quantity, it.Unit))
	}
	inv := inventory.NewService(store)
	shop := shopping.NewService(inv, 1)
	plan := planner.NewService(inv, mock.NewGenerator(), recipe.NewMemoryCache(8, 0), recipe.NewEngine(inv))
	commands := interpreter.New(inv, plan, shop)

	reg, err := tools.NewRegistry(tools.Dependencies{Inventory: inv, Planner: plan, Shopping: shop, Commands: commands})
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	router := NewRouter(pantryassistant.ServerConfig{GinMode: gin.TestMode}, Services{
		Inventory: inv,
		Planner:   plan,
		Shopping:  shop,
		Commands:  commands,
		Tools:     reg,
		Notifier:  notifier,
	}, zap.NewNop())

	return &testServer{router: router, store: store, notifier: notifier}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func TestRootAndHealth(t *testing.T) {
	s := newTestServer(t)

	rec, out := s.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "running", out["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec, out = s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"status": "healthy"}, out)
}

func TestInventoryRoutes(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		wantKey    string
		wantDetail string
	}{
		{
			name:       "list",
			method:     http.MethodGet,
			path:       "/api/inventory",
			wantStatus: http.StatusOK,
			wantKey:    "inventory",
		},
		{
			name:       "add",
			method:     http.MethodPost,
			path:       "/api/inventory/add",
			body:       map[string]any{"item_name": "Sugar", "quantity": 2},
			wantStatus: http.StatusOK,
			wantKey:    "item",
		},
		{
			name:       "add missing quantity",
			method:     http.MethodPost,
			path:       "/api/inventory/add",
			body:       map[string]any{"item_name": "sugar"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "add zero quantity",
			method:     http.MethodPost,
			path:       "/api/inventory/add",
			body:       map[string]any{"item_name": "sugar", "quantity": 0},
			wantStatus: http.StatusBadRequest,
			wantDetail: inventory.ErrInvalidQuantity.Error(),
		},
		{
			name:       "remove partial",
			method:     http.MethodPost,
			path:       "/api/inventory/remove",
			body:       map[string]any{"item_name": "flour", "quantity": 1},
			wantStatus: http.StatusOK,
			wantKey:    "item",
		},
		{
			name:       "remove unknown",
			method:     http.MethodPost,
			path:       "/api/inventory/remove",
			body:       map[string]any{"item_name": "saffron"},
			wantStatus: http.StatusNotFound,
			wantDetail: "item not found: 'saffron' is not in inventory",
		},
		{
			name:       "update",
			method:     http.MethodPost,
			path:       "/api/inventory/update",
			body:       map[string]any{"item_name": "flour", "quantity": 7},
			wantStatus: http.StatusOK,
			wantKey:    "item",
		},
		{
			name:       "malformed body",
			method:     http.MethodPost,
			path:       "/api/inventory/update",
			body:       "not an object",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, inventory.Item{Name: "flour", Quantity: 3, Unit: "cups"})

			rec, out := s.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantKey != "" {
				assert.Contains(t, out, tt.wantKey)
			}
			if tt.wantStatus >= http.StatusBadRequest {
				assert.Contains(t, out, "detail")
			}
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, out["detail"])
			}
		})
	}
}

func TestAddDefaultsUnit(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodPost, "/api/inventory/add", map[string]any{"item_name": "eggs", "quantity": 6})
	require.Equal(t, http.StatusOK, rec.Code)

	got, ok, _ := s.store.GetItem(context.Background(), "eggs")
	require.True(t, ok)
	assert.Equal(t, "units", got.Unit)
}

func TestPlannerRoutes(t *testing.T) {
	s := newTestServer(t,
		inventory.Item{Name: "pasta", Quantity: 4, Unit: "cups"},
		inventory.Item{Name: "tomatoes", Quantity: 10, Unit: "pieces"},
	)

	rec, out := s.do(t, http.MethodPost, "/api/planner/suggest-recipe", map[string]any{"preferences": "pasta"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	r := out["recipe"].(map[string]any)
	name := r["name"].(string)
	require.NotEmpty(t, name)

	rec, out = s.do(t, http.MethodGet, "/api/planner/recipes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{name}, out["recipes"])

	rec, out = s.do(t, http.MethodPost, "/api/planner/apply-recipe", map[string]any{"recipe_name": name, "servings": 4})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Recipe applied successfully", out["message"])
	assert.Contains(t, out["result"], "used_items")
	assert.Len(t, s.notifier.applied, 1)

	rec, out = s.do(t, http.MethodPost, "/api/planner/apply-recipe", map[string]any{"recipe_name": "Lasagna"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, out["detail"], recipe.ErrRecipeNotFound.Error())
}

func TestShoppingRoutes(t *testing.T) {
	s := newTestServer(t,
		inventory.Item{Name: "salt", Quantity: 0.5, Unit: "cups"},
		inventory.Item{Name: "rice", Quantity: 3, Unit: "cups"},
	)

	rec, out := s.do(t, http.MethodPost, "/api/shopping/update-threshold/rice?threshold=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Threshold updated", out["message"])

	rec, out = s.do(t, http.MethodGet, "/api/shopping/list", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := out["shopping_list"].([]any)
	require.Len(t, list, 2)
	assert.Equal(t, "rice", list[0].(map[string]any)["name"])
	assert.Equal(t, 7.0, list[0].(map[string]any)["suggested_quantity"])
	assert.Len(t, s.notifier.shopping, 1)

	rec, _ = s.do(t, http.MethodPost, "/api/shopping/update-threshold/rice?threshold=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = s.do(t, http.MethodPost, "/api/shopping/update-threshold/rice?threshold=lots", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = s.do(t, http.MethodPost, "/api/shopping/update-threshold/rice", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVoiceRoutes(t *testing.T) {
	s := newTestServer(t)

	rec, out := s.do(t, http.MethodPost, "/api/voice/process", map[string]any{"text": "add 2 cups of flour to inventory"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Added 2 cups of flour to your inventory.", out["text"])
	assert.Equal(t, "inventory_updated", out["action"])

	rec, out = s.do(t, http.MethodPost, "/api/voice/process", map[string]any{"text": "hello there"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, out["action"])

	rec, _ = s.do(t, http.MethodPost, "/api/voice/process", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, out = s.do(t, http.MethodGet, "/api/voice/supported-commands", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, out["commands"], len(interpreter.SupportedCommands))
}

func TestToolRoutes(t *testing.T) {
	s := newTestServer(t, inventory.Item{Name: "flour", Quantity: 3, Unit: "cups"})

	rec, out := s.do(t, http.MethodGet, "/api/tools", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, out["tools"], 7)

	rec, out = s.do(t, http.MethodPost, "/api/tools/inventory_get", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{map[string]any{"name": "flour", "quantity": 3.0, "unit": "cups"}}, out["inventory"])

	rec, _ = s.do(t, http.MethodPost, "/api/tools/inventory_remove", map[string]any{"item_name": "saffron"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/tools/pantry_get", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/inventory", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestOrigins(t *testing.T) {
	assert.Equal(t, defaultOrigins, origins(""))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, origins(" https://a.example, ,https://b.example "))
}
