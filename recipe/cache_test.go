package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_LRU(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2, 0)

	require.NoError(t, c.Put(ctx, Recipe{Name: "Pasta"}))
	require.NoError(t, c.Put(ctx, Recipe{Name: "Salad"}))

	// touching Pasta makes Salad the eviction candidate
	_, ok, _ := c.Recipe(ctx, "pasta")
	require.True(t, ok)
	require.NoError(t, c.Put(ctx, Recipe{Name: "Stir Fry"}))

	_, ok, _ = c.Recipe(ctx, "Salad")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())

	names, err := c.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Stir Fry", "Pasta"}, names)
}

func TestMemoryCache_Replace(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0, 0)

	require.NoError(t, c.Put(ctx, Recipe{Name: "Soup", Servings: 2}))
	require.NoError(t, c.Put(ctx, Recipe{Name: "soup", Servings: 6}))

	r, ok, err := c.Recipe(ctx, "SOUP")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 6, r.Servings)
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache(10, time.Minute)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Put(ctx, Recipe{Name: "Chili"}))
	now = now.Add(30 * time.Second)
	require.NoError(t, c.Put(ctx, Recipe{Name: "Tacos"}))

	now = now.Add(45 * time.Second)
	_, ok, _ := c.Recipe(ctx, "chili")
	assert.False(t, ok, "chili expired")
	_, ok, _ = c.Recipe(ctx, "tacos")
	assert.True(t, ok)

	now = now.Add(time.Hour)
	names, _ := c.Names(ctx)
	assert.Empty(t, names)
	assert.Zero(t, c.Len())
}

type stubRedis struct {
	values map[string]string
	index  []string
	ttl    time.Duration
	getErr error
}

func newStubRedis() *stubRedis {
	return &stubRedis{values: map[string]string{}}
}

func (s *stubRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if s.getErr != nil {
		return redis.NewStringResult("", s.getErr)
	}
	v, ok := s.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (s *stubRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	s.values[key] = string(value.([]byte))
	s.ttl = expiration
	return redis.NewStatusResult("OK", nil)
}

func (s *stubRedis) ZAdd(_ context.Context, _ string, members ...*redis.Z) *redis.IntCmd {
	for _, m := range members {
		key := m.Member.(string)
		for i, existing := range s.index {
			if existing == key {
				s.index = append(s.index[:i], s.index[i+1:]...)
				break
			}
		}
		s.index = append(s.index, key)
	}
	return redis.NewIntResult(int64(len(members)), nil)
}

func (s *stubRedis) ZRevRange(_ context.Context, _ string, _, _ int64) *redis.StringSliceCmd {
	out := make([]string, 0, len(s.index))
	for i := len(s.index) - 1; i >= 0; i-- {
		out = append(out, s.index[i])
	}
	return redis.NewStringSliceResult(out, nil)
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	stub := newStubRedis()
	c := NewRedisCache(stub, 2*time.Hour)

	r := Recipe{Name: "Veggie Stir Fry", Servings: 2, Ingredients: []Ingredient{{Name: "rice", Quantity: 1, Unit: "cups"}}}
	require.NoError(t, c.Put(ctx, r))
	require.NoError(t, c.Put(ctx, Recipe{Name: "Garden Salad", Servings: 2}))
	assert.Equal(t, 2*time.Hour, stub.ttl)

	var stored Recipe
	require.NoError(t, json.Unmarshal([]byte(stub.values["recipe:veggie stir fry"]), &stored))
	assert.Equal(t, r, stored)

	got, ok, err := c.Recipe(ctx, "Veggie Stir Fry")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, r, got)

	_, ok, err = c.Recipe(ctx, "Lasagna")
	require.NoError(t, err)
	assert.False(t, ok)

	// an expired value drops out of the listing
	delete(stub.values, "recipe:garden salad")
	names, err := c.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Veggie Stir Fry"}, names)

	stub.getErr = errors.New("connection refused")
	_, _, err = c.Recipe(ctx, "Veggie Stir Fry")
	assert.ErrorContains(t, err, "connection refused")
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "plain",
			input: `{"name":"Omelette","servings":1,"ingredients":[{"name":"eggs","quantity":2,"unit":"pieces"}],"instructions":["Whisk","Cook"]}`,
			want:  "Omelette",
		},
		{
			name:  "fenced with chatter",
			input: "Here you go:\n```json\n{\"name\":\"Soup\",\"servings\":2,\"ingredients\":[{\"name\":\"onions\",\"quantity\":1,\"unit\":\"pieces\"}]}\n```",
			want:  "Soup",
		},
		{name: "not json", input: "I cannot help with that", wantErr: true},
		{name: "no ingredients", input: `{"name":"Air","servings":1,"ingredients":[]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseJSON(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Name)
		})
	}
}
