// Package storage loads seed inventory from local files or S3.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"pantryassistant/inventory"
)

// SeedState supplies a JSON seed document of the form {"items": [...]}.
type SeedState interface {
	Load(ctx context.Context) ([]byte, error)
}

type seedDocument struct {
	Items []inventory.Item `json:"items"`
}

// LoadSeed reads and decodes the seed items from state.
func LoadSeed(ctx context.Context, state SeedState) ([]inventory.Item, error) {
	b, err := state.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	var doc seedDocument
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return doc.Items, nil
}

// DefaultSeed is the starter inventory used when no seed source is
// configured.
func DefaultSeed() []inventory.Item {
	return []inventory.Item{
		{Name: "flour", Quantity: 2.5, Unit: "cups"},
		{Name: "sugar", Quantity: 1, Unit: "cups"},
		{Name: "eggs", Quantity: 6, Unit: "pieces"},
		{Name: "milk", Quantity: 2, Unit: "liters"},
		{Name: "butter", Quantity: 0.5, Unit: "cups"},
		{Name: "tomatoes", Quantity: 5, Unit: "pieces"},
		{Name: "onions", Quantity: 3, Unit: "pieces"},
		{Name: "garlic", Quantity: 10, Unit: "cloves"},
		{Name: "olive oil", Quantity: 1, Unit: "bottles"},
		{Name: "salt", Quantity: 0.5, Unit: "cups"},
		{Name: "pepper", Quantity: 0.2, Unit: "cups"},
		{Name: "chicken breast", Quantity: 0.8, Unit: "kilograms"},
		{Name: "rice", Quantity: 3, Unit: "cups"},
		{Name: "pasta", Quantity: 500, Unit: "grams"},
		{Name: "cheese", Quantity: 0.3, Unit: "kilograms"},
		{Name: "lettuce", Quantity: 1, Unit: "head"},
		{Name: "cucumber", Quantity: 2, Unit: "pieces"},
		{Name: "carrots", Quantity: 4, Unit: "pieces"},
		{Name: "potatoes", Quantity: 6, Unit: "pieces"},
		{Name: "bread", Quantity: 1, Unit: "loaf"},
	}
}

// TestSeedState is a simple in-memory implementation for testing
type TestSeedState struct {
	data []byte
	err  error
}

func NewTestSeedState(data []byte) *TestSeedState {
	return &TestSeedState{data: data}
}

func NewTestSeedStateWithError() *TestSeedState {
	return &TestSeedState{err: errors.New("not found")}
}

func (t *TestSeedState) Load(ctx context.Context) ([]byte, error) {
	if t.err != nil {
		return nil, t.err
	}
	return t.data, nil
}
