// Package inventory holds household stock: the item model, the store contract
// every backend satisfies, and the service implementing add, remove and
// update semantics on top of a store.
package inventory

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound        = errors.New("item not found")
	ErrInvalidName     = errors.New("item name must not be empty")
	ErrInvalidQuantity = errors.New("quantity must be a non-negative number")
)

// Item is one row of stock. Names are unique; an item whose quantity reaches
// zero is deleted rather than kept at zero.
type Item struct {
	Name      string    `json:"name"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// Store is the persistence contract. Each call is atomic for the item it
// touches.
type Store interface {
	GetItem(ctx context.Context, name string) (Item, bool, error)
	// UpsertItem sets quantity and unit, creating the item when absent.
	UpsertItem(ctx context.Context, name string, quantity float64, unit string) error
	// ReduceQuantity subtracts amount, clamping at zero and deleting the item
	// when it reaches zero. A missing item or a non-positive amount is a
	// no-op.
	ReduceQuantity(ctx context.Context, name string, amount float64) error
	// DeleteItem returns ErrNotFound when the item is absent.
	DeleteItem(ctx context.Context, name string) error
	// ListAll returns every item ordered by name ascending.
	ListAll(ctx context.Context) ([]Item, error)
}

// NormalizeName lowercases and trims an item name so lookups made from
// commands, recipes and the HTTP API agree.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
