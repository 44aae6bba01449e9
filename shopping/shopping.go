// Package shopping derives a shopping list from low stock.
package shopping

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"

	"pantryassistant/inventory"
)

var ErrInvalidThreshold = errors.New("threshold must be a non-negative number")

// Item is one shopping-list line.
type Item struct {
	Name              string  `json:"name"`
	CurrentQuantity   float64 `json:"current_quantity"`
	Unit              string  `json:"unit"`
	Threshold         float64 `json:"threshold"`
	SuggestedQuantity float64 `json:"suggested_quantity"`
}

// Threshold is the low-stock level configured for an item.
type Threshold struct {
	Name      string  `json:"name"`
	Threshold float64 `json:"threshold"`
}

// InventoryLister lists current stock.
type InventoryLister interface {
	List(ctx context.Context) ([]inventory.Item, error)
}

// Service tracks per-item thresholds. Items without one use the default.
type Service struct {
	inv        InventoryLister
	def        float64
	mu         sync.RWMutex
	thresholds map[string]float64
}

func NewService(inv InventoryLister, defaultThreshold float64) *Service {
	return &Service{
		inv:        inv,
		def:        defaultThreshold,
		thresholds: make(map[string]float64),
	}
}

func (s *Service) UpdateThreshold(name string, threshold float64) (Threshold, error) {
	name = inventory.NormalizeName(name)
	if name == "" {
		return Threshold{}, inventory.ErrInvalidName
	}
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) || threshold < 0 {
		return Threshold{}, ErrInvalidThreshold
	}

	s.mu.Lock()
	s.thresholds[name] = threshold
	s.mu.Unlock()

	slog.Info("SHOPPING: Threshold updated", "name", name, "threshold", threshold)
	return Threshold{Name: name, Threshold: threshold}, nil
}

func (s *Service) Threshold(name string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.thresholds[inventory.NormalizeName(name)]; ok {
		return t
	}
	return s.def
}

// Generate lists every item at or below its threshold, ordered by name.
func (s *Service) Generate(ctx context.Context) ([]Item, error) {
	items, err := s.inv.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}

	out := []Item{}
	for _, it := range items {
		t := s.Threshold(it.Name)
		if it.Quantity > t {
			continue
		}
		out = append(out, Item{
			Name:              it.Name,
			CurrentQuantity:   it.Quantity,
			Unit:              it.Unit,
			Threshold:         t,
			SuggestedQuantity: math.Max(2*t-it.Quantity, t),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	slog.Info("SHOPPING: Generated list", "items", len(out))
	return out, nil
}
