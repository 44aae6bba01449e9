package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"pantryassistant/units"
)

// RemoveResult describes an item after a removal. Removed is true when the
// row no longer exists.
type RemoveResult struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Removed  bool    `json:"removed"`
}

// Service applies inventory commands to a Store. Mutations that read before
// they write are serialized so concurrent commands on one item do not lose
// updates.
type Service struct {
	store Store
	mu    sync.Mutex
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Add creates the item or increments its quantity. The unit of an existing
// item is replaced by unit.
func (s *Service) Add(ctx context.Context, name string, quantity float64, unit string) (Item, error) {
	name, err := validate(name, quantity)
	if err != nil {
		return Item{}, err
	}
	if quantity == 0 {
		return Item{}, ErrInvalidQuantity
	}
	_, unit = units.Standardize(quantity, defaultUnit(unit))

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok, err := s.store.GetItem(ctx, name)
	if err != nil {
		return Item{}, fmt.Errorf("get %q: %w", name, err)
	}

	total := quantity
	if ok {
		total = existing.Quantity + quantity
		slog.Info("INVENTORY: Incrementing item", "name", name, "from", existing.Quantity, "add", quantity, "to", total)
	} else {
		slog.Info("INVENTORY: Adding new item", "name", name, "quantity", quantity, "unit", unit)
	}

	if err := s.store.UpsertItem(ctx, name, total, unit); err != nil {
		return Item{}, fmt.Errorf("upsert %q: %w", name, err)
	}
	return s.reload(ctx, name)
}

// Remove deletes the item when quantity is nil, otherwise reduces it and
// deletes the row once nothing is left.
func (s *Service) Remove(ctx context.Context, name string, quantity *float64) (RemoveResult, error) {
	q := 0.0
	if quantity != nil {
		q = *quantity
	}
	name, err := validate(name, q)
	if err != nil {
		return RemoveResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok, err := s.store.GetItem(ctx, name)
	if err != nil {
		return RemoveResult{}, fmt.Errorf("get %q: %w", name, err)
	}
	if !ok {
		return RemoveResult{}, fmt.Errorf("%w: '%s' is not in inventory", ErrNotFound, name)
	}

	gone := RemoveResult{Name: name, Quantity: 0, Unit: existing.Unit, Removed: true}

	if quantity == nil {
		if err := s.store.DeleteItem(ctx, name); err != nil {
			return RemoveResult{}, fmt.Errorf("delete %q: %w", name, err)
		}
		slog.Info("INVENTORY: Removed item", "name", name)
		return gone, nil
	}

	remaining := math.Max(0, existing.Quantity-q)
	if remaining == 0 {
		if err := s.store.DeleteItem(ctx, name); err != nil {
			return RemoveResult{}, fmt.Errorf("delete %q: %w", name, err)
		}
		slog.Info("INVENTORY: Removed item, quantity reached 0", "name", name)
		return gone, nil
	}

	if err := s.store.UpsertItem(ctx, name, remaining, existing.Unit); err != nil {
		return RemoveResult{}, fmt.Errorf("reduce %q: %w", name, err)
	}
	slog.Info("INVENTORY: Reduced item", "name", name, "from", existing.Quantity, "remove", q, "to", remaining)
	return RemoveResult{Name: name, Quantity: remaining, Unit: existing.Unit}, nil
}

// Update sets the quantity, creating the item when absent. An empty unit
// keeps the existing unit, or the default unit for new items. Setting zero
// deletes the item.
func (s *Service) Update(ctx context.Context, name string, quantity float64, unit string) (Item, error) {
	name, err := validate(name, quantity)
	if err != nil {
		return Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok, err := s.store.GetItem(ctx, name)
	if err != nil {
		return Item{}, fmt.Errorf("get %q: %w", name, err)
	}
	if unit == "" && ok {
		unit = existing.Unit
	}
	_, unit = units.Standardize(quantity, defaultUnit(unit))

	if quantity == 0 {
		if ok {
			if err := s.store.DeleteItem(ctx, name); err != nil {
				return Item{}, fmt.Errorf("delete %q: %w", name, err)
			}
		}
		slog.Info("INVENTORY: Updated item to 0, removed", "name", name)
		return Item{Name: name, Quantity: 0, Unit: unit}, nil
	}

	if err := s.store.UpsertItem(ctx, name, quantity, unit); err != nil {
		return Item{}, fmt.Errorf("upsert %q: %w", name, err)
	}
	slog.Info("INVENTORY: Updated item", "name", name, "quantity", quantity, "unit", unit)
	return s.reload(ctx, name)
}

func (s *Service) Get(ctx context.Context, name string) (Item, bool, error) {
	return s.store.GetItem(ctx, NormalizeName(name))
}

func (s *Service) List(ctx context.Context) ([]Item, error) {
	return s.store.ListAll(ctx)
}

// GetItem is Get for callers that hold normalized names, such as the recipe
// engine.
func (s *Service) GetItem(ctx context.Context, name string) (Item, bool, error) {
	return s.Get(ctx, name)
}

// ReduceQuantity deducts amount under the service lock, so it never lands
// between the read and write of a concurrent Add, Remove or Update.
func (s *Service) ReduceQuantity(ctx context.Context, name string, amount float64) error {
	if amount <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ReduceQuantity(ctx, NormalizeName(name), amount); err != nil {
		return fmt.Errorf("reduce %q: %w", name, err)
	}
	return nil
}

func (s *Service) reload(ctx context.Context, name string) (Item, error) {
	item, ok, err := s.store.GetItem(ctx, name)
	if err != nil {
		return Item{}, fmt.Errorf("reload %q: %w", name, err)
	}
	if !ok {
		return Item{}, fmt.Errorf("reload %q: %w", name, ErrNotFound)
	}
	return item, nil
}

// Seed loads items into store when it is empty, or unconditionally when
// force is set. It returns how many items were written.
func Seed(ctx context.Context, store Store, items []Item, force bool) (int, error) {
	existing, err := store.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list inventory: %w", err)
	}
	if len(existing) > 0 && !force {
		slog.Info("INVENTORY: Store already seeded", "items", len(existing))
		return 0, nil
	}
	if force {
		for _, it := range existing {
			if err := store.DeleteItem(ctx, it.Name); err != nil {
				return 0, fmt.Errorf("clear %q: %w", it.Name, err)
			}
		}
	}

	n := 0
	for _, it := range items {
		name := NormalizeName(it.Name)
		if name == "" || it.Quantity <= 0 {
			slog.Warn("INVENTORY: Skipping invalid seed item", "name", it.Name, "quantity", it.Quantity)
			continue
		}
		if err := store.UpsertItem(ctx, name, it.Quantity, defaultUnit(it.Unit)); err != nil {
			return n, fmt.Errorf("seed %q: %w", name, err)
		}
		n++
	}
	slog.Info("INVENTORY: Seeded store", "items", n)
	return n, nil
}

func validate(name string, quantity float64) (string, error) {
	name = NormalizeName(name)
	if name == "" {
		return "", ErrInvalidName
	}
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) || quantity < 0 {
		return "", ErrInvalidQuantity
	}
	return name, nil
}

func defaultUnit(unit string) string {
	if unit == "" {
		return units.Default
	}
	return unit
}
