package inventory

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is a Store backed by a map.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]Item
	now   func() time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]Item), now: time.Now}
}

func (m *MemoryStore) GetItem(_ context.Context, name string) (Item, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.items[name]
	return it, ok, nil
}

func (m *MemoryStore) UpsertItem(_ context.Context, name string, quantity float64, unit string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	it, ok := m.items[name]
	if !ok {
		it = Item{Name: name, CreatedAt: now}
	}
	it.Quantity = quantity
	it.Unit = unit
	it.UpdatedAt = now
	m.items[name] = it
	return nil
}

func (m *MemoryStore) ReduceQuantity(_ context.Context, name string, amount float64) error {
	if amount <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[name]
	if !ok {
		return nil
	}
	it.Quantity -= amount
	if it.Quantity <= 0 {
		delete(m.items, name)
		return nil
	}
	it.UpdatedAt = m.now()
	m.items[name] = it
	return nil
}

func (m *MemoryStore) DeleteItem(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[name]; !ok {
		return ErrNotFound
	}
	delete(m.items, name)
	return nil
}

func (m *MemoryStore) ListAll(_ context.Context) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Item, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
