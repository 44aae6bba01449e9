package recipe

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"time"
)

// Cache keeps generated recipes so they can be applied by name later.
type Cache interface {
	Source
	Put(ctx context.Context, r Recipe) error
	// Names returns the cached recipe names, most recently stored first.
	Names(ctx context.Context) ([]string, error)
}

func cacheKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type cacheEntry struct {
	key     string
	recipe  Recipe
	expires time.Time
}

// MemoryCache is a capped LRU of recipes with an optional time to live.
// A size of zero or less means unbounded; a ttl of zero never expires.
type MemoryCache struct {
	mu    sync.Mutex
	size  int
	ttl   time.Duration
	order *list.List
	index map[string]*list.Element
	now   func() time.Time
}

var _ Cache = (*MemoryCache)(nil)

func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		size:  size,
		ttl:   ttl,
		order: list.New(),
		index: make(map[string]*list.Element),
		now:   time.Now,
	}
}

func (c *MemoryCache) Put(_ context.Context, r Recipe) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(r.Name)
	var expires time.Time
	if c.ttl > 0 {
		expires = c.now().Add(c.ttl)
	}

	if el, ok := c.index[key]; ok {
		el.Value = cacheEntry{key: key, recipe: r, expires: expires}
		c.order.MoveToFront(el)
		return nil
	}

	c.index[key] = c.order.PushFront(cacheEntry{key: key, recipe: r, expires: expires})
	for c.size > 0 && c.order.Len() > c.size {
		c.remove(c.order.Back())
	}
	return nil
}

func (c *MemoryCache) Recipe(_ context.Context, name string) (Recipe, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[cacheKey(name)]
	if !ok {
		return Recipe{}, false, nil
	}
	entry := el.Value.(cacheEntry)
	if c.expired(entry) {
		c.remove(el)
		return Recipe{}, false, nil
	}
	c.order.MoveToFront(el)
	return entry.recipe, true, nil
}

func (c *MemoryCache) Names(_ context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, c.order.Len())
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		entry := el.Value.(cacheEntry)
		if c.expired(entry) {
			c.remove(el)
		} else {
			names = append(names, entry.recipe.Name)
		}
		el = next
	}
	return names, nil
}

// Len returns the number of entries held, including expired ones not yet
// evicted.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *MemoryCache) expired(e cacheEntry) bool {
	return !e.expires.IsZero() && !c.now().Before(e.expires)
}

func (c *MemoryCache) remove(el *list.Element) {
	c.order.Remove(el)
	delete(c.index, el.Value.(cacheEntry).key)
}
