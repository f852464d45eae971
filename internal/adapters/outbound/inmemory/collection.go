package inmemory

import (
	"sync"

	"github.com/acmehome/fieldops/internal/domain"
)

// collection is an RWMutex-guarded map keyed by entity ID. Values are plain
// structs, so reads hand out copies and callers mutate nothing shared.
type collection[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{items: make(map[string]T)}
}

func (c *collection[T]) get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[id]
	return v, ok
}

func (c *collection[T]) put(id string, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[id] = v
}

// insert allocates the next sequential ID for the prefix and stores the value
// assign builds for it, all under one write lock. Concurrent inserts never
// mint the same ID.
func (c *collection[T]) insert(prefix string, assign func(id string) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	id := domain.NextSequentialID(prefix, ids)
	v := assign(id)
	c.items[id] = v
	return v
}

// all returns a copy of every value, in map order. Callers sort.
func (c *collection[T]) all() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.items))
	for _, v := range c.items {
		out = append(out, v)
	}
	return out
}

func (c *collection[T]) ids() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.items))
	for id := range c.items {
		out = append(out, id)
	}
	return out
}

func (c *collection[T]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// replace swaps the whole map. Used by Reset.
func (c *collection[T]) replace(items map[string]T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]T, len(items))
	for id, v := range items {
		c.items[id] = v
	}
}

// snapshot copies the whole map out.
func (c *collection[T]) snapshot() map[string]T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]T, len(c.items))
	for id, v := range c.items {
		out[id] = v
	}
	return out
}
