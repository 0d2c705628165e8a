package item

import (
	"context"
	"slices"
	"sync"
)

// Repository keeps items in memory. It is safe for concurrent use.
type Repository struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]Item
}

func NewRepository() *Repository {
	return &Repository{items: make(map[int64]Item)}
}

// Save stores a new item and returns it with its id set.
func (r *Repository) Save(_ context.Context, it Item) Item {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	it.ID = r.seq
	r.items[it.ID] = it
	return it
}

func (r *Repository) FindByID(_ context.Context, id int64) (Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[id]
	if !ok {
		return Item{}, ErrNotFound
	}
	return it, nil
}

// FindAll returns every item ordered by id.
func (r *Repository) FindAll(context.Context) []Item {
	r.mu.RLock()
	out := make([]Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b Item) int { return int(a.ID - b.ID) })
	return out
}

// Update replaces name, price and quantity of the item with the given id.
func (r *Repository) Update(_ context.Context, id int64, params Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	it.Name = params.Name
	it.Price = params.Price
	it.Quantity = params.Quantity
	r.items[id] = it
	return nil
}

func (r *Repository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.items)
}
