package member

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
)

// Repository is an in-memory member store. It is safe for concurrent use.
type Repository struct {
	mu      sync.RWMutex
	seq     atomic.Int64
	byID    map[int64]Member
	byLogin map[string]int64
}

func NewRepository() *Repository {
	return &Repository{
		byID:    make(map[int64]Member),
		byLogin: make(map[string]int64),
	}
}

// Save assigns an id to m and stores it.
// A login id can only be registered once.
func (r *Repository) Save(_ context.Context, m Member) (Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byLogin[m.LoginID]; taken {
		return Member{}, ErrDuplicateLoginID
	}

	m.ID = r.seq.Add(1)
	r.byID[m.ID] = m
	r.byLogin[m.LoginID] = m.ID
	return m, nil
}

func (r *Repository) FindByID(_ context.Context, id int64) (Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return Member{}, ErrNotFound
	}
	return m, nil
}

func (r *Repository) FindByLoginID(_ context.Context, loginID string) (Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byLogin[loginID]
	if !ok {
		return Member{}, ErrNotFound
	}
	return r.byID[id], nil
}

// FindAll returns every member ordered by id.
func (r *Repository) FindAll(context.Context) []Member {
	r.mu.RLock()
	out := make([]Member, 0, len(r.byID))
	for _, m := range r.byID {
		out = append(out, m)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b Member) int { return int(a.ID - b.ID) })
	return out
}

// Clear removes all members. Ids keep increasing.
func (r *Repository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.byID)
	clear(r.byLogin)
}
