package backend

import (
	"context"
	"sync"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/jitterbench/internal/sentinel"
	"github.com/hyp3rd/jitterbench/types"
)

// InMemory is a result store that keeps results in process.
type InMemory struct {
	sync.RWMutex // protects items and order

	items map[string]*types.Result // results by ID
	order []string                 // IDs in insertion order
	limit int                      // maximum number of results kept, 0 for unlimited
}

// NewInMemory creates a new in-memory store with the given options.
func NewInMemory(opts ...Option[InMemory]) (*InMemory, error) {
	backendInstance := &InMemory{
		items: make(map[string]*types.Result),
	}

	ApplyOptions(backendInstance, opts...)

	if backendInstance.limit < 0 {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidConfig, "limit %d", backendInstance.limit)
	}

	return backendInstance, nil
}

// Put stores a copy of the result. Re-putting an ID keeps its original position.
func (store *InMemory) Put(_ context.Context, result *types.Result) error {
	if result == nil || result.ID == "" {
		return ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "result id")
	}

	cloned := result.Clone()

	store.Lock()
	defer store.Unlock()

	if _, ok := store.items[cloned.ID]; !ok {
		store.order = append(store.order, cloned.ID)
	}

	store.items[cloned.ID] = cloned

	if store.limit > 0 {
		for len(store.order) > store.limit {
			delete(store.items, store.order[0])
			store.order = store.order[1:]
		}
	}

	return nil
}

// Get returns a copy of the result with the given ID.
func (store *InMemory) Get(_ context.Context, id string) (*types.Result, error) {
	store.RLock()
	defer store.RUnlock()

	result, ok := store.items[id]
	if !ok {
		return nil, ewrap.Wrapf(sentinel.ErrResultNotFound, "id %q", id)
	}

	return result.Clone(), nil
}

// List returns copies of all results in insertion order.
func (store *InMemory) List(_ context.Context) ([]*types.Result, error) {
	store.RLock()
	defer store.RUnlock()

	results := make([]*types.Result, 0, len(store.order))
	for _, id := range store.order {
		results = append(results, store.items[id].Clone())
	}

	return results, nil
}

// Clear removes all results.
func (store *InMemory) Clear(_ context.Context) error {
	store.Lock()
	defer store.Unlock()

	clear(store.items)
	store.order = nil

	return nil
}
