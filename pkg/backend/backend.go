// Package backend provides the stores that keep measured results.
// It defines the contract every result store follows, including operations
// for storing, retrieving, listing and clearing results.
//
// Two implementations are provided:
//   - InMemory keeps results in process, in insertion order
//   - Redis persists results through a go-redis client
//
// Both are configured with the generic Option type, constrained by
// IBackendConstrain.
package backend

import (
	"context"

	"github.com/hyp3rd/jitterbench/types"
)

// IBackendConstrain defines the type constraint for result store implementations.
type IBackendConstrain interface {
	InMemory | Redis
}

// IBackend defines the contract that all result stores implement.
//
// All methods accept a context.Context for cancellation and timeout control.
type IBackend interface {
	// Put stores a result under its ID, replacing any previous result with the same ID.
	Put(ctx context.Context, result *types.Result) error
	// Get returns the result with the given ID, or sentinel.ErrResultNotFound.
	Get(ctx context.Context, id string) (*types.Result, error)
	// List returns every stored result, oldest first.
	List(ctx context.Context) ([]*types.Result, error)
	// Clear removes all results.
	Clear(ctx context.Context) error
}
