package jitterbench

import (
	"context"

	"github.com/hyp3rd/jitterbench/pkg/workload"
	"github.com/hyp3rd/jitterbench/types"
)

// Service is the service interface for a Bench.
// It enables middleware to be added to the service.
type Service interface {
	// Run measures one workload and stores the result
	Run(ctx context.Context, w workload.Workload) (*types.Result, error)
	// Config returns the measurement settings
	Config() Config
	// Results returns every stored result, oldest first
	Results(ctx context.Context) ([]*types.Result, error)
	// Result returns the stored result with the given id
	Result(ctx context.Context, id string) (*types.Result, error)
}

// Middleware describes a service middleware.
type Middleware func(Service) Service

// ApplyMiddleware applies middlewares to a service.
func ApplyMiddleware(svc Service, mw ...Middleware) Service {
	// Apply each middleware in the chain
	for _, m := range mw {
		svc = m(svc)
	}
	// Return the decorated service
	return svc
}
