package main

import (
	"context"
	"fmt"

	macrobrief "github.com/globalite/go-macrobrief"
)

// Builder is the interface for the rendering service.
type Builder interface {
	Render(ctx context.Context, input macrobrief.Input) (*macrobrief.RenderResult, error)
}

// Compile-time interface implementation check.
var _ Builder = (*macrobrief.Service)(nil)

// Pool abstracts service pool operations for testability.
type Pool interface {
	Acquire() Builder
	Release(Builder)
	Size() int
}

// poolAdapter adapts macrobrief.ServicePool to the Pool interface.
type poolAdapter struct {
	pool *macrobrief.ServicePool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

// Acquire gets a service from the underlying pool.
// The nil check avoids handing out a typed nil after pool closure.
func (a *poolAdapter) Acquire() Builder {
	svc := a.pool.Acquire()
	if svc == nil {
		return nil
	}
	return svc
}

// Release returns a service to the underlying pool.
// Panics if b is not a *macrobrief.Service (programmer error).
func (a *poolAdapter) Release(b Builder) {
	svc, ok := b.(*macrobrief.Service)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", b))
	}
	a.pool.Release(svc)
}

// Size returns the pool capacity.
func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

// Close releases all browser resources.
func (a *poolAdapter) Close() error {
	return a.pool.Close()
}
