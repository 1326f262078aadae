package service

import "context"

// IService exposes the resolved placements to storefront renderers.
type IService interface {
	// Serve blocks until ctx is done or the listener fails.
	Serve(ctx context.Context) error
}
