package provider

import "context"

// IProvider loads header documents into the placement store and keeps
// them current.
type IProvider interface {
	// Initialize performs the first load. It fails when the document is
	// missing or invalid.
	Initialize(ctx context.Context) error
	// Watch blocks, reloading on change, until ctx is done.
	Watch(ctx context.Context) error
	Source() string
}
