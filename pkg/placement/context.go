package placement

import "context"

type ctxKey struct{}

// NewContext returns a copy of ctx carrying c.
func NewContext(ctx context.Context, c *Coordinator) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

func FromContext(ctx context.Context) (*Coordinator, bool) {
	c, ok := ctx.Value(ctxKey{}).(*Coordinator)
	return c, ok && c != nil
}

// MustFromContext returns the coordinator established on ctx. A component
// asking for placement state outside a coordinated tree is miswired, so
// this panics instead of handing back a default.
func MustFromContext(ctx context.Context) *Coordinator {
	c, ok := FromContext(ctx)
	if !ok {
		panic("placement: MustFromContext called without a Coordinator; wrap the tree with placement.NewContext")
	}
	return c
}
