package runtime

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/storefront-kit/selectord/pkg/provider"
	"github.com/storefront-kit/selectord/pkg/service"
)

// Watcher is a background loop that runs until ctx is done, such as the
// snapshot publisher.
type Watcher interface {
	Watch(ctx context.Context) error
}

// Start loads the initial document, then runs the provider watch loop, the
// watchers and the service until ctx is done or any of them fails.
func Start(ctx context.Context, server service.IService, p provider.IProvider, watchers ...Watcher) error {
	if err := p.Initialize(ctx); err != nil {
		return fmt.Errorf("unable to load %s: %w", p.Source(), err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.Watch(gCtx)
	})
	for _, w := range watchers {
		w := w
		g.Go(func() error {
			return w.Watch(gCtx)
		})
	}
	g.Go(func() error {
		return server.Serve(gCtx)
	})

	err := g.Wait()
	log.Info("shutdown complete")
	return err
}
