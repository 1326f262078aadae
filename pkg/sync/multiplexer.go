package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/storefront-kit/selectord/pkg/megamenu"
	"github.com/storefront-kit/selectord/pkg/model"
	"github.com/storefront-kit/selectord/pkg/resolve"
	"github.com/storefront-kit/selectord/pkg/store"
)

// Snapshot is the resolved state published to subscribers.
type Snapshot struct {
	Placements map[model.PlacementID]model.SelectorConfig `json:"placements"`
	MegaMenu   MegaMenu                                   `json:"megaMenu"`
}

type MegaMenu struct {
	Behavior         string `json:"behavior"`
	AllowParentLinks bool   `json:"allowParentLinks"`
}

// Multiplexer fans the resolved placement configs out to subscribers. The
// published snapshot is recomputed from the store on every Publish.
type Multiplexer struct {
	store *store.State
	subs  map[interface{}]subscription
	all   string

	mu sync.RWMutex
}

type subscription struct {
	id      interface{}
	channel chan store.Payload
}

// NewMux creates a new sync multiplexer
func NewMux(s *store.State) (*Multiplexer, error) {
	m := &Multiplexer{
		store: s,
		subs:  map[interface{}]subscription{},
	}
	return m, m.reFill()
}

// Register a subscription and return the current snapshot. The channel
// should be buffered; a subscriber that is not ready misses the update.
func (r *Multiplexer) Register(id interface{}, con chan store.Payload) store.Payload {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs[id] = subscription{id: id, channel: con}
	return store.Payload{Configs: r.all}
}

// Unregister a subscription
func (r *Multiplexer) Unregister(id interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.subs, id)
}

// Publish recomputes the snapshot and pushes it to every subscription.
func (r *Multiplexer) Publish() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.reFill(); err != nil {
		return err
	}

	for _, sub := range r.subs {
		select {
		case sub.channel <- store.Payload{Configs: r.all}:
		default:
			log.Warnf("subscriber %v is not keeping up, update dropped", sub.id)
		}
	}
	return nil
}

// Watch publishes a new snapshot after every store change until ctx is
// done. The next store watch is armed before publishing so a change landing
// during Publish is not missed.
func (r *Multiplexer) Watch(ctx context.Context) error {
	changes := make(chan store.Payload, 1)
	arm := func() error {
		_, err := r.store.GetAll(ctx, changes)
		return err
	}
	if err := arm(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			if err := arm(); err != nil {
				return err
			}
			if err := r.Publish(); err != nil {
				log.Error(err)
				continue
			}
			log.Debugf("published placement snapshot to %d subscribers", r.Subscribers())
		}
	}
}

// Snapshot returns the last published snapshot as JSON.
func (r *Multiplexer) Snapshot() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.all
}

func (r *Multiplexer) Subscribers() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.subs)
}

func (r *Multiplexer) reFill() error {
	all, err := r.store.GetAll(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("error retrieving placements from the store: %w", err)
	}

	snapshot := Snapshot{Placements: map[model.PlacementID]model.SelectorConfig{}}
	for p, cfg := range all {
		snapshot.Placements[p] = resolve.Placement(cfg)
	}

	settings := r.store.MegaMenu()
	menu := megamenu.FromSettings(settings.Behavior, settings.AllowParentLinks)
	snapshot.MegaMenu = MegaMenu{
		Behavior:         string(menu.Behavior),
		AllowParentLinks: menu.AllowParentLinks,
	}

	b, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("error marshalling: %w", err)
	}
	r.all = string(b)
	return nil
}
