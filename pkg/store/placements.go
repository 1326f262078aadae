package store

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/hashicorp/go-memdb"
	log "github.com/sirupsen/logrus"

	"github.com/storefront-kit/selectord/pkg/model"
)

const placementsTable = "placements"

type Payload struct {
	Configs string
}

type IStore interface {
	GetAll(ctx context.Context, watcher chan Payload) (map[model.PlacementID]model.PlacementConfig, error)
	Get(ctx context.Context, p model.PlacementID) (model.PlacementConfig, bool)
	MegaMenu() MegaMenuSettings
}

// MegaMenuSettings are the header-level settings carried alongside the
// placements.
type MegaMenuSettings struct {
	Behavior         *string
	AllowParentLinks *bool
}

// State holds the raw placement configs of the loaded header documents.
type State struct {
	mx       sync.RWMutex
	db       *memdb.MemDB
	megaMenu MegaMenuSettings
}

func NewState() *State {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			placementsTable: {
				Name: placementsTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Placement"},
					},
					"source": {
						Name:    "source",
						Unique:  false,
						Indexer: &memdb.StringFieldIndex{Field: "Source"},
					},
				},
			},
		},
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		panic(err)
	}

	return &State{db: db}
}

func (s *State) Get(_ context.Context, p model.PlacementID) (model.PlacementConfig, bool) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(placementsTable, "id", string(p))
	if err != nil {
		log.Errorf("store lookup of %s: %v", p, err)
		return model.PlacementConfig{}, false
	}

	cfg, ok := raw.(model.PlacementConfig)
	return cfg, ok
}

// GetAll returns every stored placement config. When watcher is non-nil it
// receives one Payload with the new state after the next change, or nothing
// if ctx ends first.
func (s *State) GetAll(ctx context.Context, watcher chan Payload) (map[model.PlacementID]model.PlacementConfig, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(placementsTable, "id")
	if err != nil {
		return nil, fmt.Errorf("unable to list placements: %w", err)
	}

	configs := map[model.PlacementID]model.PlacementConfig{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		cfg := obj.(model.PlacementConfig)
		configs[cfg.Placement] = cfg
	}

	if watcher != nil {
		changes := it.WatchCh()
		go func() {
			select {
			case <-changes:
				log.Debug("placement store has changed, notifying watchers")
				all, err := s.GetAll(ctx, nil)
				if err != nil {
					log.Error(err)
					return
				}
				b, _ := json.Marshal(all)
				select {
				case watcher <- Payload{Configs: string(b)}:
				case <-ctx.Done():
				}
			case <-ctx.Done():
			}
		}()
	}

	return configs, nil
}

// Update replaces the placements owned by source with those of doc and
// returns a notification per changed placement.
func (s *State) Update(source string, doc model.HeaderDocument) map[string]interface{} {
	s.mx.Lock()
	defer s.mx.Unlock()

	notifications := map[string]interface{}{}
	incoming := doc.Placements(source)

	txn := s.db.Txn(true)
	defer txn.Abort()

	it, err := txn.Get(placementsTable, "source", source)
	if err != nil {
		log.Errorf("store update from %s: %v", source, err)
		return notifications
	}
	var stale []model.PlacementConfig
	for obj := it.Next(); obj != nil; obj = it.Next() {
		cfg := obj.(model.PlacementConfig)
		if _, ok := incoming[cfg.Placement]; !ok {
			stale = append(stale, cfg)
		}
	}
	for _, cfg := range stale {
		if err := txn.Delete(placementsTable, cfg); err != nil {
			log.Errorf("store delete of %s: %v", cfg.Placement, err)
			continue
		}
		notifications[string(cfg.Placement)] = map[string]interface{}{
			"type":   string(model.NotificationDelete),
			"source": source,
		}
		log.Debugf("placement %s removed by source %s", cfg.Placement, source)
	}

	for p, cfg := range incoming {
		existing, err := txn.First(placementsTable, "id", string(p))
		if err != nil {
			log.Errorf("store lookup of %s: %v", p, err)
			continue
		}
		kind := model.NotificationCreate
		if stored, ok := existing.(model.PlacementConfig); ok {
			if reflect.DeepEqual(stored, cfg) {
				continue
			}
			kind = model.NotificationUpdate
		}
		if err := txn.Insert(placementsTable, cfg); err != nil {
			log.Errorf("store insert of %s: %v", p, err)
			continue
		}
		notifications[string(p)] = map[string]interface{}{
			"type":   string(kind),
			"source": source,
		}
	}
	txn.Commit()

	s.megaMenu = MegaMenuSettings{
		Behavior:         doc.DesktopMegaMenuBehavior,
		AllowParentLinks: doc.DesktopAllowMegaMenuParentLinks,
	}
	return notifications
}

func (s *State) MegaMenu() MegaMenuSettings {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return s.megaMenu
}

func (s *State) String() (string, error) {
	all, err := s.GetAll(context.Background(), nil)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(all)
	if err != nil {
		return "", fmt.Errorf("unable to marshal placements: %w", err)
	}
	return string(b), nil
}
