package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"

	"github.com/storefront-kit/selectord/pkg/model"
	"github.com/storefront-kit/selectord/pkg/schema"
	"github.com/storefront-kit/selectord/pkg/store"
)

// FilePathProvider reads a header document from disk, validates it against
// the header schema and writes its placements into Store.
type FilePathProvider struct {
	URI   string
	Store *store.State
	// ResyncSchedule is a cron spec for periodic re-reads, e.g. "@every 5m".
	// Empty disables resync.
	ResyncSchedule string
}

func (fp *FilePathProvider) Source() string {
	return fp.URI
}

func (fp *FilePathProvider) Initialize(_ context.Context) error {
	doc, err := fp.parse()
	if err != nil {
		return err
	}
	fp.apply(doc)
	log.Infof("loaded header document %s", fp.URI)
	return nil
}

func (fp *FilePathProvider) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(fp.URI); err != nil {
		return fmt.Errorf("unable to watch %s: %w", fp.URI, err)
	}

	if fp.ResyncSchedule != "" {
		resync := cron.New()
		if err := resync.AddFunc(fp.ResyncSchedule, func() { fp.reload("resync") }); err != nil {
			return fmt.Errorf("invalid resync schedule %q: %w", fp.ResyncSchedule, err)
		}
		resync.Start()
		defer resync.Stop()
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			switch {
			case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
				fp.reload("write")
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				// editors replace the file on save; follow the new inode
				if err := watcher.Add(fp.URI); err != nil {
					log.Warnf("%s was removed, keeping last known placements", fp.URI)
					continue
				}
				fp.reload("replace")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Errorf("file watcher: %v", err)
		case <-ctx.Done():
			return nil
		}
	}
}

func (fp *FilePathProvider) reload(trigger string) {
	doc, err := fp.parse()
	if err != nil {
		log.Errorf("reload of %s (%s): %v", fp.URI, trigger, err)
		return
	}
	if fp.apply(doc) {
		log.Infof("placements updated from %s (%s)", fp.URI, trigger)
	}
}

func (fp *FilePathProvider) apply(doc model.HeaderDocument) bool {
	notifications := fp.Store.Update(fp.URI, doc)
	if len(notifications) == 0 {
		return false
	}
	log.WithField("changes", notifications).Debug("placement store updated")
	return true
}

func (fp *FilePathProvider) parse() (model.HeaderDocument, error) {
	var doc model.HeaderDocument
	if fp.URI == "" {
		return doc, errors.New("no filepath string set")
	}
	raw, err := os.ReadFile(fp.URI)
	if err != nil {
		return doc, err
	}
	if len(raw) == 0 {
		// truncated mid-write; the following write event carries the content
		return doc, errors.New("header document is empty")
	}
	if err := schema.Validate(raw); err != nil {
		return doc, err
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("%s: %w", model.ParseErrorCode, err)
	}
	return doc, nil
}
