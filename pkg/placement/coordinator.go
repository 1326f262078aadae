// Package placement tracks which header placement has its dropdown open.
// At most one placement is open at a time across the whole page session.
package placement

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/storefront-kit/selectord/pkg/model"
)

// ChangeFunc observes a transition. prev and next are empty when nothing
// was or is open.
type ChangeFunc func(prev, next model.PlacementID)

// Coordinator is the single shared cell holding the open placement. Every
// mutation goes through Open or Close.
type Coordinator struct {
	mu        sync.Mutex
	open      model.PlacementID
	listeners map[int]ChangeFunc
	nextID    int
}

func NewCoordinator() *Coordinator {
	return &Coordinator{listeners: map[int]ChangeFunc{}}
}

// Open makes p the open placement, closing any other. Opening the already
// open placement is a no-op transition.
func (c *Coordinator) Open(p model.PlacementID) {
	c.set(p)
}

// Close clears the open placement. Closing when nothing is open is safe.
func (c *Coordinator) Close() {
	c.set("")
}

// Toggle is the handler shape overlay triggers use: true opens p, false
// closes whatever is open.
func (c *Coordinator) Toggle(p model.PlacementID, open bool) {
	if open {
		c.Open(p)
		return
	}
	c.Close()
}

func (c *Coordinator) IsOpenFor(p model.PlacementID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open != "" && c.open == p
}

// Current returns the open placement and whether one is open.
func (c *Coordinator) Current() (model.PlacementID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open, c.open != ""
}

// OnChange registers fn for every transition that changes the open
// placement and returns a function that unregisters it.
func (c *Coordinator) OnChange(fn ChangeFunc) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

func (c *Coordinator) set(next model.PlacementID) {
	c.mu.Lock()
	prev := c.open
	c.open = next
	var notify []ChangeFunc
	if prev != next {
		notify = make([]ChangeFunc, 0, len(c.listeners))
		for _, fn := range c.listeners {
			notify = append(notify, fn)
		}
	}
	c.mu.Unlock()

	if prev == next {
		return
	}
	log.Debugf("placement transition %q -> %q", prev, next)
	// listeners run outside the lock so they may call back into c
	for _, fn := range notify {
		fn(prev, next)
	}
}
