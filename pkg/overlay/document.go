package overlay

import "sync"

// Listener receives dispatched events.
type Listener func(ev Event)

// Document is the page-level event target containers attach their global
// listeners to. Attach and detach calls are counted so a host can verify
// that listeners do not accumulate across open/close cycles.
type Document struct {
	mu        sync.Mutex
	listeners map[Event]map[int]Listener
	nextID    int
	attached  int
	detached  int
}

func NewDocument() *Document {
	return &Document{listeners: map[Event]map[int]Listener{}}
}

// AddListener registers fn for ev and returns its remover. Calling the
// remover more than once has no further effect.
func (d *Document) AddListener(ev Event, fn Listener) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.listeners[ev] == nil {
		d.listeners[ev] = map[int]Listener{}
	}
	id := d.nextID
	d.nextID++
	d.listeners[ev][id] = fn
	d.attached++

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			delete(d.listeners[ev], id)
			d.detached++
		})
	}
}

// Dispatch delivers ev to a snapshot of its listeners.
func (d *Document) Dispatch(ev Event) {
	d.mu.Lock()
	fns := make([]Listener, 0, len(d.listeners[ev]))
	for _, fn := range d.listeners[ev] {
		fns = append(fns, fn)
	}
	d.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// ListenerCount returns the number of listeners currently attached for ev.
func (d *Document) ListenerCount(ev Event) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners[ev])
}

// Balance returns the total attach and detach counts.
func (d *Document) Balance() (attached, detached int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.attached, d.detached
}
