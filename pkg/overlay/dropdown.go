package overlay

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/storefront-kit/selectord/pkg/model"
	"github.com/storefront-kit/selectord/pkg/placement"
)

// AnimationState is the visual phase of a panel. It trails the open state:
// a panel can still be exiting after it has stopped being interactive.
type AnimationState string

const (
	AnimationClosed   AnimationState = "closed"
	AnimationEntering AnimationState = "entering"
	AnimationOpen     AnimationState = "open"
	AnimationExiting  AnimationState = "exiting"
)

type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
)

const (
	dropdownSideOffset       = 6
	dropdownCollisionPadding = 8
)

// Anchor describes how the dropdown panel is positioned against its trigger.
type Anchor struct {
	Side             Side   `json:"side"`
	Align            string `json:"align"`
	SideOffset       int    `json:"sideOffset"`
	AvoidCollisions  bool   `json:"avoidCollisions"`
	CollisionPadding int    `json:"collisionPadding"`
}

// Dropdown is the anchored panel. Its open state lives in the placement
// coordinator, so opening one placement's dropdown closes the others.
type Dropdown struct {
	Placement   model.PlacementID
	ForceUpward bool

	coord *placement.Coordinator
	doc   *Document

	mu           sync.Mutex
	anim         AnimationState
	removeScroll func()
	unsubscribe  func()
}

func NewDropdown(coord *placement.Coordinator, doc *Document, p model.PlacementID, forceUpward bool) *Dropdown {
	d := &Dropdown{
		Placement:   p,
		ForceUpward: forceUpward,
		coord:       coord,
		doc:         doc,
		anim:        AnimationClosed,
	}
	d.unsubscribe = coord.OnChange(func(_, _ model.PlacementID) { d.sync() })
	d.sync()
	return d
}

func (d *Dropdown) Kind() model.ContainerKind { return model.Dropdown }

func (d *Dropdown) IsOpen() bool {
	return d.coord.IsOpenFor(d.Placement)
}

func (d *Dropdown) SetOpen(open bool) {
	d.coord.Toggle(d.Placement, open)
}

// Close closes this dropdown. It leaves another placement's open dropdown
// alone.
func (d *Dropdown) Close() {
	if d.IsOpen() {
		d.coord.Close()
	}
}

func (d *Dropdown) Handle(ev Event) {
	switch ev {
	case EventOutsideClick, EventEscape, EventScroll, EventNavigate:
		d.Close()
	}
}

// Interactive reports whether the panel receives pointer events. It always
// follows the latest open state, never the animation.
func (d *Dropdown) Interactive() bool {
	return d.IsOpen()
}

// Mounted reports whether the panel is in the tree, which includes the
// exit animation.
func (d *Dropdown) Mounted() bool {
	return d.Animation() != AnimationClosed
}

func (d *Dropdown) Animation() AnimationState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.anim
}

// AnimationDone completes the running enter or exit animation.
func (d *Dropdown) AnimationDone() {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch d.anim {
	case AnimationEntering:
		d.anim = AnimationOpen
	case AnimationExiting:
		d.anim = AnimationClosed
	}
}

func (d *Dropdown) Anchor() Anchor {
	return AnchorFor(d.ForceUpward)
}

// AnchorFor returns the panel anchoring. Forced-upward panels live inside
// another overlay and skip collision flipping so they are never clipped.
func AnchorFor(forceUpward bool) Anchor {
	side := SideBottom
	if forceUpward {
		side = SideTop
	}
	return Anchor{
		Side:             side,
		Align:            "start",
		SideOffset:       dropdownSideOffset,
		AvoidCollisions:  !forceUpward,
		CollisionPadding: dropdownCollisionPadding,
	}
}

// Dispose detaches the dropdown from its coordinator and document.
func (d *Dropdown) Dispose() {
	d.unsubscribe()
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.removeScroll != nil {
		d.removeScroll()
		d.removeScroll = nil
	}
}

// sync reconciles the scroll listener and animation with the coordinator.
// The scroll listener exists only while open. The open state is read under
// d.mu so concurrent transitions settle on the latest coordinator state.
func (d *Dropdown) sync() {
	d.mu.Lock()
	defer d.mu.Unlock()

	open := d.IsOpen()

	if open {
		if d.removeScroll == nil {
			d.removeScroll = d.doc.AddListener(EventScroll, d.Handle)
			log.Debugf("dropdown %s: scroll listener attached", d.Placement)
		}
		if d.anim == AnimationClosed || d.anim == AnimationExiting {
			d.anim = AnimationEntering
		}
		return
	}

	if d.removeScroll != nil {
		d.removeScroll()
		d.removeScroll = nil
		log.Debugf("dropdown %s: scroll listener detached", d.Placement)
	}
	if d.anim == AnimationOpen || d.anim == AnimationEntering {
		d.anim = AnimationExiting
	}
}
