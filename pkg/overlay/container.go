// Package overlay models the three interchangeable selector containers:
// an anchored dropdown, a centered modal and an edge-anchored sidebar.
package overlay

import "github.com/storefront-kit/selectord/pkg/model"

// Event is a user interaction a container may react to.
type Event string

const (
	EventOutsideClick Event = "outside-click"
	EventEscape       Event = "escape"
	EventScroll       Event = "scroll"
	// EventNavigate fires when a link inside the panel is activated.
	EventNavigate Event = "navigate"
)

// Container is the open/close contract shared by every container kind.
// Close must be safe to call on a closed container.
type Container interface {
	Kind() model.ContainerKind
	IsOpen() bool
	// SetOpen is the onOpenChange handler wired to the trigger.
	SetOpen(open bool)
	Close()
	// Handle applies the container's close policy to ev.
	Handle(ev Event)
}
