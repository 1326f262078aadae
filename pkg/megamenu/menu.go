// Package megamenu tracks the open state of the desktop mega menu.
package megamenu

import (
	"sync"
	"time"

	"github.com/storefront-kit/selectord/pkg/stega"
)

const (
	// HoverActivationDelay is how long after opening pointer tracking is
	// armed, so the pointer can travel from the nav item into the panel.
	HoverActivationDelay = 100 * time.Millisecond
	// MouseTolerance expands both hit rectangles.
	MouseTolerance = 5.0
	// MinDesktopWidth is the lg breakpoint; below it the menu closes.
	MinDesktopWidth = 1024
)

type Behavior string

const (
	Hover Behavior = "hover"
	Click Behavior = "click"
)

// ParseBehavior reads the CMS setting. Anything but click means hover.
func ParseBehavior(raw *string) Behavior {
	if raw != nil && stega.Clean(*raw) == string(Click) {
		return Click
	}
	return Hover
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Contains reports whether p is inside r grown by tolerance on every side.
func (r Rect) Contains(p Point, tolerance float64) bool {
	return p.X >= r.Left-tolerance &&
		p.X <= r.Right+tolerance &&
		p.Y >= r.Top-tolerance &&
		p.Y <= r.Bottom+tolerance
}

// Menu holds which top-level item has its panel open. Nav and Panel are
// the current layout rectangles of the nav bar and the open panel.
type Menu struct {
	Behavior         Behavior
	AllowParentLinks bool
	Now              func() time.Time

	mu       sync.Mutex
	open     string
	openedAt time.Time
	nav      Rect
	panel    *Rect
}

func New(behavior Behavior, allowParentLinks bool) *Menu {
	return &Menu{Behavior: behavior, AllowParentLinks: allowParentLinks, Now: time.Now}
}

// FromSettings builds a menu from the nullable header settings. Parent
// links are allowed unless the author turned them off.
func FromSettings(behavior *string, allowParentLinks *bool) *Menu {
	return New(ParseBehavior(behavior), allowParentLinks == nil || *allowParentLinks)
}

// SetLayout records the nav bar and panel rectangles. A nil panel means the
// panel is not laid out yet and pointer checks are skipped.
func (m *Menu) SetLayout(nav Rect, panel *Rect) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nav = nav
	m.panel = panel
}

func (m *Menu) Open(item string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.open != item {
		m.openedAt = m.Now()
	}
	m.open = item
}

func (m *Menu) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = ""
}

// Current returns the open item, empty when closed.
func (m *Menu) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// PointerMove closes a hover menu once the pointer leaves both the nav bar
// and the panel. Moves within the activation delay are ignored.
func (m *Menu) PointerMove(p Point) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.open == "" || m.Behavior != Hover || m.panel == nil {
		return
	}
	if m.Now().Sub(m.openedAt) < HoverActivationDelay {
		return
	}
	if !m.nav.Contains(p, MouseTolerance) && !m.panel.Contains(p, MouseTolerance) {
		m.open = ""
	}
}

// ClickAt closes a click menu when the click lands outside the nav bar and
// the panel.
func (m *Menu) ClickAt(p Point) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.open == "" || m.Behavior != Click {
		return
	}
	inPanel := m.panel != nil && m.panel.Contains(p, 0)
	if !m.nav.Contains(p, 0) && !inPanel {
		m.open = ""
	}
}

// Resize closes the menu when the viewport drops below desktop width.
func (m *Menu) Resize(width int) {
	if width < MinDesktopWidth {
		m.Close()
	}
}

// Navigate closes the menu when a navigation starts loading.
func (m *Menu) Navigate() {
	m.Close()
}
