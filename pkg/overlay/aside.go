package overlay

import (
	"sync"

	"github.com/storefront-kit/selectord/pkg/model"
)

// AsideType names one full-screen overlay of the page: the selector's modal
// and sidebar as well as the cart, search and mobile menu drawers.
type AsideType string

const (
	AsideLocaleModal   AsideType = "localeModal"
	AsideLocaleSidebar AsideType = "localeSidebar"
	AsideMobileMenu    AsideType = "mobile"
	AsideCart          AsideType = "cart"
	AsideSearch        AsideType = "search"
)

// AsideStack is the page's overlay stack. Only one aside is visible at a
// time; opening one replaces the other.
type AsideStack struct {
	mu        sync.Mutex
	open      AsideType
	listeners map[int]func(prev, next AsideType)
	nextID    int
}

func NewAsideStack() *AsideStack {
	return &AsideStack{listeners: map[int]func(prev, next AsideType){}}
}

func (s *AsideStack) Open(t AsideType) { s.set(t) }

func (s *AsideStack) Close() { s.set("") }

// CloseIf closes the stack only when t is the visible aside.
func (s *AsideStack) CloseIf(t AsideType) {
	s.mu.Lock()
	visible := s.open == t
	s.mu.Unlock()
	if visible {
		s.Close()
	}
}

func (s *AsideStack) Toggle(t AsideType) {
	if s.IsOpen(t) {
		s.Close()
		return
	}
	s.Open(t)
}

func (s *AsideStack) IsOpen(t AsideType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open != "" && s.open == t
}

func (s *AsideStack) Current() (AsideType, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open, s.open != ""
}

func (s *AsideStack) OnChange(fn func(prev, next AsideType)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *AsideStack) set(next AsideType) {
	s.mu.Lock()
	prev := s.open
	s.open = next
	var notify []func(prev, next AsideType)
	if prev != next {
		for _, fn := range s.listeners {
			notify = append(notify, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range notify {
		fn(prev, next)
	}
}

// Aside is a modal or sidebar container. Its open state is owned by the
// aside stack.
type Aside struct {
	kind  model.ContainerKind
	typ   AsideType
	stack *AsideStack
}

func NewModal(stack *AsideStack) *Aside {
	return &Aside{kind: model.Modal, typ: AsideLocaleModal, stack: stack}
}

func NewSidebar(stack *AsideStack) *Aside {
	return &Aside{kind: model.Sidebar, typ: AsideLocaleSidebar, stack: stack}
}

func (a *Aside) Kind() model.ContainerKind { return a.kind }

func (a *Aside) Type() AsideType { return a.typ }

func (a *Aside) IsOpen() bool { return a.stack.IsOpen(a.typ) }

func (a *Aside) SetOpen(open bool) {
	if open {
		a.stack.Open(a.typ)
		return
	}
	a.Close()
}

func (a *Aside) Toggle() { a.stack.Toggle(a.typ) }

// Close closes this aside and leaves any other visible aside alone.
func (a *Aside) Close() { a.stack.CloseIf(a.typ) }

func (a *Aside) Handle(ev Event) {
	switch ev {
	case EventEscape, EventNavigate, EventOutsideClick:
		a.Close()
	}
}
