package selector

import (
	"github.com/storefront-kit/selectord/pkg/megamenu"
	"github.com/storefront-kit/selectord/pkg/model"
	"github.com/storefront-kit/selectord/pkg/overlay"
	"github.com/storefront-kit/selectord/pkg/placement"
)

// Page is the overlay state of one page session: a dropdown per
// placement, the shared modal and sidebar, the desktop mega menu, and the
// coordinator and aside stack behind them.
type Page struct {
	Coordinator *placement.Coordinator
	Document    *overlay.Document
	Stack       *overlay.AsideStack

	Dropdowns map[model.PlacementID]*overlay.Dropdown
	Modal     *overlay.Aside
	Sidebar   *overlay.Aside
	MegaMenu  *megamenu.Menu

	unbind func()
}

// NewPage mounts the containers for every placement. A nil menu gets the
// default hover behaviour.
func NewPage(menu *megamenu.Menu) *Page {
	if menu == nil {
		menu = megamenu.New(megamenu.Hover, true)
	}
	pg := &Page{
		Coordinator: placement.NewCoordinator(),
		Document:    overlay.NewDocument(),
		Stack:       overlay.NewAsideStack(),
		Dropdowns:   map[model.PlacementID]*overlay.Dropdown{},
		MegaMenu:    menu,
	}

	for _, p := range model.Placements {
		pg.Dropdowns[p] = overlay.NewDropdown(pg.Coordinator, pg.Document, p, p.DropdownOnly())
	}
	pg.Modal = overlay.NewModal(pg.Stack)
	pg.Sidebar = overlay.NewSidebar(pg.Stack)
	pg.unbind = overlay.Bind(pg.Coordinator, pg.Stack)
	return pg
}

// Container returns the container of kind serving placement p.
func (pg *Page) Container(p model.PlacementID, kind model.ContainerKind) overlay.Container {
	switch kind {
	case model.Modal:
		return pg.Modal
	case model.Sidebar:
		return pg.Sidebar
	}
	return pg.Dropdowns[p]
}

// Dispatch delivers a page-level event. Scroll reaches dropdowns through
// their document listeners; every other event is offered to each container.
// Navigation also closes the mega menu.
func (pg *Page) Dispatch(ev overlay.Event) {
	if ev == overlay.EventScroll {
		pg.Document.Dispatch(ev)
		return
	}
	for _, d := range pg.Dropdowns {
		d.Handle(ev)
	}
	pg.Modal.Handle(ev)
	pg.Sidebar.Handle(ev)
	if ev == overlay.EventNavigate {
		pg.MegaMenu.Navigate()
	}
}

// Navigate resets the page to all closed.
func (pg *Page) Navigate() {
	pg.Dispatch(overlay.EventNavigate)
}

func (pg *Page) Dispose() {
	pg.unbind()
	for _, d := range pg.Dropdowns {
		d.Dispose()
	}
}
