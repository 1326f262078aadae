package overlay

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storefront-kit/selectord/pkg/model"
	"github.com/storefront-kit/selectord/pkg/placement"
)

func newDropdowns(t *testing.T) (*placement.Coordinator, *Document, *Dropdown, *Dropdown) {
	t.Helper()
	coord := placement.NewCoordinator()
	doc := NewDocument()
	header := NewDropdown(coord, doc, model.PlacementHeader, false)
	mobile := NewDropdown(coord, doc, model.PlacementMobile, true)
	t.Cleanup(func() {
		header.Dispose()
		mobile.Dispose()
	})
	return coord, doc, header, mobile
}

func TestDropdown_OpenOtherPlacement_ClosesFirst(t *testing.T) {
	_, _, header, mobile := newDropdowns(t)

	header.SetOpen(true)
	mobile.SetOpen(true)

	assert.False(t, header.IsOpen())
	assert.True(t, mobile.IsOpen())
}

func TestDropdown_ClosePolicy(t *testing.T) {
	for _, ev := range []Event{EventOutsideClick, EventEscape, EventScroll, EventNavigate} {
		_, _, header, _ := newDropdowns(t)
		header.SetOpen(true)

		header.Handle(ev)

		assert.False(t, header.IsOpen(), ev)
	}
}

func TestDropdown_Close_LeavesOtherPlacementOpen(t *testing.T) {
	_, _, header, mobile := newDropdowns(t)
	mobile.SetOpen(true)

	header.Close()

	assert.True(t, mobile.IsOpen())
}

func TestDropdown_CloseWhenClosed_NoPanic(t *testing.T) {
	_, _, header, _ := newDropdowns(t)

	assert.NotPanics(t, func() {
		header.Close()
		header.SetOpen(false)
		header.Close()
	})
	assert.False(t, header.IsOpen())
}

func TestDropdown_ScrollListener_OnlyWhileOpen(t *testing.T) {
	_, doc, header, _ := newDropdowns(t)
	assert.Equal(t, 0, doc.ListenerCount(EventScroll))

	header.SetOpen(true)
	assert.Equal(t, 1, doc.ListenerCount(EventScroll))

	doc.Dispatch(EventScroll)
	assert.False(t, header.IsOpen())
	assert.Equal(t, 0, doc.ListenerCount(EventScroll))
}

func TestDropdown_ScrollListener_BalancedAcrossCycles(t *testing.T) {
	_, doc, header, mobile := newDropdowns(t)

	for i := 0; i < 25; i++ {
		header.SetOpen(true)
		mobile.SetOpen(true)
		mobile.Close()
	}

	assert.Equal(t, 0, doc.ListenerCount(EventScroll))
	attached, detached := doc.Balance()
	assert.Equal(t, 50, attached)
	assert.Equal(t, attached, detached)
}

func TestDropdown_ConcurrentToggles_ListenerMatchesState(t *testing.T) {
	_, doc, header, mobile := newDropdowns(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(open bool) {
			defer wg.Done()
			header.SetOpen(open)
		}(i%2 == 0)
		go func(open bool) {
			defer wg.Done()
			mobile.SetOpen(open)
		}(i%3 == 0)
	}
	wg.Wait()

	want := 0
	if header.IsOpen() || mobile.IsOpen() {
		want = 1
	}
	assert.Equal(t, want, doc.ListenerCount(EventScroll))
	assert.Equal(t, header.IsOpen(), header.Interactive())
}

func TestDropdown_CloseMidEntrance_NotInteractive(t *testing.T) {
	_, _, header, _ := newDropdowns(t)

	header.SetOpen(true)
	assert.Equal(t, AnimationEntering, header.Animation())
	assert.True(t, header.Interactive())

	header.Close()
	assert.False(t, header.Interactive())
	assert.Equal(t, AnimationExiting, header.Animation())
	assert.True(t, header.Mounted())

	header.AnimationDone()
	assert.Equal(t, AnimationClosed, header.Animation())
	assert.False(t, header.Mounted())
}

func TestDropdown_AnimationCompletes(t *testing.T) {
	_, _, header, _ := newDropdowns(t)

	header.SetOpen(true)
	header.AnimationDone()

	assert.Equal(t, AnimationOpen, header.Animation())
}

func TestDropdown_Anchor(t *testing.T) {
	_, _, header, mobile := newDropdowns(t)

	assert.Equal(t, SideBottom, header.Anchor().Side)
	assert.True(t, header.Anchor().AvoidCollisions)
	assert.Equal(t, SideTop, mobile.Anchor().Side)
	assert.False(t, mobile.Anchor().AvoidCollisions)
	assert.Equal(t, 6, mobile.Anchor().SideOffset)
}

func TestAsideStack_OneVisible(t *testing.T) {
	stack := NewAsideStack()
	modal := NewModal(stack)
	sidebar := NewSidebar(stack)

	modal.SetOpen(true)
	sidebar.SetOpen(true)

	assert.False(t, modal.IsOpen())
	assert.True(t, sidebar.IsOpen())
	assert.Equal(t, model.Sidebar, sidebar.Kind())
}

func TestAside_CloseIsScopedAndIdempotent(t *testing.T) {
	stack := NewAsideStack()
	modal := NewModal(stack)
	stack.Open(AsideCart)

	assert.NotPanics(t, func() {
		modal.Close()
		modal.Close()
	})
	assert.True(t, stack.IsOpen(AsideCart))
}

func TestAside_NavigateCloses(t *testing.T) {
	stack := NewAsideStack()
	sidebar := NewSidebar(stack)
	sidebar.Toggle()
	assert.True(t, sidebar.IsOpen())

	sidebar.Handle(EventNavigate)

	assert.False(t, sidebar.IsOpen())
}

func TestBind_DropdownAndAsideExclusive(t *testing.T) {
	coord, _, header, _ := newDropdowns(t)
	stack := NewAsideStack()
	modal := NewModal(stack)
	unbind := Bind(coord, stack)
	defer unbind()

	header.SetOpen(true)
	modal.SetOpen(true)
	assert.False(t, header.IsOpen())
	assert.True(t, modal.IsOpen())

	header.SetOpen(true)
	assert.True(t, header.IsOpen())
	assert.False(t, modal.IsOpen())
}

func TestBind_MobileMenuStaysOpenWithDropdownInside(t *testing.T) {
	coord, _, _, mobile := newDropdowns(t)
	stack := NewAsideStack()
	defer Bind(coord, stack)()

	stack.Open(AsideMobileMenu)
	mobile.SetOpen(true)

	assert.True(t, stack.IsOpen(AsideMobileMenu))
	assert.True(t, mobile.IsOpen())
}

func TestStyles_Nil(t *testing.T) {
	assert.Empty(t, Styles(nil))
}

func TestStyles_WithBorder(t *testing.T) {
	styles := Styles(&model.ContainerStyle{
		BorderRadius: model.TierLg,
		Shadow:       model.TierNone,
		ShowBorder:   true,
		BorderWidth:  1.5,
	})

	assert.Equal(t, map[string]string{
		"border-radius": "12px",
		"box-shadow":    "none",
		"border-width":  "1.5px",
		"border-style":  "solid",
	}, styles)
}

func TestCSS_WithoutBorder(t *testing.T) {
	css := CSS(&model.ContainerStyle{
		BorderRadius: model.TierNone,
		Shadow:       model.Tier("bogus"),
		ShowBorder:   false,
	})

	assert.Equal(t,
		"border: none; border-radius: 0px; box-shadow: 0 4px 6px -1px rgb(0 0 0 / 0.1), 0 2px 4px -2px rgb(0 0 0 / 0.1)",
		css)
}
