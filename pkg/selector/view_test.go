package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-kit/selectord/pkg/megamenu"
	"github.com/storefront-kit/selectord/pkg/model"
	"github.com/storefront-kit/selectord/pkg/overlay"
)

func kinds(v View) []model.ContainerKind {
	var out []model.ContainerKind
	for _, c := range v.Containers {
		out = append(out, c.Kind)
	}
	return out
}

func TestFlagURL(t *testing.T) {
	assert.Equal(t, "https://cdn.shopify.com/static/images/flags/fr.svg", FlagURL("FR"))
}

func TestRender_Single_OneContainer(t *testing.T) {
	cfg := model.SelectorDefaults
	cfg.DisplayMode = model.Single(model.Sidebar)

	v := Render(cfg, model.PlacementHeader, false, nil)

	require.Len(t, v.Containers, 1)
	assert.Equal(t, model.Sidebar, v.Containers[0].Kind)
	assert.Equal(t, "block", v.Containers[0].Classes)
	assert.Nil(t, v.Containers[0].Anchor)
	assert.Equal(t, model.TriggerFlagCountry, v.Trigger.Variant)
}

func TestRender_Responsive_AllKindsMounted(t *testing.T) {
	cfg := model.SelectorDefaults
	cfg.DisplayMode = model.Responsive(model.Dropdown, "", model.Modal, "")

	v := Render(cfg, model.PlacementAnnouncementBar, false, nil)

	assert.Equal(t, model.ContainerKinds, kinds(v))
	assert.Equal(t, "block md:hidden", v.Containers[0].Classes)
	assert.Equal(t, "hidden md:block", v.Containers[1].Classes)
	assert.Equal(t, "hidden", v.Containers[2].Classes)
	assert.True(t, v.Containers[1].Visible[model.BreakpointLg])
}

func TestRender_InMobileMenu_ForcesUpwardDropdown(t *testing.T) {
	cfg := model.SelectorDefaults
	cfg.DisplayMode = model.Responsive(model.Modal, "", "", model.Sidebar)

	v := Render(cfg, model.PlacementHeader, true, nil)

	require.Len(t, v.Containers, 1)
	assert.Equal(t, model.Dropdown, v.Containers[0].Kind)
	if assert.NotNil(t, v.Containers[0].Anchor) {
		assert.Equal(t, overlay.SideTop, v.Containers[0].Anchor.Side)
	}
}

func TestRenderDropdown_MobilePlacement(t *testing.T) {
	cfg := model.DropdownSelectorDefaults
	cfg.DropdownStyle = &model.ContainerStyle{BorderRadius: model.TierSm, Shadow: model.TierNone}

	v := RenderDropdown(cfg, nil)

	assert.Equal(t, model.PlacementMobile, v.Placement)
	require.Len(t, v.Containers, 1)
	assert.Equal(t, "4px", v.Containers[0].Styles["border-radius"])
	assert.Equal(t, "none", v.Containers[0].Styles["border"])
}

func TestRender_ReflectsPageState(t *testing.T) {
	page := NewPage(nil)
	defer page.Dispose()

	page.Dropdowns[model.PlacementHeader].SetOpen(true)

	header := Render(model.SelectorDefaults, model.PlacementHeader, false, page)
	bar := Render(model.SelectorDefaults, model.PlacementAnnouncementBar, false, page)

	assert.True(t, header.Trigger.Open)
	assert.True(t, header.Containers[0].Open)
	assert.False(t, bar.Trigger.Open)
}

func TestPage_NavigateClosesEverything(t *testing.T) {
	page := NewPage(nil)
	defer page.Dispose()

	page.Dropdowns[model.PlacementMobile].SetOpen(true)
	page.Navigate()
	_, open := page.Coordinator.Current()
	assert.False(t, open)

	page.Modal.SetOpen(true)
	page.Navigate()
	assert.False(t, page.Modal.IsOpen())
}

func TestPage_ScrollClosesDropdownOnly(t *testing.T) {
	page := NewPage(nil)
	defer page.Dispose()

	page.Sidebar.SetOpen(true)
	page.Dispatch(overlay.EventScroll)
	assert.True(t, page.Sidebar.IsOpen())

	page.Container(model.PlacementHeader, model.Dropdown).SetOpen(true)
	assert.False(t, page.Sidebar.IsOpen())

	page.Dispatch(overlay.EventScroll)
	assert.False(t, page.Dropdowns[model.PlacementHeader].IsOpen())
	assert.Equal(t, 0, page.Document.ListenerCount(overlay.EventScroll))
}

func TestPage_ContainerLookup(t *testing.T) {
	page := NewPage(nil)
	defer page.Dispose()

	assert.Same(t, page.Modal, page.Container(model.PlacementMobile, model.Modal))
	assert.Same(t, page.Sidebar, page.Container(model.PlacementHeader, model.Sidebar))
	assert.Equal(t, model.Dropdown, page.Container(model.PlacementHeader, model.Dropdown).Kind())
}

func TestPage_NavigateClosesMegaMenu(t *testing.T) {
	page := NewPage(megamenu.New(megamenu.Click, false))
	defer page.Dispose()

	page.MegaMenu.Open("shop")
	page.Dispatch(overlay.EventEscape)
	assert.Equal(t, "shop", page.MegaMenu.Current())

	page.Navigate()
	assert.Empty(t, page.MegaMenu.Current())
}

func TestNewPage_DefaultMegaMenu(t *testing.T) {
	page := NewPage(nil)
	defer page.Dispose()

	assert.Equal(t, megamenu.Hover, page.MegaMenu.Behavior)
	assert.True(t, page.MegaMenu.AllowParentLinks)
}
