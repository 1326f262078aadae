// Package selector composes a resolved config, the display mode evaluator
// and the overlay containers into the render plan of one placement.
package selector

import (
	"fmt"
	"strings"

	"github.com/storefront-kit/selectord/pkg/display"
	"github.com/storefront-kit/selectord/pkg/model"
	"github.com/storefront-kit/selectord/pkg/overlay"
)

const flagCDNBaseURL = "https://cdn.shopify.com/static/images/flags"

// FlagURL returns the flag SVG for an ISO country code.
func FlagURL(countryCode string) string {
	return fmt.Sprintf("%s/%s.svg", flagCDNBaseURL, strings.ToLower(countryCode))
}

type Trigger struct {
	Variant     model.TriggerVariant `json:"variant"`
	ShowChevron bool                 `json:"showChevron"`
	Open        bool                 `json:"open"`
}

// ContainerView is one container wrapper of the plan. Responsive modes
// render every kind at once and toggle them with Classes, so resizing never
// remounts the selector.
type ContainerView struct {
	Kind    model.ContainerKind       `json:"kind"`
	Classes string                    `json:"classes"`
	Styles  map[string]string         `json:"styles"`
	Anchor  *overlay.Anchor           `json:"anchor,omitempty"`
	Open    bool                      `json:"open"`
	Visible map[model.Breakpoint]bool `json:"visible"`
}

type View struct {
	Placement   model.PlacementID  `json:"placement"`
	Trigger     Trigger            `json:"trigger"`
	ColorScheme *model.ColorScheme `json:"colorScheme,omitempty"`
	Containers  []ContainerView    `json:"containers"`
}

// Render builds the plan for placement p. inMobileMenu forces a single
// upward-opening dropdown regardless of the configured display mode. page
// may be nil, in which case every container is reported closed.
func Render(cfg model.SelectorConfig, p model.PlacementID, inMobileMenu bool, page *Page) View {
	view := View{
		Placement:   p,
		ColorScheme: cfg.ColorScheme,
		Trigger: Trigger{
			Variant:     cfg.TriggerVariant,
			ShowChevron: cfg.ShowChevron,
		},
	}

	mode := cfg.DisplayMode
	forceUpward := inMobileMenu || p.DropdownOnly()
	if forceUpward {
		mode = model.Single(model.Dropdown)
	}

	var kinds []model.ContainerKind
	if mode.Kind == model.ResponsiveKind {
		kinds = model.ContainerKinds
	} else {
		kinds = []model.ContainerKind{mode.Mode}
	}

	for _, kind := range kinds {
		cv := ContainerView{
			Kind:    kind,
			Classes: display.Classes(mode, kind),
			Visible: display.Visibility(mode, kind),
		}
		switch kind {
		case model.Dropdown:
			cv.Styles = overlay.Styles(cfg.DropdownStyle)
			anchor := overlay.AnchorFor(forceUpward)
			cv.Anchor = &anchor
			if page != nil && page.Dropdowns[p] != nil {
				cv.Open = page.Dropdowns[p].IsOpen()
			}
		case model.Modal:
			cv.Styles = overlay.Styles(cfg.ModalStyle)
			if page != nil && page.Modal != nil {
				cv.Open = page.Modal.IsOpen()
			}
		case model.Sidebar:
			cv.Styles = overlay.Styles(cfg.SidebarStyle)
			if page != nil && page.Sidebar != nil {
				cv.Open = page.Sidebar.IsOpen()
			}
		}
		view.Trigger.Open = view.Trigger.Open || cv.Open
		view.Containers = append(view.Containers, cv)
	}
	return view
}

// RenderDropdown builds the plan for a dropdown-only placement.
func RenderDropdown(cfg model.DropdownSelectorConfig, page *Page) View {
	return Render(cfg.Selector(), model.PlacementMobile, true, page)
}
