// Package display decides which container kind is visible at which
// breakpoint for a display mode.
package display

import (
	"strings"

	"github.com/storefront-kit/selectord/pkg/model"
)

// Effective returns the container kind in effect at bp. Responsive tiers
// that are unset inherit the nearest smaller tier, base always applies.
func Effective(mode model.DisplayMode, bp model.Breakpoint) model.ContainerKind {
	if mode.Kind != model.ResponsiveKind {
		return mode.Mode
	}

	resolved := mode.Base
	for _, tier := range model.Breakpoints[1:] {
		if tier.MinWidth() > bp.MinWidth() {
			break
		}
		if k := override(mode, tier); k != "" {
			resolved = k
		}
	}
	return resolved
}

func override(mode model.DisplayMode, bp model.Breakpoint) model.ContainerKind {
	switch bp {
	case model.BreakpointSm:
		return mode.Sm
	case model.BreakpointMd:
		return mode.Md
	case model.BreakpointLg:
		return mode.Lg
	}
	return mode.Base
}

// VisibleAt reports whether the target container kind is shown at bp.
func VisibleAt(mode model.DisplayMode, target model.ContainerKind, bp model.Breakpoint) bool {
	return Effective(mode, bp) == target
}

// Visibility is VisibleAt evaluated at every tier.
func Visibility(mode model.DisplayMode, target model.ContainerKind) map[model.Breakpoint]bool {
	out := make(map[model.Breakpoint]bool, len(model.Breakpoints))
	for _, bp := range model.Breakpoints {
		out[bp] = VisibleAt(mode, target, bp)
	}
	return out
}

// Kinds returns the distinct container kinds the mode uses at any tier, in
// breakpoint order.
func Kinds(mode model.DisplayMode) []model.ContainerKind {
	var kinds []model.ContainerKind
	seen := map[model.ContainerKind]bool{}
	for _, bp := range model.Breakpoints {
		k := Effective(mode, bp)
		if k != "" && !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Classes returns the utility classes that toggle the target container's
// wrapper. Only transitions between tiers get a breakpoint-scoped class.
func Classes(mode model.DisplayMode, target model.ContainerKind) string {
	if mode.Kind != model.ResponsiveKind {
		return toggle("", mode.Mode == target)
	}

	classes := make([]string, 0, len(model.Breakpoints))
	prev := false
	for i, bp := range model.Breakpoints {
		visible := VisibleAt(mode, target, bp)
		if i == 0 {
			classes = append(classes, toggle("", visible))
		} else if visible != prev {
			classes = append(classes, toggle(string(bp)+":", visible))
		}
		prev = visible
	}
	return strings.Join(classes, " ")
}

func toggle(prefix string, visible bool) string {
	if visible {
		return prefix + "block"
	}
	return prefix + "hidden"
}

// BreakpointForWidth maps a viewport width in px to its tier.
func BreakpointForWidth(px int) model.Breakpoint {
	current := model.BreakpointBase
	for _, bp := range model.Breakpoints {
		if px >= bp.MinWidth() {
			current = bp
		}
	}
	return current
}
