// Package resolve turns raw, partially-null CMS selector fields into fully
// populated selector configurations. Resolution never fails: values that
// are missing, null or outside their enum fall back to defaults.
package resolve

import (
	"math"
	"strings"

	"github.com/storefront-kit/selectord/pkg/model"
	"github.com/storefront-kit/selectord/pkg/stega"
)

const (
	defaultTier        = model.TierMd
	defaultBorderWidth = 1.0
	minBorderWidth     = 1.0
	maxBorderWidth     = 4.0
)

// Resolve resolves the config of a placement that supports every
// container kind. A nil raw config yields the defaults.
func Resolve(raw *model.RawSelectorConfig) model.SelectorConfig {
	if raw == nil {
		return model.SelectorDefaults
	}

	return model.SelectorConfig{
		TriggerVariant: triggerVariant(raw.TriggerVariant, model.SelectorDefaults.TriggerVariant),
		ShowChevron:    boolOr(raw.ShowChevron, model.SelectorDefaults.ShowChevron),
		ColorScheme:    colorScheme(raw.ColorScheme),
		DisplayMode:    displayMode(raw),
		DropdownStyle:  containerStyle(raw.DropdownConfig),
		SidebarStyle:   containerStyle(raw.SidebarConfig),
		ModalStyle:     containerStyle(raw.ModalConfig),
	}
}

// ResolveDropdown resolves the narrower dropdown-only config. The legacy
// popoverConfig field is read when dropdownConfig is absent.
func ResolveDropdown(raw *model.RawDropdownSelectorConfig) model.DropdownSelectorConfig {
	if raw == nil {
		return model.DropdownSelectorDefaults
	}

	style := raw.DropdownConfig
	if style == nil {
		style = raw.PopoverConfig
	}

	return model.DropdownSelectorConfig{
		TriggerVariant: triggerVariant(raw.TriggerVariant, model.DropdownSelectorDefaults.TriggerVariant),
		ShowChevron:    boolOr(raw.ShowChevron, model.DropdownSelectorDefaults.ShowChevron),
		ColorScheme:    colorScheme(raw.ColorScheme),
		DropdownStyle:  containerStyle(style),
	}
}

func triggerVariant(value *string, fallback model.TriggerVariant) model.TriggerVariant {
	if value == nil {
		return fallback
	}
	cleaned := model.TriggerVariant(stega.Clean(*value))
	for _, v := range model.TriggerVariants {
		if v == cleaned {
			return v
		}
	}
	return fallback
}

// containerKind returns the empty kind for absent or unknown values.
func containerKind(value *string) model.ContainerKind {
	if value == nil {
		return ""
	}
	switch cleaned := stega.Clean(*value); cleaned {
	case string(model.Dropdown), "popover":
		return model.Dropdown
	case string(model.Modal):
		return model.Modal
	case string(model.Sidebar):
		return model.Sidebar
	}
	return ""
}

func kindOr(value *string, fallback model.ContainerKind) model.ContainerKind {
	if k := containerKind(value); k != "" {
		return k
	}
	return fallback
}

func displayMode(raw *model.RawSelectorConfig) model.DisplayMode {
	kind := model.SingleKind
	if raw.DisplayModeKind != nil {
		kind = model.DisplayModeKind(stega.Clean(*raw.DisplayModeKind))
	}

	if kind == model.ResponsiveKind {
		return model.Responsive(
			kindOr(raw.ModeBase, model.Dropdown),
			containerKind(raw.ModeSm),
			containerKind(raw.ModeMd),
			containerKind(raw.ModeLg),
		)
	}

	return model.Single(kindOr(raw.Mode, model.Dropdown))
}

func tier(value *string) model.Tier {
	if value == nil {
		return defaultTier
	}
	cleaned := model.Tier(stega.Clean(*value))
	for _, t := range model.Tiers {
		if t == cleaned {
			return t
		}
	}
	return defaultTier
}

func borderWidth(value *float64) float64 {
	if value == nil || math.IsNaN(*value) {
		return defaultBorderWidth
	}
	w := math.Round(*value*2) / 2
	return math.Min(maxBorderWidth, math.Max(minBorderWidth, w))
}

func containerStyle(raw *model.RawContainerStyle) *model.ContainerStyle {
	if raw == nil {
		return nil
	}
	return &model.ContainerStyle{
		BorderRadius: tier(raw.BorderRadius),
		Shadow:       tier(raw.Shadow),
		ShowBorder:   boolOr(raw.ShowBorder, true),
		BorderWidth:  borderWidth(raw.BorderWidth),
	}
}

func colorScheme(raw *model.RawColorScheme) *model.ColorScheme {
	if raw == nil {
		return nil
	}
	return &model.ColorScheme{
		Background:        color(raw.Background),
		Border:            color(raw.Border),
		Card:              color(raw.Card),
		CardForeground:    color(raw.CardForeground),
		Foreground:        color(raw.Foreground),
		Primary:           color(raw.Primary),
		PrimaryForeground: color(raw.PrimaryForeground),
	}
}

func color(raw *model.RawColor) *model.Color {
	if raw == nil || raw.Hex == nil {
		return nil
	}
	hex := strings.ToLower(strings.TrimSpace(stega.Clean(*raw.Hex)))
	if !validHex(hex) {
		return nil
	}
	alpha := 1.0
	if raw.Alpha != nil && *raw.Alpha >= 0 && *raw.Alpha <= 1 {
		alpha = *raw.Alpha
	}
	return &model.Color{Hex: hex, Alpha: alpha}
}

func validHex(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	switch len(s) {
	case 4, 5, 7, 9:
	default:
		return false
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return true
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

// Placement resolves a stored placement config. Dropdown-only placements
// are lifted to a single dropdown display mode.
func Placement(cfg model.PlacementConfig) model.SelectorConfig {
	if cfg.Placement.DropdownOnly() {
		return ResolveDropdown(cfg.Dropdown).Selector()
	}
	return Resolve(cfg.Selector)
}
