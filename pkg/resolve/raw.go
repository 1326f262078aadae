package resolve

import "github.com/storefront-kit/selectord/pkg/model"

// ToRaw converts a resolved config back into the CMS shape. Resolving the
// result yields the same config.
func ToRaw(c model.SelectorConfig) model.RawSelectorConfig {
	raw := model.RawSelectorConfig{
		TriggerVariant: ptr(string(c.TriggerVariant)),
		ShowChevron:    ptr(c.ShowChevron),
		ColorScheme:    rawColorScheme(c.ColorScheme),
		DropdownConfig: rawContainerStyle(c.DropdownStyle),
		SidebarConfig:  rawContainerStyle(c.SidebarStyle),
		ModalConfig:    rawContainerStyle(c.ModalStyle),
	}

	dm := c.DisplayMode
	raw.DisplayModeKind = ptr(string(dm.Kind))
	if dm.Kind == model.ResponsiveKind {
		raw.ModeBase = ptr(string(dm.Base))
		raw.ModeSm = kindPtr(dm.Sm)
		raw.ModeMd = kindPtr(dm.Md)
		raw.ModeLg = kindPtr(dm.Lg)
	} else {
		raw.Mode = ptr(string(dm.Mode))
	}
	return raw
}

// DropdownToRaw is ToRaw for dropdown-only configs.
func DropdownToRaw(c model.DropdownSelectorConfig) model.RawDropdownSelectorConfig {
	return model.RawDropdownSelectorConfig{
		TriggerVariant: ptr(string(c.TriggerVariant)),
		ShowChevron:    ptr(c.ShowChevron),
		ColorScheme:    rawColorScheme(c.ColorScheme),
		DropdownConfig: rawContainerStyle(c.DropdownStyle),
	}
}

func rawContainerStyle(s *model.ContainerStyle) *model.RawContainerStyle {
	if s == nil {
		return nil
	}
	return &model.RawContainerStyle{
		BorderRadius: ptr(string(s.BorderRadius)),
		Shadow:       ptr(string(s.Shadow)),
		ShowBorder:   ptr(s.ShowBorder),
		BorderWidth:  ptr(s.BorderWidth),
	}
}

func rawColorScheme(s *model.ColorScheme) *model.RawColorScheme {
	if s == nil {
		return nil
	}
	return &model.RawColorScheme{
		Background:        rawColor(s.Background),
		Border:            rawColor(s.Border),
		Card:              rawColor(s.Card),
		CardForeground:    rawColor(s.CardForeground),
		Foreground:        rawColor(s.Foreground),
		Primary:           rawColor(s.Primary),
		PrimaryForeground: rawColor(s.PrimaryForeground),
	}
}

func rawColor(c *model.Color) *model.RawColor {
	if c == nil {
		return nil
	}
	return &model.RawColor{Hex: ptr(c.Hex), Alpha: ptr(c.Alpha)}
}

func kindPtr(k model.ContainerKind) *string {
	if k == "" {
		return nil
	}
	return ptr(string(k))
}

func ptr[T any](v T) *T {
	return &v
}
