package model

// RawSelectorConfig is the flat shape the CMS returns for the header and
// announcement bar placements. Any field may be absent or null.
type RawSelectorConfig struct {
	TriggerVariant  *string            `json:"triggerVariant,omitempty"`
	ShowChevron     *bool              `json:"showChevron,omitempty"`
	ColorScheme     *RawColorScheme    `json:"colorScheme,omitempty"`
	DisplayModeKind *string            `json:"displayModeKind,omitempty"`
	Mode            *string            `json:"mode,omitempty"`
	ModeBase        *string            `json:"modeBase,omitempty"`
	ModeSm          *string            `json:"modeSm,omitempty"`
	ModeMd          *string            `json:"modeMd,omitempty"`
	ModeLg          *string            `json:"modeLg,omitempty"`
	DropdownConfig  *RawContainerStyle `json:"dropdownConfig,omitempty"`
	SidebarConfig   *RawContainerStyle `json:"sidebarConfig,omitempty"`
	ModalConfig     *RawContainerStyle `json:"modalConfig,omitempty"`
}

// RawDropdownSelectorConfig is the dropdown-only CMS shape used by the
// mobile placement. PopoverConfig is the legacy name of DropdownConfig.
type RawDropdownSelectorConfig struct {
	TriggerVariant *string            `json:"triggerVariant,omitempty"`
	ShowChevron    *bool              `json:"showChevron,omitempty"`
	ColorScheme    *RawColorScheme    `json:"colorScheme,omitempty"`
	DropdownConfig *RawContainerStyle `json:"dropdownConfig,omitempty"`
	PopoverConfig  *RawContainerStyle `json:"popoverConfig,omitempty"`
}

type RawContainerStyle struct {
	BorderRadius *string  `json:"borderRadius,omitempty"`
	Shadow       *string  `json:"shadow,omitempty"`
	ShowBorder   *bool    `json:"showBorder,omitempty"`
	BorderWidth  *float64 `json:"borderWidth,omitempty"`
}

type RawColor struct {
	Hex   *string  `json:"hex,omitempty"`
	Alpha *float64 `json:"alpha,omitempty"`
}

type RawColorScheme struct {
	Background        *RawColor `json:"background,omitempty"`
	Border            *RawColor `json:"border,omitempty"`
	Card              *RawColor `json:"card,omitempty"`
	CardForeground    *RawColor `json:"cardForeground,omitempty"`
	Foreground        *RawColor `json:"foreground,omitempty"`
	Primary           *RawColor `json:"primary,omitempty"`
	PrimaryForeground *RawColor `json:"primaryForeground,omitempty"`
}

// HeaderDocument is the slice of the CMS header singleton that carries the
// locale selector placements.
type HeaderDocument struct {
	ID                              string                     `json:"_id,omitempty"`
	Type                            string                     `json:"_type,omitempty"`
	HeaderLocaleSelector            *RawSelectorConfig         `json:"headerLocaleSelector,omitempty"`
	AnnouncementBarLocaleSelector   *RawSelectorConfig         `json:"announcementBarLocaleSelector,omitempty"`
	MobileLocaleSelector            *RawDropdownSelectorConfig `json:"mobileLocaleSelector,omitempty"`
	DesktopMegaMenuBehavior         *string                    `json:"desktopMegaMenuBehavior,omitempty"`
	DesktopAllowMegaMenuParentLinks *bool                      `json:"desktopAllowMegaMenuParentLinks,omitempty"`
}

// PlacementConfig is the stored raw config of one placement. Exactly one of
// Selector and Dropdown is set, depending on Placement.DropdownOnly.
type PlacementConfig struct {
	Placement PlacementID                `json:"placement"`
	Source    string                     `json:"source"`
	Selector  *RawSelectorConfig         `json:"selector,omitempty"`
	Dropdown  *RawDropdownSelectorConfig `json:"dropdown,omitempty"`
}

// Placements splits the document into its placement configs. Placements
// the author left unset are omitted.
func (h HeaderDocument) Placements(source string) map[PlacementID]PlacementConfig {
	out := map[PlacementID]PlacementConfig{}
	if h.HeaderLocaleSelector != nil {
		out[PlacementHeader] = PlacementConfig{Placement: PlacementHeader, Source: source, Selector: h.HeaderLocaleSelector}
	}
	if h.AnnouncementBarLocaleSelector != nil {
		out[PlacementAnnouncementBar] = PlacementConfig{Placement: PlacementAnnouncementBar, Source: source, Selector: h.AnnouncementBarLocaleSelector}
	}
	if h.MobileLocaleSelector != nil {
		out[PlacementMobile] = PlacementConfig{Placement: PlacementMobile, Source: source, Dropdown: h.MobileLocaleSelector}
	}
	return out
}
