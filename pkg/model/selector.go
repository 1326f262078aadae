package model

// TriggerVariant controls what the selector trigger button renders.
type TriggerVariant string

const (
	TriggerIcon            TriggerVariant = "icon"
	TriggerFlag            TriggerVariant = "flag"
	TriggerFlagCountry     TriggerVariant = "flag-country"
	TriggerFlagCountryLang TriggerVariant = "flag-country-lang"
)

var TriggerVariants = []TriggerVariant{
	TriggerIcon,
	TriggerFlag,
	TriggerFlagCountry,
	TriggerFlagCountryLang,
}

// ContainerKind is one of the three overlay presentation strategies.
type ContainerKind string

const (
	Dropdown ContainerKind = "dropdown"
	Modal    ContainerKind = "modal"
	Sidebar  ContainerKind = "sidebar"
)

var ContainerKinds = []ContainerKind{Dropdown, Modal, Sidebar}

type DisplayModeKind string

const (
	SingleKind     DisplayModeKind = "single"
	ResponsiveKind DisplayModeKind = "responsive"
)

// DisplayMode is either a single container kind for every viewport width
// or a mobile-first set of per-breakpoint overrides. Sm, Md and Lg are
// empty when unset and inherit from the next smaller tier.
type DisplayMode struct {
	Kind DisplayModeKind `json:"kind"`
	Mode ContainerKind   `json:"mode,omitempty"`
	Base ContainerKind   `json:"base,omitempty"`
	Sm   ContainerKind   `json:"sm,omitempty"`
	Md   ContainerKind   `json:"md,omitempty"`
	Lg   ContainerKind   `json:"lg,omitempty"`
}

func Single(mode ContainerKind) DisplayMode {
	return DisplayMode{Kind: SingleKind, Mode: mode}
}

func Responsive(base, sm, md, lg ContainerKind) DisplayMode {
	return DisplayMode{Kind: ResponsiveKind, Base: base, Sm: sm, Md: md, Lg: lg}
}

type Tier string

const (
	TierNone Tier = "none"
	TierSm   Tier = "sm"
	TierMd   Tier = "md"
	TierLg   Tier = "lg"
	TierXl   Tier = "xl"
)

var Tiers = []Tier{TierNone, TierSm, TierMd, TierLg, TierXl}

// ContainerStyle holds the cosmetic parameters of an overlay panel.
type ContainerStyle struct {
	BorderRadius Tier    `json:"borderRadius"`
	Shadow       Tier    `json:"shadow"`
	ShowBorder   bool    `json:"showBorder"`
	BorderWidth  float64 `json:"borderWidth"`
}

type Color struct {
	Hex   string  `json:"hex"`
	Alpha float64 `json:"alpha"`
}

type ColorScheme struct {
	Background        *Color `json:"background,omitempty"`
	Border            *Color `json:"border,omitempty"`
	Card              *Color `json:"card,omitempty"`
	CardForeground    *Color `json:"cardForeground,omitempty"`
	Foreground        *Color `json:"foreground,omitempty"`
	Primary           *Color `json:"primary,omitempty"`
	PrimaryForeground *Color `json:"primaryForeground,omitempty"`
}

// SelectorConfig is the resolved configuration for the header and
// announcement bar placements. The optional members are nil when the
// author left them unset, which the presentation layer treats as
// "use the theme default".
type SelectorConfig struct {
	TriggerVariant TriggerVariant  `json:"triggerVariant"`
	ShowChevron    bool            `json:"showChevron"`
	ColorScheme    *ColorScheme    `json:"colorScheme"`
	DisplayMode    DisplayMode     `json:"displayMode"`
	DropdownStyle  *ContainerStyle `json:"dropdownStyle"`
	SidebarStyle   *ContainerStyle `json:"sidebarStyle"`
	ModalStyle     *ContainerStyle `json:"modalStyle"`
}

// DropdownSelectorConfig is the resolved configuration for placements that
// only ever render a dropdown (the mobile drawer).
type DropdownSelectorConfig struct {
	TriggerVariant TriggerVariant  `json:"triggerVariant"`
	ShowChevron    bool            `json:"showChevron"`
	ColorScheme    *ColorScheme    `json:"colorScheme"`
	DropdownStyle  *ContainerStyle `json:"dropdownStyle"`
}

// Selector lifts a dropdown-only config into a full one with a single
// dropdown display mode.
func (c DropdownSelectorConfig) Selector() SelectorConfig {
	return SelectorConfig{
		TriggerVariant: c.TriggerVariant,
		ShowChevron:    c.ShowChevron,
		ColorScheme:    c.ColorScheme,
		DisplayMode:    Single(Dropdown),
		DropdownStyle:  c.DropdownStyle,
	}
}

var SelectorDefaults = SelectorConfig{
	TriggerVariant: TriggerFlagCountry,
	ShowChevron:    true,
	DisplayMode:    Single(Dropdown),
}

var DropdownSelectorDefaults = DropdownSelectorConfig{
	TriggerVariant: TriggerFlagCountry,
	ShowChevron:    true,
}
