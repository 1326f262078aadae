package model

import "fmt"

// PlacementID identifies where in the page chrome a selector lives.
type PlacementID string

const (
	PlacementHeader          PlacementID = "header"
	PlacementAnnouncementBar PlacementID = "announcementBar"
	PlacementMobile          PlacementID = "mobile"
)

var Placements = []PlacementID{PlacementHeader, PlacementAnnouncementBar, PlacementMobile}

func ParsePlacement(s string) (PlacementID, error) {
	for _, p := range Placements {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%s: %q", PlacementNotFoundErrorCode, s)
}

// DropdownOnly reports whether the placement is restricted to the dropdown
// container kind.
func (p PlacementID) DropdownOnly() bool {
	return p == PlacementMobile
}

// Breakpoint is a mobile-first viewport width tier.
type Breakpoint string

const (
	BreakpointBase Breakpoint = "base"
	BreakpointSm   Breakpoint = "sm"
	BreakpointMd   Breakpoint = "md"
	BreakpointLg   Breakpoint = "lg"
)

var Breakpoints = []Breakpoint{BreakpointBase, BreakpointSm, BreakpointMd, BreakpointLg}

// MinWidth returns the viewport width in px at which the tier starts.
func (b Breakpoint) MinWidth() int {
	switch b {
	case BreakpointSm:
		return 640
	case BreakpointMd:
		return 768
	case BreakpointLg:
		return 1024
	}
	return 0
}

func ParseBreakpoint(s string) (Breakpoint, error) {
	for _, b := range Breakpoints {
		if string(b) == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("%s: %q", InvalidBreakpointErrorCode, s)
}

func ParseContainerKind(s string) (ContainerKind, error) {
	for _, k := range ContainerKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%s: %q", InvalidContainerKindErrorCode, s)
}
