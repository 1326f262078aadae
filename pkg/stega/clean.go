// Package stega strips the invisible visual-editing markers a CMS appends to
// string fields when content source maps are enabled.
package stega

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

func isMarker(r rune) bool {
	switch {
	case r >= 0x200B && r <= 0x200D:
		return true
	case r == 0x2060, r == 0xFEFF:
		return true
	case r >= 0xE0000 && r <= 0xE007F:
		return true
	}
	return false
}

// Clean returns s without encoded markers.
func Clean(s string) string {
	out, _, err := transform.String(runes.Remove(runes.Predicate(isMarker)), s)
	if err != nil {
		return s
	}
	return out
}
