package overlay

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/storefront-kit/selectord/pkg/model"
)

var radiusPx = map[model.Tier]int{
	model.TierNone: 0,
	model.TierSm:   4,
	model.TierMd:   8,
	model.TierLg:   12,
	model.TierXl:   16,
}

var shadows = map[model.Tier]string{
	model.TierNone: "none",
	model.TierSm:   "0 1px 2px 0 rgb(0 0 0 / 0.05)",
	model.TierMd:   "0 4px 6px -1px rgb(0 0 0 / 0.1), 0 2px 4px -2px rgb(0 0 0 / 0.1)",
	model.TierLg:   "0 10px 15px -3px rgb(0 0 0 / 0.1), 0 4px 6px -4px rgb(0 0 0 / 0.1)",
	model.TierXl:   "0 20px 25px -5px rgb(0 0 0 / 0.1), 0 8px 10px -6px rgb(0 0 0 / 0.1)",
}

// Styles returns the inline CSS properties of a panel. A nil style yields
// no properties so theme defaults apply.
func Styles(s *model.ContainerStyle) map[string]string {
	styles := map[string]string{}
	if s == nil {
		return styles
	}

	if px, ok := radiusPx[s.BorderRadius]; ok {
		styles["border-radius"] = fmt.Sprintf("%dpx", px)
	}

	shadow, ok := shadows[s.Shadow]
	if !ok {
		shadow = shadows[model.TierMd]
	}
	styles["box-shadow"] = shadow

	if s.ShowBorder {
		styles["border-width"] = strconv.FormatFloat(s.BorderWidth, 'f', -1, 64) + "px"
		styles["border-style"] = "solid"
	} else {
		styles["border"] = "none"
	}
	return styles
}

// CSS renders Styles as a declaration list with properties in name order.
func CSS(s *model.ContainerStyle) string {
	styles := Styles(s)
	keys := make([]string, 0, len(styles))
	for k := range styles {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	decls := make([]string, 0, len(keys))
	for _, k := range keys {
		decls = append(decls, k+": "+styles[k])
	}
	return strings.Join(decls, "; ")
}
