package overlay

import (
	"github.com/storefront-kit/selectord/pkg/model"
	"github.com/storefront-kit/selectord/pkg/placement"
)

// Bind makes the placement coordinator and the aside stack mutually
// exclusive for the selector's own overlays: opening a dropdown closes a
// visible selector modal or sidebar, and opening either of those closes the
// open dropdown. Other asides (cart, mobile menu) are not affected, since a
// dropdown may legitimately open inside the mobile menu.
func Bind(coord *placement.Coordinator, stack *AsideStack) func() {
	offCoord := coord.OnChange(func(_, next model.PlacementID) {
		if next == "" {
			return
		}
		stack.CloseIf(AsideLocaleModal)
		stack.CloseIf(AsideLocaleSidebar)
	})
	offStack := stack.OnChange(func(_, next AsideType) {
		if next == AsideLocaleModal || next == AsideLocaleSidebar {
			coord.Close()
		}
	})
	return func() {
		offCoord()
		offStack()
	}
}
