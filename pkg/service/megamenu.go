package service

import (
	"net/http"

	"github.com/deepmap/oapi-codegen/pkg/runtime"

	"github.com/storefront-kit/selectord/pkg/megamenu"
)

type MegaMenuState struct {
	Behavior         megamenu.Behavior `json:"behavior"`
	AllowParentLinks bool              `json:"allowParentLinks"`
	// Open is the item whose panel is shown, empty when closed.
	Open string `json:"open"`
}

type megaMenuLayout struct {
	Nav   megamenu.Rect  `json:"nav"`
	Panel *megamenu.Rect `json:"panel,omitempty"`
}

func (s *Server) GetMegaMenu(w http.ResponseWriter, r *http.Request) {
	s.megaMenu(w, r, func(*megamenu.Menu) error { return nil })
}

func (s *Server) OpenMegaMenu(w http.ResponseWriter, r *http.Request) {
	var item string
	if err := runtime.BindQueryParameter("form", true, true, "item", r.URL.Query(), &item); err != nil {
		handleError(parseError(err), w)
		return
	}
	s.megaMenu(w, r, func(m *megamenu.Menu) error {
		m.Open(item)
		return nil
	})
}

func (s *Server) CloseMegaMenu(w http.ResponseWriter, r *http.Request) {
	s.megaMenu(w, r, func(m *megamenu.Menu) error {
		m.Close()
		return nil
	})
}

func (s *Server) MegaMenuLayout(w http.ResponseWriter, r *http.Request) {
	s.megaMenu(w, r, func(m *megamenu.Menu) error {
		var layout megaMenuLayout
		if err := decodeBody(r, &layout); err != nil {
			return err
		}
		m.SetLayout(layout.Nav, layout.Panel)
		return nil
	})
}

func (s *Server) MegaMenuPointer(w http.ResponseWriter, r *http.Request) {
	s.megaMenu(w, r, func(m *megamenu.Menu) error {
		p, err := pointQuery(r)
		if err != nil {
			return err
		}
		m.PointerMove(p)
		return nil
	})
}

func (s *Server) MegaMenuClick(w http.ResponseWriter, r *http.Request) {
	s.megaMenu(w, r, func(m *megamenu.Menu) error {
		p, err := pointQuery(r)
		if err != nil {
			return err
		}
		m.ClickAt(p)
		return nil
	})
}

func (s *Server) MegaMenuResize(w http.ResponseWriter, r *http.Request) {
	s.megaMenu(w, r, func(m *megamenu.Menu) error {
		var width int
		if err := runtime.BindQueryParameter("form", true, true, "width", r.URL.Query(), &width); err != nil {
			return parseError(err)
		}
		m.Resize(width)
		return nil
	})
}

// megaMenu applies fn to the session's menu under the session lock and
// writes the resulting state.
func (s *Server) megaMenu(w http.ResponseWriter, r *http.Request, fn func(*megamenu.Menu) error) {
	sess, err := s.sessionFor(r)
	if err != nil {
		handleError(err, w)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	m := sess.page.MegaMenu
	if err := fn(m); err != nil {
		handleError(err, w)
		return
	}
	writeJSON(w, http.StatusOK, MegaMenuState{
		Behavior:         m.Behavior,
		AllowParentLinks: m.AllowParentLinks,
		Open:             m.Current(),
	})
}

func pointQuery(r *http.Request) (megamenu.Point, error) {
	var p megamenu.Point
	if err := runtime.BindQueryParameter("form", true, true, "x", r.URL.Query(), &p.X); err != nil {
		return p, parseError(err)
	}
	if err := runtime.BindQueryParameter("form", true, true, "y", r.URL.Query(), &p.Y); err != nil {
		return p, parseError(err)
	}
	return p, nil
}
