package service

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/deepmap/oapi-codegen/pkg/runtime"
	"github.com/go-chi/chi/v5"
	"github.com/rs/xid"
	log "github.com/sirupsen/logrus"

	"github.com/storefront-kit/selectord/pkg/display"
	"github.com/storefront-kit/selectord/pkg/megamenu"
	"github.com/storefront-kit/selectord/pkg/model"
	"github.com/storefront-kit/selectord/pkg/overlay"
	"github.com/storefront-kit/selectord/pkg/selector"
)

// session is the overlay state of one page view. Configs are captured when
// the session starts, matching a page rendered from a single document
// revision.
type session struct {
	mu      sync.Mutex
	page    *selector.Page
	configs map[model.PlacementID]model.SelectorConfig

	// guarded by sessions.mu
	lastSeen time.Time
}

func (sess *session) dispose() {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.page.Dispose()
}

// sessions holds the live page sessions. A session idle for longer than ttl
// is gone: lookups treat it as unknown and sweep disposes it.
type sessions struct {
	mu   sync.Mutex
	byID map[string]*session
	ttl  time.Duration
	now  func() time.Time
}

func newSessions(ttl time.Duration, now func() time.Time) *sessions {
	return &sessions{byID: map[string]*session{}, ttl: ttl, now: now}
}

func (ss *sessions) add(sess *session) string {
	id := xid.New().String()

	ss.mu.Lock()
	defer ss.mu.Unlock()
	sess.lastSeen = ss.now()
	ss.byID[id] = sess
	return id
}

// get returns the session and marks it as used.
func (ss *sessions) get(id string) (*session, error) {
	ss.mu.Lock()
	sess, ok := ss.byID[id]
	now := ss.now()
	expired := ok && now.Sub(sess.lastSeen) > ss.ttl
	if expired {
		delete(ss.byID, id)
	} else if ok {
		sess.lastSeen = now
	}
	ss.mu.Unlock()

	if expired {
		log.Debugf("session %s expired", id)
		sess.dispose()
	}
	if !ok || expired {
		return nil, fmt.Errorf("%s: %q", model.SessionNotFoundErrorCode, id)
	}
	return sess, nil
}

func (ss *sessions) remove(id string) (*session, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	sess, ok := ss.byID[id]
	delete(ss.byID, id)
	return sess, ok
}

// sweep disposes every idle session and returns how many were dropped.
func (ss *sessions) sweep() int {
	ss.mu.Lock()
	now := ss.now()
	var idle []*session
	for id, sess := range ss.byID {
		if now.Sub(sess.lastSeen) > ss.ttl {
			idle = append(idle, sess)
			delete(ss.byID, id)
		}
	}
	ss.mu.Unlock()

	for _, sess := range idle {
		sess.dispose()
	}
	if len(idle) > 0 {
		log.Debugf("dropped %d idle sessions", len(idle))
	}
	return len(idle)
}

func (ss *sessions) len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.byID)
}

type SessionResponse struct {
	ID string `json:"id"`
}

func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	configs := s.resolvedAll(r.Context())
	settings := s.store.MegaMenu()
	menu := megamenu.FromSettings(settings.Behavior, settings.AllowParentLinks)
	menu.Now = s.sessions.now

	id := s.sessions.add(&session{page: selector.NewPage(menu), configs: configs})

	log.Debugf("session %s started", id)
	writeJSON(w, http.StatusCreated, SessionResponse{ID: id})
}

func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionParam(r)
	if err != nil {
		handleError(err, w)
		return
	}

	sess, ok := s.sessions.remove(id)
	if !ok {
		handleError(fmt.Errorf("%s: %q", model.SessionNotFoundErrorCode, id), w)
		return
	}
	sess.dispose()
	w.WriteHeader(http.StatusNoContent)
}

// SessionEvent dispatches a page-level event such as escape or scroll.
func (s *Server) SessionEvent(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFor(r)
	if err != nil {
		handleError(err, w)
		return
	}
	var raw string
	if err := runtime.BindQueryParameter("form", true, true, "event", r.URL.Query(), &raw); err != nil {
		handleError(parseError(err), w)
		return
	}
	ev, err := parseEvent(raw)
	if err != nil {
		handleError(err, w)
		return
	}

	sess.mu.Lock()
	sess.page.Dispatch(ev)
	sess.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) SessionView(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFor(r)
	if err != nil {
		handleError(err, w)
		return
	}
	p, err := placementParam(r)
	if err != nil {
		handleError(err, w)
		return
	}
	inMobileMenu, err := boolQuery(r, "inMobileMenu")
	if err != nil {
		handleError(err, w)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	writeJSON(w, http.StatusOK, selector.Render(sess.configs[p], p, inMobileMenu, sess.page))
}

// SessionToggle flips the container of the given kind serving placement,
// as a click on its trigger would. Only kinds the placement renders in its
// current context can be toggled.
func (s *Server) SessionToggle(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFor(r)
	if err != nil {
		handleError(err, w)
		return
	}
	p, err := placementParam(r)
	if err != nil {
		handleError(err, w)
		return
	}
	inMobileMenu, err := boolQuery(r, "inMobileMenu")
	if err != nil {
		handleError(err, w)
		return
	}
	var raw string
	if err := runtime.BindQueryParameter("form", true, true, "kind", r.URL.Query(), &raw); err != nil {
		handleError(parseError(err), w)
		return
	}
	kind, err := model.ParseContainerKind(raw)
	if err != nil {
		handleError(err, w)
		return
	}

	cfg := sess.configs[p]
	mode := cfg.DisplayMode
	if inMobileMenu || p.DropdownOnly() {
		mode = model.Single(model.Dropdown)
	}
	if !slices.Contains(display.Kinds(mode), kind) {
		handleError(fmt.Errorf("%s: %s does not render a %s", model.InvalidContainerKindErrorCode, p, kind), w)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	c := sess.page.Container(p, kind)
	c.SetOpen(!c.IsOpen())
	writeJSON(w, http.StatusOK, selector.Render(cfg, p, inMobileMenu, sess.page))
}

func (s *Server) sessionFor(r *http.Request) (*session, error) {
	id, err := sessionParam(r)
	if err != nil {
		return nil, err
	}
	return s.sessions.get(id)
}

func (s *Server) resolvedAll(ctx context.Context) map[model.PlacementID]model.SelectorConfig {
	configs := make(map[model.PlacementID]model.SelectorConfig, len(model.Placements))
	for _, p := range model.Placements {
		configs[p], _ = s.resolved(ctx, p)
	}
	return configs
}

func sessionParam(r *http.Request) (string, error) {
	var id string
	err := runtime.BindStyledParameterWithLocation("simple", false, "session", runtime.ParamLocationPath, chi.URLParam(r, "session"), &id)
	if err != nil {
		return "", parseError(err)
	}
	return id, nil
}

func parseEvent(s string) (overlay.Event, error) {
	switch ev := overlay.Event(s); ev {
	case overlay.EventOutsideClick, overlay.EventEscape, overlay.EventScroll, overlay.EventNavigate:
		return ev, nil
	}
	return "", fmt.Errorf("%s: unknown event %q", model.ParseErrorCode, s)
}
