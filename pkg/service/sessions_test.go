package service

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-kit/selectord/pkg/model"
	"github.com/storefront-kit/selectord/pkg/overlay"
	"github.com/storefront-kit/selectord/pkg/selector"
)

func (f *fixture) session(t *testing.T) string {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var got SessionResponse
	decodeJSON(t, resp, &got)
	require.NotEmpty(t, got.ID)
	return got.ID
}

func (f *fixture) page(t *testing.T, id string) *selector.Page {
	t.Helper()
	ss := f.svc.server.sessions
	ss.mu.Lock()
	defer ss.mu.Unlock()
	sess, ok := ss.byID[id]
	require.True(t, ok, "session %s is not live", id)
	return sess.page
}

func openKinds(view selector.View) map[model.ContainerKind]bool {
	open := map[model.ContainerKind]bool{}
	for _, c := range view.Containers {
		open[c.Kind] = c.Open
	}
	return open
}

func TestSession_ToggleDropdownsAreExclusive(t *testing.T) {
	f := newFixture(t)
	id := f.session(t)

	resp := f.do(t, http.MethodPost, "/sessions/"+id+"/placements/header/toggle?kind=dropdown", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view selector.View
	decodeJSON(t, resp, &view)
	assert.True(t, openKinds(view)[model.Dropdown])
	assert.True(t, view.Trigger.Open)

	resp = f.do(t, http.MethodPost, "/sessions/"+id+"/placements/mobile/toggle?kind=dropdown", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/sessions/"+id+"/placements/header/view", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view = selector.View{}
	decodeJSON(t, resp, &view)
	assert.False(t, openKinds(view)[model.Dropdown])
	assert.False(t, view.Trigger.Open)
}

func TestSession_AsideClosesDropdown(t *testing.T) {
	f := newFixture(t)
	id := f.session(t)

	f.do(t, http.MethodPost, "/sessions/"+id+"/placements/header/toggle?kind=dropdown", "")
	resp := f.do(t, http.MethodPost, "/sessions/"+id+"/placements/header/toggle?kind=sidebar", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view selector.View
	decodeJSON(t, resp, &view)
	open := openKinds(view)
	assert.True(t, open[model.Sidebar])
	assert.False(t, open[model.Dropdown])
}

func TestSession_EscapeClosesEverything(t *testing.T) {
	f := newFixture(t)
	id := f.session(t)
	f.do(t, http.MethodPost, "/sessions/"+id+"/placements/header/toggle?kind=sidebar", "")

	resp := f.do(t, http.MethodPost, "/sessions/"+id+"/events?event=escape", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/sessions/"+id+"/placements/header/view", "")
	var view selector.View
	decodeJSON(t, resp, &view)
	assert.False(t, view.Trigger.Open)
}

func TestSession_Errors(t *testing.T) {
	f := newFixture(t)
	id := f.session(t)

	tests := map[string]struct {
		method string
		path   string
		status int
		code   string
	}{
		"unknown session":         {http.MethodGet, "/sessions/nope/placements/header/view", http.StatusNotFound, model.SessionNotFoundErrorCode},
		"unknown event":           {http.MethodPost, "/sessions/" + id + "/events?event=blur", http.StatusBadRequest, model.ParseErrorCode},
		"unknown kind":            {http.MethodPost, "/sessions/" + id + "/placements/header/toggle?kind=sheet", http.StatusBadRequest, model.InvalidContainerKindErrorCode},
		"mobile is dropdown only": {http.MethodPost, "/sessions/" + id + "/placements/mobile/toggle?kind=modal", http.StatusBadRequest, model.InvalidContainerKindErrorCode},
		"kind not rendered":       {http.MethodPost, "/sessions/" + id + "/placements/header/toggle?kind=modal", http.StatusBadRequest, model.InvalidContainerKindErrorCode},
		"mobile menu is dropdown": {http.MethodPost, "/sessions/" + id + "/placements/header/toggle?kind=sidebar&inMobileMenu=true", http.StatusBadRequest, model.InvalidContainerKindErrorCode},
		"unknown placement":       {http.MethodGet, "/sessions/" + id + "/placements/footer/view", http.StatusNotFound, model.PlacementNotFoundErrorCode},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			resp := f.do(t, tt.method, tt.path, "")
			require.Equal(t, tt.status, resp.StatusCode)
			var got errorResponse
			decodeJSON(t, resp, &got)
			assert.Equal(t, tt.code, got.ErrorCode)
		})
	}
}

func TestSession_Delete(t *testing.T) {
	f := newFixture(t)
	id := f.session(t)

	resp := f.do(t, http.MethodDelete, "/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodDelete, "/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSession_ToggleInMobileMenu(t *testing.T) {
	f := newFixture(t)
	id := f.session(t)

	resp := f.do(t, http.MethodPost, "/sessions/"+id+"/placements/header/toggle?kind=dropdown&inMobileMenu=true", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view selector.View
	decodeJSON(t, resp, &view)
	require.Len(t, view.Containers, 1)
	assert.Equal(t, model.Dropdown, view.Containers[0].Kind)
	assert.True(t, view.Containers[0].Open)
}

func TestSession_IdleExpires(t *testing.T) {
	f := newFixture(t)
	id := f.session(t)

	f.clock.Advance(9 * time.Minute)
	resp := f.do(t, http.MethodGet, "/sessions/"+id+"/placements/header/view", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// the request above counts as activity
	f.clock.Advance(9 * time.Minute)
	resp = f.do(t, http.MethodGet, "/sessions/"+id+"/placements/header/view", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	f.clock.Advance(11 * time.Minute)
	resp = f.do(t, http.MethodGet, "/sessions/"+id+"/placements/header/view", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var got errorResponse
	decodeJSON(t, resp, &got)
	assert.Equal(t, model.SessionNotFoundErrorCode, got.ErrorCode)
	assert.Equal(t, 0, f.svc.server.sessions.len())
}

func TestSessions_SweepDisposesIdlePages(t *testing.T) {
	f := newFixture(t)
	idle := f.session(t)
	resp := f.do(t, http.MethodPost, "/sessions/"+idle+"/placements/header/toggle?kind=dropdown", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := f.page(t, idle)
	require.Equal(t, 1, page.Document.ListenerCount(overlay.EventScroll))

	f.clock.Advance(6 * time.Minute)
	active := f.session(t)
	f.clock.Advance(6 * time.Minute)

	assert.Equal(t, 1, f.svc.server.sessions.sweep())
	assert.Equal(t, 0, page.Document.ListenerCount(overlay.EventScroll))
	assert.Equal(t, 1, f.svc.server.sessions.len())
	f.page(t, active)

	resp = f.do(t, http.MethodGet, "/sessions/"+idle+"/placements/header/view", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, 0, f.svc.server.sessions.sweep())
}
