package service

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-kit/selectord/pkg/megamenu"
	"github.com/storefront-kit/selectord/pkg/model"
)

const megaMenuLayoutBody = `{
  "nav": {"left": 0, "top": 0, "right": 1200, "bottom": 60},
  "panel": {"left": 0, "top": 60, "right": 1200, "bottom": 500}
}`

func (f *fixture) megaMenu(t *testing.T, method, path, body string) MegaMenuState {
	t.Helper()
	resp := f.do(t, method, path, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got MegaMenuState
	decodeJSON(t, resp, &got)
	return got
}

func TestMegaMenu_SettingsFromStore(t *testing.T) {
	f := newFixture(t)
	id := f.session(t)

	got := f.megaMenu(t, http.MethodGet, "/sessions/"+id+"/megamenu", "")

	assert.Equal(t, MegaMenuState{Behavior: megamenu.Click, AllowParentLinks: false}, got)
}

func TestMegaMenu_ClickOutsideCloses(t *testing.T) {
	f := newFixture(t)
	id := f.session(t)
	base := "/sessions/" + id + "/megamenu"

	assert.Equal(t, "shop", f.megaMenu(t, http.MethodPost, base+"/open?item=shop", "").Open)
	f.megaMenu(t, http.MethodPost, base+"/layout", megaMenuLayoutBody)

	// click menus ignore pointer movement
	assert.Equal(t, "shop", f.megaMenu(t, http.MethodPost, base+"/pointer?x=100&y=800", "").Open)
	assert.Equal(t, "shop", f.megaMenu(t, http.MethodPost, base+"/click?x=100&y=200", "").Open)
	assert.Empty(t, f.megaMenu(t, http.MethodPost, base+"/click?x=100&y=800", "").Open)
}

func TestMegaMenu_HoverLeaveClosesAfterDelay(t *testing.T) {
	f := newFixture(t)
	var doc model.HeaderDocument
	require.NoError(t, json.Unmarshal([]byte(`{"headerLocaleSelector": {}}`), &doc))
	f.store.Update("header.json", doc)
	id := f.session(t)
	base := "/sessions/" + id + "/megamenu"

	got := f.megaMenu(t, http.MethodPost, base+"/open?item=shop", "")
	assert.Equal(t, megamenu.Hover, got.Behavior)
	assert.True(t, got.AllowParentLinks)
	f.megaMenu(t, http.MethodPost, base+"/layout", megaMenuLayoutBody)

	f.clock.Advance(50 * time.Millisecond)
	assert.Equal(t, "shop", f.megaMenu(t, http.MethodPost, base+"/pointer?x=100&y=800", "").Open)

	f.clock.Advance(megamenu.HoverActivationDelay)
	assert.Equal(t, "shop", f.megaMenu(t, http.MethodPost, base+"/pointer?x=100&y=504", "").Open)
	assert.Empty(t, f.megaMenu(t, http.MethodPost, base+"/pointer?x=100&y=800", "").Open)
}

func TestMegaMenu_ResizeBelowDesktopCloses(t *testing.T) {
	f := newFixture(t)
	id := f.session(t)
	base := "/sessions/" + id + "/megamenu"
	f.megaMenu(t, http.MethodPost, base+"/open?item=shop", "")

	assert.Equal(t, "shop", f.megaMenu(t, http.MethodPost, base+"/resize?width=1280", "").Open)
	assert.Empty(t, f.megaMenu(t, http.MethodPost, base+"/resize?width=800", "").Open)
}

func TestMegaMenu_NavigateEventCloses(t *testing.T) {
	f := newFixture(t)
	id := f.session(t)
	f.megaMenu(t, http.MethodPost, "/sessions/"+id+"/megamenu/open?item=shop", "")

	resp := f.do(t, http.MethodPost, "/sessions/"+id+"/events?event=navigate", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	assert.Empty(t, f.megaMenu(t, http.MethodGet, "/sessions/"+id+"/megamenu", "").Open)
}

func TestMegaMenu_Errors(t *testing.T) {
	f := newFixture(t)
	id := f.session(t)
	base := "/sessions/" + id + "/megamenu"

	tests := map[string]struct {
		path   string
		body   string
		status int
		code   string
	}{
		"unknown session": {"/sessions/nope/megamenu/close", "", http.StatusNotFound, model.SessionNotFoundErrorCode},
		"missing item":    {base + "/open", "", http.StatusBadRequest, model.ParseErrorCode},
		"bad coordinate":  {base + "/click?x=left&y=1", "", http.StatusBadRequest, model.ParseErrorCode},
		"missing width":   {base + "/resize", "", http.StatusBadRequest, model.ParseErrorCode},
		"bad layout":      {base + "/layout", "{", http.StatusBadRequest, model.ParseErrorCode},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			resp := f.do(t, http.MethodPost, tt.path, tt.body)
			require.Equal(t, tt.status, resp.StatusCode)
			var got errorResponse
			decodeJSON(t, resp, &got)
			assert.Equal(t, tt.code, got.ErrorCode)
		})
	}
}
