package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/deepmap/oapi-codegen/pkg/runtime"
	"github.com/go-chi/chi/v5"
	"github.com/rs/xid"
	log "github.com/sirupsen/logrus"

	"github.com/storefront-kit/selectord/pkg/display"
	"github.com/storefront-kit/selectord/pkg/model"
	"github.com/storefront-kit/selectord/pkg/resolve"
	"github.com/storefront-kit/selectord/pkg/schema"
	"github.com/storefront-kit/selectord/pkg/selector"
	"github.com/storefront-kit/selectord/pkg/store"
)

const maxBodyBytes = 1 << 20

type PlacementResponse struct {
	Placement model.PlacementID    `json:"placement"`
	Config    model.SelectorConfig `json:"config"`
	Reason    string               `json:"reason"`
}

type VisibilityResponse struct {
	Placement  model.PlacementID         `json:"placement"`
	Kind       model.ContainerKind       `json:"kind"`
	Breakpoint model.Breakpoint          `json:"breakpoint,omitempty"`
	Visible    *bool                     `json:"visible,omitempty"`
	Visibility map[model.Breakpoint]bool `json:"visibility"`
	Classes    string                    `json:"classes"`
}

type HiddenFieldsResponse struct {
	Hidden []string `json:"hidden"`
}

func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetPlacements returns the published snapshot of every placement.
func (s *Server) GetPlacements(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, s.mux.Snapshot())
}

func (s *Server) GetPlacement(w http.ResponseWriter, r *http.Request) {
	p, err := placementParam(r)
	if err != nil {
		handleError(err, w)
		return
	}
	cfg, reason := s.resolved(r.Context(), p)
	writeJSON(w, http.StatusOK, PlacementResponse{Placement: p, Config: cfg, Reason: reason})
}

func (s *Server) GetView(w http.ResponseWriter, r *http.Request) {
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
	cfg, _ := s.resolved(r.Context(), p)
	writeJSON(w, http.StatusOK, selector.Render(cfg, p, inMobileMenu, nil))
}

func (s *Server) GetVisibility(w http.ResponseWriter, r *http.Request) {
	p, err := placementParam(r)
	if err != nil {
		handleError(err, w)
		return
	}

	var rawKind string
	if err := runtime.BindQueryParameter("form", true, true, "kind", r.URL.Query(), &rawKind); err != nil {
		handleError(parseError(err), w)
		return
	}
	kind, err := model.ParseContainerKind(rawKind)
	if err != nil {
		handleError(err, w)
		return
	}
	var rawBreakpoint *string
	if err := runtime.BindQueryParameter("form", true, false, "breakpoint", r.URL.Query(), &rawBreakpoint); err != nil {
		handleError(parseError(err), w)
		return
	}

	cfg, _ := s.resolved(r.Context(), p)
	resp := VisibilityResponse{
		Placement:  p,
		Kind:       kind,
		Visibility: display.Visibility(cfg.DisplayMode, kind),
		Classes:    display.Classes(cfg.DisplayMode, kind),
	}
	if rawBreakpoint != nil {
		bp, err := model.ParseBreakpoint(*rawBreakpoint)
		if err != nil {
			handleError(err, w)
			return
		}
		visible := display.VisibleAt(cfg.DisplayMode, kind, bp)
		resp.Breakpoint = bp
		resp.Visible = &visible
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) Resolve(w http.ResponseWriter, r *http.Request) {
	var raw *model.RawSelectorConfig
	if err := decodeBody(r, &raw); err != nil {
		handleError(err, w)
		return
	}
	writeJSON(w, http.StatusOK, resolve.Resolve(raw))
}

func (s *Server) ResolveDropdown(w http.ResponseWriter, r *http.Request) {
	var raw *model.RawDropdownSelectorConfig
	if err := decodeBody(r, &raw); err != nil {
		handleError(err, w)
		return
	}
	writeJSON(w, http.StatusOK, resolve.ResolveDropdown(raw))
}

// HiddenFields evaluates the editor rules for a posted config. The
// variant query parameter selects the dropdown-only rules.
func (s *Server) HiddenFields(w http.ResponseWriter, r *http.Request) {
	var variant *string
	if err := runtime.BindQueryParameter("form", true, false, "variant", r.URL.Query(), &variant); err != nil {
		handleError(parseError(err), w)
		return
	}
	rules := schema.SelectorRules
	if variant != nil && *variant == "dropdown" {
		rules = schema.DropdownRules
	}

	doc := map[string]any{}
	if err := decodeBody(r, &doc); err != nil {
		handleError(err, w)
		return
	}
	hidden, err := schema.HiddenFields(rules, doc)
	if err != nil {
		handleError(err, w)
		return
	}
	if hidden == nil {
		hidden = []string{}
	}
	writeJSON(w, http.StatusOK, HiddenFieldsResponse{Hidden: hidden})
}

func (s *Server) ValidateDocument(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		handleError(parseError(err), w)
		return
	}
	if err := schema.Validate(body); err != nil {
		handleError(parseError(err), w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

// Events streams the resolved snapshot as server-sent events, once on
// connect and again after every store change.
func (s *Server) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		handleError(fmt.Errorf("%s: streaming unsupported", model.GeneralErrorCode), w)
		return
	}

	id := xid.New().String()
	updates := make(chan store.Payload, 1)
	initial := s.mux.Register(id, updates)
	defer s.mux.Unregister(id)
	log.Debugf("event subscriber %s connected", id)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	writeEvent(w, initial)
	flusher.Flush()
	for {
		select {
		case <-r.Context().Done():
			log.Debugf("event subscriber %s disconnected", id)
			return
		case payload := <-updates:
			writeEvent(w, payload)
			flusher.Flush()
		}
	}
}

func writeEvent(w io.Writer, payload store.Payload) {
	_, _ = fmt.Fprintf(w, "event: placements\ndata: %s\n\n", payload.Configs)
}

// resolved returns the config of p and whether it came from a stored
// document or the defaults.
func (s *Server) resolved(ctx context.Context, p model.PlacementID) (model.SelectorConfig, string) {
	stored, ok := s.store.Get(ctx, p)
	if !ok {
		return resolve.Placement(model.PlacementConfig{Placement: p}), model.DefaultReason
	}
	return resolve.Placement(stored), model.StaticReason
}

func placementParam(r *http.Request) (model.PlacementID, error) {
	var raw string
	err := runtime.BindStyledParameterWithLocation("simple", false, "placement", runtime.ParamLocationPath, chi.URLParam(r, "placement"), &raw)
	if err != nil {
		return "", parseError(err)
	}
	return model.ParsePlacement(raw)
}

func boolQuery(r *http.Request, name string) (bool, error) {
	var value *bool
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &value); err != nil {
		return false, parseError(err)
	}
	return value != nil && *value, nil
}

func decodeBody(r *http.Request, dest interface{}) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dest); err != nil {
		return parseError(err)
	}
	return nil
}
