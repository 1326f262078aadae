package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"

	"github.com/storefront-kit/selectord/pkg/model"
	"github.com/storefront-kit/selectord/pkg/store"
	selsync "github.com/storefront-kit/selectord/pkg/sync"
)

const (
	shutdownTimeout   = 5 * time.Second
	defaultSessionTTL = 30 * time.Minute
	sessionSweep      = "@every 1m"
)

type HTTPServiceConfiguration struct {
	Port int32
	// CORSOrigins are the storefront origins allowed to call the service.
	// Empty allows every origin.
	CORSOrigins []string
	// SessionTTL is the idle time after which a page session is dropped.
	// Zero uses the default.
	SessionTTL time.Duration
}

type HTTPService struct {
	HTTPServiceConfiguration *HTTPServiceConfiguration
	Store                    store.IStore
	Mux                      *selsync.Multiplexer

	now     func() time.Time
	once    sync.Once
	server  *Server
	handler http.Handler
}

// Server implements the HTTP handlers.
type Server struct {
	store    store.IStore
	mux      *selsync.Multiplexer
	sessions *sessions
}

// Handler returns the router with its middleware stack. It is built once.
func (h *HTTPService) Handler() http.Handler {
	h.once.Do(h.build)
	return h.handler
}

func (h *HTTPService) build() {
	now := h.now
	if now == nil {
		now = time.Now
	}
	ttl := defaultSessionTTL
	var origins []string
	if cfg := h.HTTPServiceConfiguration; cfg != nil {
		origins = cfg.CORSOrigins
		if cfg.SessionTTL > 0 {
			ttl = cfg.SessionTTL
		}
	}

	s := &Server{store: h.Store, mux: h.Mux, sessions: newSessions(ttl, now)}
	m := newMetrics(h.Mux, s.sessions)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(m.instrument)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	}).Handler)

	r.Get("/healthz", s.Health)
	r.Handle("/metrics", m.handler())
	r.Get("/events", s.Events)

	r.Route("/placements", func(r chi.Router) {
		r.Get("/", s.GetPlacements)
		r.Get("/{placement}", s.GetPlacement)
		r.Get("/{placement}/view", s.GetView)
		r.Get("/{placement}/visibility", s.GetVisibility)
	})
	r.Post("/resolve", s.Resolve)
	r.Post("/resolve/dropdown", s.ResolveDropdown)
	r.Post("/hidden-fields", s.HiddenFields)
	r.Post("/documents/validate", s.ValidateDocument)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Delete("/{session}", s.DeleteSession)
		r.Post("/{session}/events", s.SessionEvent)
		r.Get("/{session}/placements/{placement}/view", s.SessionView)
		r.Post("/{session}/placements/{placement}/toggle", s.SessionToggle)
		r.Route("/{session}/megamenu", func(r chi.Router) {
			r.Get("/", s.GetMegaMenu)
			r.Post("/open", s.OpenMegaMenu)
			r.Post("/close", s.CloseMegaMenu)
			r.Post("/layout", s.MegaMenuLayout)
			r.Post("/pointer", s.MegaMenuPointer)
			r.Post("/click", s.MegaMenuClick)
			r.Post("/resize", s.MegaMenuResize)
		})
	})

	h.server = s
	h.handler = r
}

func (h *HTTPService) Serve(ctx context.Context) error {
	if h.HTTPServiceConfiguration == nil {
		return errors.New("http service configuration has not been initialised")
	}

	handler := h.Handler()
	sweeper := cron.New()
	if err := sweeper.AddFunc(sessionSweep, func() { h.server.sessions.sweep() }); err != nil {
		return fmt.Errorf("unable to schedule session sweep: %w", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", h.HTTPServiceConfiguration.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		// event streams end with ctx
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Infof("http service listening on %s", srv.Addr)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type errorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

// some basic mapping of errors from model to HTTP
func handleError(err error, w http.ResponseWriter) {
	message := err.Error()
	code, _, _ := strings.Cut(message, ":")
	status := http.StatusInternalServerError
	switch code {
	case model.PlacementNotFoundErrorCode, model.SessionNotFoundErrorCode:
		status = http.StatusNotFound
	case model.InvalidBreakpointErrorCode, model.InvalidContainerKindErrorCode, model.ParseErrorCode:
		status = http.StatusBadRequest
	default:
		code = model.GeneralErrorCode
	}
	if status == http.StatusInternalServerError {
		log.Error(message)
	} else {
		log.Debug(message)
	}
	writeJSON(w, status, errorResponse{ErrorCode: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("unable to encode response: %v", err)
	}
}

func parseError(err error) error {
	return fmt.Errorf("%s: %w", model.ParseErrorCode, err)
}
