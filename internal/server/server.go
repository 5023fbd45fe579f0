package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	formlayout "github.com/goliatone/go-formlayout"
	"github.com/goliatone/go-formlayout/internal/logging"
	"github.com/goliatone/go-formlayout/pkg/formschema"
	"github.com/goliatone/go-formlayout/pkg/model"
	"github.com/goliatone/go-formlayout/pkg/render"
	"github.com/goliatone/go-formlayout/pkg/renderers/div"
)

type Option func(*Server)

// WithLogger sets the request logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderer replaces the div renderer used for pages.
func WithRenderer(renderer *div.Renderer) Option {
	return func(s *Server) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithRegistry replaces the registry used for ?mode= requests.
func WithRegistry(registry *render.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithHiddenFields adds hidden inputs (CSRF tokens and the like) to every
// rendered form. A later field replaces an earlier one of the same name.
func WithHiddenFields(fields ...render.HiddenField) Option {
	return func(s *Server) {
		s.hidden = render.MergeHiddenFields(s.hidden, fields...)
	}
}

// Server previews the forms of a document store over HTTP.
type Server struct {
	store    *formschema.Store
	renderer *div.Renderer
	registry *render.Registry
	logger   *slog.Logger
	hidden   map[string]string
}

type formSummary struct {
	Name   string   `json:"name"`
	Source string   `json:"source,omitempty"`
	Fields []string `json:"fields"`
}

type submission struct {
	Data   map[string]any      `json:"data"`
	Errors map[string][]string `json:"errors"`
}

// NewHandler creates the preview handler for store.
func NewHandler(store *formschema.Store, options ...Option) http.Handler {
	s := &Server{
		store:  store,
		logger: logging.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.renderer == nil {
		s.renderer = div.New()
	}
	if s.registry == nil {
		s.registry = formlayout.NewRegistry()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/forms", s.listForms)
	r.Get("/forms/{name}", s.showForm)
	r.Post("/forms/{name}", s.submitForm)
	return r
}

func (s *Server) listForms(w http.ResponseWriter, _ *http.Request) {
	summaries := make([]formSummary, 0)
	for _, name := range s.store.Names() {
		def, _ := s.store.Form(name)
		summaries = append(summaries, formSummary{
			Name:   name,
			Source: s.store.Source(name),
			Fields: def.Names(),
		})
	}
	s.writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) showForm(w http.ResponseWriter, r *http.Request) {
	def, ok := s.definition(w, r)
	if !ok {
		return
	}
	s.respond(w, r, def, def.Bind(), http.StatusOK)
}

func (s *Server) submitForm(w http.ResponseWriter, r *http.Request) {
	def, ok := s.definition(w, r)
	if !ok {
		return
	}

	var payload submission
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form body", http.StatusBadRequest)
			return
		}
		payload.Data = postedValues(def, r)
	}
	if payload.Data == nil {
		payload.Data = map[string]any{}
	}

	form := def.Bind(model.WithData(payload.Data), model.WithErrors(payload.Errors))
	status := http.StatusOK
	if len(payload.Errors) > 0 {
		status = http.StatusUnprocessableEntity
	}
	s.respond(w, r, def, form, status)
}

func (s *Server) definition(w http.ResponseWriter, r *http.Request) (*model.Definition, bool) {
	name := chi.URLParam(r, "name")
	def, ok := s.store.Form(name)
	if !ok {
		http.Error(w, "form not found", http.StatusNotFound)
		return nil, false
	}
	return def, true
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, def *model.Definition, form *model.Form, status int) {
	options := render.RenderOptions{HiddenFields: render.SortedHiddenFields(s.hidden)}

	mode := strings.TrimSpace(r.URL.Query().Get("mode"))
	if mode != "" && mode != div.Name {
		s.renderMode(w, r, mode, form, options, status)
		return
	}

	// Render once up front so failures become a 500 instead of a truncated page.
	if _, err := s.renderer.Render(r.Context(), form, options); err != nil {
		s.renderFailed(w, r, def.Name(), err)
		return
	}

	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.WriteHeader(status)
	page := Page(def.Name(), r.URL.Path, s.renderer.Component(form, options))
	if err := page.Render(r.Context(), w); err != nil {
		s.logger.Error("write page", "form", def.Name(), "error", err)
	}
}

func (s *Server) renderMode(w http.ResponseWriter, r *http.Request, mode string, form *model.Form, options render.RenderOptions, status int) {
	if !s.registry.Has(mode) {
		http.Error(w, "unknown output mode", http.StatusBadRequest)
		return
	}
	out, err := s.registry.Render(r.Context(), mode, form, options)
	if err != nil {
		s.renderFailed(w, r, form.Definition().Name(), err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

func (s *Server) renderFailed(w http.ResponseWriter, r *http.Request, name string, err error) {
	switch {
	case errors.Is(err, render.ErrUnsupportedOutputMode):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		s.logger.Error("render form",
			"form", name,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// postedValues reads submitted values keyed by field name. Multiple
// choice fields keep every submitted value.
func postedValues(def *model.Definition, r *http.Request) map[string]any {
	values := make(map[string]any)
	for _, field := range def.Fields() {
		submitted, ok := r.PostForm[field.Name]
		if !ok {
			continue
		}
		if field.Kind == model.KindMultipleChoice {
			values[field.Name] = append([]string(nil), submitted...)
			continue
		}
		values[field.Name] = r.PostForm.Get(field.Name)
	}
	return values
}
