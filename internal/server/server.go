// Package server hosts schema documents and their diagrams over HTTP.
//
// The API stores documents (schema source plus display state) and
// renders diagrams from them on demand. Expand state is mutated through
// the toggle endpoint using the node ids embedded in rendered SVG, so a
// thin client can drive the diagram by reading data-node-id off the
// element it received a click on.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/schemavis/schemavis/pkg/diagram"
	"github.com/schemavis/schemavis/pkg/pipeline"
	"github.com/schemavis/schemavis/pkg/store"
)

// Server is the HTTP host for documents and diagrams.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	style  diagram.Style
}

// Option configures a Server.
type Option func(*Server)

// WithStyle sets the theme applied to every rendered diagram.
func WithStyle(style diagram.Style) Option {
	return func(s *Server) {
		s.style = style
	}
}

// New creates a server backed by the given runner and document store.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		store:  st,
		logger: logger,
		style:  diagram.DefaultStyle(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes builds the HTTP handler tree.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/documents", func(r chi.Router) {
		r.Get("/", s.handleListDocuments)
		r.Post("/", s.handleCreateDocument)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetDocument)
			r.Delete("/", s.handleDeleteDocument)
			r.Put("/options", s.handleSetOptions)
			r.Post("/toggle", s.handleToggle)
			r.Get("/diagram", s.handleDiagram)
		})
	})

	return r
}

// logRequests logs each request with method, path, status, and timing.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
