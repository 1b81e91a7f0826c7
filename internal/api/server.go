package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/docfmt/internal/cms"
	"github.com/dgallion1/docfmt/internal/config"
	"github.com/dgallion1/docfmt/internal/pipeline"
	"github.com/dgallion1/docfmt/internal/rewrite"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for docfmt.
type Server struct {
	router    chi.Router
	svc       *pipeline.Service
	publisher cms.Publisher
	defaults  rewrite.Options
	log       *slog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server. defaults are the
// formatting options used for any option a request leaves unset.
func NewServer(svc *pipeline.Service, publisher cms.Publisher, defaults rewrite.Options, log *slog.Logger, cfg config.Config) *Server {
	if publisher == nil {
		publisher = cms.Unimplemented{}
	}
	s := &Server{
		svc:       svc,
		publisher: publisher,
		defaults:  defaults,
		log:       log,
		cfg:       cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.DocfmtAPIKey, s.log))

		r.Post("/api/format", s.handleFormat)
		r.Get("/api/stats", s.handleStats)

		r.Route("/api/documents/{docID}", func(r chi.Router) {
			r.Get("/", s.handleGetDocument)
			r.Delete("/", s.handleDeleteDocument)
			r.Get("/download", s.handleDownload)
			r.Get("/compare", s.handleCompare)
			r.Get("/export/{format}", s.handleExport)
			r.Post("/publish", s.handlePublish)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
