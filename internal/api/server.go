// Package api exposes the analyzer over HTTP. The transport is a thin layer:
// every request is one stateless invocation of the pipeline.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/rlevin/matchpoint/internal/model"
	"github.com/rlevin/matchpoint/internal/pipeline"
)

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	analyzer *pipeline.Analyzer
	log      *zap.Logger
	cfg      model.ServerConfig
}

// NewServer creates and configures the HTTP server.
func NewServer(analyzer *pipeline.Analyzer, log *zap.Logger, cfg model.ServerConfig) *Server {
	s := &Server{
		analyzer: analyzer,
		log:      log,
		cfg:      cfg,
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

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey))
		}
		r.Post("/api/analyze", s.handleAnalyze)
		r.Post("/api/policy/question", s.handlePolicyQuestion)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
