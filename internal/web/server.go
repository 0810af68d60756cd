// Package web serves the lesson plan form over HTTP.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sant0-9/planea/internal/logger"
	"github.com/sant0-9/planea/internal/planner"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type Server struct {
	planner   *planner.Planner
	log       *logger.Logger
	downloads *downloads
}

func NewServer(p *planner.Planner, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		planner:   p,
		log:       log,
		downloads: newDownloads(),
	}
}

// Routes builds the router with all endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(countRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/planeacion", s.handleGenerate)
	r.Get("/descargar/{id}", s.handleDownload)
	r.Post("/api/planeacion", s.handleGenerateJSON)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Close removes every exported file this server handed out.
func (s *Server) Close() error {
	n := s.downloads.len()
	if err := s.downloads.removeAll(); err != nil {
		s.log.Warn("cleanup of exported documents incomplete", "error", err)
		return err
	}
	s.log.Info("exported documents removed", "count", n)
	return nil
}
