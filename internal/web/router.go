// Package web is the HTML and JSON front-end of the tracker.
package web

import (
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Spok95/fitness-tracker/internal/metrics"
	"github.com/Spok95/fitness-tracker/internal/students"
)

type Options struct {
	Log         *zap.Logger
	Location    *time.Location
	CORSOrigins []string
}

type Server struct {
	svc  *students.Service
	log  *zap.Logger
	loc  *time.Location
	tmpl *template.Template
	now  func() time.Time
}

func NewServer(svc *students.Service, opts Options) *Server {
	s := &Server{svc: svc, log: opts.Log, loc: opts.Location, now: time.Now}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	s.tmpl = parseTemplates(s.loc)
	return s
}

// NewRouter wires all routes. /api is the only subtree with CORS.
func NewRouter(svc *students.Service, opts Options) http.Handler {
	return NewServer(svc, opts).Routes(opts.CORSOrigins)
}

func (s *Server) Routes(corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLog(s.log), middleware.Recoverer)

	r.Get("/", s.index)
	r.Post("/students", s.createStudent)
	r.Post("/students/{id}/delete", s.deleteStudent)
	r.Delete("/students/{id}", s.deleteStudent)
	r.Get("/students/export.xlsx", s.exportStudents)
	r.Post("/students/import", s.importStudents)

	r.Route("/api", func(api chi.Router) {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			ExposedHeaders: []string{"Content-Length"},
			MaxAge:         300,
		}))
		api.Get("/students", s.listStudents)
		api.Post("/students", s.createStudent)
		api.Get("/students/{id}", s.getStudent)
		api.Delete("/students/{id}", s.deleteStudent)
		api.Get("/stats", s.stats)
	})

	r.Get("/health-check", s.healthCheck)
	r.Get("/healthz", s.healthz)
	r.Handle("/metrics", metrics.Handler())
	return r
}
